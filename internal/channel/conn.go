package channel

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	maxMsgSize = 1 << 14 // 16 KB, snapshots are a few hundred bytes
)

// Conn is one open live connection. ReadMessage is only called from a single
// reader goroutine; WriteMessage may be called concurrently.
type Conn interface {
	ReadMessage() ([]byte, error)
	WriteMessage(data []byte) error
	Close() error
}

// Dialer opens live connections.
type Dialer interface {
	Dial(ctx context.Context, url string) (Conn, error)
}

// WSDialer dials the device with gorilla/websocket.
type WSDialer struct {
	dialer websocket.Dialer
}

func NewWSDialer(handshakeTimeout time.Duration) *WSDialer {
	return &WSDialer{dialer: websocket.Dialer{HandshakeTimeout: handshakeTimeout}}
}

func (d *WSDialer) Dial(ctx context.Context, url string) (Conn, error) {
	c, _, err := d.dialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", url, err)
	}
	c.SetReadLimit(maxMsgSize)
	return &wsConn{conn: c}, nil
}

type wsConn struct {
	conn *websocket.Conn
	wmu  sync.Mutex // gorilla allows one concurrent writer
}

func (c *wsConn) ReadMessage() ([]byte, error) {
	_, data, err := c.conn.ReadMessage()
	return data, err
}

func (c *wsConn) WriteMessage(data []byte) error {
	c.wmu.Lock()
	defer c.wmu.Unlock()
	_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

func (c *wsConn) Close() error {
	return c.conn.Close()
}

// isTransportError reports whether a read error is a transport failure rather
// than an orderly close frame from the peer.
func isTransportError(err error) bool {
	var ce *websocket.CloseError
	return !errors.As(err, &ce)
}
