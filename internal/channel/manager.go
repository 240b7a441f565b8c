// Package channel keeps the single live connection to the dryer open.
//
// All connection events (open, message, error, close, reconnect timer) are
// posted to one loop goroutine and handled in delivery order, one at a time.
// Each connection gets a generation number; events from a replaced connection
// are dropped, so at most one channel is ever live.
package channel

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"
)

// DefaultReconnectDelay is the fixed wait between a close and the next attempt.
const DefaultReconnectDelay = 2 * time.Second

const eventQueueSize = 64

// ErrNotConnected is returned by Send unless the channel is Connected.
var ErrNotConnected = errors.New("live channel is not connected")

// Handler receives channel output. All methods run on the loop goroutine and
// must not block for long.
type Handler interface {
	OnStatus(st Status)
	OnOpen()
	OnSnapshot(s models.DeviceSnapshot)
}

// Recorder receives channel metrics.
type Recorder interface {
	StateChanged(s State)
	ReconnectScheduled()
	MessageDropped()
}

type nopRecorder struct{}

func (nopRecorder) StateChanged(State)  {}
func (nopRecorder) ReconnectScheduled() {}
func (nopRecorder) MessageDropped()     {}

// Options configures a Manager. URL, Dialer and Handler are required.
type Options struct {
	URL            string
	ReconnectDelay time.Duration
	Dialer         Dialer
	Handler        Handler
	Scheduler      Scheduler
	Metrics        Recorder
	Log            *logger.Logger
}

type eventKind int

const (
	evOpen eventKind = iota
	evMessage
	evError
	evClose
	evReconnect
)

type event struct {
	kind eventKind
	gen  uint64 // connection generation, for open/message/error/close
	seq  uint64 // reconnect sequence, for reconnect
	conn Conn
	data []byte
	err  error
}

// Manager owns the live connection and its reconnect schedule.
type Manager struct {
	url     string
	delay   time.Duration
	dialer  Dialer
	handler Handler
	sched   Scheduler
	metrics Recorder
	log     *logger.Logger

	events chan event

	// loop goroutine only
	gen     uint64
	seq     uint64
	pending Timer

	mu    sync.RWMutex
	state State
	conn  Conn
}

func NewManager(o Options) (*Manager, error) {
	if o.URL == "" {
		return nil, errors.New("channel: url is required")
	}
	if o.Dialer == nil {
		return nil, errors.New("channel: dialer is required")
	}
	if o.Handler == nil {
		return nil, errors.New("channel: handler is required")
	}
	if o.ReconnectDelay <= 0 {
		o.ReconnectDelay = DefaultReconnectDelay
	}
	if o.Scheduler == nil {
		o.Scheduler = realScheduler{}
	}
	if o.Metrics == nil {
		o.Metrics = nopRecorder{}
	}
	return &Manager{
		url:     o.URL,
		delay:   o.ReconnectDelay,
		dialer:  o.Dialer,
		handler: o.Handler,
		sched:   o.Scheduler,
		metrics: o.Metrics,
		log:     o.Log.Named("channel"),
		events:  make(chan event, eventQueueSize),
		state:   Connecting,
	}, nil
}

// Run connects and processes channel events until ctx is canceled.
func (m *Manager) Run(ctx context.Context) {
	m.log.Infow("ws_connecting", "url", m.url)
	m.connect(ctx)
	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return
		case ev := <-m.events:
			m.handle(ctx, ev)
		}
	}
}

// State returns the current channel state.
func (m *Manager) State() State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state
}

// Status returns the current state with its indicator label.
func (m *Manager) Status() Status {
	return StatusOf(m.State())
}

// Send encodes v as JSON and writes it as one frame. It fails fast with
// ErrNotConnected unless Connected; write failures never change the state.
func (m *Manager) Send(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	m.mu.RLock()
	st, c := m.state, m.conn
	m.mu.RUnlock()
	if st != Connected || c == nil {
		return ErrNotConnected
	}
	if err := c.WriteMessage(data); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func (m *Manager) handle(ctx context.Context, ev event) {
	if ev.kind == evReconnect {
		if ev.seq != m.seq {
			return
		}
		m.pending = nil
		m.log.Infow("ws_reconnecting", "url", m.url)
		m.connect(ctx)
		return
	}

	if ev.gen != m.gen {
		// event from a replaced connection
		if ev.kind == evOpen && ev.conn != nil {
			_ = ev.conn.Close()
		}
		return
	}

	switch ev.kind {
	case evOpen:
		m.mu.Lock()
		m.conn = ev.conn
		m.mu.Unlock()
		m.log.Infow("ws_connected", "url", m.url)
		m.setState(Connected)
		go m.readLoop(ctx, ev.gen, ev.conn)
		m.handler.OnOpen()

	case evMessage:
		snap, err := models.ParseSnapshot(ev.data)
		if err != nil {
			m.metrics.MessageDropped()
			m.log.Warnw("ws_message_dropped", "err", err, "bytes", len(ev.data))
			return
		}
		m.handler.OnSnapshot(snap)

	case evError:
		m.log.Errorw("ws_error", "err", ev.err)
		m.setState(Error)

	case evClose:
		m.mu.Lock()
		if m.conn != nil {
			_ = m.conn.Close()
			m.conn = nil
		}
		m.mu.Unlock()
		m.log.Infow("ws_closed", "err", ev.err)
		m.setState(Disconnected)
		m.scheduleReconnect(ctx)
	}
}

// connect starts a new generation and dials it in the background.
func (m *Manager) connect(ctx context.Context) {
	m.gen++
	gen := m.gen
	m.setState(Connecting)

	go func() {
		c, err := m.dialer.Dial(ctx, m.url)
		if err != nil {
			m.post(ctx, event{kind: evError, gen: gen, err: err})
			m.post(ctx, event{kind: evClose, gen: gen, err: err})
			return
		}
		if !m.post(ctx, event{kind: evOpen, gen: gen, conn: c}) {
			_ = c.Close()
		}
	}()
}

// scheduleReconnect leaves exactly one pending reconnect, replacing any earlier one.
func (m *Manager) scheduleReconnect(ctx context.Context) {
	if m.pending != nil {
		m.pending.Stop()
	}
	m.seq++
	seq := m.seq
	m.pending = m.sched.AfterFunc(m.delay, func() {
		m.post(ctx, event{kind: evReconnect, seq: seq})
	})
	m.metrics.ReconnectScheduled()
	m.log.Infow("ws_reconnect_scheduled", "delay", m.delay)
}

func (m *Manager) readLoop(ctx context.Context, gen uint64, c Conn) {
	for {
		data, err := c.ReadMessage()
		if err != nil {
			if isTransportError(err) {
				m.post(ctx, event{kind: evError, gen: gen, err: err})
			}
			m.post(ctx, event{kind: evClose, gen: gen, err: err})
			return
		}
		if !m.post(ctx, event{kind: evMessage, gen: gen, data: data}) {
			return
		}
	}
}

// post hands an event to the loop. It reports false once the loop has stopped.
func (m *Manager) post(ctx context.Context, ev event) bool {
	select {
	case m.events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}

func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	m.mu.Unlock()
	m.metrics.StateChanged(s)
	m.handler.OnStatus(StatusOf(s))
}

func (m *Manager) shutdown() {
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.gen++
	m.mu.Lock()
	if m.conn != nil {
		_ = m.conn.Close()
		m.conn = nil
	}
	m.state = Disconnected
	m.mu.Unlock()
	m.log.Infow("ws_stopped")
}
