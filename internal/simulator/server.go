package simulator

import (
	"context"
	"net/http"
	"time"

	"filament_dryer/internal/device"
	"filament_dryer/internal/logger"
	"filament_dryer/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	maxMsgSize = 1 << 12 // 4 KB
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler serves the device side of the dashboard protocol.
type Handler struct {
	dev            *Device
	debugEndpoints bool
	log            *logger.Logger
}

func NewHandler(dev *Device, debugEndpoints bool, log *logger.Logger) *Handler {
	return &Handler{dev: dev, debugEndpoints: debugEndpoints, log: log.Named("simulator_http")}
}

// InitRoutes registers /profiles, /status and /ws, plus the /debug variants
// when enabled.
func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET(device.PathProfiles, h.profiles)
	router.GET(device.PathStatus, h.status)
	if h.debugEndpoints {
		router.GET(device.PathDebugProfiles, h.profiles)
		router.GET(device.PathDebugStatus, h.status)
	}
	router.GET(device.PathLive, h.live)
	return router
}

func (h *Handler) profiles(c *gin.Context) {
	c.JSON(http.StatusOK, h.dev.Profiles())
}

func (h *Handler) status(c *gin.Context) {
	c.JSON(http.StatusOK, h.dev.Snapshot())
}

// live pushes a snapshot every simulation tick and applies incoming commands.
func (h *Handler) live(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(maxMsgSize)

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()
	snapshots := h.dev.Subscribe(ctx)

	done := make(chan struct{})
	go h.readCommands(conn, done)

	h.log.Infow("client_connected", "remote", c.Request.RemoteAddr)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := conn.WriteJSON(h.dev.Snapshot()); err != nil {
		return
	}
	for {
		select {
		case <-done:
			h.log.Infow("client_disconnected", "remote", c.Request.RemoteAddr)
			return
		case s, ok := <-snapshots:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(s); err != nil {
				h.log.Infow("ws_write_failed", "err", err)
				return
			}
		}
	}
}

// readCommands applies command frames until the connection fails. Bad frames
// are logged and ignored; the protocol has no replies.
func (h *Handler) readCommands(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		cmd, err := models.ParseCommand(data)
		if err != nil {
			h.log.Warnw("command_malformed", "err", err)
			continue
		}
		if err := h.dev.Handle(cmd); err != nil {
			h.log.Warnw("command_rejected", "command", cmd.Command, "err", err)
		}
	}
}
