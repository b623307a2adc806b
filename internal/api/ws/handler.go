package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/utils"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// Message types
const (
	TypeSnapshot = "snapshot"
	TypeAccepted = "accepted"
	TypePong     = "pong"
	TypeError    = "error"
	TypeClosed   = "closed"

	TypeOpen      = "open"
	TypeFocus     = "focus"
	TypeMinimize  = "minimize"
	TypeClose     = "close"
	TypeCloseAll  = "close_all"
	TypeDragStart = "drag_start"
	TypeDragMove  = "drag_move"
	TypeDragEnd   = "drag_end"
	TypeSubmit    = "submit"
	TypePing      = "ping"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // CORS policy is enforced by middleware
	},
}

// Handler streams desktop snapshots and applies client events
type Handler struct {
	registry *desktop.Registry
	metrics  *monitoring.Metrics
	logger   *zap.Logger
}

// NewHandler creates a new WebSocket handler
func NewHandler(registry *desktop.Registry, metrics *monitoring.Metrics, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: registry,
		metrics:  metrics,
		logger:   logger,
	}
}

// conn serializes writes to one socket
type conn struct {
	ws      *websocket.Conn
	mu      sync.Mutex
	metrics *monitoring.Metrics
}

func (c *conn) send(msgType string, data gin.H) error {
	data["type"] = msgType
	data["timestamp"] = time.Now().Unix()

	c.mu.Lock()
	defer c.mu.Unlock()
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(data); err != nil {
		return err
	}
	if c.metrics != nil {
		c.metrics.RecordWSMessage("out", msgType)
	}
	return nil
}

func (c *conn) sendError(msg string) error {
	return c.send(TypeError, gin.H{"message": msg})
}

func (c *conn) ping() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait))
}

// HandleConnection upgrades GET /desktops/:sid/stream and runs the session
func (h *Handler) HandleConnection(c *gin.Context) {
	desktopID := c.Param("sid")
	if err := utils.ValidateID(desktopID, "sid", true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	shell, err := h.registry.Get(desktopID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}
	defer ws.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	logger := h.logger.With(zap.String("desktop_id", desktopID))
	logger.Debug("stream connected")

	client := &conn{ws: ws, metrics: h.metrics}
	ws.SetReadLimit(utils.MaxMessageSize)
	_ = ws.SetReadDeadline(time.Now().Add(pongWait))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.push(ctx, client, shell)
	}()

	for {
		var msg types.WSMessage
		if err := ws.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Debug("stream read error", zap.Error(err))
			}
			break
		}
		_ = ws.SetReadDeadline(time.Now().Add(pongWait))
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		if err := h.dispatch(client, shell, msg); err != nil {
			logger.Debug("stream write error", zap.Error(err))
			break
		}
	}

	cancel()
	<-done
	logger.Debug("stream disconnected")
}

// push sends the current snapshot, then a fresh one after every change
func (h *Handler) push(ctx context.Context, client *conn, shell *desktop.Shell) {
	changes, unsubscribe := shell.Subscribe()
	defer unsubscribe()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	if err := client.send(TypeSnapshot, gin.H{"snapshot": shell.Snapshot()}); err != nil {
		return
	}

	for {
		select {
		case <-ctx.Done():
			return
		case <-shell.Done():
			_ = client.send(TypeClosed, gin.H{"message": "desktop closed"})
			_ = client.ws.Close()
			return
		case <-changes:
			if err := client.send(TypeSnapshot, gin.H{"snapshot": shell.Snapshot()}); err != nil {
				return
			}
		case <-ticker.C:
			if err := client.ping(); err != nil {
				return
			}
		}
	}
}

// dispatch applies one client event. Only write failures are returned.
func (h *Handler) dispatch(client *conn, shell *desktop.Shell, msg types.WSMessage) error {
	switch msg.Type {
	case TypeOpen:
		if _, err := shell.OpenKind(msg.Kind, msg.ProjectID); err != nil {
			return client.sendError(err.Error())
		}
	case TypeFocus:
		shell.Focus(msg.WindowID)
	case TypeMinimize:
		shell.Minimize(msg.WindowID)
	case TypeClose:
		shell.Close(msg.WindowID)
	case TypeCloseAll:
		shell.CloseAll()
	case TypeDragStart:
		shell.BeginDrag(msg.WindowID, msg.X, msg.Y)
	case TypeDragMove:
		shell.DragTo(msg.X, msg.Y)
	case TypeDragEnd:
		shell.EndDrag()
	case TypeSubmit:
		return h.submit(client, shell, msg)
	case TypePing:
		shell.Touch()
		return client.send(TypePong, gin.H{})
	default:
		return client.sendError("unknown message type")
	}
	return nil
}

func (h *Handler) submit(client *conn, shell *desktop.Shell, msg types.WSMessage) error {
	if err := utils.ValidateCommandLine(msg.Line); err != nil {
		return client.sendError(err.Error())
	}

	if _, err := shell.Submit(msg.WindowID, msg.Line); err != nil {
		return client.sendError(err.Error())
	}
	return client.send(TypeAccepted, gin.H{"window_id": msg.WindowID})
}
