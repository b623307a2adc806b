package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/DevOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/content"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/utils"
)

const (
	serviceName = "DevOS Portfolio Service (Go)"
	version     = "1.0.0"
)

// Handlers contains all HTTP handlers
type Handlers struct {
	content   *content.Repository
	registry  *desktop.Registry
	metrics   *monitoring.Metrics
	logger    *zap.Logger
	reasoning func() string
	started   time.Time
}

// NewHandlers creates a new handler set
func NewHandlers(repo *content.Repository, registry *desktop.Registry, metrics *monitoring.Metrics) *Handlers {
	return &Handlers{
		content:   repo,
		registry:  registry,
		metrics:   metrics,
		logger:    zap.NewNop(),
		reasoning: func() string { return "heuristic" },
		started:   time.Now(),
	}
}

// WithLogger sets the handler logger
func (h *Handlers) WithLogger(logger *zap.Logger) *Handlers {
	if logger != nil {
		h.logger = logger
	}
	return h
}

// WithReasoningState reports the translator state on /health
func (h *Handlers) WithReasoningState(state func() string) *Handlers {
	if state != nil {
		h.reasoning = state
	}
	return h
}

// Root handles health check
func (h *Handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "online",
		"service": serviceName,
		"version": version,
	})
}

// Health handles detailed health check
func (h *Handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "healthy",
		"uptime_seconds": int64(time.Since(h.started).Seconds()),
		"desktops":       h.registry.Len(),
		"content":        h.content.Summary(),
		"reasoning":      gin.H{"state": h.reasoning()},
	})
}

// Metrics serves the Prometheus exposition
func (h *Handlers) Metrics(c *gin.Context) {
	if h.metrics == nil {
		c.Status(http.StatusNotFound)
		return
	}
	h.metrics.Handler().ServeHTTP(c.Writer, c.Request)
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, desktop.ErrSessionNotFound),
		errors.Is(err, desktop.ErrWindowNotFound):
		return http.StatusNotFound
	case errors.Is(err, desktop.ErrNotTerminal),
		errors.Is(err, desktop.ErrUnknownApp):
		return http.StatusBadRequest
	case errors.Is(err, terminal.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, desktop.ErrTooManySessions):
		return http.StatusTooManyRequests
	case errors.Is(err, desktop.ErrClosed):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handlers) fail(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// param reads and validates a path ID, writing 400 on failure
func param(c *gin.Context, name string) (string, bool) {
	value := c.Param(name)
	if err := utils.ValidateID(value, name, true); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", false
	}
	return value, true
}
