package desktop

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/domain/terminal"
	"github.com/GriffinCanCode/DevOS/backend/internal/domain/window"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/id"
)

// Options configures the registry
type Options struct {
	Layout      window.Layout
	IdleTTL     time.Duration
	MaxSessions int
}

// DefaultOptions returns production defaults
func DefaultOptions() Options {
	return Options{
		Layout:      window.DefaultLayout(),
		IdleTTL:     30 * time.Minute,
		MaxSessions: 1000,
	}
}

// Registry tracks live visitor desktops
type Registry struct {
	mu     sync.RWMutex
	shells map[string]*Shell
	closed bool

	ctx        context.Context
	cancel     context.CancelFunc
	opts       Options
	content    terminal.Content
	translator terminal.Translator
	metrics    *monitoring.Metrics
	logger     *zap.Logger
	now        func() time.Time
}

// NewRegistry creates an empty registry
func NewRegistry(content terminal.Content, translator terminal.Translator, opts Options) *Registry {
	ctx, cancel := context.WithCancel(context.Background())
	return &Registry{
		shells:     make(map[string]*Shell),
		ctx:        ctx,
		cancel:     cancel,
		opts:       opts,
		content:    content,
		translator: translator,
		logger:     zap.NewNop(),
		now:        time.Now,
	}
}

// WithMetrics adds metrics tracking to the registry and its shells
func (r *Registry) WithMetrics(metrics *monitoring.Metrics) *Registry {
	r.metrics = metrics
	return r
}

// WithLogger sets the registry's logger
func (r *Registry) WithLogger(logger *zap.Logger) *Registry {
	if logger != nil {
		r.logger = logger
	}
	return r
}

// WithClock replaces the time source
func (r *Registry) WithClock(now func() time.Time) *Registry {
	r.now = now
	return r
}

// Create starts a new desktop
func (r *Registry) Create() (*Shell, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return nil, ErrClosed
	}
	if r.opts.MaxSessions > 0 && len(r.shells) >= r.opts.MaxSessions {
		return nil, fmt.Errorf("%w: limit %d", ErrTooManySessions, r.opts.MaxSessions)
	}

	shell := NewShell(r.ctx, ShellConfig{
		ID:         id.NewDesktopID().String(),
		Layout:     r.opts.Layout,
		Content:    r.content,
		Translator: r.translator,
		Metrics:    r.metrics,
		Logger:     r.logger,
		Now:        r.now,
	})
	r.shells[shell.ID()] = shell
	r.recordActive()

	r.logger.Info("desktop created", zap.String("desktop_id", shell.ID()))
	return shell, nil
}

// Get retrieves a desktop by ID
func (r *Registry) Get(desktopID string) (*Shell, error) {
	r.mu.RLock()
	shell, ok := r.shells[desktopID]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, desktopID)
	}
	return shell, nil
}

// Delete shuts a desktop down and forgets it
func (r *Registry) Delete(desktopID string) error {
	r.mu.Lock()
	shell, ok := r.shells[desktopID]
	if ok {
		delete(r.shells, desktopID)
		r.recordActive()
	}
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, desktopID)
	}
	shell.Shutdown()
	r.logger.Info("desktop deleted", zap.String("desktop_id", desktopID))
	return nil
}

// Len returns the number of live desktops
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.shells)
}

// Evict shuts down desktops idle for longer than the TTL and returns how many were removed
func (r *Registry) Evict() int {
	if r.opts.IdleTTL <= 0 {
		return 0
	}
	cutoff := r.now().Add(-r.opts.IdleTTL)

	var expired []*Shell
	r.mu.Lock()
	for desktopID, shell := range r.shells {
		if shell.LastActive().Before(cutoff) {
			expired = append(expired, shell)
			delete(r.shells, desktopID)
		}
	}
	if len(expired) > 0 {
		r.recordActive()
	}
	r.mu.Unlock()

	for _, shell := range expired {
		shell.Shutdown()
		if r.metrics != nil {
			r.metrics.IncDesktopsEvicted()
		}
		r.logger.Info("desktop evicted",
			zap.String("desktop_id", shell.ID()),
			zap.Time("last_active", shell.LastActive()),
		)
	}
	return len(expired)
}

// Run evicts idle desktops periodically until ctx is done
func (r *Registry) Run(ctx context.Context) error {
	interval := r.opts.IdleTTL / 4
	if interval < time.Second {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			r.Evict()
		}
	}
}

// Shutdown stops every desktop. Later Create calls fail with ErrClosed.
func (r *Registry) Shutdown() {
	r.mu.Lock()
	r.closed = true
	shells := r.shells
	r.shells = make(map[string]*Shell)
	r.recordActive()
	r.mu.Unlock()

	r.cancel()
	for _, shell := range shells {
		shell.Shutdown()
	}
}

// recordActive must be called with mu held
func (r *Registry) recordActive() {
	if r.metrics != nil {
		r.metrics.SetDesktopsActive(len(r.shells))
	}
}
