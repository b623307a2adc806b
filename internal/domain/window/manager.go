package window

import (
	"sync"

	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/id"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

// Manager orchestrates window lifecycle
type Manager struct {
	mu        sync.RWMutex
	windows   []*types.Window // Creation order, protected by mu
	focusedID string          // Protected by mu; empty when no window is focused
	layout    Layout
	newID     func() string
	metrics   *monitoring.Metrics
	logger    *zap.Logger
}

// NewManager creates a new window manager
func NewManager(layout Layout) *Manager {
	gen := id.NewGenerator()
	return &Manager{
		layout: layout,
		newID:  func() string { return gen.NewWindowID().String() },
		logger: zap.NewNop(),
	}
}

// WithMetrics adds metrics tracking to the manager
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	m.metrics = metrics
	return m
}

// WithLogger sets the manager's logger
func (m *Manager) WithLogger(logger *zap.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithIDSource replaces the window ID source
func (m *Manager) WithIDSource(next func() string) *Manager {
	m.newID = next
	return m
}

// Open opens the app's window, or toggles it when it already exists.
// An existing window that is focused and visible is minimized; any other
// existing window is focused and restored. Otherwise a new window is created
// frontmost.
func (m *Manager) Open(app types.App) types.Window {
	m.mu.Lock()
	defer m.mu.Unlock()

	if existing := m.findByKey(app.Key()); existing != nil {
		if existing.ID == m.focusedID && !existing.Minimized {
			m.minimize(existing)
			m.record("toggle_minimize")
		} else {
			m.focus(existing)
			m.record("toggle_focus")
		}
		return *existing
	}

	win := &types.Window{
		ID:         m.newID(),
		App:        app,
		StackOrder: types.OrderFrontmost,
		Position:   m.layout.Place(len(m.windows)),
	}
	m.demoteAll()
	m.windows = append(m.windows, win)
	m.focusedID = win.ID

	m.record("open")
	if m.metrics != nil {
		m.metrics.AddWindowsOpen(1)
	}
	m.logger.Debug("window opened",
		zap.String("window_id", win.ID),
		zap.String("key", app.Key()),
		zap.Int("x", win.Position.X),
		zap.Int("y", win.Position.Y),
	)

	return *win
}

// Focus brings a window to the front and restores it
func (m *Manager) Focus(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if win := m.find(id); win != nil {
		m.focus(win)
		m.record("focus")
	}
}

// Minimize hides a window. Focus is not handed to another window.
func (m *Manager) Minimize(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if win := m.find(id); win != nil {
		m.minimize(win)
		m.record("minimize")
	}
}

// Close destroys a window
func (m *Manager) Close(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, win := range m.windows {
		if win.ID != id {
			continue
		}
		m.windows = append(m.windows[:i], m.windows[i+1:]...)
		if m.focusedID == id {
			m.focusedID = ""
		}
		m.record("close")
		if m.metrics != nil {
			m.metrics.AddWindowsOpen(-1)
		}
		m.logger.Debug("window closed", zap.String("window_id", id))
		return
	}
}

// CloseAll destroys every window
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.metrics != nil && len(m.windows) > 0 {
		m.metrics.AddWindowsOpen(-len(m.windows))
	}
	m.windows = nil
	m.focusedID = ""
	m.record("close_all")
}

// UpdatePosition moves a window, keeping its title bar below the top boundary
func (m *Manager) UpdatePosition(id string, x, y int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if win := m.find(id); win != nil {
		win.Position = m.layout.Clamp(types.Position{X: x, Y: y})
	}
}

// Get retrieves a window by ID
func (m *Manager) Get(id string) (types.Window, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	win := m.find(id)
	if win == nil {
		return types.Window{}, false
	}
	return *win, true
}

// List returns copies of all windows in creation order
func (m *Manager) List() []types.Window {
	m.mu.RLock()
	defer m.mu.RUnlock()

	windows := make([]types.Window, 0, len(m.windows))
	for _, win := range m.windows {
		windows = append(windows, *win)
	}
	return windows
}

// FocusedID returns the focused window ID, or "" when none is focused
func (m *Manager) FocusedID() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.focusedID
}

// Views returns the render projection of all windows
func (m *Manager) Views() []types.WindowView {
	m.mu.RLock()
	defer m.mu.RUnlock()

	views := make([]types.WindowView, 0, len(m.windows))
	for _, win := range m.windows {
		views = append(views, win.View(m.focusedID))
	}
	return views
}

// RunningKinds returns the kinds with at least one window, in first-open order
func (m *Manager) RunningKinds() []types.Kind {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[types.Kind]bool)
	kinds := make([]types.Kind, 0, len(m.windows))
	for _, win := range m.windows {
		if k := win.Kind(); !seen[k] {
			seen[k] = true
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// Stats returns manager statistics
func (m *Manager) Stats() types.Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := types.Stats{TotalWindows: len(m.windows)}
	for _, win := range m.windows {
		if win.Minimized {
			stats.MinimizedWindows++
		}
	}
	if m.focusedID != "" {
		focused := m.focusedID
		stats.FocusedWindowID = &focused
	}
	return stats
}

// focus must be called with mu held
func (m *Manager) focus(win *types.Window) {
	m.demoteAll()
	win.StackOrder = types.OrderFrontmost
	win.Minimized = false
	m.focusedID = win.ID
}

// minimize must be called with mu held
func (m *Manager) minimize(win *types.Window) {
	win.Minimized = true
	if m.focusedID == win.ID {
		m.focusedID = ""
		win.StackOrder = types.OrderBackground
	}
}

func (m *Manager) demoteAll() {
	for _, win := range m.windows {
		win.StackOrder = types.OrderBackground
	}
}

func (m *Manager) find(id string) *types.Window {
	for _, win := range m.windows {
		if win.ID == id {
			return win
		}
	}
	return nil
}

func (m *Manager) findByKey(key string) *types.Window {
	for _, win := range m.windows {
		if win.App.Key() == key {
			return win
		}
	}
	return nil
}

func (m *Manager) record(op string) {
	if m.metrics != nil {
		m.metrics.RecordWindowOp(op)
	}
}
