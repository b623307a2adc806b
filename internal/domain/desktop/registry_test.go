package desktop

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/content"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/reasoning"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestRegistry(t *testing.T, opts Options) (*Registry, *fakeClock, *monitoring.Metrics) {
	t.Helper()
	repo := content.Default()
	clock := &fakeClock{now: time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)}
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())

	reg := NewRegistry(repo, reasoning.NewHeuristic(repo), opts).
		WithMetrics(metrics).
		WithClock(clock.Now)
	t.Cleanup(reg.Shutdown)
	return reg, clock, metrics
}

func TestRegistryCreateGetDelete(t *testing.T) {
	reg, _, metrics := newTestRegistry(t, DefaultOptions())

	shell, err := reg.Create()
	require.NoError(t, err)
	assert.Regexp(t, `^desk_`, shell.ID())
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DesktopsActive))
	assert.Equal(t, 1.0, metrics.WindowsOpenValue())

	got, err := reg.Get(shell.ID())
	require.NoError(t, err)
	assert.Same(t, shell, got)

	require.NoError(t, reg.Delete(shell.ID()))
	assert.Equal(t, 0, reg.Len())
	assert.Equal(t, 0.0, metrics.WindowsOpenValue())

	_, err = reg.Get(shell.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, reg.Delete(shell.ID()), ErrSessionNotFound)
}

func TestRegistryEnforcesLimit(t *testing.T) {
	opts := DefaultOptions()
	opts.MaxSessions = 2
	reg, _, _ := newTestRegistry(t, opts)

	_, err := reg.Create()
	require.NoError(t, err)
	_, err = reg.Create()
	require.NoError(t, err)

	_, err = reg.Create()
	assert.ErrorIs(t, err, ErrTooManySessions)
}

func TestRegistryEvictsIdleDesktops(t *testing.T) {
	opts := DefaultOptions()
	opts.IdleTTL = 10 * time.Minute
	reg, clock, metrics := newTestRegistry(t, opts)

	idle, err := reg.Create()
	require.NoError(t, err)
	active, err := reg.Create()
	require.NoError(t, err)

	clock.Advance(8 * time.Minute)
	active.Open(types.AboutApp{})
	clock.Advance(5 * time.Minute)

	assert.Equal(t, 1, reg.Evict())

	_, err = reg.Get(idle.ID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = reg.Get(active.ID())
	assert.NoError(t, err)

	select {
	case <-idle.Done():
	default:
		t.Fatal("evicted desktop should be shut down")
	}
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DesktopsEvicted))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.DesktopsActive))
}

func TestRegistryRunStopsWithContext(t *testing.T) {
	reg, _, _ := newTestRegistry(t, DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- reg.Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Run did not stop")
	}
}

func TestRegistryShutdown(t *testing.T) {
	reg, _, _ := newTestRegistry(t, DefaultOptions())
	shell, err := reg.Create()
	require.NoError(t, err)

	reg.Shutdown()

	assert.Equal(t, 0, reg.Len())
	select {
	case <-shell.Done():
	default:
		t.Fatal("shell should be shut down")
	}
}

func TestRegistryCreateAfterShutdown(t *testing.T) {
	reg, _, _ := newTestRegistry(t, DefaultOptions())
	reg.Shutdown()

	shell, err := reg.Create()
	assert.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, shell)
	assert.Equal(t, 0, reg.Len())
}
