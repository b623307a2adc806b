package monitoring

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	registry *prometheus.Registry

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	RequestSize     *prometheus.HistogramVec
	ResponseSize    *prometheus.HistogramVec

	// Window metrics
	WindowsOpen prometheus.Gauge
	WindowOps   *prometheus.CounterVec

	// Terminal metrics
	Commands *prometheus.CounterVec

	// Reasoning service metrics
	TranslationCalls    *prometheus.CounterVec
	TranslationDuration *prometheus.HistogramVec

	// Desktop metrics
	DesktopsActive  prometheus.Gauge
	DesktopsEvicted prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	startTime time.Time

	// Snapshot for JSON API - track current values
	snapshot MetricsSnapshot

	mu sync.RWMutex
}

// MetricsSnapshot holds current metric values for JSON API
type MetricsSnapshot struct {
	TotalRequests     int64   `json:"total_requests"`
	TotalErrors       int64   `json:"total_errors"`
	WindowsOpen       int64   `json:"windows_open"`
	ActiveDesktops    int64   `json:"active_desktops"`
	ActiveConnections int64   `json:"active_connections"`
	TotalDuration     float64 `json:"total_duration_seconds"`
	UptimeSeconds     float64 `json:"uptime_seconds"`
}

// NewMetrics creates a new metrics collector registered on reg
func NewMetrics(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	m := &Metrics{
		registry:  reg,
		startTime: time.Now(),

		// HTTP metrics
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devos_http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devos_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),
		RequestSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devos_http_request_size_bytes",
				Help:    "HTTP request size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),
		ResponseSize: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devos_http_response_size_bytes",
				Help:    "HTTP response size in bytes",
				Buckets: []float64{100, 1000, 10000, 100000, 1000000},
			},
			[]string{"method", "path"},
		),

		// Window metrics
		WindowsOpen: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "devos_windows_open",
				Help: "Number of open windows across all desktops",
			},
		),
		WindowOps: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devos_window_ops_total",
				Help: "Window lifecycle transitions by operation",
			},
			[]string{"op"},
		),

		// Terminal metrics
		Commands: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devos_terminal_commands_total",
				Help: "Terminal submissions by dispatch path",
			},
			[]string{"path"},
		),

		// Reasoning service metrics
		TranslationCalls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devos_reasoning_calls_total",
				Help: "Reasoning service calls by operation and status",
			},
			[]string{"op", "status"},
		),
		TranslationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "devos_reasoning_duration_seconds",
				Help:    "Reasoning service call duration in seconds",
				Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30},
			},
			[]string{"op"},
		),

		// Desktop metrics
		DesktopsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "devos_desktops_active",
				Help: "Number of live visitor desktops",
			},
		),
		DesktopsEvicted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "devos_desktops_evicted_total",
				Help: "Total number of desktops evicted for inactivity",
			},
		),

		// WebSocket metrics
		WSConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "devos_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devos_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),
	}

	factory.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "devos_uptime_seconds",
			Help: "Backend uptime in seconds",
		},
		func() float64 { return time.Since(m.startTime).Seconds() },
	)

	return m
}

// Registry returns the registry the metrics are registered on
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// RecordHTTPRequest records an HTTP request
func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration, reqSize, respSize int64) {
	m.RequestsTotal.WithLabelValues(method, path, status).Inc()
	m.RequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
	m.RequestSize.WithLabelValues(method, path).Observe(float64(reqSize))
	m.ResponseSize.WithLabelValues(method, path).Observe(float64(respSize))

	m.mu.Lock()
	m.snapshot.TotalRequests++
	m.snapshot.TotalDuration += duration.Seconds()
	if status[0] == '4' || status[0] == '5' {
		m.snapshot.TotalErrors++
	}
	m.mu.Unlock()
}

// RecordWindowOp records a window lifecycle transition
func (m *Metrics) RecordWindowOp(op string) {
	m.WindowOps.WithLabelValues(op).Inc()
}

// AddWindowsOpen adjusts the open window gauge by delta
func (m *Metrics) AddWindowsOpen(delta int) {
	m.WindowsOpen.Add(float64(delta))
	m.mu.Lock()
	m.snapshot.WindowsOpen += int64(delta)
	m.mu.Unlock()
}

// WindowsOpenValue returns the current open window count
func (m *Metrics) WindowsOpenValue() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return float64(m.snapshot.WindowsOpen)
}

// RecordCommand records a terminal submission by dispatch path
func (m *Metrics) RecordCommand(path string) {
	m.Commands.WithLabelValues(path).Inc()
}

// RecordTranslation records a reasoning service call
func (m *Metrics) RecordTranslation(op, status string, duration time.Duration) {
	m.TranslationCalls.WithLabelValues(op, status).Inc()
	m.TranslationDuration.WithLabelValues(op).Observe(duration.Seconds())
}

// SetDesktopsActive sets the number of live desktops
func (m *Metrics) SetDesktopsActive(count int) {
	m.DesktopsActive.Set(float64(count))
	m.mu.Lock()
	m.snapshot.ActiveDesktops = int64(count)
	m.mu.Unlock()
}

// IncDesktopsEvicted increments the eviction counter
func (m *Metrics) IncDesktopsEvicted() {
	m.DesktopsEvicted.Inc()
}

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
	m.mu.Lock()
	m.snapshot.ActiveConnections++
	m.mu.Unlock()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
	m.mu.Lock()
	m.snapshot.ActiveConnections--
	m.mu.Unlock()
}

// Snapshot returns current values for the JSON API
func (m *Metrics) Snapshot() MetricsSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := m.snapshot
	s.UptimeSeconds = time.Since(m.startTime).Seconds()
	return s
}
