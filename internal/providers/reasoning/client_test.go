package reasoning

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/resilience"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/content"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, retries int) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(Config{
		URL:          server.URL,
		APIKey:       "secret",
		Timeout:      2 * time.Second,
		Retries:      retries,
		RetryWaitMin: time.Millisecond,
		RetryWaitMax: 5 * time.Millisecond,
	}, content.Default())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestClientTranslate(t *testing.T) {
	var got TranslateRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/translate", r.URL.Path)
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		writeJSON(w, http.StatusOK, CommandResponse{Command: "  Project Run XShop \n"})
	}, 0)

	cmd, err := client.Translate(context.Background(), "launch the shop")
	require.NoError(t, err)

	assert.Equal(t, "project run xshop", cmd)
	assert.Equal(t, "launch the shop", got.Text)
	assert.Equal(t, Commands, got.Commands)
	assert.Equal(t, []string{"airwallex-plugin", "xshop", "focus-todo"}, got.Projects)
}

func TestClientNormalizesUnknown(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/translate":
			writeJSON(w, http.StatusOK, CommandResponse{Command: "UNKNOWN"})
		case "/suggest":
			writeJSON(w, http.StatusOK, CommandResponse{Command: ""})
		}
	}, 0)

	cmd, err := client.Translate(context.Background(), "fooobar")
	require.NoError(t, err)
	assert.Empty(t, cmd)

	suggestion, err := client.Suggest(context.Background(), "fooobar")
	require.NoError(t, err)
	assert.Equal(t, "help", suggestion)
}

func TestClientDeepDive(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req DeepDiveRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "xshop", req.Project.ID)
		writeJSON(w, http.StatusOK, DeepDiveResponse{Analysis: "BLoC scales well."})
	}, 0)

	analysis, err := client.DeepDive(context.Background(), "xshop")
	require.NoError(t, err)
	assert.Equal(t, "BLoC scales well.", analysis)

	analysis, err = client.DeepDive(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, "Project not found.", analysis)
	assert.Equal(t, int32(1), calls.Load())
}

func TestClientRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		writeJSON(w, http.StatusOK, CommandResponse{Command: "skills"})
	}, 3)

	cmd, err := client.Translate(context.Background(), "what do you know")
	require.NoError(t, err)
	assert.Equal(t, "skills", cmd)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClientSurfacesErrors(t *testing.T) {
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad prompt"})
	}, 0).WithMetrics(metrics)

	_, err := client.Translate(context.Background(), "hi")
	assert.ErrorIs(t, err, ErrUpstream)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.TranslationCalls.WithLabelValues("translate", "error")))
}

func TestClientBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}, 0)

	for range 5 {
		_, err := client.Translate(context.Background(), "hi")
		require.Error(t, err)
	}
	assert.Equal(t, resilience.StateOpen, client.BreakerState())

	_, err := client.Translate(context.Background(), "hi")
	assert.ErrorIs(t, err, resilience.ErrCircuitOpen)
	assert.Equal(t, int32(5), calls.Load())
}

func TestClientCancellationDoesNotTrip(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, CommandResponse{Command: "help"})
	}, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	for range 6 {
		_, err := client.Translate(ctx, "hi")
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, resilience.StateClosed, client.BreakerState())
}
