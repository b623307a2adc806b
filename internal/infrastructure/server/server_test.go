package server

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/DevOS/backend/internal/api/middleware"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/logging"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Logging.Development = true
	cfg.Server.Host = "127.0.0.1"
	return cfg
}

func testLogger() *logging.Logger {
	return &logging.Logger{Logger: zap.NewNop()}
}

func TestNewServerRoutes(t *testing.T) {
	srv, err := NewServer(testConfig(), testLogger())
	require.NoError(t, err)
	t.Cleanup(srv.registry.Shutdown)

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/", http.StatusOK},
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/content/profile", http.StatusOK},
		{http.MethodPost, "/desktops", http.StatusCreated},
		{http.MethodGet, "/desktops/desk_missing", http.StatusNotFound},
		{http.MethodGet, "/nowhere", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			srv.Handler().ServeHTTP(w, httptest.NewRequest(tt.method, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestNewServerCompressesResponses(t *testing.T) {
	srv, err := NewServer(testConfig(), testLogger())
	require.NoError(t, err)
	t.Cleanup(srv.registry.Shutdown)

	req := httptest.NewRequest(http.MethodGet, "/content/projects", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}

func TestNewServerRejectsBadContentDir(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("projects: [\n"), 0o644))

	cfg := testConfig()
	cfg.Content.Dir = dir
	_, err := NewServer(cfg, testLogger())
	assert.ErrorContains(t, err, "failed to load content")
}

func TestRunStopsOnCancel(t *testing.T) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	_, port, err := net.SplitHostPort(l.Addr().String())
	require.NoError(t, err)
	require.NoError(t, l.Close())

	cfg := testConfig()
	cfg.Server.Port = port
	srv, err := NewServer(cfg, testLogger())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- srv.Run(ctx) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://127.0.0.1:" + port + "/health")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-errCh:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
