package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/DevOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/DevOS/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/content"
	"github.com/GriffinCanCode/DevOS/backend/internal/providers/reasoning"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, opts desktop.Options) (*gin.Engine, *desktop.Registry) {
	t.Helper()
	repo := content.Default()
	metrics := monitoring.NewMetrics(prometheus.NewRegistry())
	registry := desktop.NewRegistry(repo, reasoning.NewHeuristic(repo), opts).WithMetrics(metrics)
	t.Cleanup(registry.Shutdown)

	router := gin.New()
	NewHandlers(repo, registry, metrics).Register(router)
	return router, registry
}

func do(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := sonic.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, sonic.Unmarshal(w.Body.Bytes(), v))
}

func createDesktop(t *testing.T, router http.Handler) desktop.Snapshot {
	t.Helper()
	w := do(t, router, http.MethodPost, "/desktops", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	var snap desktop.Snapshot
	decode(t, w, &snap)
	require.Len(t, snap.Windows, 1)
	return snap
}

func TestRootAndHealth(t *testing.T) {
	router, _ := newTestRouter(t, desktop.DefaultOptions())

	w := do(t, router, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"online"`)

	w = do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"heuristic"`)
	assert.Contains(t, w.Body.String(), `"Ahmed Gaafar"`)
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := newTestRouter(t, desktop.DefaultOptions())
	createDesktop(t, router)

	w := do(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "devos_desktops_active 1")
}

func TestContentEndpoints(t *testing.T) {
	router, _ := newTestRouter(t, desktop.DefaultOptions())

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/content/profile", http.StatusOK, "Ahmed Gaafar"},
		{"/content/projects", http.StatusOK, `"count":3`},
		{"/content/projects/xshop", http.StatusOK, "xshop"},
		{"/content/projects/missing", http.StatusNotFound, `project not found: \"missing\"`},
		{"/content/projects/bad%20id", http.StatusBadRequest, "invalid characters"},
		{"/content/experience", http.StatusOK, "experience"},
		{"/content/education", http.StatusOK, "education"},
		{"/content/skills", http.StatusOK, "languages"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := do(t, router, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestDesktopLifecycle(t *testing.T) {
	router, registry := newTestRouter(t, desktop.DefaultOptions())
	snap := createDesktop(t, router)
	path := "/desktops/" + snap.DesktopID

	w := do(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, registry.Len())

	w = do(t, router, http.MethodGet, path, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "desktop not found")
}

func TestCreateDesktopLimit(t *testing.T) {
	opts := desktop.DefaultOptions()
	opts.MaxSessions = 1
	router, _ := newTestRouter(t, opts)
	createDesktop(t, router)

	w := do(t, router, http.MethodPost, "/desktops", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestCreateDesktopAfterShutdown(t *testing.T) {
	router, registry := newTestRouter(t, desktop.DefaultOptions())
	registry.Shutdown()

	w := do(t, router, http.MethodPost, "/desktops", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestOpenApp(t *testing.T) {
	router, _ := newTestRouter(t, desktop.DefaultOptions())
	snap := createDesktop(t, router)
	path := "/desktops/" + snap.DesktopID + "/apps"

	tests := []struct {
		name   string
		body   types.OpenRequest
		status int
	}{
		{"about", types.OpenRequest{Kind: types.KindAbout}, http.StatusOK},
		{"project", types.OpenRequest{Kind: types.KindProject, ProjectID: "xshop"}, http.StatusOK},
		{"unknown project", types.OpenRequest{Kind: types.KindProject, ProjectID: "nope"}, http.StatusBadRequest},
		{"project without id", types.OpenRequest{Kind: types.KindProject}, http.StatusBadRequest},
		{"unknown kind", types.OpenRequest{Kind: "browser"}, http.StatusBadRequest},
		{"missing kind", types.OpenRequest{}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, path, tt.body)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}

	w := do(t, router, http.MethodGet, "/desktops/"+snap.DesktopID, nil)
	var after desktop.Snapshot
	decode(t, w, &after)
	assert.Len(t, after.Windows, 3)
}

func TestWindowOperations(t *testing.T) {
	router, _ := newTestRouter(t, desktop.DefaultOptions())
	snap := createDesktop(t, router)
	termID := snap.Windows[0].ID
	base := "/desktops/" + snap.DesktopID + "/windows/" + termID

	w := do(t, router, http.MethodPut, base+"/position", types.PositionRequest{X: 10, Y: 0})
	require.Equal(t, http.StatusOK, w.Code)
	var moved desktop.Snapshot
	decode(t, w, &moved)
	assert.Equal(t, types.Position{X: 10, Y: 28}, moved.Windows[0].Position, "clamped below the top bar")

	w = do(t, router, http.MethodPost, base+"/minimize", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var minimized desktop.Snapshot
	decode(t, w, &minimized)
	assert.True(t, minimized.Windows[0].Minimized)
	assert.Empty(t, minimized.FocusedID)

	w = do(t, router, http.MethodPost, base+"/focus", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var focused desktop.Snapshot
	decode(t, w, &focused)
	assert.False(t, focused.Windows[0].Minimized)
	assert.Equal(t, termID, focused.FocusedID)

	// unknown windows are no-ops
	w = do(t, router, http.MethodPost, "/desktops/"+snap.DesktopID+"/windows/win_missing/focus", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, router, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var closed desktop.Snapshot
	decode(t, w, &closed)
	assert.Empty(t, closed.Windows)
}

func TestCloseAllWindows(t *testing.T) {
	router, _ := newTestRouter(t, desktop.DefaultOptions())
	snap := createDesktop(t, router)
	do(t, router, http.MethodPost, "/desktops/"+snap.DesktopID+"/apps", types.OpenRequest{Kind: types.KindResume})

	w := do(t, router, http.MethodDelete, "/desktops/"+snap.DesktopID+"/windows", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var after desktop.Snapshot
	decode(t, w, &after)
	assert.Empty(t, after.Windows)
	assert.Empty(t, after.Terminals)
}

func TestSubmitCommand(t *testing.T) {
	router, registry := newTestRouter(t, desktop.DefaultOptions())
	snap := createDesktop(t, router)
	termID := snap.Windows[0].ID
	base := "/desktops/" + snap.DesktopID + "/windows/" + termID

	w := do(t, router, http.MethodPost, base+"/commands", types.CommandRequest{Line: "skills"})
	require.Equal(t, http.StatusAccepted, w.Code)
	var resp struct {
		Completed bool   `json:"completed"`
		Path      string `json:"path"`
	}
	decode(t, w, &resp)
	assert.True(t, resp.Completed)
	assert.Equal(t, "local", resp.Path)

	w = do(t, router, http.MethodGet, base+"/transcript", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var view types.TerminalView
	decode(t, w, &view)
	assert.Contains(t, view.Lines, types.TerminalLine{Role: types.RoleInput, Text: "skills"})
	assert.False(t, view.Busy)

	// translated lines complete asynchronously
	w = do(t, router, http.MethodPost, base+"/commands", types.CommandRequest{Line: "who are you"})
	require.Equal(t, http.StatusAccepted, w.Code)

	shell, err := registry.Get(snap.DesktopID)
	require.NoError(t, err)
	require.Eventually(t, func() bool {
		v, err := shell.Transcript(termID)
		return err == nil && !v.Busy
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSubmitCommandErrors(t *testing.T) {
	router, _ := newTestRouter(t, desktop.DefaultOptions())
	snap := createDesktop(t, router)
	w := do(t, router, http.MethodPost, "/desktops/"+snap.DesktopID+"/apps", types.OpenRequest{Kind: types.KindAbout})
	require.Equal(t, http.StatusOK, w.Code)
	var opened struct {
		Window types.WindowView `json:"window"`
	}
	decode(t, w, &opened)

	desk := "/desktops/" + snap.DesktopID + "/windows/"
	tests := []struct {
		name   string
		path   string
		status int
	}{
		{"not a terminal", desk + opened.Window.ID + "/commands", http.StatusBadRequest},
		{"unknown window", desk + "win_missing/commands", http.StatusNotFound},
		{"unknown desktop", "/desktops/desk_missing/windows/win_x/commands", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, router, http.MethodPost, tt.path, types.CommandRequest{Line: "help"})
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestSubmitCommandBusy(t *testing.T) {
	repo := content.Default()
	translator := &blockingTranslator{started: make(chan struct{})}
	registry := desktop.NewRegistry(repo, translator, desktop.DefaultOptions())
	t.Cleanup(registry.Shutdown)

	router := gin.New()
	NewHandlers(repo, registry, nil).Register(router)

	snap := createDesktop(t, router)
	path := "/desktops/" + snap.DesktopID + "/windows/" + snap.Windows[0].ID + "/commands"

	w := do(t, router, http.MethodPost, path, types.CommandRequest{Line: "something vague"})
	require.Equal(t, http.StatusAccepted, w.Code)
	<-translator.started

	w = do(t, router, http.MethodPost, path, types.CommandRequest{Line: "help"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

type blockingTranslator struct {
	started chan struct{}
}

func (b *blockingTranslator) Translate(ctx context.Context, _ string) (string, error) {
	close(b.started)
	<-ctx.Done()
	return "", ctx.Err()
}

func (b *blockingTranslator) Suggest(context.Context, string) (string, error) {
	return "help", nil
}

func (b *blockingTranslator) DeepDive(context.Context, string) (string, error) {
	return "", nil
}
