package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/DevOS/backend/internal/domain/desktop"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/types"
	"github.com/GriffinCanCode/DevOS/backend/internal/shared/utils"
)

// CreateDesktop starts a visitor desktop
func (h *Handlers) CreateDesktop(c *gin.Context) {
	shell, err := h.registry.Create()
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, shell.Snapshot())
}

// GetDesktop returns a desktop snapshot
func (h *Handlers) GetDesktop(c *gin.Context) {
	shell, ok := h.shell(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, shell.Snapshot())
}

// DeleteDesktop shuts a desktop down
func (h *Handlers) DeleteDesktop(c *gin.Context) {
	desktopID, ok := param(c, "sid")
	if !ok {
		return
	}
	if err := h.registry.Delete(desktopID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "desktop_id": desktopID})
}

// OpenApp opens or focuses an app window
func (h *Handlers) OpenApp(c *gin.Context) {
	shell, ok := h.shell(c)
	if !ok {
		return
	}

	var req types.OpenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateID(req.ProjectID, "project_id", req.Kind == types.KindProject); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	win, err := shell.OpenKind(req.Kind, req.ProjectID)
	if err != nil {
		h.fail(c, err)
		return
	}

	snapshot := shell.Snapshot()
	c.JSON(http.StatusOK, gin.H{
		"window":   win.View(snapshot.FocusedID),
		"snapshot": snapshot,
	})
}

// CloseAll destroys every window on a desktop
func (h *Handlers) CloseAll(c *gin.Context) {
	shell, ok := h.shell(c)
	if !ok {
		return
	}
	shell.CloseAll()
	c.JSON(http.StatusOK, shell.Snapshot())
}

// FocusWindow brings a window to the front
func (h *Handlers) FocusWindow(c *gin.Context) {
	h.mutate(c, func(shell *desktop.Shell, windowID string) {
		shell.Focus(windowID)
	})
}

// MinimizeWindow hides a window
func (h *Handlers) MinimizeWindow(c *gin.Context) {
	h.mutate(c, func(shell *desktop.Shell, windowID string) {
		shell.Minimize(windowID)
	})
}

// CloseWindow destroys a window
func (h *Handlers) CloseWindow(c *gin.Context) {
	h.mutate(c, func(shell *desktop.Shell, windowID string) {
		shell.Close(windowID)
	})
}

// MoveWindow sets a window position
func (h *Handlers) MoveWindow(c *gin.Context) {
	var req types.PositionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.mutate(c, func(shell *desktop.Shell, windowID string) {
		shell.Move(windowID, req.X, req.Y)
	})
}

// SubmitCommand sends a line to a terminal window. Processing continues
// after the response; clients follow the transcript or the stream.
func (h *Handlers) SubmitCommand(c *gin.Context) {
	shell, windowID, ok := h.window(c)
	if !ok {
		return
	}

	var req types.CommandRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := utils.ValidateCommandLine(req.Line); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := shell.Submit(windowID, req.Line)
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := gin.H{
		"window_id": windowID,
		"completed": false,
	}
	select {
	case <-task.Done():
		resp["completed"] = true
		resp["path"] = task.Path()
	default:
	}
	c.JSON(http.StatusAccepted, resp)
}

// GetTranscript returns a terminal window's transcript
func (h *Handlers) GetTranscript(c *gin.Context) {
	shell, windowID, ok := h.window(c)
	if !ok {
		return
	}

	view, err := shell.Transcript(windowID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// mutate applies a window operation and responds with the new snapshot.
// Unknown window IDs are no-ops.
func (h *Handlers) mutate(c *gin.Context, op func(shell *desktop.Shell, windowID string)) {
	shell, windowID, ok := h.window(c)
	if !ok {
		return
	}
	op(shell, windowID)
	c.JSON(http.StatusOK, shell.Snapshot())
}

func (h *Handlers) shell(c *gin.Context) (*desktop.Shell, bool) {
	desktopID, ok := param(c, "sid")
	if !ok {
		return nil, false
	}

	shell, err := h.registry.Get(desktopID)
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return shell, true
}

func (h *Handlers) window(c *gin.Context) (*desktop.Shell, string, bool) {
	shell, ok := h.shell(c)
	if !ok {
		return nil, "", false
	}
	windowID, ok := param(c, "wid")
	if !ok {
		return nil, "", false
	}
	return shell, windowID, true
}
