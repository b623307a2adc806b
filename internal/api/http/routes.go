package http

import "github.com/gin-gonic/gin"

// Register mounts every REST route on r
func (h *Handlers) Register(r gin.IRouter) {
	r.GET("/", h.Root)
	r.GET("/health", h.Health)
	r.GET("/metrics", h.Metrics)

	content := r.Group("/content")
	{
		content.GET("/profile", h.GetProfile)
		content.GET("/projects", h.ListProjects)
		content.GET("/projects/:id", h.GetProject)
		content.GET("/experience", h.ListExperience)
		content.GET("/education", h.ListEducation)
		content.GET("/skills", h.GetSkills)
	}

	desktops := r.Group("/desktops")
	{
		desktops.POST("", h.CreateDesktop)
		desktops.GET("/:sid", h.GetDesktop)
		desktops.DELETE("/:sid", h.DeleteDesktop)
		desktops.POST("/:sid/apps", h.OpenApp)
		desktops.DELETE("/:sid/windows", h.CloseAll)

		windows := desktops.Group("/:sid/windows/:wid")
		windows.POST("/focus", h.FocusWindow)
		windows.POST("/minimize", h.MinimizeWindow)
		windows.PUT("/position", h.MoveWindow)
		windows.DELETE("", h.CloseWindow)
		windows.POST("/commands", h.SubmitCommand)
		windows.GET("/transcript", h.GetTranscript)
	}
}
