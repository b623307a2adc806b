package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetProfile returns the portfolio owner's profile
func (h *Handlers) GetProfile(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Profile())
}

// ListProjects returns every project
func (h *Handlers) ListProjects(c *gin.Context) {
	projects := h.content.Projects()
	c.JSON(http.StatusOK, gin.H{
		"projects": projects,
		"count":    len(projects),
	})
}

// GetProject returns one project
func (h *Handlers) GetProject(c *gin.Context) {
	projectID, ok := param(c, "id")
	if !ok {
		return
	}

	project, found := h.content.FindProject(projectID)
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("project not found: %q", projectID)})
		return
	}
	c.JSON(http.StatusOK, project)
}

// ListExperience returns work history
func (h *Handlers) ListExperience(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"experience": h.content.Experiences()})
}

// ListEducation returns education records
func (h *Handlers) ListEducation(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"education": h.content.Education()})
}

// GetSkills returns the skills lists
func (h *Handlers) GetSkills(c *gin.Context) {
	c.JSON(http.StatusOK, h.content.Skills())
}
