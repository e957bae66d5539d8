package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/ifuryst/postcraft/internal/generator"
	"github.com/ifuryst/postcraft/internal/models"
	"github.com/ifuryst/postcraft/internal/service"
)

func (s *Server) handleCreateProject(c *gin.Context) {
	var input models.ProjectInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "input": input})
		return
	}

	project, err := s.Projects.Create(c.Request.Context(), input)
	if err != nil {
		_ = c.Error(err)
		c.JSON(generationStatus(err), gin.H{
			"error": "Generation failed: " + err.Error(),
			"input": input,
		})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// generationStatus maps a create failure onto an HTTP status.
func generationStatus(err error) int {
	var quotaErr *generator.QuotaError
	if errors.As(err, &quotaErr) {
		return http.StatusTooManyRequests
	}
	return http.StatusInternalServerError
}

func (s *Server) handleListProjects(c *gin.Context) {
	projects, err := s.Projects.List(c.Request.Context())
	if err != nil {
		s.Logger.Error("Failed to list projects", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (s *Server) handleGetProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	project, err := s.Projects.Get(c.Request.Context(), id)
	if err != nil {
		s.projectError(c, "Failed to get project", err)
		return
	}

	c.JSON(http.StatusOK, project)
}

func (s *Server) handleDeleteProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	project, err := s.Projects.Delete(c.Request.Context(), id)
	if err != nil {
		s.projectError(c, "Failed to delete project", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Deleted record for " + project.BusinessName + "."})
}

func (s *Server) handleExportProject(c *gin.Context) {
	id, ok := projectID(c)
	if !ok {
		return
	}

	filename, body, err := s.Projects.Export(c.Request.Context(), id)
	if err != nil {
		s.projectError(c, "Failed to export project", err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(body))
}

func projectID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project id"})
		return 0, false
	}
	return uint(id), true
}

func (s *Server) projectError(c *gin.Context, msg string, err error) {
	if errors.Is(err, service.ErrProjectNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}
	s.Logger.Error(msg, zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}
