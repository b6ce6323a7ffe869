// Package handler provides HTTP handlers for project endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	projectModel "github.com/festy23/task_capacity/internal/project/model"
	"github.com/festy23/task_capacity/internal/project/service"
)

// Handler handles HTTP requests for project endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new project handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateProject handles POST /projects.
func (h *Handler) CreateProject(c *gin.Context) {
	var req projectModel.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.CreateProject(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error creating project", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListProjects handles GET /projects/:ownerId.
func (h *Handler) ListProjects(c *gin.Context) {
	resp, err := h.service.ListProjects(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		h.writeError(c, "error listing projects", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProject handles GET /project/:id.
func (h *Handler) GetProject(c *gin.Context) {
	resp, err := h.service.GetProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "error getting project", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteProject handles DELETE /project/:id.
func (h *Handler) DeleteProject(c *gin.Context) {
	if err := h.service.DeleteProject(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "error deleting project", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, projectModel.ErrProjectNotFound):
		notFoundResponse(c, "project not found")
	case errors.Is(err, projectModel.ErrInvalidProjectName),
		errors.Is(err, projectModel.ErrInvalidOwner),
		errors.Is(err, projectModel.ErrTeamRequired):
		invalidRequest(c, err.Error())
	default:
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
