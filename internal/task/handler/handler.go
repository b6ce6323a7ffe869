// Package handler provides HTTP handlers for task endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	projectModel "github.com/festy23/task_capacity/internal/project/model"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
	"github.com/festy23/task_capacity/internal/task/service"
)

// Handler handles HTTP requests for task endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new task handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTask handles POST /tasks.
func (h *Handler) CreateTask(c *gin.Context) {
	var req taskModel.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.CreateTask(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error creating task", err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListByProject handles GET /tasks?projectId=.
func (h *Handler) ListByProject(c *gin.Context) {
	resp, err := h.service.ListByProject(c.Request.Context(), c.Query("projectId"))
	if err != nil {
		h.writeError(c, "error listing tasks", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ListByOwner handles GET /tasks/owner/:ownerId.
func (h *Handler) ListByOwner(c *gin.Context) {
	resp, err := h.service.ListByOwner(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		h.writeError(c, "error listing owner tasks", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateTask handles PUT /tasks/:id.
func (h *Handler) UpdateTask(c *gin.Context) {
	var req taskModel.UpdateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.UpdateTask(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, "error updating task", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteTask handles DELETE /tasks/:id.
func (h *Handler) DeleteTask(c *gin.Context) {
	if err := h.service.DeleteTask(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "error deleting task", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, taskModel.ErrTaskNotFound):
		notFoundResponse(c, "task not found")
	case errors.Is(err, projectModel.ErrProjectNotFound):
		notFoundResponse(c, "project not found")
	case errors.Is(err, taskModel.ErrInvalidTitle),
		errors.Is(err, taskModel.ErrInvalidStatus),
		errors.Is(err, taskModel.ErrInvalidPriority),
		errors.Is(err, taskModel.ErrUnknownMember),
		errors.Is(err, taskModel.ErrProjectRequired):
		invalidRequest(c, err.Error())
	default:
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
