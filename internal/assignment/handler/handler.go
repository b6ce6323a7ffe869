// Package handler provides HTTP handlers for capacity and assignment endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	assignmentModel "github.com/festy23/task_capacity/internal/assignment/model"
	"github.com/festy23/task_capacity/internal/assignment/service"
	"github.com/festy23/task_capacity/internal/capacity"
	projectModel "github.com/festy23/task_capacity/internal/project/model"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
)

// Handler handles HTTP requests for assignment endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new assignment handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// EvaluateCapacity handles POST /capacity/evaluate.
func (h *Handler) EvaluateCapacity(c *gin.Context) {
	var req assignmentModel.EvaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.EvaluateCapacity(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error evaluating capacity", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AutoAssign handles POST /tasks/auto-assign.
func (h *Handler) AutoAssign(c *gin.Context) {
	var req assignmentModel.AutoAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.AutoAssign(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error auto-assigning", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ReassignAll handles POST /tasks/reassign.
func (h *Handler) ReassignAll(c *gin.Context) {
	var req assignmentModel.ReassignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.ReassignAll(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error reassigning tasks", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Negotiate handles POST /tasks/negotiate.
func (h *Handler) Negotiate(c *gin.Context) {
	var req assignmentModel.NegotiateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.Negotiate(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error negotiating task", err)
		return
	}
	status := http.StatusOK
	if resp.Outcome == assignmentModel.OutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

// GetNegotiation handles GET /tasks/negotiate/:id.
func (h *Handler) GetNegotiation(c *gin.Context) {
	resp, err := h.service.GetNegotiation(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "error getting negotiation", err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Resolve handles POST /tasks/negotiate/:id/resolve.
func (h *Handler) Resolve(c *gin.Context) {
	var req assignmentModel.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}
	resp, err := h.service.Resolve(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, "error resolving negotiation", err)
		return
	}
	status := http.StatusOK
	if resp.Outcome == assignmentModel.OutcomeCreated {
		status = http.StatusCreated
	}
	c.JSON(status, resp)
}

func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, capacity.ErrNoneAvailable):
		errorResponse(c, "NO_CAPACITY", err.Error(), http.StatusConflict)
	case errors.Is(err, capacity.ErrNoMembers):
		errorResponse(c, "NO_MEMBERS", err.Error(), http.StatusConflict)
	case errors.Is(err, capacity.ErrInvalidTransition):
		errorResponse(c, "INVALID_TRANSITION", err.Error(), http.StatusConflict)
	case errors.Is(err, assignmentModel.ErrNegotiationNotFound):
		errorResponse(c, "NEGOTIATION_NOT_FOUND", err.Error(), http.StatusNotFound)
	case errors.Is(err, projectModel.ErrProjectNotFound):
		notFoundResponse(c, "project not found")
	case errors.Is(err, capacity.ErrUnknownDecision),
		errors.Is(err, assignmentModel.ErrOwnerRequired),
		errors.Is(err, taskModel.ErrInvalidTitle),
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
