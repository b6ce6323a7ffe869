// Package handler provides HTTP handlers for team endpoints.
package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	teamModel "github.com/festy23/task_capacity/internal/team/model"
	"github.com/festy23/task_capacity/internal/team/service"
)

// Handler handles HTTP requests for team endpoints.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new team handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// CreateTeam handles POST /teams.
func (h *Handler) CreateTeam(c *gin.Context) {
	var req teamModel.CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.CreateTeam(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, "error creating team", err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// ListTeams handles GET /teams/:ownerId.
func (h *Handler) ListTeams(c *gin.Context) {
	resp, err := h.service.ListTeams(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		h.writeError(c, "error listing teams", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// GetTeam handles GET /team/:id.
func (h *Handler) GetTeam(c *gin.Context) {
	resp, err := h.service.GetTeam(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, "error getting team", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// UpdateTeam handles PUT /team/:id.
func (h *Handler) UpdateTeam(c *gin.Context) {
	var req teamModel.UpdateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.UpdateTeam(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		h.writeError(c, "error updating team", err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// DeleteTeam handles DELETE /team/:id.
func (h *Handler) DeleteTeam(c *gin.Context) {
	if err := h.service.DeleteTeam(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, "error deleting team", err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) writeError(c *gin.Context, msg string, err error) {
	switch {
	case errors.Is(err, teamModel.ErrTeamNotFound):
		notFoundResponse(c, "team not found")
	case errors.Is(err, teamModel.ErrInvalidTeamName),
		errors.Is(err, teamModel.ErrInvalidOwner),
		errors.Is(err, teamModel.ErrInvalidMemberName),
		errors.Is(err, teamModel.ErrDuplicateMember),
		errors.Is(err, teamModel.ErrInvalidRole),
		errors.Is(err, teamModel.ErrInvalidCapacity):
		invalidRequest(c, err.Error())
	default:
		h.logger.Errorw(msg, "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
	}
}
