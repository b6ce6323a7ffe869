// Package handler provides HTTP handlers for the dashboard endpoint.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/task_capacity/internal/dashboard/service"
)

// Handler handles HTTP requests for the dashboard endpoint.
type Handler struct {
	service service.Service
	logger  *zap.SugaredLogger
}

// New creates a new dashboard handler instance.
func New(svc service.Service, logger *zap.SugaredLogger) *Handler {
	return &Handler{service: svc, logger: logger}
}

// GetDashboard handles GET /dashboard/:ownerId.
func (h *Handler) GetDashboard(c *gin.Context) {
	resp, err := h.service.GetDashboard(c.Request.Context(), c.Param("ownerId"))
	if err != nil {
		h.logger.Errorw("error building dashboard", "owner_id", c.Param("ownerId"), "error", err)
		errorResponse(c, "INTERNAL_ERROR", "internal server error", http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, resp)
}
