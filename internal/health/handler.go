// Package health provides health check endpoint handler.
package health

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/database/database"
)

const checkTimeout = 5 * time.Second

// Checker probes one dependency.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckFunc adapts a function to Checker.
type CheckFunc struct {
	Component string
	Fn        func(ctx context.Context) error
}

// Name returns the component name.
func (f CheckFunc) Name() string { return f.Component }

// Check runs the probe.
func (f CheckFunc) Check(ctx context.Context) error { return f.Fn(ctx) }

// Handler handles health check requests.
type Handler struct {
	checkers []Checker
	logger   *zap.SugaredLogger
}

// New creates a health handler that always checks the database, plus any extra checkers.
func New(db *gorm.DB, logger *zap.SugaredLogger, extra ...Checker) *Handler {
	dbCheck := CheckFunc{Component: "database", Fn: func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	}}
	return &Handler{
		checkers: append([]Checker{dbCheck}, extra...),
		logger:   logger,
	}
}

// Response represents health check response.
type Response struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Check handles GET /health request.
func (h *Handler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), checkTimeout)
	defer cancel()

	resp := Response{Status: "ok", Components: make(map[string]string, len(h.checkers))}
	for _, checker := range h.checkers {
		if err := checker.Check(ctx); err != nil {
			h.logger.Warnw("health check failed", "component", checker.Name(), "error", err)
			resp.Components[checker.Name()] = "unhealthy"
			resp.Status = "unhealthy"
			continue
		}
		resp.Components[checker.Name()] = "ok"
	}

	if resp.Status != "ok" {
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}
