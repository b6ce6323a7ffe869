// Package router provides team module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/team/handler"
	"github.com/festy23/task_capacity/internal/team/repository"
	"github.com/festy23/task_capacity/internal/team/service"
)

// RegisterRoutes registers team module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.POST("/teams", h.CreateTeam)
	r.GET("/teams/:ownerId", h.ListTeams)
	r.GET("/team/:id", h.GetTeam)
	r.PUT("/team/:id", h.UpdateTeam)
	r.DELETE("/team/:id", h.DeleteTeam)
}
