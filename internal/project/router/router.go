// Package router provides project module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/project/handler"
	"github.com/festy23/task_capacity/internal/project/repository"
	"github.com/festy23/task_capacity/internal/project/service"
)

// RegisterRoutes registers project module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.POST("/projects", h.CreateProject)
	r.GET("/projects/:ownerId", h.ListProjects)
	r.GET("/project/:id", h.GetProject)
	r.DELETE("/project/:id", h.DeleteProject)
}
