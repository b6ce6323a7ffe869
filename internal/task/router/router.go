// Package router provides task module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/task/handler"
	"github.com/festy23/task_capacity/internal/task/repository"
	"github.com/festy23/task_capacity/internal/task/service"
)

// RegisterRoutes registers task module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger)
	h := handler.New(svc, logger)

	r.POST("/tasks", h.CreateTask)
	r.GET("/tasks", h.ListByProject)
	r.GET("/tasks/owner/:ownerId", h.ListByOwner)
	r.PUT("/tasks/:id", h.UpdateTask)
	r.DELETE("/tasks/:id", h.DeleteTask)
}
