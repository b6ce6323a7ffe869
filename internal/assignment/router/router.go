// Package router provides assignment module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/assignment/handler"
	"github.com/festy23/task_capacity/internal/assignment/repository"
	"github.com/festy23/task_capacity/internal/assignment/service"
	taskRepository "github.com/festy23/task_capacity/internal/task/repository"
	taskService "github.com/festy23/task_capacity/internal/task/service"
)

// RegisterRoutes registers capacity and assignment routes.
// A nil deps.Tasks is built from db.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger, deps service.Dependencies) {
	if deps.Tasks == nil {
		deps.Tasks = taskService.New(taskRepository.New(db, logger), db, logger)
	}
	repo := repository.New(db, logger)
	svc := service.New(repo, db, logger, deps)
	h := handler.New(svc, logger)

	r.POST("/capacity/evaluate", h.EvaluateCapacity)
	r.POST("/tasks/auto-assign", h.AutoAssign)
	r.POST("/tasks/reassign", h.ReassignAll)
	r.POST("/tasks/negotiate", h.Negotiate)
	r.GET("/tasks/negotiate/:id", h.GetNegotiation)
	r.POST("/tasks/negotiate/:id/resolve", h.Resolve)
}
