// Package router provides dashboard module routes registration.
package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	activityRepository "github.com/festy23/task_capacity/internal/activity/repository"
	"github.com/festy23/task_capacity/internal/dashboard/handler"
	"github.com/festy23/task_capacity/internal/dashboard/repository"
	"github.com/festy23/task_capacity/internal/dashboard/service"
)

// RegisterRoutes registers dashboard module routes.
func RegisterRoutes(r gin.IRouter, db *gorm.DB, logger *zap.SugaredLogger) {
	repo := repository.New(db, logger)
	svc := service.New(repo, activityRepository.New(db, logger), logger)
	h := handler.New(svc, logger)

	r.GET("/dashboard/:ownerId", h.GetDashboard)
}
