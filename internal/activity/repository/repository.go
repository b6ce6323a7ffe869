// Package repository provides data access layer for the activity log.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	activityModel "github.com/festy23/task_capacity/internal/activity/model"
)

// Repository defines the interface for activity log operations.
type Repository interface {
	// Create appends entries to the log.
	Create(ctx context.Context, activities ...*activityModel.Activity) error
	// ListRecent returns an owner's newest entries, optionally of one kind.
	ListRecent(ctx context.Context, ownerID, kind string, limit int) ([]activityModel.Activity, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new activity repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create appends entries to the log.
func (r *repository) Create(ctx context.Context, activities ...*activityModel.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(activities).Error
}

// ListRecent returns an owner's newest entries. An empty kind matches every kind.
func (r *repository) ListRecent(ctx context.Context, ownerID, kind string, limit int) ([]activityModel.Activity, error) {
	query := r.db.WithContext(ctx).Where("owner_id = ?", ownerID)
	if kind != "" {
		query = query.Where("kind = ?", kind)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var activities []activityModel.Activity
	if err := query.Order("created_at DESC, id DESC").Find(&activities).Error; err != nil {
		return nil, err
	}
	return activities, nil
}
