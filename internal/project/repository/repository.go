// Package repository provides data access layer for project module.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	projectModel "github.com/festy23/task_capacity/internal/project/model"
)

// Repository defines the interface for project data access operations.
type Repository interface {
	// Create inserts a project.
	Create(ctx context.Context, project *projectModel.Project) error
	// GetByID returns a project by id.
	GetByID(ctx context.Context, id string) (*projectModel.Project, error)
	// ListByOwner returns an owner's projects, oldest first.
	ListByOwner(ctx context.Context, ownerID string) ([]projectModel.Project, error)
	// Delete removes a project row. Tasks are removed by the caller.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new project repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

// Create inserts a project.
func (r *repository) Create(ctx context.Context, project *projectModel.Project) error {
	return r.db.WithContext(ctx).Create(project).Error
}

// GetByID returns a project by id.
func (r *repository) GetByID(ctx context.Context, id string) (*projectModel.Project, error) {
	var project projectModel.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, projectModel.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// ListByOwner returns an owner's projects, oldest first.
func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]projectModel.Project, error) {
	var projects []projectModel.Project
	err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&projects).Error
	if err != nil {
		return nil, err
	}
	return projects, nil
}

// Delete removes a project row.
func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&projectModel.Project{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return projectModel.ErrProjectNotFound
	}
	return nil
}
