// Package repository provides data access layer for task module.
package repository

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	taskModel "github.com/festy23/task_capacity/internal/task/model"
)

// Repository defines the interface for task data access operations.
type Repository interface {
	// Create inserts a task and its assignees.
	Create(ctx context.Context, task *taskModel.Task) error
	// GetByID returns a task with its assignees.
	GetByID(ctx context.Context, id string) (*taskModel.Task, error)
	// ListByProjects returns the tasks of the given projects, oldest first.
	ListByProjects(ctx context.Context, projectIDs []string) ([]taskModel.Task, error)
	// Update saves the task's scalar fields.
	Update(ctx context.Context, task *taskModel.Task) error
	// ReplaceAssignees overwrites the task's assignee set.
	ReplaceAssignees(ctx context.Context, taskID string, memberIDs []string, at time.Time) error
	// MoveAssignee hands the task from one member to another. It reports false
	// when the task no longer has from, or already has to.
	MoveAssignee(ctx context.Context, taskID, from, to string, at time.Time) (bool, error)
	// Delete removes a task and its assignees.
	Delete(ctx context.Context, id string) error
	// DeleteByProject removes every task of a project with their assignees.
	DeleteByProject(ctx context.Context, projectID string) (int64, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new task repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func orderedAssignees(db *gorm.DB) *gorm.DB {
	return db.Order("id ASC")
}

// Create inserts a task and its assignees.
func (r *repository) Create(ctx context.Context, task *taskModel.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// GetByID returns a task with its assignees.
func (r *repository) GetByID(ctx context.Context, id string) (*taskModel.Task, error) {
	var task taskModel.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees", orderedAssignees).
		Where("id = ?", id).
		First(&task).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, taskModel.ErrTaskNotFound
		}
		return nil, err
	}
	return &task, nil
}

// ListByProjects returns the tasks of the given projects, oldest first.
func (r *repository) ListByProjects(ctx context.Context, projectIDs []string) ([]taskModel.Task, error) {
	if len(projectIDs) == 0 {
		return []taskModel.Task{}, nil
	}
	var tasks []taskModel.Task
	err := r.db.WithContext(ctx).
		Preload("Assignees", orderedAssignees).
		Where("project_id IN ?", projectIDs).
		Order("created_at ASC, id ASC").
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

// Update saves the task's scalar fields.
func (r *repository) Update(ctx context.Context, task *taskModel.Task) error {
	res := r.db.WithContext(ctx).Model(&taskModel.Task{}).
		Where("id = ?", task.ID).
		Updates(map[string]interface{}{
			"title":       task.Title,
			"description": task.Description,
			"status":      task.Status,
			"priority":    task.Priority,
			"updated_at":  task.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return taskModel.ErrTaskNotFound
	}
	return nil
}

// ReplaceAssignees overwrites the task's assignee set.
func (r *repository) ReplaceAssignees(ctx context.Context, taskID string, memberIDs []string, at time.Time) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("task_id = ?", taskID).Delete(&taskModel.Assignee{}).Error; err != nil {
		return err
	}
	if len(memberIDs) == 0 {
		return nil
	}
	rows := make([]taskModel.Assignee, 0, len(memberIDs))
	for _, id := range memberIDs {
		rows = append(rows, taskModel.Assignee{TaskID: taskID, MemberID: id, AssignedAt: at})
	}
	return db.Create(&rows).Error
}

// MoveAssignee hands the task from one member to another.
func (r *repository) MoveAssignee(ctx context.Context, taskID, from, to string, at time.Time) (bool, error) {
	db := r.db.WithContext(ctx)

	var taken int64
	err := db.Model(&taskModel.Assignee{}).
		Where("task_id = ? AND member_id = ?", taskID, to).
		Count(&taken).Error
	if err != nil {
		return false, err
	}
	if taken > 0 {
		return false, nil
	}

	res := db.Model(&taskModel.Assignee{}).
		Where("task_id = ? AND member_id = ?", taskID, from).
		Updates(map[string]interface{}{"member_id": to, "assigned_at": at})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}

	err = db.Model(&taskModel.Task{}).Where("id = ?", taskID).Update("updated_at", at).Error
	return err == nil, err
}

// Delete removes a task and its assignees.
func (r *repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("task_id = ?", id).Delete(&taskModel.Assignee{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&taskModel.Task{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return taskModel.ErrTaskNotFound
	}
	return nil
}

// DeleteByProject removes every task of a project with their assignees.
func (r *repository) DeleteByProject(ctx context.Context, projectID string) (int64, error) {
	db := r.db.WithContext(ctx)
	taskIDs := db.Model(&taskModel.Task{}).Select("id").Where("project_id = ?", projectID)
	if err := db.Where("task_id IN (?)", taskIDs).Delete(&taskModel.Assignee{}).Error; err != nil {
		return 0, err
	}
	res := db.Where("project_id = ?", projectID).Delete(&taskModel.Task{})
	if res.Error != nil {
		return 0, res.Error
	}
	r.logger.Debugw("project tasks deleted", "project_id", projectID, "count", res.RowsAffected)
	return res.RowsAffected, nil
}
