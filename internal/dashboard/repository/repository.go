// Package repository provides data access layer for the dashboard module.
package repository

import (
	"context"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/dashboard/model"
)

// Repository defines the aggregate queries behind the owner overview.
type Repository interface {
	// CountProjects returns the number of projects owned by ownerID.
	CountProjects(ctx context.Context, ownerID string) (int, error)

	// TaskBreakdown counts the tasks of the owner's projects by status and priority.
	TaskBreakdown(ctx context.Context, ownerID string) (*model.TaskBreakdown, error)

	// TeamMembers returns the members of the owner's teams, teams oldest first,
	// members in declared order.
	TeamMembers(ctx context.Context, ownerID string) ([]model.TeamMember, error)

	// Assignments returns every assignee of every task in the owner's projects.
	Assignments(ctx context.Context, ownerID string) ([]model.Assignment, error)
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new dashboard repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:     db,
		logger: logger,
	}
}

// CountProjects returns the number of projects owned by ownerID.
func (r *repository) CountProjects(ctx context.Context, ownerID string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("projects").
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		r.logger.Errorw("CountProjects database error", "owner_id", ownerID, "error", err)
		return 0, err
	}
	return int(count), nil
}

// TaskBreakdown counts the tasks of the owner's projects by status and priority.
func (r *repository) TaskBreakdown(ctx context.Context, ownerID string) (*model.TaskBreakdown, error) {
	r.logger.Debugw("TaskBreakdown called", "owner_id", ownerID)

	var result struct {
		Total      int64 `gorm:"column:total"`
		Pending    int64 `gorm:"column:pending"`
		InProgress int64 `gorm:"column:in_progress"`
		Done       int64 `gorm:"column:done"`
		Low        int64 `gorm:"column:low"`
		Medium     int64 `gorm:"column:medium"`
		High       int64 `gorm:"column:high"`
	}

	err := r.db.WithContext(ctx).
		Table("tasks").
		Select(`
			COUNT(tasks.id) as total,
			COALESCE(SUM(CASE WHEN tasks.status = 'Pending' THEN 1 ELSE 0 END), 0) as pending,
			COALESCE(SUM(CASE WHEN tasks.status = 'In Progress' THEN 1 ELSE 0 END), 0) as in_progress,
			COALESCE(SUM(CASE WHEN tasks.status = 'Done' THEN 1 ELSE 0 END), 0) as done,
			COALESCE(SUM(CASE WHEN tasks.priority = 'Low' THEN 1 ELSE 0 END), 0) as low,
			COALESCE(SUM(CASE WHEN tasks.priority = 'Medium' THEN 1 ELSE 0 END), 0) as medium,
			COALESCE(SUM(CASE WHEN tasks.priority = 'High' THEN 1 ELSE 0 END), 0) as high
		`).
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.owner_id = ?", ownerID).
		Scan(&result).Error
	if err != nil {
		r.logger.Errorw("TaskBreakdown database error", "owner_id", ownerID, "error", err)
		return nil, err
	}

	return &model.TaskBreakdown{
		Total:      int(result.Total),
		Pending:    int(result.Pending),
		InProgress: int(result.InProgress),
		Done:       int(result.Done),
		Low:        int(result.Low),
		Medium:     int(result.Medium),
		High:       int(result.High),
	}, nil
}

// TeamMembers returns the members of the owner's teams.
func (r *repository) TeamMembers(ctx context.Context, ownerID string) ([]model.TeamMember, error) {
	var members []model.TeamMember
	err := r.db.WithContext(ctx).
		Table("team_members").
		Select(`
			teams.id as team_id,
			teams.name as team_name,
			team_members.id,
			team_members.name,
			team_members.role,
			team_members.capacity
		`).
		Joins("JOIN teams ON teams.id = team_members.team_id").
		Where("teams.owner_id = ?", ownerID).
		Order("teams.created_at ASC, teams.id ASC, team_members.position ASC").
		Scan(&members).Error
	if err != nil {
		r.logger.Errorw("TeamMembers database error", "owner_id", ownerID, "error", err)
		return nil, err
	}
	if members == nil {
		members = []model.TeamMember{}
	}
	return members, nil
}

// Assignments returns every assignee of every task in the owner's projects.
func (r *repository) Assignments(ctx context.Context, ownerID string) ([]model.Assignment, error) {
	var rows []model.Assignment
	err := r.db.WithContext(ctx).
		Table("task_assignees").
		Select("task_assignees.task_id, tasks.project_id, task_assignees.member_id").
		Joins("JOIN tasks ON tasks.id = task_assignees.task_id").
		Joins("JOIN projects ON projects.id = tasks.project_id").
		Where("projects.owner_id = ?", ownerID).
		Order("task_assignees.task_id ASC, task_assignees.id ASC").
		Scan(&rows).Error
	if err != nil {
		r.logger.Errorw("Assignments database error", "owner_id", ownerID, "error", err)
		return nil, err
	}
	return rows, nil
}
