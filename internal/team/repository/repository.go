// Package repository provides data access layer for team module.
package repository

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/festy23/task_capacity/internal/team/model"
)

// Repository defines the interface for team data access operations.
type Repository interface {
	// Create inserts a team and its members.
	Create(ctx context.Context, team *teamModel.Team) error

	// GetByID returns a team with members in declared order.
	GetByID(ctx context.Context, id string) (*teamModel.Team, error)

	// ListByOwner returns an owner's teams, oldest first, with members.
	ListByOwner(ctx context.Context, ownerID string) ([]teamModel.Team, error)

	// ListByIDs returns the given teams with members. Missing ids are skipped.
	ListByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error)

	// Update saves team details and replaces the roster with team.Members.
	Update(ctx context.Context, team *teamModel.Team) error

	// Delete removes a team and its members.
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// New creates a new team repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{db: db, logger: logger}
}

func orderedMembers(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create inserts a team and its members.
func (r *repository) Create(ctx context.Context, team *teamModel.Team) error {
	err := r.db.WithContext(ctx).Create(team).Error
	if isDuplicateError(err) {
		return teamModel.ErrDuplicateMember
	}
	return err
}

// GetByID returns a team with members in declared order.
func (r *repository) GetByID(ctx context.Context, id string) (*teamModel.Team, error) {
	var team teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members", orderedMembers).
		Where("id = ?", id).
		First(&team).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, teamModel.ErrTeamNotFound
		}
		return nil, err
	}

	return &team, nil
}

// ListByOwner returns an owner's teams, oldest first, with members.
func (r *repository) ListByOwner(ctx context.Context, ownerID string) ([]teamModel.Team, error) {
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members", orderedMembers).
		Where("owner_id = ?", ownerID).
		Order("created_at ASC, id ASC").
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// ListByIDs returns the given teams with members. Missing ids are skipped.
func (r *repository) ListByIDs(ctx context.Context, ids []string) ([]teamModel.Team, error) {
	if len(ids) == 0 {
		return []teamModel.Team{}, nil
	}
	var teams []teamModel.Team
	err := r.db.WithContext(ctx).
		Preload("Members", orderedMembers).
		Where("id IN ?", ids).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

// Update saves team details and replaces the roster with team.Members.
// Member ids carried in team.Members are kept, so existing assignments stay valid.
func (r *repository) Update(ctx context.Context, team *teamModel.Team) error {
	db := r.db.WithContext(ctx)

	res := db.Model(&teamModel.Team{}).
		Where("id = ?", team.ID).
		Updates(map[string]interface{}{
			"name":        team.Name,
			"description": team.Description,
			"updated_at":  team.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}

	if err := db.Where("team_id = ?", team.ID).Delete(&teamModel.Member{}).Error; err != nil {
		return err
	}
	if len(team.Members) == 0 {
		return nil
	}

	for i := range team.Members {
		team.Members[i].TeamID = team.ID
	}
	if err := db.Create(&team.Members).Error; err != nil {
		if isDuplicateError(err) {
			return teamModel.ErrDuplicateMember
		}
		return err
	}

	return nil
}

// Delete removes a team and its members.
func (r *repository) Delete(ctx context.Context, id string) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("team_id = ?", id).Delete(&teamModel.Member{}).Error; err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&teamModel.Team{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return teamModel.ErrTeamNotFound
	}

	r.logger.Debugw("team deleted", "team_id", id)
	return nil
}

// isDuplicateError checks if error is a unique constraint violation.
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}
