// Package service provides business logic layer for team module.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	teamModel "github.com/festy23/task_capacity/internal/team/model"
	"github.com/festy23/task_capacity/internal/team/repository"
)

// Service defines the interface for team business logic operations.
type Service interface {
	// CreateTeam creates a new team with members.
	CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error)

	// GetTeam returns a team with its members.
	GetTeam(ctx context.Context, id string) (*teamModel.TeamResponse, error)

	// ListTeams returns every team of an owner.
	ListTeams(ctx context.Context, ownerID string) ([]teamModel.TeamResponse, error)

	// UpdateTeam replaces a team's details and roster.
	UpdateTeam(ctx context.Context, id string, req *teamModel.UpdateTeamRequest) (*teamModel.TeamResponse, error)

	// DeleteTeam removes a team. Its projects are left in place.
	DeleteTeam(ctx context.Context, id string) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new team service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateTeam creates a new team with members.
func (s *service) CreateTeam(ctx context.Context, req *teamModel.CreateTeamRequest) (*teamModel.TeamResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, teamModel.ErrInvalidOwner
	}

	members, err := buildRoster(req.Members, nil)
	if err != nil {
		return nil, err
	}

	now := s.now()
	team := &teamModel.Team{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		OwnerID:     req.OwnerID,
		CreatedAt:   now,
		UpdatedAt:   now,
		Members:     members,
	}

	if err := s.repo.Create(ctx, team); err != nil {
		s.logger.Errorw("failed to create team", "owner_id", req.OwnerID, "error", err)
		return nil, err
	}

	s.logger.Infow("team created", "team_id", team.ID, "owner_id", team.OwnerID, "members", len(members))
	return teamModel.NewTeamResponse(team), nil
}

// GetTeam returns a team with its members.
func (s *service) GetTeam(ctx context.Context, id string) (*teamModel.TeamResponse, error) {
	team, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return teamModel.NewTeamResponse(team), nil
}

// ListTeams returns every team of an owner.
func (s *service) ListTeams(ctx context.Context, ownerID string) ([]teamModel.TeamResponse, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, teamModel.ErrInvalidOwner
	}

	teams, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	out := make([]teamModel.TeamResponse, 0, len(teams))
	for i := range teams {
		out = append(out, *teamModel.NewTeamResponse(&teams[i]))
	}
	return out, nil
}

// UpdateTeam replaces a team's details and roster in one transaction.
func (s *service) UpdateTeam(ctx context.Context, id string, req *teamModel.UpdateTeamRequest) (*teamModel.TeamResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, teamModel.ErrInvalidTeamName
	}

	var result *teamModel.Team
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)

		existing, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		members, err := buildRoster(req.Members, existing.Members)
		if err != nil {
			return err
		}

		existing.Name = name
		existing.Description = req.Description
		existing.UpdatedAt = s.now()
		existing.Members = members

		if err := txRepo.Update(ctx, existing); err != nil {
			return err
		}
		result = existing
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("team updated", "team_id", id, "members", len(result.Members))
	return teamModel.NewTeamResponse(result), nil
}

// DeleteTeam removes a team. Its projects are left in place.
func (s *service) DeleteTeam(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Infow("team deleted", "team_id", id)
	return nil
}

// buildRoster validates inputs and assigns ids and positions in declared order.
// An input matching an existing member by id, or else by name, keeps that member's id.
func buildRoster(inputs []teamModel.MemberInput, existing []teamModel.Member) ([]teamModel.Member, error) {
	byID := make(map[string]bool, len(existing))
	byName := make(map[string]string, len(existing))
	for _, m := range existing {
		byID[m.ID] = true
		byName[m.Name] = m.ID
	}

	seen := make(map[string]bool, len(inputs))
	used := make(map[string]bool, len(inputs))
	members := make([]teamModel.Member, 0, len(inputs))
	for i, in := range inputs {
		name := strings.TrimSpace(in.Name)
		if name == "" {
			return nil, teamModel.ErrInvalidMemberName
		}
		if seen[name] {
			return nil, teamModel.ErrDuplicateMember
		}
		seen[name] = true
		if !teamModel.ValidRole(in.Role) {
			return nil, teamModel.ErrInvalidRole
		}
		if in.Capacity < 1 {
			return nil, teamModel.ErrInvalidCapacity
		}

		id := uuid.NewString()
		if in.ID != "" && byID[in.ID] && !used[in.ID] {
			id = in.ID
		} else if prev, ok := byName[name]; ok && !used[prev] {
			id = prev
		}
		used[id] = true

		members = append(members, teamModel.Member{
			ID:       id,
			Name:     name,
			Role:     in.Role,
			Capacity: in.Capacity,
			Position: i,
		})
	}

	return members, nil
}
