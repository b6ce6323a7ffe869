// Package service provides business logic layer for project module.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	projectModel "github.com/festy23/task_capacity/internal/project/model"
	"github.com/festy23/task_capacity/internal/project/repository"
	taskRepository "github.com/festy23/task_capacity/internal/task/repository"
	teamModel "github.com/festy23/task_capacity/internal/team/model"
	teamRepository "github.com/festy23/task_capacity/internal/team/repository"
)

// Service defines the interface for project business logic operations.
type Service interface {
	// CreateProject creates a project bound to an existing team.
	CreateProject(ctx context.Context, req *projectModel.CreateProjectRequest) (*projectModel.ProjectResponse, error)
	// GetProject returns a project by id.
	GetProject(ctx context.Context, id string) (*projectModel.ProjectResponse, error)
	// ListProjects returns every project of an owner.
	ListProjects(ctx context.Context, ownerID string) ([]projectModel.ProjectResponse, error)
	// DeleteProject removes a project with all of its tasks.
	DeleteProject(ctx context.Context, id string) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new project service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateProject creates a project bound to an existing team.
func (s *service) CreateProject(ctx context.Context, req *projectModel.CreateProjectRequest) (*projectModel.ProjectResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, projectModel.ErrInvalidProjectName
	}
	if strings.TrimSpace(req.OwnerID) == "" {
		return nil, projectModel.ErrInvalidOwner
	}

	if _, err := teamRepository.New(s.db, s.logger).GetByID(ctx, req.TeamID); err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, projectModel.ErrTeamRequired
		}
		return nil, err
	}

	project := &projectModel.Project{
		ID:          uuid.NewString(),
		Name:        name,
		Description: req.Description,
		TeamID:      req.TeamID,
		OwnerID:     req.OwnerID,
		CreatedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, project); err != nil {
		s.logger.Errorw("failed to create project", "owner_id", req.OwnerID, "error", err)
		return nil, err
	}

	s.logger.Infow("project created", "project_id", project.ID, "team_id", project.TeamID)
	return projectModel.NewProjectResponse(project), nil
}

// GetProject returns a project by id.
func (s *service) GetProject(ctx context.Context, id string) (*projectModel.ProjectResponse, error) {
	project, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return projectModel.NewProjectResponse(project), nil
}

// ListProjects returns every project of an owner.
func (s *service) ListProjects(ctx context.Context, ownerID string) ([]projectModel.ProjectResponse, error) {
	if strings.TrimSpace(ownerID) == "" {
		return nil, projectModel.ErrInvalidOwner
	}
	projects, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	out := make([]projectModel.ProjectResponse, 0, len(projects))
	for i := range projects {
		out = append(out, *projectModel.NewProjectResponse(&projects[i]))
	}
	return out, nil
}

// DeleteProject removes a project with all of its tasks in one transaction.
func (s *service) DeleteProject(ctx context.Context, id string) error {
	var removed int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		if _, err := txRepo.GetByID(ctx, id); err != nil {
			return err
		}
		var err error
		removed, err = taskRepository.New(tx, s.logger).DeleteByProject(ctx, id)
		if err != nil {
			return err
		}
		return txRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Infow("project deleted", "project_id", id, "tasks", removed)
	return nil
}
