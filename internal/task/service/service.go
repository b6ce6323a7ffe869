// Package service provides business logic layer for task module.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/capacity"
	projectRepository "github.com/festy23/task_capacity/internal/project/repository"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
	"github.com/festy23/task_capacity/internal/task/repository"
	teamModel "github.com/festy23/task_capacity/internal/team/model"
	teamRepository "github.com/festy23/task_capacity/internal/team/repository"
)

// Service defines the interface for task business logic operations.
type Service interface {
	// CreateTask creates a task with the requested assignees, without any capacity check.
	CreateTask(ctx context.Context, req *taskModel.CreateTaskRequest) (*taskModel.TaskResponse, error)
	// ListByProject returns a project's tasks, oldest first.
	ListByProject(ctx context.Context, projectID string) ([]taskModel.TaskResponse, error)
	// ListByOwner returns the tasks of every project of an owner.
	ListByOwner(ctx context.Context, ownerID string) ([]taskModel.TaskResponse, error)
	// UpdateTask changes the fields present in the request.
	UpdateTask(ctx context.Context, id string, req *taskModel.UpdateTaskRequest) (*taskModel.TaskResponse, error)
	// DeleteTask removes a task.
	DeleteTask(ctx context.Context, id string) error
}

type service struct {
	repo   repository.Repository
	db     *gorm.DB
	logger *zap.SugaredLogger
	now    func() time.Time
}

// New creates a new task service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger) Service {
	return &service{
		repo:   repo,
		db:     db,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// CreateTask creates a task with the requested assignees.
func (s *service) CreateTask(ctx context.Context, req *taskModel.CreateTaskRequest) (*taskModel.TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, taskModel.ErrInvalidTitle
	}
	if req.ProjectID == "" {
		return nil, taskModel.ErrProjectRequired
	}
	status, priority, err := normalize(req.Status, req.Priority)
	if err != nil {
		return nil, err
	}

	var task *taskModel.Task
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		assignees, err := s.validAssignees(ctx, tx, req.ProjectID, req.AssignedMemberIDs)
		if err != nil {
			return err
		}

		now := s.now()
		task = &taskModel.Task{
			ID:          uuid.NewString(),
			Title:       title,
			Description: req.Description,
			ProjectID:   req.ProjectID,
			Status:      string(status),
			Priority:    string(priority),
			CreatedBy:   req.CreatedBy,
			CreatedAt:   now,
			UpdatedAt:   now,
			Assignees:   make([]taskModel.Assignee, 0, len(assignees)),
		}
		for _, id := range assignees {
			task.Assignees = append(task.Assignees, taskModel.Assignee{TaskID: task.ID, MemberID: id, AssignedAt: now})
		}
		return repository.New(tx, s.logger).Create(ctx, task)
	})
	if err != nil {
		s.logger.Errorw("failed to create task", "project_id", req.ProjectID, "error", err)
		return nil, err
	}

	s.logger.Infow("task created", "task_id", task.ID, "project_id", task.ProjectID, "assignees", len(task.Assignees))
	return taskModel.NewTaskResponse(task), nil
}

// ListByProject returns a project's tasks, oldest first.
func (s *service) ListByProject(ctx context.Context, projectID string) ([]taskModel.TaskResponse, error) {
	if projectID == "" {
		return nil, taskModel.ErrProjectRequired
	}
	if _, err := projectRepository.New(s.db, s.logger).GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	tasks, err := s.repo.ListByProjects(ctx, []string{projectID})
	if err != nil {
		return nil, err
	}
	return taskModel.NewTaskResponses(tasks), nil
}

// ListByOwner returns the tasks of every project of an owner.
func (s *service) ListByOwner(ctx context.Context, ownerID string) ([]taskModel.TaskResponse, error) {
	projects, err := projectRepository.New(s.db, s.logger).ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(projects))
	for _, p := range projects {
		ids = append(ids, p.ID)
	}
	tasks, err := s.repo.ListByProjects(ctx, ids)
	if err != nil {
		return nil, err
	}
	return taskModel.NewTaskResponses(tasks), nil
}

// UpdateTask changes the fields present in the request in one transaction.
func (s *service) UpdateTask(ctx context.Context, id string, req *taskModel.UpdateTaskRequest) (*taskModel.TaskResponse, error) {
	var result *taskModel.Task
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		task, err := txRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			title := strings.TrimSpace(*req.Title)
			if title == "" {
				return taskModel.ErrInvalidTitle
			}
			task.Title = title
		}
		if req.Description != nil {
			task.Description = *req.Description
		}
		if req.Status != nil {
			if !capacity.TaskStatus(*req.Status).Valid() {
				return taskModel.ErrInvalidStatus
			}
			task.Status = *req.Status
		}
		if req.Priority != nil {
			if !capacity.TaskPriority(*req.Priority).Valid() {
				return taskModel.ErrInvalidPriority
			}
			task.Priority = *req.Priority
		}
		task.UpdatedAt = s.now()
		if err := txRepo.Update(ctx, task); err != nil {
			return err
		}

		if req.AssignedMemberIDs != nil {
			assignees, err := s.validAssignees(ctx, tx, task.ProjectID, *req.AssignedMemberIDs)
			if err != nil {
				return err
			}
			if err := txRepo.ReplaceAssignees(ctx, task.ID, assignees, task.UpdatedAt); err != nil {
				return err
			}
		}

		result, err = txRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Infow("task updated", "task_id", id)
	return taskModel.NewTaskResponse(result), nil
}

// DeleteTask removes a task.
func (s *service) DeleteTask(ctx context.Context, id string) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return repository.New(tx, s.logger).Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.logger.Infow("task deleted", "task_id", id)
	return nil
}

// validAssignees deduplicates memberIDs and checks that each belongs to the
// team of the project. The project must exist.
func (s *service) validAssignees(ctx context.Context, tx *gorm.DB, projectID string, memberIDs []string) ([]string, error) {
	project, err := projectRepository.New(tx, s.logger).GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ids := dedupe(memberIDs)
	if len(ids) == 0 {
		return ids, nil
	}

	team, err := teamRepository.New(tx, s.logger).GetByID(ctx, project.TeamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return nil, taskModel.ErrUnknownMember
		}
		return nil, err
	}
	roster := make(map[string]bool, len(team.Members))
	for _, m := range team.Members {
		roster[m.ID] = true
	}
	for _, id := range ids {
		if !roster[id] {
			return nil, taskModel.ErrUnknownMember
		}
	}
	return ids, nil
}

func normalize(status, priority string) (capacity.TaskStatus, capacity.TaskPriority, error) {
	st := capacity.TaskStatus(status)
	if st == "" {
		st = capacity.StatusPending
	}
	if !st.Valid() {
		return "", "", taskModel.ErrInvalidStatus
	}
	pr := capacity.TaskPriority(priority)
	if pr == "" {
		pr = capacity.PriorityMedium
	}
	if !pr.Valid() {
		return "", "", taskModel.ErrInvalidPriority
	}
	return st, pr, nil
}

// dedupe drops empty and repeated ids, keeping first occurrences in order.
func dedupe(ids []string) []string {
	out := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
