// Package repository loads engine snapshots and applies reassignment moves.
package repository

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/festy23/task_capacity/internal/capacity"
	projectModel "github.com/festy23/task_capacity/internal/project/model"
	projectRepository "github.com/festy23/task_capacity/internal/project/repository"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
	taskRepository "github.com/festy23/task_capacity/internal/task/repository"
	teamModel "github.com/festy23/task_capacity/internal/team/model"
	teamRepository "github.com/festy23/task_capacity/internal/team/repository"
)

// ProjectState is a project snapshot together with the project's owner.
type ProjectState struct {
	OwnerID string
	capacity.ProjectSnapshot
}

// Repository defines the data access the assignment engine needs.
type Repository interface {
	// LoadProject snapshots one project with its team roster and tasks.
	// A project whose team no longer exists has an empty roster.
	LoadProject(ctx context.Context, projectID string) (*ProjectState, error)
	// LoadOwner snapshots every project of an owner, oldest first.
	LoadOwner(ctx context.Context, ownerID string) (capacity.Snapshot, error)
	// ApplyMove performs one move. It reports false without error when the
	// task, project, team or either member changed since the snapshot.
	ApplyMove(ctx context.Context, mv capacity.Move) (bool, error)
}

type repository struct {
	db       *gorm.DB
	logger   *zap.SugaredLogger
	projects projectRepository.Repository
	teams    teamRepository.Repository
	tasks    taskRepository.Repository
}

// New creates a new assignment repository instance.
func New(db *gorm.DB, logger *zap.SugaredLogger) Repository {
	return &repository{
		db:       db,
		logger:   logger,
		projects: projectRepository.New(db, logger),
		teams:    teamRepository.New(db, logger),
		tasks:    taskRepository.New(db, logger),
	}
}

// LoadProject snapshots one project with its team roster and tasks.
func (r *repository) LoadProject(ctx context.Context, projectID string) (*ProjectState, error) {
	project, err := r.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var members []teamModel.Member
	team, err := r.teams.GetByID(ctx, project.TeamID)
	switch {
	case err == nil:
		members = team.Members
	case errors.Is(err, teamModel.ErrTeamNotFound):
		r.logger.Debugw("project team missing", "project_id", projectID, "team_id", project.TeamID)
	default:
		return nil, err
	}

	tasks, err := r.tasks.ListByProjects(ctx, []string{projectID})
	if err != nil {
		return nil, err
	}

	return &ProjectState{
		OwnerID:         project.OwnerID,
		ProjectSnapshot: snapshotOf(project, members, tasks),
	}, nil
}

// LoadOwner snapshots every project of an owner, oldest first.
func (r *repository) LoadOwner(ctx context.Context, ownerID string) (capacity.Snapshot, error) {
	snapshot := capacity.Snapshot{OwnerID: ownerID, Projects: make([]capacity.ProjectSnapshot, 0)}

	projects, err := r.projects.ListByOwner(ctx, ownerID)
	if err != nil {
		return snapshot, err
	}
	if len(projects) == 0 {
		return snapshot, nil
	}

	projectIDs := make([]string, 0, len(projects))
	teamIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID)
		teamIDs = append(teamIDs, p.TeamID)
	}

	teams, err := r.teams.ListByIDs(ctx, teamIDs)
	if err != nil {
		return snapshot, err
	}
	rosters := make(map[string][]teamModel.Member, len(teams))
	for _, t := range teams {
		rosters[t.ID] = t.Members
	}

	tasks, err := r.tasks.ListByProjects(ctx, projectIDs)
	if err != nil {
		return snapshot, err
	}
	byProject := make(map[string][]taskModel.Task, len(projects))
	for _, t := range tasks {
		byProject[t.ProjectID] = append(byProject[t.ProjectID], t)
	}

	for i := range projects {
		p := &projects[i]
		snapshot.Projects = append(snapshot.Projects, snapshotOf(p, rosters[p.TeamID], byProject[p.ID]))
	}
	return snapshot, nil
}

// ApplyMove performs one move if nothing it depends on has changed.
func (r *repository) ApplyMove(ctx context.Context, mv capacity.Move) (bool, error) {
	project, err := r.projects.GetByID(ctx, mv.ProjectID)
	if err != nil {
		if errors.Is(err, projectModel.ErrProjectNotFound) {
			return false, nil
		}
		return false, err
	}

	team, err := r.teams.GetByID(ctx, project.TeamID)
	if err != nil {
		if errors.Is(err, teamModel.ErrTeamNotFound) {
			return false, nil
		}
		return false, err
	}
	if !hasMember(team.Members, mv.From.ID) || !hasMember(team.Members, mv.To.ID) {
		return false, nil
	}

	task, err := r.tasks.GetByID(ctx, mv.TaskID)
	if err != nil {
		if errors.Is(err, taskModel.ErrTaskNotFound) {
			return false, nil
		}
		return false, err
	}
	if task.ProjectID != mv.ProjectID || task.Status == string(capacity.StatusDone) {
		return false, nil
	}

	return r.tasks.MoveAssignee(ctx, mv.TaskID, mv.From.ID, mv.To.ID, mv.At)
}

func snapshotOf(p *projectModel.Project, members []teamModel.Member, tasks []taskModel.Task) capacity.ProjectSnapshot {
	return capacity.ProjectSnapshot{
		ProjectID:   p.ID,
		ProjectName: p.Name,
		TeamID:      p.TeamID,
		CreatedAt:   p.CreatedAt,
		Members:     teamModel.Roster(members),
		Tasks:       taskModel.ToCapacityTasks(tasks),
	}
}

func hasMember(members []teamModel.Member, id string) bool {
	for _, m := range members {
		if m.ID == id {
			return true
		}
	}
	return false
}
