// Package service builds the owner overview from aggregate queries and the capacity engine.
package service

import (
	"context"
	"math"

	"go.uber.org/zap"

	activityModel "github.com/festy23/task_capacity/internal/activity/model"
	activityRepository "github.com/festy23/task_capacity/internal/activity/repository"
	"github.com/festy23/task_capacity/internal/capacity"
	"github.com/festy23/task_capacity/internal/dashboard/model"
	"github.com/festy23/task_capacity/internal/dashboard/repository"
)

// Service defines the dashboard operations.
type Service interface {
	// GetDashboard returns the overview of everything ownerID owns.
	GetDashboard(ctx context.Context, ownerID string) (*model.DashboardResponse, error)
}

type service struct {
	repo       repository.Repository
	activities activityRepository.Repository
	logger     *zap.SugaredLogger
}

// New creates a new dashboard service instance.
func New(repo repository.Repository, activities activityRepository.Repository, logger *zap.SugaredLogger) Service {
	return &service{
		repo:       repo,
		activities: activities,
		logger:     logger,
	}
}

// GetDashboard returns the overview of everything ownerID owns.
// Member workload here spans all of the owner's projects; assignment
// decisions use per-project workload instead.
func (s *service) GetDashboard(ctx context.Context, ownerID string) (*model.DashboardResponse, error) {
	s.logger.Debugw("GetDashboard called", "owner_id", ownerID)

	projects, err := s.repo.CountProjects(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	breakdown, err := s.repo.TaskBreakdown(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	members, err := s.repo.TeamMembers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.repo.Assignments(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	recent, err := s.activities.ListRecent(ctx, ownerID, activityModel.KindReassigned, model.RecentReassignmentsLimit)
	if err != nil {
		s.logger.Errorw("GetDashboard failed to load activity", "owner_id", ownerID, "error", err)
		return nil, err
	}
	if recent == nil {
		recent = []activityModel.Activity{}
	}

	team := summarize(members, assignments)

	s.logger.Infow("GetDashboard completed",
		"owner_id", ownerID,
		"projects", projects,
		"tasks", breakdown.Total,
		"members", len(team),
	)
	return &model.DashboardResponse{
		OwnerID:       ownerID,
		TotalProjects: projects,
		TotalTasks:    breakdown.Total,
		TasksByStatus: map[string]int{
			string(capacity.StatusPending):    breakdown.Pending,
			string(capacity.StatusInProgress): breakdown.InProgress,
			string(capacity.StatusDone):       breakdown.Done,
		},
		TasksByPriority: map[string]int{
			string(capacity.PriorityLow):    breakdown.Low,
			string(capacity.PriorityMedium): breakdown.Medium,
			string(capacity.PriorityHigh):   breakdown.High,
		},
		CompletionRate:      completionRate(breakdown.Done, breakdown.Total),
		Team:                team,
		RecentReassignments: recent,
	}, nil
}

// summarize evaluates every member against their workload over all projects.
func summarize(members []model.TeamMember, assignments []model.Assignment) []model.MemberSummary {
	roster := make([]capacity.Member, 0, len(members))
	for _, m := range members {
		roster = append(roster, m.Member)
	}
	w := capacity.Count(capacity.AllProjects(), toTasks(assignments), roster)

	out := make([]model.MemberSummary, 0, len(members))
	for _, m := range members {
		e := capacity.Evaluate(m.Member, w[m.ID])
		out = append(out, model.MemberSummary{
			MemberID:     m.ID,
			Name:         m.Name,
			Role:         m.Role,
			TeamID:       m.TeamID,
			TeamName:     m.TeamName,
			CurrentTasks: e.CurrentTasks,
			Capacity:     m.Capacity,
			Available:    e.Available,
			Status:       e.Status,
			IsOverloaded: e.IsOverloaded(),
		})
	}
	return out
}

// toTasks groups assignment rows, already ordered by task, into engine tasks.
func toTasks(rows []model.Assignment) []capacity.Task {
	var tasks []capacity.Task
	for _, row := range rows {
		if n := len(tasks); n > 0 && tasks[n-1].ID == row.TaskID {
			tasks[n-1].AssigneeIDs = append(tasks[n-1].AssigneeIDs, row.MemberID)
			continue
		}
		tasks = append(tasks, capacity.Task{
			ID:          row.TaskID,
			ProjectID:   row.ProjectID,
			AssigneeIDs: []string{row.MemberID},
		})
	}
	return tasks
}

// completionRate is the percentage of done tasks, rounded to one decimal.
func completionRate(done, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(done)*1000/float64(total)) / 10
}
