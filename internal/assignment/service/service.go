// Package service wires the capacity engine to persistence, sessions, metrics and the activity stream.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	activityModel "github.com/festy23/task_capacity/internal/activity/model"
	activityRepository "github.com/festy23/task_capacity/internal/activity/repository"
	"github.com/festy23/task_capacity/internal/activity/publisher"
	assignmentModel "github.com/festy23/task_capacity/internal/assignment/model"
	"github.com/festy23/task_capacity/internal/assignment/repository"
	"github.com/festy23/task_capacity/internal/assignment/store"
	"github.com/festy23/task_capacity/internal/capacity"
	"github.com/festy23/task_capacity/internal/metrics"
	projectRepository "github.com/festy23/task_capacity/internal/project/repository"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
	taskService "github.com/festy23/task_capacity/internal/task/service"
)

// DefaultSessionTTL is how long a warned negotiation waits for a decision.
const DefaultSessionTTL = 30 * time.Minute

// Service defines the capacity-aware assignment operations.
type Service interface {
	// EvaluateCapacity returns warnings for the candidates at or over capacity in the project.
	EvaluateCapacity(ctx context.Context, req *assignmentModel.EvaluateRequest) (*assignmentModel.EvaluateResponse, error)
	// AutoAssign picks the team member of the project with the most spare capacity.
	AutoAssign(ctx context.Context, req *assignmentModel.AutoAssignRequest) (*assignmentModel.AutoAssignResponse, error)
	// ReassignAll moves tasks off overloaded members across every project of an owner.
	ReassignAll(ctx context.Context, req *assignmentModel.ReassignRequest) (*assignmentModel.ReassignResponse, error)
	// Negotiate creates the task directly or holds it until the operator decides.
	Negotiate(ctx context.Context, req *assignmentModel.NegotiateRequest) (*assignmentModel.NegotiationResponse, error)
	// GetNegotiation returns a negotiation still waiting for a decision.
	GetNegotiation(ctx context.Context, id string) (*assignmentModel.NegotiationResponse, error)
	// Resolve applies the operator's decision to a warned negotiation.
	Resolve(ctx context.Context, id string, req *assignmentModel.ResolveRequest) (*assignmentModel.NegotiationResponse, error)
}

// Dependencies are the collaborators of the assignment service.
// Zero values fall back to working defaults.
type Dependencies struct {
	Tasks      taskService.Service
	Sessions   store.Store
	Publisher  publisher.Publisher
	Metrics    *metrics.Metrics
	SessionTTL time.Duration
}

type service struct {
	repo       repository.Repository
	db         *gorm.DB
	logger     *zap.SugaredLogger
	tasks      taskService.Service
	sessions   store.Store
	publisher  publisher.Publisher
	metrics    *metrics.Metrics
	sessionTTL time.Duration
	now        func() time.Time
}

// New creates a new assignment service instance.
func New(repo repository.Repository, db *gorm.DB, logger *zap.SugaredLogger, deps Dependencies) Service {
	s := &service{
		repo:       repo,
		db:         db,
		logger:     logger,
		tasks:      deps.Tasks,
		sessions:   deps.Sessions,
		publisher:  deps.Publisher,
		metrics:    deps.Metrics,
		sessionTTL: deps.SessionTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
	if s.sessions == nil {
		s.sessions = store.NewMemory()
	}
	if s.publisher == nil {
		s.publisher = publisher.Nop{}
	}
	if s.sessionTTL <= 0 {
		s.sessionTTL = DefaultSessionTTL
	}
	return s
}

// EvaluateCapacity returns warnings for the candidates at or over capacity in the project.
func (s *service) EvaluateCapacity(
	ctx context.Context,
	req *assignmentModel.EvaluateRequest,
) (*assignmentModel.EvaluateResponse, error) {
	s.logger.Debugw("EvaluateCapacity called", "project_id", req.ProjectID, "candidates", len(req.MemberIDs))

	state, err := s.repo.LoadProject(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}
	if len(state.Members) == 0 {
		return nil, capacity.ErrNoMembers
	}

	warnings, err := s.evaluate(state, req.MemberIDs)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("EvaluateCapacity completed", "project_id", req.ProjectID, "warnings", len(warnings))
	return &assignmentModel.EvaluateResponse{
		ProjectID:       req.ProjectID,
		Warnings:        warnings,
		HasOverCapacity: capacity.HasOverCapacity(warnings),
	}, nil
}

// AutoAssign picks the team member of the project with the most spare capacity.
func (s *service) AutoAssign(
	ctx context.Context,
	req *assignmentModel.AutoAssignRequest,
) (*assignmentModel.AutoAssignResponse, error) {
	state, err := s.repo.LoadProject(ctx, req.ProjectID)
	if err != nil {
		s.metrics.AutoAssign(metrics.OutcomeError)
		return nil, err
	}

	sel, err := s.selectBest(state)
	if err != nil {
		s.logger.Infow("AutoAssign found no candidate", "project_id", req.ProjectID, "reason", err)
		return nil, err
	}

	s.logger.Infow("AutoAssign completed", "project_id", req.ProjectID, "member_id", sel.Member.ID, "available", sel.Available)
	return &assignmentModel.AutoAssignResponse{
		AssignedMember:    sel.Member,
		AvailableCapacity: sel.Available,
		Message:           sel.Message(),
	}, nil
}

// ReassignAll moves tasks off overloaded members across every project of an owner.
//
// The plan is computed from one snapshot. Moves are then applied in a single
// transaction together with their activity entries; a move whose task, project,
// team or members changed since the snapshot is skipped. Activity events are
// published only after the transaction commits.
func (s *service) ReassignAll(
	ctx context.Context,
	req *assignmentModel.ReassignRequest,
) (*assignmentModel.ReassignResponse, error) {
	if req.OwnerID == "" {
		return nil, assignmentModel.ErrOwnerRequired
	}
	started := time.Now()
	s.logger.Debugw("ReassignAll called", "owner_id", req.OwnerID)

	snapshot, err := s.repo.LoadOwner(ctx, req.OwnerID)
	if err != nil {
		s.logger.Errorw("ReassignAll failed to load snapshot", "owner_id", req.OwnerID, "error", err)
		return nil, err
	}

	plan := capacity.PlanReassignment(snapshot, s.now())

	applied := make([]capacity.Move, 0, len(plan.Moves))
	activities := make([]*activityModel.Activity, 0, len(plan.Moves))
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txRepo := repository.New(tx, s.logger)
		for _, mv := range plan.Moves {
			ok, err := txRepo.ApplyMove(ctx, mv)
			if err != nil {
				return fmt.Errorf("apply move of task %s: %w", mv.TaskID, err)
			}
			if !ok {
				s.logger.Warnw("reassignment skipped, data changed", "task_id", mv.TaskID, "from", mv.From.ID, "to", mv.To.ID)
				continue
			}
			applied = append(applied, mv)
			activities = append(activities, activityModel.NewReassignment(req.OwnerID, mv))
		}
		return activityRepository.New(tx, s.logger).Create(ctx, activities...)
	})
	if err != nil {
		s.logger.Errorw("ReassignAll failed, no moves applied", "owner_id", req.OwnerID, "error", err)
		return nil, err
	}

	publisher.PublishAll(ctx, s.publisher, s.logger, activities...)

	skipped := len(plan.Moves) - len(applied)
	s.metrics.Reassignment(len(applied), skipped, plan.Unresolved, time.Since(started))

	result := plan
	result.Moves = applied
	message := result.Summary()
	if skipped > 0 {
		message = fmt.Sprintf("%s; %d move(s) skipped because tasks changed meanwhile", message, skipped)
	}

	moves := make([]assignmentModel.MoveResponse, 0, len(applied))
	for _, mv := range applied {
		moves = append(moves, assignmentModel.NewMoveResponse(mv))
	}

	s.logger.Infow("ReassignAll completed",
		"owner_id", req.OwnerID,
		"projects", plan.Projects,
		"moved", len(applied),
		"skipped", skipped,
		"unresolved", plan.Unresolved,
	)
	return &assignmentModel.ReassignResponse{
		ReassignedCount: len(applied),
		SkippedCount:    skipped,
		UnresolvedCount: plan.Unresolved,
		Message:         message,
		Moves:           moves,
	}, nil
}

// Negotiate creates the task directly when none of its assignees is at or over
// capacity. Otherwise the draft is held under a new negotiation id.
func (s *service) Negotiate(
	ctx context.Context,
	req *assignmentModel.NegotiateRequest,
) (*assignmentModel.NegotiationResponse, error) {
	draft := capacity.Draft{
		ProjectID:   req.ProjectID,
		Title:       req.Title,
		Description: req.Description,
		Status:      capacity.TaskStatus(req.Status),
		Priority:    capacity.TaskPriority(req.Priority),
		AssigneeIDs: dedupe(req.AssignedMemberIDs),
		CreatedBy:   req.CreatedBy,
	}
	if err := validateDraft(draft); err != nil {
		return nil, err
	}

	state, err := s.repo.LoadProject(ctx, draft.ProjectID)
	if err != nil {
		return nil, err
	}
	warnings, err := s.evaluate(state, draft.AssigneeIDs)
	if err != nil {
		return nil, err
	}

	n := capacity.NewNegotiation(uuid.NewString(), s.now())
	proceed, err := n.Submit(draft, warnings)
	if err != nil {
		return nil, err
	}

	if proceed {
		task, err := s.createFromDraft(ctx, state.OwnerID, draft, nil)
		if err != nil {
			return nil, err
		}
		s.metrics.Negotiation(assignmentModel.OutcomeCreated)
		return &assignmentModel.NegotiationResponse{
			Outcome: assignmentModel.OutcomeCreated,
			State:   n.State,
			Task:    task,
		}, nil
	}

	if err := s.sessions.Save(ctx, n, s.sessionTTL); err != nil {
		s.logger.Errorw("failed to hold negotiation", "negotiation_id", n.ID, "error", err)
		return nil, err
	}
	s.metrics.Negotiation(assignmentModel.OutcomeWarned)
	s.logger.Infow("task creation held for decision",
		"negotiation_id", n.ID,
		"project_id", draft.ProjectID,
		"warnings", len(warnings),
	)

	expires := n.CreatedAt.Add(s.sessionTTL)
	return &assignmentModel.NegotiationResponse{
		Outcome:       assignmentModel.OutcomeWarned,
		NegotiationID: n.ID,
		State:         n.State,
		Draft:         &n.Draft,
		Warnings:      n.Warnings,
		ExpiresAt:     &expires,
	}, nil
}

// GetNegotiation returns a negotiation still waiting for a decision.
func (s *service) GetNegotiation(ctx context.Context, id string) (*assignmentModel.NegotiationResponse, error) {
	n, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, mapSessionError(err)
	}
	expires := n.CreatedAt.Add(s.sessionTTL)
	return &assignmentModel.NegotiationResponse{
		Outcome:       assignmentModel.OutcomeWarned,
		NegotiationID: n.ID,
		State:         n.State,
		Draft:         &n.Draft,
		Warnings:      n.Warnings,
		ExpiresAt:     &expires,
	}, nil
}

// Resolve applies the operator's decision to a warned negotiation.
//
// The negotiation is consumed atomically, so a decision is applied at most
// once. If creating the task fails, the negotiation is held again unchanged.
func (s *service) Resolve(
	ctx context.Context,
	id string,
	req *assignmentModel.ResolveRequest,
) (*assignmentModel.NegotiationResponse, error) {
	decision, err := capacity.ParseDecision(req.Decision)
	if err != nil {
		return nil, err
	}

	n, err := s.sessions.Take(ctx, id)
	if err != nil {
		return nil, mapSessionError(err)
	}
	held := *n
	held.Draft.AssigneeIDs = append([]string(nil), n.Draft.AssigneeIDs...)

	draft, err := n.Decide(decision)
	if err != nil {
		s.restore(ctx, &held)
		return nil, err
	}
	s.metrics.Negotiation(string(decision))
	s.logger.Infow("negotiation decided", "negotiation_id", id, "decision", decision)

	switch decision {
	case capacity.DecisionCancel:
		return &assignmentModel.NegotiationResponse{
			Outcome:       assignmentModel.OutcomeCancelled,
			NegotiationID: id,
			State:         n.State,
			Draft:         &draft,
		}, nil

	case capacity.DecisionAutoAssign:
		return s.resolveAutoAssign(ctx, n, &held)

	default:
		task, err := s.createFromDraft(ctx, "", draft, nil)
		if err != nil {
			s.restore(ctx, &held)
			return nil, err
		}
		return &assignmentModel.NegotiationResponse{
			Outcome:       assignmentModel.OutcomeCreated,
			NegotiationID: id,
			State:         n.State,
			Task:          task,
		}, nil
	}
}

func (s *service) resolveAutoAssign(
	ctx context.Context,
	n *capacity.Negotiation,
	held *capacity.Negotiation,
) (*assignmentModel.NegotiationResponse, error) {
	state, err := s.repo.LoadProject(ctx, n.Draft.ProjectID)
	if err != nil {
		s.restore(ctx, held)
		return nil, err
	}

	sel, err := s.selectBest(state)
	if err != nil {
		if !isNoCandidate(err) {
			s.restore(ctx, held)
			return nil, err
		}
		draft, ferr := n.AutoAssignFailed()
		if ferr != nil {
			return nil, ferr
		}
		s.metrics.Negotiation(assignmentModel.OutcomeAutoAssignFailed)
		return &assignmentModel.NegotiationResponse{
			Outcome:       assignmentModel.OutcomeAutoAssignFailed,
			NegotiationID: n.ID,
			State:         n.State,
			Draft:         &draft,
			Message:       err.Error(),
		}, nil
	}

	draft, err := n.AutoAssigned(sel)
	if err != nil {
		return nil, err
	}
	task, err := s.createFromDraft(ctx, state.OwnerID, draft, &sel)
	if err != nil {
		s.restore(ctx, held)
		return nil, err
	}
	return &assignmentModel.NegotiationResponse{
		Outcome:       assignmentModel.OutcomeCreated,
		NegotiationID: n.ID,
		State:         n.State,
		Task:          task,
		Message:       sel.Message(),
	}, nil
}

// createFromDraft creates the task, then records and publishes its activity.
// An empty ownerID is looked up from the draft's project.
func (s *service) createFromDraft(
	ctx context.Context,
	ownerID string,
	draft capacity.Draft,
	sel *capacity.Selection,
) (*taskModel.TaskResponse, error) {
	task, err := s.tasks.CreateTask(ctx, &taskModel.CreateTaskRequest{
		ProjectID:         draft.ProjectID,
		Title:             draft.Title,
		Description:       draft.Description,
		Status:            string(draft.Status),
		Priority:          string(draft.Priority),
		AssignedMemberIDs: draft.AssigneeIDs,
		CreatedBy:         draft.CreatedBy,
	})
	if err != nil {
		return nil, err
	}

	if ownerID == "" {
		if project, err := projectRepository.New(s.db, s.logger).GetByID(ctx, draft.ProjectID); err == nil {
			ownerID = project.OwnerID
		}
	}

	var entry *activityModel.Activity
	if sel != nil {
		entry = activityModel.NewAutoAssigned(ownerID, task.ID, task.Title, task.ProjectID, *sel, task.CreatedAt)
	} else {
		entry = activityModel.NewTaskCreated(ownerID, task.ID, task.Title, task.ProjectID, task.CreatedAt)
	}
	if err := activityRepository.New(s.db, s.logger).Create(ctx, entry); err != nil {
		s.logger.Warnw("failed to record activity", "task_id", task.ID, "kind", entry.Kind, "error", err)
	} else {
		publisher.PublishAll(ctx, s.publisher, s.logger, entry)
	}
	return task, nil
}

// evaluate returns warnings for candidateIDs within the project. Every
// candidate must be on the project's team.
func (s *service) evaluate(state *repository.ProjectState, candidateIDs []string) ([]capacity.CapacityWarning, error) {
	candidates := make([]capacity.Member, 0, len(candidateIDs))
	for _, id := range dedupe(candidateIDs) {
		m, ok := state.Member(id)
		if !ok {
			return nil, taskModel.ErrUnknownMember
		}
		candidates = append(candidates, m)
	}

	w := capacity.Count(capacity.ProjectScope(state.ProjectID), state.Tasks, state.Members)
	warnings := capacity.Warnings(candidates, w)
	for _, warn := range warnings {
		s.metrics.CapacityWarning(string(warn.Severity))
	}
	return warnings, nil
}

func (s *service) selectBest(state *repository.ProjectState) (capacity.Selection, error) {
	w := capacity.Count(capacity.ProjectScope(state.ProjectID), state.Tasks, state.Members)
	sel, err := capacity.SelectBest(state.Members, w)
	switch {
	case err == nil:
		s.metrics.AutoAssign(metrics.OutcomeAssigned)
	case errors.Is(err, capacity.ErrNoMembers):
		s.metrics.AutoAssign(metrics.OutcomeNoMembers)
	case errors.Is(err, capacity.ErrNoneAvailable):
		s.metrics.AutoAssign(metrics.OutcomeNoneAvailable)
	default:
		s.metrics.AutoAssign(metrics.OutcomeError)
	}
	return sel, err
}

// restore holds a negotiation again after a failed resolution.
func (s *service) restore(ctx context.Context, held *capacity.Negotiation) {
	if err := s.sessions.Save(ctx, held, s.sessionTTL); err != nil {
		s.logger.Errorw("failed to restore negotiation", "negotiation_id", held.ID, "error", err)
	}
}

func validateDraft(d capacity.Draft) error {
	if strings.TrimSpace(d.Title) == "" {
		return taskModel.ErrInvalidTitle
	}
	if d.Status != "" && !d.Status.Valid() {
		return taskModel.ErrInvalidStatus
	}
	if d.Priority != "" && !d.Priority.Valid() {
		return taskModel.ErrInvalidPriority
	}
	return nil
}

func isNoCandidate(err error) bool {
	return errors.Is(err, capacity.ErrNoneAvailable) || errors.Is(err, capacity.ErrNoMembers)
}

func mapSessionError(err error) error {
	if errors.Is(err, store.ErrNotFound) {
		return assignmentModel.ErrNegotiationNotFound
	}
	return err
}

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
