// Package model provides the request and response types of the assignment endpoints.
package model

import (
	"time"

	"github.com/festy23/task_capacity/internal/capacity"
	taskModel "github.com/festy23/task_capacity/internal/task/model"
)

// EvaluateRequest asks for the capacity warnings of candidate assignees.
type EvaluateRequest struct {
	ProjectID string   `json:"projectId" binding:"required"`
	MemberIDs []string `json:"memberIds"`
}

// EvaluateResponse lists the candidates at or over capacity in the project.
type EvaluateResponse struct {
	ProjectID       string                     `json:"projectId"`
	Warnings        []capacity.CapacityWarning `json:"warnings"`
	HasOverCapacity bool                       `json:"hasOverCapacity"`
}

// AutoAssignRequest asks for the best-fit member of a project's team.
type AutoAssignRequest struct {
	ProjectID string `json:"projectId" binding:"required"`
}

// AutoAssignResponse is the member chosen by auto-assign.
type AutoAssignResponse struct {
	AssignedMember    capacity.Member `json:"assignedMember"`
	AvailableCapacity int             `json:"availableCapacity"`
	Message           string          `json:"message"`
}

// ReassignRequest triggers a bulk reassignment over an owner's projects.
type ReassignRequest struct {
	OwnerID string `json:"ownerId" binding:"required"`
}

// MemberRef identifies a member in a move.
type MemberRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// MoveResponse is one applied reassignment.
type MoveResponse struct {
	TaskID    string    `json:"taskId"`
	TaskTitle string    `json:"taskTitle"`
	ProjectID string    `json:"projectId"`
	From      MemberRef `json:"from"`
	To        MemberRef `json:"to"`
	Timestamp time.Time `json:"timestamp"`
}

// NewMoveResponse builds the API view of a move.
func NewMoveResponse(mv capacity.Move) MoveResponse {
	return MoveResponse{
		TaskID:    mv.TaskID,
		TaskTitle: mv.TaskTitle,
		ProjectID: mv.ProjectID,
		From:      MemberRef{ID: mv.From.ID, Name: mv.From.Name},
		To:        MemberRef{ID: mv.To.ID, Name: mv.To.Name},
		Timestamp: mv.At,
	}
}

// ReassignResponse summarises a bulk reassignment.
type ReassignResponse struct {
	ReassignedCount int            `json:"reassignedCount"`
	SkippedCount    int            `json:"skippedCount"`
	UnresolvedCount int            `json:"unresolvedCount"`
	Message         string         `json:"message"`
	Moves           []MoveResponse `json:"moves"`
}

// NegotiateRequest is a task draft submitted with capacity negotiation.
type NegotiateRequest struct {
	ProjectID         string   `json:"projectId"         binding:"required"`
	Title             string   `json:"title"             binding:"required"`
	Description       string   `json:"description"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	AssignedMemberIDs []string `json:"assignedMemberIds"`
	CreatedBy         string   `json:"createdBy"`
}

// ResolveRequest carries the operator's decision on a warned negotiation.
type ResolveRequest struct {
	Decision string `json:"decision" binding:"required"`
}

// Negotiation outcomes.
const (
	// OutcomeCreated means the task was created.
	OutcomeCreated = "created"
	// OutcomeWarned means the draft is held until the operator decides.
	OutcomeWarned = "warned"
	// OutcomeCancelled means nothing was created and the draft comes back without assignees.
	OutcomeCancelled = "cancelled"
	// OutcomeAutoAssignFailed means nobody had spare capacity; the draft comes back intact.
	OutcomeAutoAssignFailed = "auto_assign_failed"
)

// NegotiationResponse is the result of submitting or resolving a negotiation.
type NegotiationResponse struct {
	Outcome       string                     `json:"outcome"`
	NegotiationID string                     `json:"negotiationId,omitempty"`
	State         capacity.NegotiationState  `json:"state"`
	Task          *taskModel.TaskResponse    `json:"task,omitempty"`
	Draft         *capacity.Draft            `json:"draft,omitempty"`
	Warnings      []capacity.CapacityWarning `json:"warnings,omitempty"`
	Message       string                     `json:"message,omitempty"`
	ExpiresAt     *time.Time                 `json:"expiresAt,omitempty"`
}
