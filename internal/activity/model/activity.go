// Package model provides the activity log entry and its API view.
package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/festy23/task_capacity/internal/capacity"
)

// Activity kinds.
const (
	KindReassigned   = "reassigned"
	KindTaskCreated  = "task_created"
	KindAutoAssigned = "auto_assigned"
)

// Activity is one entry of an owner's activity log.
type Activity struct {
	ID             string    `gorm:"primaryKey;column:id;type:varchar(36)"                     json:"id"`
	OwnerID        string    `gorm:"column:owner_id;type:varchar(255);not null;index:idx_activities_owner_created" json:"ownerId"`
	Kind           string    `gorm:"column:kind;type:varchar(32);not null"                     json:"kind"`
	TaskID         string    `gorm:"column:task_id;type:varchar(36);not null;default:''"       json:"taskId"`
	TaskTitle      string    `gorm:"column:task_title;type:varchar(255);not null;default:''"   json:"taskTitle"`
	ProjectID      string    `gorm:"column:project_id;type:varchar(36);not null;default:''"    json:"projectId"`
	FromMemberID   string    `gorm:"column:from_member_id;type:varchar(36);not null;default:''" json:"fromMemberId,omitempty"`
	FromMemberName string    `gorm:"column:from_member_name;type:varchar(255);not null;default:''" json:"fromMemberName,omitempty"`
	ToMemberID     string    `gorm:"column:to_member_id;type:varchar(36);not null;default:''"  json:"toMemberId,omitempty"`
	ToMemberName   string    `gorm:"column:to_member_name;type:varchar(255);not null;default:''" json:"toMemberName,omitempty"`
	Message        string    `gorm:"column:message;not null;default:''"                        json:"message"`
	CreatedAt      time.Time `gorm:"column:created_at;not null;index:idx_activities_owner_created" json:"createdAt"`
}

// TableName specifies the table name for GORM.
func (Activity) TableName() string {
	return "activities"
}

// NewReassignment records one move of a bulk reassignment.
func NewReassignment(ownerID string, mv capacity.Move) *Activity {
	return &Activity{
		ID:             uuid.NewString(),
		OwnerID:        ownerID,
		Kind:           KindReassigned,
		TaskID:         mv.TaskID,
		TaskTitle:      mv.TaskTitle,
		ProjectID:      mv.ProjectID,
		FromMemberID:   mv.From.ID,
		FromMemberName: mv.From.Name,
		ToMemberID:     mv.To.ID,
		ToMemberName:   mv.To.Name,
		Message:        fmt.Sprintf("Reassigned %q from %s to %s", mv.TaskTitle, mv.From.Name, mv.To.Name),
		CreatedAt:      mv.At,
	}
}

// NewTaskCreated records a task created through capacity negotiation.
func NewTaskCreated(ownerID, taskID, title, projectID string, at time.Time) *Activity {
	return &Activity{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Kind:      KindTaskCreated,
		TaskID:    taskID,
		TaskTitle: title,
		ProjectID: projectID,
		Message:   fmt.Sprintf("Created task %q", title),
		CreatedAt: at,
	}
}

// NewAutoAssigned records a task handed to the best-fit member.
func NewAutoAssigned(ownerID, taskID, title, projectID string, sel capacity.Selection, at time.Time) *Activity {
	return &Activity{
		ID:           uuid.NewString(),
		OwnerID:      ownerID,
		Kind:         KindAutoAssigned,
		TaskID:       taskID,
		TaskTitle:    title,
		ProjectID:    projectID,
		ToMemberID:   sel.Member.ID,
		ToMemberName: sel.Member.Name,
		Message:      sel.Message(),
		CreatedAt:    at,
	}
}
