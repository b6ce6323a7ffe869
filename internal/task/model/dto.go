package model

import "time"

// CreateTaskRequest represents the request to create a task.
type CreateTaskRequest struct {
	ProjectID         string   `json:"projectId"         binding:"required"`
	Title             string   `json:"title"             binding:"required"`
	Description       string   `json:"description"`
	Status            string   `json:"status"`
	Priority          string   `json:"priority"`
	AssignedMemberIDs []string `json:"assignedMemberIds"`
	CreatedBy         string   `json:"createdBy"`
}

// UpdateTaskRequest changes the fields that are present.
// A present AssignedMemberIDs replaces the whole assignee set.
type UpdateTaskRequest struct {
	Title             *string   `json:"title"`
	Description       *string   `json:"description"`
	Status            *string   `json:"status"`
	Priority          *string   `json:"priority"`
	AssignedMemberIDs *[]string `json:"assignedMemberIds"`
}

// TaskResponse is a task in API responses.
type TaskResponse struct {
	ID                string    `json:"id"`
	Title             string    `json:"title"`
	Description       string    `json:"description"`
	ProjectID         string    `json:"projectId"`
	Status            string    `json:"status"`
	Priority          string    `json:"priority"`
	AssignedMemberIDs []string  `json:"assignedMemberIds"`
	CreatedBy         string    `json:"createdBy"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewTaskResponse builds the API view of a task.
func NewTaskResponse(t *Task) *TaskResponse {
	return &TaskResponse{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		ProjectID:         t.ProjectID,
		Status:            t.Status,
		Priority:          t.Priority,
		AssignedMemberIDs: t.AssigneeIDs(),
		CreatedBy:         t.CreatedBy,
		CreatedAt:         t.CreatedAt,
		UpdatedAt:         t.UpdatedAt,
	}
}

// NewTaskResponses builds the API view of a task list.
func NewTaskResponses(tasks []Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, *NewTaskResponse(&tasks[i]))
	}
	return out
}
