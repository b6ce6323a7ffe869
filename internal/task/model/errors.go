package model

import "errors"

var (
	// ErrTaskNotFound indicates that the requested task does not exist.
	ErrTaskNotFound = errors.New("task not found")
	// ErrInvalidTitle indicates an empty task title.
	ErrInvalidTitle = errors.New("task title is required")
	// ErrInvalidStatus indicates a status outside Pending, In Progress and Done.
	ErrInvalidStatus = errors.New("invalid task status")
	// ErrInvalidPriority indicates a priority outside Low, Medium and High.
	ErrInvalidPriority = errors.New("invalid task priority")
	// ErrUnknownMember indicates an assignee that is not on the project's team.
	ErrUnknownMember = errors.New("assignee is not a member of the project's team")
	// ErrProjectRequired indicates a request without a project id.
	ErrProjectRequired = errors.New("project id is required")
)
