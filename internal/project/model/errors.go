package model

import "errors"

var (
	// ErrProjectNotFound indicates that the requested project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrInvalidProjectName indicates that the project name is empty.
	ErrInvalidProjectName = errors.New("invalid project name")
	// ErrInvalidOwner indicates that the owner id is empty.
	ErrInvalidOwner = errors.New("owner id is required")
	// ErrTeamRequired indicates that the referenced team does not exist.
	ErrTeamRequired = errors.New("project must reference an existing team")
)
