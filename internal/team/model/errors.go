package model

import "errors"

var (
	// ErrTeamNotFound indicates that the requested team does not exist.
	ErrTeamNotFound = errors.New("team not found")
	// ErrInvalidTeamName indicates that the provided team name is empty.
	ErrInvalidTeamName = errors.New("invalid team name")
	// ErrInvalidOwner indicates that the owner id is empty.
	ErrInvalidOwner = errors.New("owner id is required")
	// ErrInvalidMemberName indicates a member without a name.
	ErrInvalidMemberName = errors.New("member name is required")
	// ErrDuplicateMember indicates two members with the same name in one team.
	ErrDuplicateMember = errors.New("member names must be unique within a team")
	// ErrInvalidRole indicates a role outside the fixed enumeration.
	ErrInvalidRole = errors.New("invalid member role")
	// ErrInvalidCapacity indicates a capacity below 1.
	ErrInvalidCapacity = errors.New("member capacity must be at least 1")
)
