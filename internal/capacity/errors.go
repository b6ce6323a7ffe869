package capacity

import "errors"

var (
	// ErrNoneAvailable indicates that no candidate has spare capacity.
	// It is a recoverable condition: the operator may still assign anyway.
	ErrNoneAvailable = errors.New("no team members have available capacity")
	// ErrNoMembers indicates that the project's team has no members.
	ErrNoMembers = errors.New("no team members found")
	// ErrInvalidTransition indicates a negotiation decision that is not valid in the current state.
	ErrInvalidTransition = errors.New("invalid negotiation transition")
	// ErrUnknownDecision indicates an unrecognised operator decision.
	ErrUnknownDecision = errors.New("unknown negotiation decision")
)
