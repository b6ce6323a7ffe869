package model

import "errors"

var (
	// ErrNegotiationNotFound indicates a negotiation that expired, was resolved, or never existed.
	ErrNegotiationNotFound = errors.New("negotiation not found or expired")
	// ErrOwnerRequired indicates a reassignment request without an owner.
	ErrOwnerRequired = errors.New("owner id is required")
)
