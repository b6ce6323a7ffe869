// Package store keeps negotiations that are waiting for an operator decision.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/festy23/task_capacity/internal/capacity"
)

// ErrNotFound indicates a negotiation that never existed, expired, or was already resolved.
var ErrNotFound = errors.New("negotiation not found")

// Store holds warned negotiations until they are resolved or expire.
type Store interface {
	// Save stores the negotiation under its id for ttl.
	Save(ctx context.Context, n *capacity.Negotiation, ttl time.Duration) error
	// Get returns a stored negotiation without consuming it.
	Get(ctx context.Context, id string) (*capacity.Negotiation, error)
	// Take atomically removes and returns a stored negotiation.
	Take(ctx context.Context, id string) (*capacity.Negotiation, error)
	// Check reports whether the backend is reachable.
	Check(ctx context.Context) error
}

func encode(n *capacity.Negotiation) ([]byte, error) {
	data, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode negotiation: %w", err)
	}
	return data, nil
}

func decode(data []byte) (*capacity.Negotiation, error) {
	var n capacity.Negotiation
	if err := json.Unmarshal(data, &n); err != nil {
		return nil, fmt.Errorf("decode negotiation: %w", err)
	}
	return &n, nil
}
