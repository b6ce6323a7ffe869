package store

import (
	"context"
	"sync"
	"time"

	"github.com/festy23/task_capacity/internal/capacity"
)

type entry struct {
	data      []byte
	expiresAt time.Time
}

// Memory is an in-process Store. Entries are encoded on save, so callers
// never share state with what is stored.
type Memory struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

// NewMemory creates an empty in-process store.
func NewMemory() *Memory {
	return &Memory{entries: make(map[string]entry), now: time.Now}
}

// Save stores the negotiation under its id for ttl.
func (m *Memory) Save(_ context.Context, n *capacity.Negotiation, ttl time.Duration) error {
	data, err := encode(n)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictExpired()
	m.entries[n.ID] = entry{data: data, expiresAt: m.now().Add(ttl)}
	return nil
}

// Get returns a stored negotiation without consuming it.
func (m *Memory) Get(_ context.Context, id string) (*capacity.Negotiation, error) {
	m.mu.Lock()
	e, ok := m.lookup(id)
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(e.data)
}

// Take atomically removes and returns a stored negotiation.
func (m *Memory) Take(_ context.Context, id string) (*capacity.Negotiation, error) {
	m.mu.Lock()
	e, ok := m.lookup(id)
	delete(m.entries, id)
	m.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}
	return decode(e.data)
}

// Check always succeeds.
func (m *Memory) Check(context.Context) error {
	return nil
}

// Len returns the number of live entries.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.evictExpired()
	return len(m.entries)
}

// lookup must be called with mu held.
func (m *Memory) lookup(id string) (entry, bool) {
	e, ok := m.entries[id]
	if !ok {
		return entry{}, false
	}
	if !m.now().Before(e.expiresAt) {
		delete(m.entries, id)
		return entry{}, false
	}
	return e, true
}

// evictExpired must be called with mu held.
func (m *Memory) evictExpired() {
	now := m.now()
	for id, e := range m.entries {
		if !now.Before(e.expiresAt) {
			delete(m.entries, id)
		}
	}
}
