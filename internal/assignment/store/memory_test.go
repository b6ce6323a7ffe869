package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festy23/task_capacity/internal/capacity"
)

func warnedNegotiation(id string) *capacity.Negotiation {
	n := capacity.NewNegotiation(id, time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	warnings := capacity.Warnings([]capacity.Member{{ID: "riya", Name: "Riya", Capacity: 3}}, capacity.Workload{"riya": 4})
	_, _ = n.Submit(capacity.Draft{ProjectID: "p1", Title: "Login", AssigneeIDs: []string{"riya"}}, warnings)
	return n
}

func TestMemory_SaveGetTake(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	n := warnedNegotiation("n1")

	require.NoError(t, s.Save(ctx, n, time.Minute))
	n.Draft.AssigneeIDs[0] = "mutated"

	got, err := s.Get(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, capacity.StateWarned, got.State)
	assert.Equal(t, []string{"riya"}, got.Draft.AssigneeIDs)
	require.Len(t, got.Warnings, 1)
	assert.True(t, got.Warnings[0].IsOverCapacity)

	taken, err := s.Take(ctx, "n1")
	require.NoError(t, err)
	assert.Equal(t, "n1", taken.ID)

	_, err = s.Take(ctx, "n1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, s.Check(ctx))
}

func TestMemory_Expiry(t *testing.T) {
	s := NewMemory()
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, warnedNegotiation("short"), time.Minute))
	require.NoError(t, s.Save(ctx, warnedNegotiation("long"), time.Hour))
	assert.Equal(t, 2, s.Len())

	now = now.Add(time.Minute)
	_, err := s.Take(ctx, "short")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, s.Len())

	_, err = s.Get(ctx, "long")
	assert.NoError(t, err)
}

func TestMemory_TakeIsExclusive(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()
	require.NoError(t, s.Save(ctx, warnedNegotiation("n1"), time.Minute))

	var wg sync.WaitGroup
	var mu sync.Mutex
	winners := 0
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := s.Take(ctx, "n1"); err == nil {
				mu.Lock()
				winners++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, winners)
}
