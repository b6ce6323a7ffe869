package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/festy23/task_capacity/internal/capacity"
)

func TestNewReassignment(t *testing.T) {
	at := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	a := NewReassignment("owner", capacity.Move{
		TaskID:    "t5",
		TaskTitle: "Checkout",
		ProjectID: "p1",
		From:      capacity.Member{ID: "sara", Name: "Sara"},
		To:        capacity.Member{ID: "farhan", Name: "Farhan"},
		At:        at,
	})

	assert.NotEmpty(t, a.ID)
	assert.Equal(t, KindReassigned, a.Kind)
	assert.Equal(t, "sara", a.FromMemberID)
	assert.Equal(t, "Farhan", a.ToMemberName)
	assert.Equal(t, `Reassigned "Checkout" from Sara to Farhan`, a.Message)
	assert.Equal(t, at, a.CreatedAt)
}

func TestNewAutoAssigned(t *testing.T) {
	sel := capacity.Selection{Member: capacity.Member{ID: "farhan", Name: "Farhan"}, Available: 3}
	a := NewAutoAssigned("owner", "t1", "Login", "p1", sel, time.Now())

	assert.Equal(t, KindAutoAssigned, a.Kind)
	assert.Equal(t, "Auto-assigned to Farhan (3 tasks available)", a.Message)
	assert.Empty(t, a.FromMemberID)
}
