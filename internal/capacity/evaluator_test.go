package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name         string
		capacity     int
		current      int
		wantStatus   Status
		wantWarning  bool
		wantOver     bool
		wantSeverity Severity
	}{
		{name: "idle member", capacity: 5, current: 0, wantStatus: StatusNormal},
		{name: "below near threshold", capacity: 5, current: 3, wantStatus: StatusNormal},
		{name: "near capacity", capacity: 5, current: 4, wantStatus: StatusNearCapacity},
		{
			name: "at capacity", capacity: 3, current: 3, wantStatus: StatusNearCapacity,
			wantWarning: true, wantOver: false, wantSeverity: SeverityWarning,
		},
		{
			name: "over capacity", capacity: 3, current: 4, wantStatus: StatusOverloaded,
			wantWarning: true, wantOver: true, wantSeverity: SeverityError,
		},
		{
			name: "zero capacity with no tasks", capacity: 0, current: 0, wantStatus: StatusNearCapacity,
			wantWarning: true, wantOver: false, wantSeverity: SeverityWarning,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Member{ID: "m1", Name: "Riya", Capacity: tt.capacity}
			e := Evaluate(m, tt.current)

			assert.Equal(t, tt.wantStatus, e.Status)
			assert.Equal(t, tt.capacity-tt.current, e.Available)
			assert.Equal(t, tt.current > tt.capacity, e.IsOverloaded())

			if !tt.wantWarning {
				assert.Nil(t, e.Warning)
				return
			}
			require.NotNil(t, e.Warning)
			assert.Equal(t, tt.wantOver, e.Warning.IsOverCapacity)
			assert.Equal(t, tt.wantSeverity, e.Warning.Severity)
			assert.Equal(t, tt.current, e.Warning.CurrentTasks)
			assert.Equal(t, tt.capacity, e.Warning.Capacity)
			assert.Equal(t, "Riya", e.Warning.MemberName)
		})
	}
}

func TestEvaluate_WarningRuleHoldsForAllLoads(t *testing.T) {
	for capacity := 1; capacity <= 6; capacity++ {
		for current := 0; current <= 9; current++ {
			e := Evaluate(Member{ID: "m", Name: "M", Capacity: capacity}, current)
			assert.Equal(t, capacity-current, AvailableCapacity(e.Member, current))
			assert.Equal(t, current >= capacity, e.Warning != nil, "capacity=%d current=%d", capacity, current)
			if e.Warning != nil {
				assert.Equal(t, current > capacity, e.Warning.Severity == SeverityError)
			}
		}
	}
}

func TestEvaluate_Message(t *testing.T) {
	e := Evaluate(Member{ID: "riya", Name: "Riya", Capacity: 3}, 4)
	require.NotNil(t, e.Warning)
	assert.Equal(t, "Riya has 4 tasks but capacity is 3.", e.Warning.Message)
}

func TestWarnings(t *testing.T) {
	riya := Member{ID: "riya", Name: "Riya", Capacity: 3}
	farhan := Member{ID: "farhan", Name: "Farhan", Capacity: 5}

	t.Run("one over-capacity warning", func(t *testing.T) {
		w := Workload{"riya": 4, "farhan": 2}

		warnings := Warnings([]Member{riya, farhan}, w)

		require.Len(t, warnings, 1)
		assert.Equal(t, "Riya", warnings[0].MemberName)
		assert.True(t, warnings[0].IsOverCapacity)
		assert.Equal(t, 4, warnings[0].CurrentTasks)
		assert.Equal(t, 3, warnings[0].Capacity)
		assert.Equal(t, SeverityError, warnings[0].Severity)
		assert.True(t, HasOverCapacity(warnings))
	})

	t.Run("at capacity is a warning not an error", func(t *testing.T) {
		warnings := Warnings([]Member{riya}, Workload{"riya": 3})

		require.Len(t, warnings, 1)
		assert.False(t, warnings[0].IsOverCapacity)
		assert.Equal(t, SeverityWarning, warnings[0].Severity)
		assert.False(t, HasOverCapacity(warnings))
	})

	t.Run("no warnings returns empty slice", func(t *testing.T) {
		warnings := Warnings([]Member{riya, farhan}, Workload{})
		assert.NotNil(t, warnings)
		assert.Empty(t, warnings)
	})

	t.Run("warnings follow candidate order", func(t *testing.T) {
		w := Workload{"riya": 3, "farhan": 7}
		warnings := Warnings([]Member{farhan, riya}, w)
		require.Len(t, warnings, 2)
		assert.Equal(t, "Farhan", warnings[0].MemberName)
		assert.Equal(t, "Riya", warnings[1].MemberName)
	})
}
