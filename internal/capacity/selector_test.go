package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectBest(t *testing.T) {
	riya := Member{ID: "riya", Name: "Riya", Capacity: 3}
	farhan := Member{ID: "farhan", Name: "Farhan", Capacity: 5}

	t.Run("most available capacity wins", func(t *testing.T) {
		sel, err := SelectBest([]Member{riya, farhan}, Workload{"riya": 4, "farhan": 2})

		require.NoError(t, err)
		assert.Equal(t, "farhan", sel.Member.ID)
		assert.Equal(t, 3, sel.Available)
		assert.Equal(t, "Auto-assigned to Farhan (3 tasks available)", sel.Message())
	})

	t.Run("zero available does not qualify", func(t *testing.T) {
		_, err := SelectBest([]Member{riya}, Workload{"riya": 3})
		assert.ErrorIs(t, err, ErrNoneAvailable)
	})

	t.Run("empty roster", func(t *testing.T) {
		_, err := SelectBest(nil, Workload{})
		assert.ErrorIs(t, err, ErrNoMembers)
	})

	t.Run("ties go to declared order", func(t *testing.T) {
		a := Member{ID: "a", Name: "A", Capacity: 4}
		b := Member{ID: "b", Name: "B", Capacity: 5}
		c := Member{ID: "c", Name: "C", Capacity: 3}
		w := Workload{"a": 1, "b": 2, "c": 0}

		sel, err := SelectBest([]Member{a, b, c}, w)
		require.NoError(t, err)
		assert.Equal(t, "a", sel.Member.ID)

		sel, err = SelectBest([]Member{c, b, a}, w)
		require.NoError(t, err)
		assert.Equal(t, "c", sel.Member.ID)
	})

	t.Run("deterministic across repeated calls", func(t *testing.T) {
		members := []Member{
			{ID: "x", Capacity: 2}, {ID: "y", Capacity: 4}, {ID: "z", Capacity: 4},
		}
		w := Workload{"x": 0, "y": 2, "z": 2}
		first, err := SelectBest(members, w)
		require.NoError(t, err)
		for i := 0; i < 20; i++ {
			next, err := SelectBest(members, w)
			require.NoError(t, err)
			assert.Equal(t, first.Member.ID, next.Member.ID)
		}
		assert.Equal(t, "x", first.Member.ID)
	})

	t.Run("missing workload entry counts as zero", func(t *testing.T) {
		sel, err := SelectBest([]Member{riya}, Workload{})
		require.NoError(t, err)
		assert.Equal(t, 3, sel.Available)
	})
}
