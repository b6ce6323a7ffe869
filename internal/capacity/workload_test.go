package capacity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCount(t *testing.T) {
	members := []Member{
		{ID: "a", Name: "A", Capacity: 3},
		{ID: "b", Name: "B", Capacity: 3},
		{ID: "c", Name: "C", Capacity: 3},
	}
	tasks := []Task{
		{ID: "t1", ProjectID: "p1", AssigneeIDs: []string{"a"}},
		{ID: "t2", ProjectID: "p1", AssigneeIDs: []string{"a", "b"}},
		{ID: "t3", ProjectID: "p2", AssigneeIDs: []string{"a"}},
		{ID: "t4", ProjectID: "p1", AssigneeIDs: nil},
		{ID: "t5", ProjectID: "p1", AssigneeIDs: []string{"stranger"}},
	}

	t.Run("project scope", func(t *testing.T) {
		w := Count(ProjectScope("p1"), tasks, members)
		assert.Equal(t, Workload{"a": 2, "b": 1, "c": 0}, w)
	})

	t.Run("all projects", func(t *testing.T) {
		w := Count(AllProjects(), tasks, members)
		assert.Equal(t, Workload{"a": 3, "b": 1, "c": 0}, w)
	})

	t.Run("unknown project yields zeros", func(t *testing.T) {
		w := Count(ProjectScope("nope"), tasks, members)
		assert.Equal(t, Workload{"a": 0, "b": 0, "c": 0}, w)
	})

	t.Run("repeatable on a fixed snapshot", func(t *testing.T) {
		first := Count(ProjectScope("p1"), tasks, members)
		second := Count(ProjectScope("p1"), tasks, members)
		assert.Equal(t, first, second)
	})

	t.Run("empty roster", func(t *testing.T) {
		assert.Empty(t, Count(AllProjects(), tasks, nil))
	})
}

func TestWorkload_Clone(t *testing.T) {
	w := Workload{"a": 1}
	c := w.Clone()
	c["a"] = 5
	assert.Equal(t, 1, w["a"])
}
