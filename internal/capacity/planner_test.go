package capacity

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func tasksFor(projectID, memberID string, n int, offset int) []Task {
	tasks := make([]Task, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, Task{
			ID:          fmt.Sprintf("%s-%d", memberID, i+1),
			Title:       fmt.Sprintf("%s task %d", memberID, i+1),
			ProjectID:   projectID,
			Status:      StatusPending,
			Priority:    PriorityMedium,
			AssigneeIDs: []string{memberID},
			CreatedAt:   baseTime.Add(time.Duration(offset+i) * time.Hour),
		})
	}
	return tasks
}

// applyPlan returns a copy of the snapshot with every move applied.
func applyPlan(s Snapshot, plan Plan) Snapshot {
	out := Snapshot{OwnerID: s.OwnerID}
	for _, p := range s.Projects {
		p.Tasks = cloneTasks(p.Tasks)
		for _, mv := range plan.Moves {
			if mv.ProjectID != p.ProjectID {
				continue
			}
			for i := range p.Tasks {
				if p.Tasks[i].ID == mv.TaskID {
					replaceAssignee(&p.Tasks[i], mv.From.ID, mv.To.ID)
				}
			}
		}
		out.Projects = append(out.Projects, p)
	}
	return out
}

func TestPlanReassignment_MovesNewestExcess(t *testing.T) {
	sara := Member{ID: "sara", Name: "Sara", Capacity: 3}
	farhan := Member{ID: "farhan", Name: "Farhan", Capacity: 5}
	tasks := append(tasksFor("p1", "sara", 5, 0), tasksFor("p1", "farhan", 2, 10)...)
	s := Snapshot{Projects: []ProjectSnapshot{{
		ProjectID: "p1", Members: []Member{sara, farhan}, Tasks: tasks,
	}}}

	plan := PlanReassignment(s, baseTime)

	require.Len(t, plan.Moves, 2)
	assert.Equal(t, "sara-5", plan.Moves[0].TaskID)
	assert.Equal(t, "sara-4", plan.Moves[1].TaskID)
	for _, mv := range plan.Moves {
		assert.Equal(t, "sara", mv.From.ID)
		assert.Equal(t, "farhan", mv.To.ID)
		assert.Equal(t, "p1", mv.ProjectID)
		assert.Equal(t, baseTime, mv.At)
	}
	assert.Equal(t, 0, plan.Unresolved)
	assert.Equal(t, 1, plan.OverloadedMembers)

	after := applyPlan(s, plan)
	w := Count(ProjectScope("p1"), after.Projects[0].Tasks, after.Projects[0].Members)
	assert.Equal(t, 3, w["sara"])
	assert.Equal(t, 4, w["farhan"])
	assert.Equal(t, "Reassigned 2 task(s) across 1 project(s)", plan.Summary())
}

func TestPlanReassignment_DoesNotMutateSnapshot(t *testing.T) {
	s := Snapshot{Projects: []ProjectSnapshot{{
		ProjectID: "p1",
		Members:   []Member{{ID: "a", Capacity: 1}, {ID: "b", Capacity: 5}},
		Tasks:     tasksFor("p1", "a", 3, 0),
	}}}

	plan := PlanReassignment(s, baseTime)

	require.Len(t, plan.Moves, 2)
	for _, task := range s.Projects[0].Tasks {
		assert.Equal(t, []string{"a"}, task.AssigneeIDs)
	}
}

func TestPlanReassignment_SequentialMoves(t *testing.T) {
	a := Member{ID: "a", Name: "A", Capacity: 1}
	b := Member{ID: "b", Name: "B", Capacity: 2}
	c := Member{ID: "c", Name: "C", Capacity: 2}
	tasks := append(tasksFor("p1", "a", 3, 0), tasksFor("p1", "b", 1, 10)...)
	tasks = append(tasks, tasksFor("p1", "c", 1, 20)...)
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p1", Members: []Member{a, b, c}, Tasks: tasks}}}

	plan := PlanReassignment(s, baseTime)

	require.Len(t, plan.Moves, 2)
	assert.Equal(t, "b", plan.Moves[0].To.ID)
	assert.Equal(t, "c", plan.Moves[1].To.ID)

	after := applyPlan(s, plan)
	w := Count(ProjectScope("p1"), after.Projects[0].Tasks, after.Projects[0].Members)
	assert.Equal(t, Workload{"a": 1, "b": 2, "c": 2}, w)
}

func TestPlanReassignment_NoTargetLeavesTaskInPlace(t *testing.T) {
	a := Member{ID: "a", Name: "A", Capacity: 1}
	b := Member{ID: "b", Name: "B", Capacity: 1}
	tasks := append(tasksFor("p1", "a", 3, 0), tasksFor("p1", "b", 1, 10)...)
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p1", Members: []Member{a, b}, Tasks: tasks}}}

	plan := PlanReassignment(s, baseTime)

	assert.Empty(t, plan.Moves)
	assert.Equal(t, 2, plan.Unresolved)
	assert.Contains(t, plan.Summary(), "No tasks reassigned")
}

func TestPlanReassignment_PartialResolution(t *testing.T) {
	a := Member{ID: "a", Name: "A", Capacity: 1}
	b := Member{ID: "b", Name: "B", Capacity: 2}
	tasks := append(tasksFor("p1", "a", 4, 0), tasksFor("p1", "b", 1, 10)...)
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p1", Members: []Member{a, b}, Tasks: tasks}}}

	plan := PlanReassignment(s, baseTime)

	require.Len(t, plan.Moves, 1)
	assert.Equal(t, "a-4", plan.Moves[0].TaskID)
	assert.Equal(t, 2, plan.Unresolved)
	assert.Equal(t, "Reassigned 1 task(s); 2 task(s) remain over capacity with no available team member", plan.Summary())
}

func TestPlanReassignment_SkipsDoneTasks(t *testing.T) {
	a := Member{ID: "a", Name: "A", Capacity: 1}
	b := Member{ID: "b", Name: "B", Capacity: 5}
	tasks := tasksFor("p1", "a", 3, 0)
	tasks[2].Status = StatusDone
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p1", Members: []Member{a, b}, Tasks: tasks}}}

	plan := PlanReassignment(s, baseTime)

	require.Len(t, plan.Moves, 2)
	assert.Equal(t, "a-2", plan.Moves[0].TaskID)
	assert.Equal(t, "a-1", plan.Moves[1].TaskID)
}

func TestPlanReassignment_OverloadedByCompletedTasksOnly(t *testing.T) {
	a := Member{ID: "a", Name: "Sara", Capacity: 1}
	b := Member{ID: "b", Name: "Farhan", Capacity: 5}
	tasks := tasksFor("p1", "a", 2, 0)
	for i := range tasks {
		tasks[i].Status = StatusDone
	}
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p1", Members: []Member{a, b}, Tasks: tasks}}}

	plan := PlanReassignment(s, baseTime)

	assert.Empty(t, plan.Moves)
	assert.Zero(t, plan.Unresolved)
	assert.Equal(t, 1, plan.OverloadedMembers)
	assert.Equal(t, "No tasks reassigned: overloaded members hold only completed tasks", plan.Summary())
}

func TestPlanReassignment_ExcludesMembersAlreadyOnTask(t *testing.T) {
	a := Member{ID: "a", Name: "A", Capacity: 1}
	b := Member{ID: "b", Name: "B", Capacity: 5}
	c := Member{ID: "c", Name: "C", Capacity: 2}
	tasks := tasksFor("p1", "a", 2, 0)
	tasks[1].AssigneeIDs = []string{"a", "b"}
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p1", Members: []Member{a, b, c}, Tasks: tasks}}}

	plan := PlanReassignment(s, baseTime)

	require.Len(t, plan.Moves, 1)
	assert.Equal(t, "a-2", plan.Moves[0].TaskID)
	assert.Equal(t, "c", plan.Moves[0].To.ID)

	after := applyPlan(s, plan)
	assert.ElementsMatch(t, []string{"c", "b"}, after.Projects[0].Tasks[1].AssigneeIDs)
}

func TestPlanReassignment_ProjectsAreIndependent(t *testing.T) {
	a := Member{ID: "a", Name: "A", Capacity: 2}
	b := Member{ID: "b", Name: "B", Capacity: 2}
	s := Snapshot{Projects: []ProjectSnapshot{
		{ProjectID: "p1", Members: []Member{a, b}, Tasks: tasksFor("p1", "a", 2, 0)},
		{ProjectID: "p2", Members: []Member{a, b}, Tasks: tasksFor("p2", "a", 2, 10)},
	}}

	plan := PlanReassignment(s, baseTime)

	assert.Empty(t, plan.Moves)
	assert.Equal(t, 0, plan.OverloadedMembers)
	assert.Equal(t, 2, plan.Projects)
	assert.Equal(t, "No reassignment needed: all team members are within capacity", plan.Summary())
}

func TestPlanReassignment_EmptyTeam(t *testing.T) {
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "orphan", Tasks: tasksFor("orphan", "ghost", 3, 0)}}}

	plan := PlanReassignment(s, baseTime)

	assert.Empty(t, plan.Moves)
	assert.Equal(t, 0, plan.Unresolved)
}

func TestPlanReassignment_IdempotentAtFixedPoint(t *testing.T) {
	sara := Member{ID: "sara", Name: "Sara", Capacity: 3}
	farhan := Member{ID: "farhan", Name: "Farhan", Capacity: 5}
	tasks := append(tasksFor("p1", "sara", 5, 0), tasksFor("p1", "farhan", 2, 10)...)
	s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p1", Members: []Member{sara, farhan}, Tasks: tasks}}}

	first := PlanReassignment(s, baseTime)
	require.Len(t, first.Moves, 2)

	second := PlanReassignment(applyPlan(s, first), baseTime)
	assert.Empty(t, second.Moves)
}

func TestPlanReassignment_RandomisedProperties(t *testing.T) {
	//nolint:gosec // deterministic fixtures
	r := rand.New(rand.NewSource(42))

	for round := 0; round < 200; round++ {
		members := make([]Member, 2+r.Intn(4))
		for i := range members {
			members[i] = Member{ID: fmt.Sprintf("m%d", i), Name: fmt.Sprintf("M%d", i), Capacity: 1 + r.Intn(4)}
		}
		var tasks []Task
		taskCount := r.Intn(15)
		for i := 0; i < taskCount; i++ {
			task := Task{
				ID:        fmt.Sprintf("t%02d", i),
				ProjectID: "p",
				Status:    StatusPending,
				CreatedAt: baseTime.Add(time.Duration(r.Intn(5)) * time.Hour),
			}
			if r.Intn(5) == 0 {
				task.Status = StatusDone
			}
			first := members[r.Intn(len(members))].ID
			task.AssigneeIDs = []string{first}
			if r.Intn(4) == 0 {
				second := members[r.Intn(len(members))].ID
				if second != first {
					task.AssigneeIDs = append(task.AssigneeIDs, second)
				}
			}
			tasks = append(tasks, task)
		}
		s := Snapshot{Projects: []ProjectSnapshot{{ProjectID: "p", Members: members, Tasks: tasks}}}

		before := Count(ProjectScope("p"), tasks, members)
		plan := PlanReassignment(s, baseTime)
		after := applyPlan(s, plan)
		afterW := Count(ProjectScope("p"), after.Projects[0].Tasks, members)

		for _, m := range members {
			if afterW[m.ID] > before[m.ID] {
				assert.LessOrEqual(t, afterW[m.ID], m.Capacity, "round %d: member %s pushed over capacity", round, m.ID)
			}
		}
		for _, task := range after.Projects[0].Tasks {
			seen := map[string]bool{}
			for _, id := range task.AssigneeIDs {
				assert.False(t, seen[id], "round %d: duplicate assignee on %s", round, task.ID)
				seen[id] = true
			}
		}

		again := PlanReassignment(after, baseTime)
		assert.Empty(t, again.Moves, "round %d: second pass moved tasks", round)
	}
}
