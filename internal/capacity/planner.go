package capacity

import (
	"fmt"
	"sort"
	"time"
)

// Move reassigns one task from an overloaded member to a member with spare capacity.
type Move struct {
	TaskID    string    `json:"taskId"`
	TaskTitle string    `json:"taskTitle"`
	ProjectID string    `json:"projectId"`
	From      Member    `json:"from"`
	To        Member    `json:"to"`
	At        time.Time `json:"timestamp"`
}

// Plan is the result of a bulk reassignment pass over a snapshot.
type Plan struct {
	Moves []Move
	// Unresolved counts excess tasks left on an overloaded member for lack of a target.
	Unresolved int
	// OverloadedMembers counts member/project pairs over capacity before the pass.
	OverloadedMembers int
	// Projects is the number of projects examined.
	Projects int
}

// Summary renders the human-readable outcome of the pass.
func (p Plan) Summary() string {
	switch {
	case p.OverloadedMembers == 0:
		return "No reassignment needed: all team members are within capacity"
	case len(p.Moves) == 0 && p.Unresolved == 0:
		return "No tasks reassigned: overloaded members hold only completed tasks"
	case len(p.Moves) == 0:
		return fmt.Sprintf("No tasks reassigned: %d overloaded task(s) have no team member with available capacity", p.Unresolved)
	case p.Unresolved > 0:
		return fmt.Sprintf("Reassigned %d task(s); %d task(s) remain over capacity with no available team member",
			len(p.Moves), p.Unresolved)
	default:
		return fmt.Sprintf("Reassigned %d task(s) across %d project(s)", len(p.Moves), p.movedProjects())
	}
}

func (p Plan) movedProjects() int {
	seen := make(map[string]struct{})
	for _, m := range p.Moves {
		seen[m.ProjectID] = struct{}{}
	}
	return len(seen)
}

// PlanReassignment computes the moves that bring overloaded members back towards
// capacity, project by project.
//
// For every member over capacity in a project, their newest outstanding tasks
// (not Done) beyond capacity become candidates; older tasks stay put. Done
// tasks count toward workload but are never moved. Each
// candidate goes to the best-fit member of the same team via SelectBest,
// excluding the overloaded member and anyone already assigned to the task. The
// workload is updated after every move, so later decisions observe earlier ones
// and no target is pushed past capacity. Candidates without a target stay where
// they are. The snapshot is not modified.
func PlanReassignment(s Snapshot, now time.Time) Plan {
	plan := Plan{Moves: make([]Move, 0), Projects: len(s.Projects)}

	for _, p := range s.Projects {
		planProject(p, now, &plan)
	}

	return plan
}

func planProject(p ProjectSnapshot, now time.Time, plan *Plan) {
	if len(p.Members) == 0 {
		return
	}

	tasks := cloneTasks(p.Tasks)
	w := Count(ProjectScope(p.ProjectID), tasks, p.Members)

	for _, m := range p.Members {
		e := Evaluate(m, w[m.ID])
		if !e.IsOverloaded() {
			continue
		}
		plan.OverloadedMembers++

		excess := w[m.ID] - m.Capacity
		for _, idx := range newestOutstanding(tasks, p.ProjectID, m.ID, excess) {
			t := &tasks[idx]
			candidates := excluding(p.Members, func(id string) bool {
				return id == m.ID || t.IsAssignedTo(id)
			})

			sel, err := SelectBest(candidates, w)
			if err != nil {
				plan.Unresolved++
				continue
			}

			replaceAssignee(t, m.ID, sel.Member.ID)
			w.move(m.ID, sel.Member.ID)
			plan.Moves = append(plan.Moves, Move{
				TaskID:    t.ID,
				TaskTitle: t.Title,
				ProjectID: p.ProjectID,
				From:      m,
				To:        sel.Member,
				At:        now,
			})
		}
	}
}

// newestOutstanding returns indexes of up to limit tasks of the project assigned
// to memberID and not Done, newest first.
func newestOutstanding(tasks []Task, projectID, memberID string, limit int) []int {
	idx := make([]int, 0)
	for i, t := range tasks {
		if t.ProjectID != projectID || t.Status == StatusDone || !t.IsAssignedTo(memberID) {
			continue
		}
		idx = append(idx, i)
	}

	sort.SliceStable(idx, func(a, b int) bool {
		ta, tb := tasks[idx[a]], tasks[idx[b]]
		if !ta.CreatedAt.Equal(tb.CreatedAt) {
			return ta.CreatedAt.After(tb.CreatedAt)
		}
		return ta.ID > tb.ID
	})

	if len(idx) > limit {
		idx = idx[:limit]
	}
	return idx
}

func replaceAssignee(t *Task, from, to string) {
	for i, id := range t.AssigneeIDs {
		if id == from {
			t.AssigneeIDs[i] = to
			return
		}
	}
}

func cloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		t.AssigneeIDs = append([]string(nil), t.AssigneeIDs...)
		out[i] = t
	}
	return out
}
