package capacity

import "fmt"

// Selection is the outcome of a successful best-fit choice.
type Selection struct {
	Member    Member `json:"assignedMember"`
	Available int    `json:"availableCapacity"`
}

// Message is the operator-facing confirmation of an auto-assignment.
func (s Selection) Message() string {
	return fmt.Sprintf("Auto-assigned to %s (%d tasks available)", s.Member.Name, s.Available)
}

// SelectBest picks the candidate with the most available capacity.
//
// Only candidates with available capacity strictly greater than zero qualify.
// Ties go to the earliest candidate in the given order, so the result is
// deterministic for an unchanged roster and workload. Returns ErrNoMembers for
// an empty candidate list and ErrNoneAvailable when nobody qualifies.
//
// Callers replace the task's assignee set with the selected member; they never append.
func SelectBest(candidates []Member, w Workload) (Selection, error) {
	if len(candidates) == 0 {
		return Selection{}, ErrNoMembers
	}

	best := -1
	bestAvailable := 0
	for i, m := range candidates {
		available := AvailableCapacity(m, w[m.ID])
		if available <= 0 {
			continue
		}
		if best == -1 || available > bestAvailable {
			best = i
			bestAvailable = available
		}
	}

	if best == -1 {
		return Selection{}, ErrNoneAvailable
	}

	return Selection{Member: candidates[best], Available: bestAvailable}, nil
}

// excluding returns members whose ids are not in exclude, preserving order.
func excluding(members []Member, exclude func(id string) bool) []Member {
	out := make([]Member, 0, len(members))
	for _, m := range members {
		if !exclude(m.ID) {
			out = append(out, m)
		}
	}
	return out
}
