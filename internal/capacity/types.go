// Package capacity implements capacity-aware task assignment: workload counting,
// capacity evaluation, best-fit member selection, bulk reassignment planning and
// the warn-then-decide negotiation used when creating tasks.
//
// Everything in this package is a pure function of the snapshot it is given.
// Loading snapshots and applying computed mutations belong to callers.
package capacity

import "time"

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

// Task statuses.
const (
	StatusPending    TaskStatus = "Pending"
	StatusInProgress TaskStatus = "In Progress"
	StatusDone       TaskStatus = "Done"
)

// Valid reports whether s is a known status.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// TaskPriority is the priority of a task.
type TaskPriority string

// Task priorities.
const (
	PriorityLow    TaskPriority = "Low"
	PriorityMedium TaskPriority = "Medium"
	PriorityHigh   TaskPriority = "High"
)

// Valid reports whether p is a known priority.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Member is a team member eligible to hold tasks.
type Member struct {
	ID       string `json:"id"       yaml:"id"`
	Name     string `json:"name"     yaml:"name"`
	Role     string `json:"role"     yaml:"role"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// Task is the engine's view of a task: identity, scope, and assignee set.
type Task struct {
	ID        string       `json:"id"         yaml:"id"`
	Title     string       `json:"title"      yaml:"title"`
	ProjectID string       `json:"project_id" yaml:"project_id"`
	Status    TaskStatus   `json:"status"     yaml:"status"`
	Priority  TaskPriority `json:"priority"   yaml:"priority"`
	// AssigneeIDs holds member ids with no duplicates. Empty means unassigned.
	AssigneeIDs []string  `json:"assignee_ids" yaml:"assignees"`
	CreatedAt   time.Time `json:"created_at"   yaml:"created_at"`
}

// IsAssignedTo reports whether memberID is in the task's assignee set.
func (t Task) IsAssignedTo(memberID string) bool {
	for _, id := range t.AssigneeIDs {
		if id == memberID {
			return true
		}
	}
	return false
}

// ProjectSnapshot is one project with its team roster and its tasks.
// Members are in the team's declared order.
type ProjectSnapshot struct {
	ProjectID   string    `yaml:"id"`
	ProjectName string    `yaml:"name"`
	TeamID      string    `yaml:"team_id"`
	CreatedAt   time.Time `yaml:"created_at"`
	Members     []Member  `yaml:"members"`
	Tasks       []Task    `yaml:"tasks"`
}

// Member returns the roster member with the given id.
func (p ProjectSnapshot) Member(id string) (Member, bool) {
	for _, m := range p.Members {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}

// Snapshot is every project reachable from one owner.
type Snapshot struct {
	OwnerID  string            `yaml:"owner"`
	Projects []ProjectSnapshot `yaml:"projects"`
}
