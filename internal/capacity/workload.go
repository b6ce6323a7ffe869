package capacity

// Workload maps member id to the number of tasks assigned to that member.
type Workload map[string]int

// Scope restricts which tasks a workload count considers.
// The zero value covers every task it is given.
type Scope struct {
	ProjectID string
}

// ProjectScope restricts counting to the tasks of one project.
func ProjectScope(projectID string) Scope {
	return Scope{ProjectID: projectID}
}

// AllProjects counts every task regardless of project. Used for the owner overview only.
func AllProjects() Scope {
	return Scope{}
}

func (s Scope) includes(t Task) bool {
	return s.ProjectID == "" || t.ProjectID == s.ProjectID
}

// Count returns the workload of each roster member over the tasks in scope.
// A task assigned to several members counts once for each of them. Every roster
// member is present in the result, with zero when unassigned. Assignees outside
// the roster are ignored.
func Count(scope Scope, tasks []Task, members []Member) Workload {
	w := make(Workload, len(members))
	for _, m := range members {
		w[m.ID] = 0
	}

	for _, t := range tasks {
		if !scope.includes(t) {
			continue
		}
		for _, id := range t.AssigneeIDs {
			if _, ok := w[id]; ok {
				w[id]++
			}
		}
	}

	return w
}

// Clone returns an independent copy of w.
func (w Workload) Clone() Workload {
	c := make(Workload, len(w))
	for k, v := range w {
		c[k] = v
	}
	return c
}

// move shifts one unit of workload from one member to another.
func (w Workload) move(from, to string) {
	w[from]--
	w[to]++
}
