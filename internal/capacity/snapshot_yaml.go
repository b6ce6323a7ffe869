package capacity

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// LoadSnapshotYAML decodes a snapshot fixture, used for offline dry-run planning.
//
//	owner: alice@example.com
//	projects:
//	  - id: p1
//	    members:
//	      - {id: sara, name: Sara, capacity: 3}
//	    tasks:
//	      - {id: t1, title: Login, assignees: [sara], created_at: 2025-01-01T10:00:00Z}
//
// Tasks without a project id inherit the enclosing project's; missing statuses
// default to Pending and missing priorities to Medium. Members need a capacity of
// at least 1, and a task may not list the same assignee twice.
func LoadSnapshotYAML(r io.Reader) (Snapshot, error) {
	var s Snapshot
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}

	for i := range s.Projects {
		p := &s.Projects[i]
		if p.ProjectID == "" {
			return Snapshot{}, fmt.Errorf("project %d: missing id", i)
		}
		for _, m := range p.Members {
			if m.ID == "" {
				return Snapshot{}, fmt.Errorf("project %s: member without id", p.ProjectID)
			}
			if m.Capacity < 1 {
				return Snapshot{}, fmt.Errorf("member %s: capacity must be at least 1", m.ID)
			}
		}
		for j := range p.Tasks {
			t := &p.Tasks[j]
			if t.ProjectID == "" {
				t.ProjectID = p.ProjectID
			}
			if t.Status == "" {
				t.Status = StatusPending
			}
			if t.Priority == "" {
				t.Priority = PriorityMedium
			}
			if !t.Status.Valid() {
				return Snapshot{}, fmt.Errorf("task %s: invalid status %q", t.ID, t.Status)
			}
			if !t.Priority.Valid() {
				return Snapshot{}, fmt.Errorf("task %s: invalid priority %q", t.ID, t.Priority)
			}
			if err := checkAssignees(t); err != nil {
				return Snapshot{}, err
			}
		}
	}

	return s, nil
}

func checkAssignees(t *Task) error {
	seen := make(map[string]struct{}, len(t.AssigneeIDs))
	for _, id := range t.AssigneeIDs {
		if id == "" {
			return fmt.Errorf("task %s: empty assignee id", t.ID)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("task %s: duplicate assignee %q", t.ID, id)
		}
		seen[id] = struct{}{}
	}
	return nil
}
