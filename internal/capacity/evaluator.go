package capacity

import "fmt"

// nearCapacityRatio is the load fraction at which a member is shown as near capacity.
const nearCapacityRatio = 0.8

// Status classifies a member's load.
type Status string

// Member load statuses. NearCapacity is informational and never blocks anything.
const (
	StatusNormal       Status = "normal"
	StatusNearCapacity Status = "near_capacity"
	StatusOverloaded   Status = "overloaded"
)

// Severity is the closed set of warning severities.
type Severity string

// Warning severities.
const (
	// SeverityWarning marks a member exactly at capacity.
	SeverityWarning Severity = "warning"
	// SeverityError marks a member over capacity.
	SeverityError Severity = "error"
)

// CapacityWarning describes a member at or over capacity. It is transient and never persisted.
type CapacityWarning struct {
	MemberID       string   `json:"memberId"`
	MemberName     string   `json:"memberName"`
	CurrentTasks   int      `json:"currentTasks"`
	Capacity       int      `json:"capacity"`
	IsOverCapacity bool     `json:"isOverCapacity"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
}

// Evaluation is the capacity verdict for one member.
type Evaluation struct {
	Member       Member
	CurrentTasks int
	// Available is capacity minus current tasks and may be negative.
	Available int
	Status    Status
	// Warning is nil when the member is below capacity.
	Warning *CapacityWarning
}

// AvailableCapacity returns capacity minus current tasks.
func AvailableCapacity(m Member, currentTasks int) int {
	return m.Capacity - currentTasks
}

// Evaluate classifies a member given their current task count.
func Evaluate(m Member, currentTasks int) Evaluation {
	e := Evaluation{
		Member:       m,
		CurrentTasks: currentTasks,
		Available:    AvailableCapacity(m, currentTasks),
		Status:       StatusNormal,
	}

	switch {
	case currentTasks > m.Capacity:
		e.Status = StatusOverloaded
	case m.Capacity > 0 && float64(currentTasks) >= nearCapacityRatio*float64(m.Capacity):
		e.Status = StatusNearCapacity
	case m.Capacity <= 0:
		// currentTasks == capacity == 0
		e.Status = StatusNearCapacity
	}

	if currentTasks >= m.Capacity {
		over := currentTasks > m.Capacity
		severity := SeverityWarning
		if over {
			severity = SeverityError
		}
		e.Warning = &CapacityWarning{
			MemberID:       m.ID,
			MemberName:     m.Name,
			CurrentTasks:   currentTasks,
			Capacity:       m.Capacity,
			IsOverCapacity: over,
			Severity:       severity,
			Message:        fmt.Sprintf("%s has %d tasks but capacity is %d.", m.Name, currentTasks, m.Capacity),
		}
	}

	return e
}

// IsOverloaded reports whether the member's workload strictly exceeds capacity.
func (e Evaluation) IsOverloaded() bool {
	return e.Status == StatusOverloaded
}

// Warnings evaluates each candidate against the workload and returns the warnings
// in candidate order. Candidates below capacity produce nothing.
func Warnings(candidates []Member, w Workload) []CapacityWarning {
	warnings := make([]CapacityWarning, 0)
	for _, m := range candidates {
		if e := Evaluate(m, w[m.ID]); e.Warning != nil {
			warnings = append(warnings, *e.Warning)
		}
	}
	return warnings
}

// HasOverCapacity reports whether any warning is an over-capacity one.
func HasOverCapacity(warnings []CapacityWarning) bool {
	for _, w := range warnings {
		if w.IsOverCapacity {
			return true
		}
	}
	return false
}
