package capacity

import (
	"fmt"
	"time"
)

// NegotiationState is a state of the task-creation negotiation.
type NegotiationState string

// Negotiation states.
const (
	StateIdle                NegotiationState = "idle"
	StateEvaluating          NegotiationState = "evaluating"
	StateWarned              NegotiationState = "warned"
	StateConfirmed           NegotiationState = "confirmed"
	StateAutoAssignRequested NegotiationState = "auto_assign_requested"
	StateCancelled           NegotiationState = "cancelled"
)

// Decision is the operator's answer to a capacity warning.
type Decision string

// Operator decisions.
const (
	// DecisionConfirm assigns anyway, over capacity included.
	DecisionConfirm Decision = "confirm"
	// DecisionAutoAssign discards the chosen assignees in favour of SelectBest.
	DecisionAutoAssign Decision = "auto_assign"
	// DecisionCancel clears the assignees so the operator can choose different members.
	DecisionCancel Decision = "cancel"
)

// ParseDecision converts a wire value into a Decision.
func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionConfirm, DecisionAutoAssign, DecisionCancel:
		return d, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDecision, s)
}

// Draft is a pending task-creation request.
type Draft struct {
	ProjectID   string       `json:"projectId"`
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Status      TaskStatus   `json:"status"`
	Priority    TaskPriority `json:"priority"`
	AssigneeIDs []string     `json:"assignedMemberIds"`
	CreatedBy   string       `json:"createdBy"`
}

func (d Draft) clone() Draft {
	d.AssigneeIDs = append([]string(nil), d.AssigneeIDs...)
	return d
}

// Negotiation holds one operator's pending task creation while a capacity
// warning awaits a decision. It is cooperative single-operator state, not a lock.
type Negotiation struct {
	ID        string            `json:"id"`
	State     NegotiationState  `json:"state"`
	Draft     Draft             `json:"draft"`
	Warnings  []CapacityWarning `json:"warnings"`
	CreatedAt time.Time         `json:"createdAt"`
}

// NewNegotiation starts a negotiation in the idle state.
func NewNegotiation(id string, now time.Time) *Negotiation {
	return &Negotiation{ID: id, State: StateIdle, CreatedAt: now}
}

// Submit records the draft and its evaluation. With no warnings the negotiation
// returns to idle and proceed is true: the caller creates the task directly.
// With warnings the draft is held unmodified in the warned state.
func (n *Negotiation) Submit(draft Draft, warnings []CapacityWarning) (proceed bool, err error) {
	if n.State != StateIdle {
		return false, fmt.Errorf("%w: submit from %s", ErrInvalidTransition, n.State)
	}

	n.State = StateEvaluating
	n.Draft = draft.clone()

	if len(warnings) == 0 {
		n.State = StateIdle
		n.Warnings = nil
		return true, nil
	}

	n.Warnings = append([]CapacityWarning(nil), warnings...)
	n.State = StateWarned
	return false, nil
}

// Decide applies the operator's decision from the warned state and returns the
// draft to act on:
//   - confirm: the held draft, unchanged.
//   - auto-assign: the held draft; the caller must follow with AutoAssigned or AutoAssignFailed.
//   - cancel: the held draft with its assignees cleared.
func (n *Negotiation) Decide(d Decision) (Draft, error) {
	if n.State != StateWarned {
		return Draft{}, fmt.Errorf("%w: %s from %s", ErrInvalidTransition, d, n.State)
	}

	switch d {
	case DecisionConfirm:
		n.State = StateConfirmed
		return n.Draft.clone(), nil
	case DecisionAutoAssign:
		n.State = StateAutoAssignRequested
		return n.Draft.clone(), nil
	case DecisionCancel:
		n.State = StateCancelled
		draft := n.Draft.clone()
		draft.AssigneeIDs = []string{}
		return draft, nil
	default:
		return Draft{}, fmt.Errorf("%w: %q", ErrUnknownDecision, string(d))
	}
}

// AutoAssigned returns the draft to create with its assignee set replaced by the selection.
func (n *Negotiation) AutoAssigned(sel Selection) (Draft, error) {
	if n.State != StateAutoAssignRequested {
		return Draft{}, fmt.Errorf("%w: auto-assign result in %s", ErrInvalidTransition, n.State)
	}
	draft := n.Draft.clone()
	draft.AssigneeIDs = []string{sel.Member.ID}
	return draft, nil
}

// AutoAssignFailed returns the negotiation to idle and hands back the held draft intact.
func (n *Negotiation) AutoAssignFailed() (Draft, error) {
	if n.State != StateAutoAssignRequested {
		return Draft{}, fmt.Errorf("%w: auto-assign failure in %s", ErrInvalidTransition, n.State)
	}
	n.State = StateIdle
	return n.Draft.clone(), nil
}
