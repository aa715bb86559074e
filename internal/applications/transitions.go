package applications

import (
	"fmt"

	"jobmatch-backend/internal/events"
)

// User-driven stage actions.
const (
	ActionApprove       = "approve"
	ActionReject        = "reject"
	ActionMarkInterview = "mark_interview"
	ActionMarkOffer     = "mark_offer"
	ActionMarkHired     = "mark_hired"
)

// Transition describes the outcome of applying a stage action.
type Transition struct {
	Next        string
	EventAction string
}

// ApplyAction resolves a stage action against the current status.
//
// approve and reject only move a pending preview draft. The mark_*
// actions are free assignments from any current status, including
// rejected and hired: the funnel intentionally has no terminal-state
// guard so manual corrections stay possible.
func ApplyAction(current, action string) (Transition, error) {
	switch action {
	case ActionApprove:
		if current != StatusDraftPreview {
			return Transition{}, fmt.Errorf("%w: approve from %s", ErrInvalidTransition, current)
		}
		return Transition{Next: StatusSubmitted, EventAction: events.ActionApplicationApprove}, nil
	case ActionReject:
		if current != StatusDraftPreview {
			return Transition{}, fmt.Errorf("%w: reject from %s", ErrInvalidTransition, current)
		}
		return Transition{Next: StatusRejected, EventAction: events.ActionApplicationReject}, nil
	case ActionMarkInterview:
		return Transition{Next: StatusInterview, EventAction: events.ActionApplicationStage}, nil
	case ActionMarkOffer:
		return Transition{Next: StatusOffer, EventAction: events.ActionApplicationStage}, nil
	case ActionMarkHired:
		return Transition{Next: StatusHired, EventAction: events.ActionApplicationStage}, nil
	default:
		return Transition{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Notifies reports whether reaching status triggers a stage-change fact
// for the external dispatcher. Rejections and preview drafts stay quiet.
func Notifies(status string) bool {
	switch status {
	case StatusSubmitted, StatusInterview, StatusOffer, StatusHired:
		return true
	}
	return false
}
