package applications

import (
	"errors"
	"testing"

	"jobmatch-backend/internal/events"
)

func TestApplyAction(t *testing.T) {
	tests := []struct {
		name      string
		current   string
		action    string
		wantNext  string
		wantEvent string
		wantErr   error
	}{
		{
			name:      "approve pending draft",
			current:   StatusDraftPreview,
			action:    ActionApprove,
			wantNext:  StatusSubmitted,
			wantEvent: events.ActionApplicationApprove,
		},
		{
			name:      "reject pending draft",
			current:   StatusDraftPreview,
			action:    ActionReject,
			wantNext:  StatusRejected,
			wantEvent: events.ActionApplicationReject,
		},
		{
			name:    "approve already submitted",
			current: StatusSubmitted,
			action:  ActionApprove,
			wantErr: ErrInvalidTransition,
		},
		{
			name:    "reject after interview",
			current: StatusInterview,
			action:  ActionReject,
			wantErr: ErrInvalidTransition,
		},
		{
			name:      "mark interview from submitted",
			current:   StatusSubmitted,
			action:    ActionMarkInterview,
			wantNext:  StatusInterview,
			wantEvent: events.ActionApplicationStage,
		},
		{
			name:      "mark offer from rejected stays allowed",
			current:   StatusRejected,
			action:    ActionMarkOffer,
			wantNext:  StatusOffer,
			wantEvent: events.ActionApplicationStage,
		},
		{
			name:      "mark hired from hired stays allowed",
			current:   StatusHired,
			action:    ActionMarkHired,
			wantNext:  StatusHired,
			wantEvent: events.ActionApplicationStage,
		},
		{
			name:    "unknown action",
			current: StatusSubmitted,
			action:  "promote",
			wantErr: ErrUnknownAction,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ApplyAction(tt.current, tt.action)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("err = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ApplyAction: %v", err)
			}
			if got.Next != tt.wantNext {
				t.Errorf("Next = %s, want %s", got.Next, tt.wantNext)
			}
			if got.EventAction != tt.wantEvent {
				t.Errorf("EventAction = %s, want %s", got.EventAction, tt.wantEvent)
			}
		})
	}
}

func TestNotifies(t *testing.T) {
	notifying := map[string]bool{
		StatusDraftPreview: false,
		StatusSubmitted:    true,
		StatusRejected:     false,
		StatusInterview:    true,
		StatusOffer:        true,
		StatusHired:        true,
	}
	for status, want := range notifying {
		if got := Notifies(status); got != want {
			t.Errorf("Notifies(%s) = %v, want %v", status, got, want)
		}
	}
}
