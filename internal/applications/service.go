package applications

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/events"
	"jobmatch-backend/internal/notify"
	"jobmatch-backend/internal/shared/telemetry"
)

// Service drives application lifecycle transitions.
type Service struct {
	Repo       Repo
	Events     events.Repo
	Dispatcher notify.Dispatcher
	Now        func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// List returns the caller's applications, newest first.
func (s *Service) List(ctx context.Context, userID string) ([]Application, error) {
	return s.Repo.ListByUser(ctx, userID)
}

// Get returns one of the caller's applications.
func (s *Service) Get(ctx context.Context, userID, applicationID string) (Application, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	if app.UserID != userID {
		return Application{}, ErrForbidden
	}
	return app, nil
}

// UpdateStage applies a user stage action to an owned application,
// writes exactly one audit event, and emits a stage-change fact when the
// new stage notifies.
func (s *Service) UpdateStage(ctx context.Context, userID, applicationID, action string) (Application, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	if app.UserID != userID {
		return Application{}, ErrForbidden
	}

	transition, err := ApplyAction(app.Status, action)
	if err != nil {
		return Application{}, err
	}

	now := s.now()
	if err := s.Repo.UpdateStatus(ctx, app.ID, transition.Next, now); err != nil {
		return Application{}, err
	}
	previous := app.Status
	app.Status = transition.Next
	app.UpdatedAt = now

	audit := events.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    transition.EventAction,
		Details:   fmt.Sprintf("Application for %s moved from %s to %s", app.RoleTitle, previous, app.Status),
		CreatedAt: now,
	}
	if err := s.Events.Append(ctx, audit); err != nil {
		return Application{}, fmt.Errorf("append stage event: %w", err)
	}

	if Notifies(app.Status) && s.Dispatcher != nil {
		change := notify.StageChange{
			UserID:        userID,
			ApplicationID: app.ID,
			RoleTitle:     app.RoleTitle,
			Company:       app.Company,
			Stage:         app.Status,
			MatchScore:    app.MatchScore,
			Reason:        app.Reason,
		}
		if err := s.Dispatcher.Notify(ctx, change); err != nil {
			// Delivery is external and best-effort; the transition stands.
			telemetry.Error("notify.dispatch_failed", map[string]any{
				"application_id": app.ID,
				"stage":          app.Status,
				"error":          err.Error(),
			})
		}
	}

	return app, nil
}
