package dashboard

import (
	"context"
	"fmt"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/events"
)

// Service reads the application set and audit trail to produce
// dashboard snapshots.
type Service struct {
	Apps   applications.Repo
	Events events.Repo
}

// NewService constructs a Service.
func NewService(apps applications.Repo, audits events.Repo) *Service {
	return &Service{Apps: apps, Events: audits}
}

// Dashboard recomputes the user's funnel snapshot.
func (s *Service) Dashboard(ctx context.Context, userID string) (Summary, error) {
	apps, err := s.Apps.ListByUser(ctx, userID)
	if err != nil {
		return Summary{}, fmt.Errorf("list applications: %w", err)
	}
	recent, err := s.Events.ListByUser(ctx, userID, recentEventLimit)
	if err != nil {
		return Summary{}, fmt.Errorf("list events: %w", err)
	}
	return Summarize(apps, recent), nil
}
