package events

import "context"

// Repo defines the append-only audit log. Events are never updated or
// deleted; ListByUser returns newest first.
type Repo interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID string, limit int) ([]Event, error)
}
