package applications

import (
	"context"
	"time"

	"jobmatch-backend/internal/events"
)

// Repo defines persistence operations for applications.
//
// CreateBatch persists a run's applications together with its audit
// event as one atomic unit, and fails with ErrDuplicate if any (user,
// role) pair already has an application in any status.
type Repo interface {
	CreateBatch(ctx context.Context, apps []Application, audit events.Event) error
	GetByID(ctx context.Context, applicationID string) (Application, error)
	ListByUser(ctx context.Context, userID string) ([]Application, error)
	RoleIDsByUser(ctx context.Context, userID string) (map[string]struct{}, error)
	UpdateStatus(ctx context.Context, applicationID, status string, updatedAt time.Time) error
}
