package applications

import (
	"context"
	"sync"
	"time"

	"jobmatch-backend/internal/events"
)

// MemoryRepo stores applications in memory and is safe for concurrent
// use. It enforces the same (user, role) uniqueness as the Postgres
// schema and appends audit events under its own lock so a batch is
// all-or-nothing.
type MemoryRepo struct {
	mu     sync.RWMutex
	byID   map[string]Application
	byUser map[string][]string
	events events.Repo
}

// NewMemoryRepo constructs a MemoryRepo writing audit events to audits.
func NewMemoryRepo(audits events.Repo) *MemoryRepo {
	return &MemoryRepo{
		byID:   make(map[string]Application),
		byUser: make(map[string][]string),
		events: audits,
	}
}

// CreateBatch stores all applications plus the audit event, or nothing.
func (r *MemoryRepo) CreateBatch(ctx context.Context, apps []Application, audit events.Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	taken := make(map[string]struct{})
	for _, existing := range r.byID {
		taken[existing.UserID+"\x00"+existing.RoleID] = struct{}{}
	}
	for _, app := range apps {
		key := app.UserID + "\x00" + app.RoleID
		if _, dup := taken[key]; dup {
			return ErrDuplicate
		}
		taken[key] = struct{}{}
	}

	for _, app := range apps {
		r.byID[app.ID] = app
		r.byUser[app.UserID] = append(r.byUser[app.UserID], app.ID)
	}
	return r.events.Append(ctx, audit)
}

// GetByID returns an application by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, applicationID string) (Application, error) {
	if err := ctx.Err(); err != nil {
		return Application{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.byID[applicationID]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

// ListByUser returns the user's applications, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := r.byUser[userID]
	out := make([]Application, 0, len(ids))
	for i := len(ids) - 1; i >= 0; i-- {
		out = append(out, r.byID[ids[i]])
	}
	return out, nil
}

// RoleIDsByUser returns the set of role IDs the user has applications for.
func (r *MemoryRepo) RoleIDsByUser(ctx context.Context, userID string) (map[string]struct{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]struct{})
	for _, id := range r.byUser[userID] {
		out[r.byID[id].RoleID] = struct{}{}
	}
	return out, nil
}

// UpdateStatus sets the status and updatedAt of an existing application.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, applicationID, status string, updatedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	app, ok := r.byID[applicationID]
	if !ok {
		return ErrNotFound
	}
	app.Status = status
	app.UpdatedAt = updatedAt
	r.byID[applicationID] = app
	return nil
}
