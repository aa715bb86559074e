package roles

import (
	"context"
	"sync"
)

// MemoryRepo stores roles in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu    sync.RWMutex
	byID  map[string]Role
	order []string
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byID: make(map[string]Role)}
}

// List returns all roles in insertion order.
func (r *MemoryRepo) List(ctx context.Context) ([]Role, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Role, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

// GetByID returns a role by its ID.
func (r *MemoryRepo) GetByID(ctx context.Context, roleID string) (Role, error) {
	if err := ctx.Err(); err != nil {
		return Role{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	role, ok := r.byID[roleID]
	if !ok {
		return Role{}, ErrNotFound
	}
	return role, nil
}

// Upsert inserts or replaces a catalog entry.
func (r *MemoryRepo) Upsert(ctx context.Context, role Role) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[role.ID]; !ok {
		r.order = append(r.order, role.ID)
	}
	r.byID[role.ID] = role
	return nil
}
