package events

import (
	"context"
	"sync"
)

// MemoryRepo stores events in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string][]Event
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string][]Event)}
}

// Append stores the event.
func (r *MemoryRepo) Append(ctx context.Context, event Event) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[event.UserID] = append(r.byUser[event.UserID], event)
	return nil
}

// ListByUser returns the user's events, newest first.
func (r *MemoryRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	stored := r.byUser[userID]
	out := make([]Event, 0, len(stored))
	for i := len(stored) - 1; i >= 0; i-- {
		out = append(out, stored[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
