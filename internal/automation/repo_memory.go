package automation

import (
	"context"
	"sync"
)

// MemoryRepo stores configs in memory and is safe for concurrent use.
type MemoryRepo struct {
	mu     sync.RWMutex
	byUser map[string]Config
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{byUser: make(map[string]Config)}
}

// Get returns the stored config for a user.
func (r *MemoryRepo) Get(ctx context.Context, userID string) (Config, error) {
	if err := ctx.Err(); err != nil {
		return Config{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.byUser[userID]
	if !ok {
		return Config{}, ErrNotFound
	}
	return cfg, nil
}

// Save upserts the config.
func (r *MemoryRepo) Save(ctx context.Context, cfg Config) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byUser[cfg.UserID] = cfg
	return nil
}
