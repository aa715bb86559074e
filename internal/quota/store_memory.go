package quota

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu   sync.Mutex
	used map[string]int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{used: make(map[string]int)}
}

func key(userID, day string) string {
	return userID + "\x00" + day
}

func (s *memoryStore) Used(ctx context.Context, userID, day string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.used[key(userID, day)], nil
}

func (s *memoryStore) Consume(ctx context.Context, userID, day string, n, limit int) (Usage, error) {
	if err := ctx.Err(); err != nil {
		return Usage{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(userID, day)
	if s.used[k]+n > limit {
		return Usage{}, ErrLimitReached
	}
	s.used[k] += n
	return Usage{UserID: userID, Day: day, Used: s.used[k]}, nil
}

func (s *memoryStore) Reset(ctx context.Context, userID, day string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.used, key(userID, day))
	return nil
}
