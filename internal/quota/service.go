package quota

import "context"

type store interface {
	Used(ctx context.Context, userID, day string) (int, error)
	Consume(ctx context.Context, userID, day string, n, limit int) (Usage, error)
	Reset(ctx context.Context, userID, day string) error
}

// Service manages daily quota via an underlying store.
type Service struct {
	store store
}

// NewService constructs a Service with an in-memory store.
func NewService() *Service {
	return &Service{store: newMemoryStore()}
}

// NewPostgresService constructs a Service backed by Postgres.
func NewPostgresService(pgStore store) *Service {
	return &Service{store: pgStore}
}

// Remaining reports how much of limit is left for the given day. Never
// negative, even if the limit was lowered after consumption.
func (s *Service) Remaining(ctx context.Context, userID, day string, limit int) (int, error) {
	used, err := s.store.Used(ctx, userID, day)
	if err != nil {
		return 0, err
	}
	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Consume spends n units of the day's budget, failing with
// ErrLimitReached when the budget cannot cover n.
func (s *Service) Consume(ctx context.Context, userID, day string, n, limit int) (Usage, error) {
	if n <= 0 {
		used, err := s.store.Used(ctx, userID, day)
		if err != nil {
			return Usage{}, err
		}
		return Usage{UserID: userID, Day: day, Used: used}, nil
	}
	return s.store.Consume(ctx, userID, day, n, limit)
}

// Reset zeroes the day's counter. Dev tooling only.
func (s *Service) Reset(ctx context.Context, userID, day string) error {
	return s.store.Reset(ctx, userID, day)
}
