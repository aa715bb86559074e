package quota

import (
	"context"
	"database/sql"
	"errors"
)

type pgStore struct {
	DB *sql.DB
}

// NewPGStore constructs a Postgres-backed quota store.
func NewPGStore(db *sql.DB) *pgStore {
	return &pgStore{DB: db}
}

func (s *pgStore) Used(ctx context.Context, userID, day string) (int, error) {
	const query = `
SELECT used FROM daily_quota WHERE user_id = $1 AND day = $2`
	var used int
	err := s.DB.QueryRowContext(ctx, query, userID, day).Scan(&used)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, err
	}
	return used, nil
}

// Consume locks the day's row, checks the budget, and increments in one
// transaction so concurrent runs cannot overspend.
func (s *pgStore) Consume(ctx context.Context, userID, day string, n, limit int) (Usage, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Usage{}, err
	}
	defer tx.Rollback()

	var used int
	row := tx.QueryRowContext(ctx, `
SELECT used FROM daily_quota WHERE user_id = $1 AND day = $2 FOR UPDATE`, userID, day)
	if err := row.Scan(&used); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return Usage{}, err
		}
		used = 0
		if _, err := tx.ExecContext(ctx, `
INSERT INTO daily_quota (user_id, day, used) VALUES ($1, $2, 0)
ON CONFLICT (user_id, day) DO NOTHING`, userID, day); err != nil {
			return Usage{}, err
		}
	}

	if used+n > limit {
		return Usage{}, ErrLimitReached
	}
	used += n
	if _, err := tx.ExecContext(ctx, `
UPDATE daily_quota SET used = $1 WHERE user_id = $2 AND day = $3`, used, userID, day); err != nil {
		return Usage{}, err
	}
	if err := tx.Commit(); err != nil {
		return Usage{}, err
	}
	return Usage{UserID: userID, Day: day, Used: used}, nil
}

func (s *pgStore) Reset(ctx context.Context, userID, day string) error {
	_, err := s.DB.ExecContext(ctx, `
DELETE FROM daily_quota WHERE user_id = $1 AND day = $2`, userID, day)
	return err
}
