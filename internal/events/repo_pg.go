package events

import (
	"context"
	"database/sql"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Append stores the event.
func (r *PGRepo) Append(ctx context.Context, event Event) error {
	const query = `
INSERT INTO events (id, user_id, action, details, created_at)
VALUES ($1, $2, $3, $4, $5)`
	_, err := r.DB.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Action,
		event.Details,
		event.CreatedAt,
	)
	return err
}

// ListByUser returns the user's events, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit int) ([]Event, error) {
	query := `
SELECT id, user_id, action, details, created_at
FROM events
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	args := []any{userID}
	if limit > 0 {
		query += `
LIMIT $2`
		args = append(args, limit)
	}

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Details, &e.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
