package applications

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"jobmatch-backend/internal/events"
)

const pgUniqueViolation = "23505"

// PGRepo implements Repo using Postgres. The applications table carries
// a unique index on (user_id, role_id); a violated insert surfaces as
// ErrDuplicate so concurrent orchestrator runs cannot double-apply.
type PGRepo struct {
	DB *sql.DB
}

// CreateBatch inserts all applications and the audit event in one
// transaction.
func (r *PGRepo) CreateBatch(ctx context.Context, apps []Application, audit events.Event) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	const insertApp = `
INSERT INTO applications (
	id, user_id, role_id, role_title, domain, company, mode, status,
	match_score, matched_terms, missing_terms, reason, cover_letter,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for _, app := range apps {
		matched, err := json.Marshal(app.MatchedTerms)
		if err != nil {
			return err
		}
		missing, err := json.Marshal(app.MissingTerms)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, insertApp,
			app.ID,
			app.UserID,
			app.RoleID,
			app.RoleTitle,
			app.Domain,
			app.Company,
			app.Mode,
			app.Status,
			app.MatchScore,
			matched,
			missing,
			app.Reason,
			app.CoverLetter,
			app.CreatedAt,
			app.UpdatedAt,
		); err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicate
			}
			return err
		}
	}

	const insertEvent = `
INSERT INTO events (id, user_id, action, details, created_at)
VALUES ($1, $2, $3, $4, $5)`
	if _, err := tx.ExecContext(ctx, insertEvent,
		audit.ID,
		audit.UserID,
		audit.Action,
		audit.Details,
		audit.CreatedAt,
	); err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID returns an application by its ID.
func (r *PGRepo) GetByID(ctx context.Context, applicationID string) (Application, error) {
	const query = selectApplication + `
WHERE id = $1
LIMIT 1`
	app, err := scanApplication(r.DB.QueryRowContext(ctx, query, applicationID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Application{}, ErrNotFound
		}
		return Application{}, err
	}
	return app, nil
}

// ListByUser returns the user's applications, newest first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string) ([]Application, error) {
	const query = selectApplication + `
WHERE user_id = $1
ORDER BY created_at DESC, id DESC`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

// RoleIDsByUser returns the set of role IDs the user has applications for.
func (r *PGRepo) RoleIDsByUser(ctx context.Context, userID string) (map[string]struct{}, error) {
	const query = `
SELECT role_id FROM applications WHERE user_id = $1`
	rows, err := r.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string]struct{})
	for rows.Next() {
		var roleID string
		if err := rows.Scan(&roleID); err != nil {
			return nil, err
		}
		out[roleID] = struct{}{}
	}
	return out, rows.Err()
}

// UpdateStatus sets the status and updatedAt of an existing application.
func (r *PGRepo) UpdateStatus(ctx context.Context, applicationID, status string, updatedAt time.Time) error {
	const query = `
UPDATE applications SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.DB.ExecContext(ctx, query, status, updatedAt, applicationID)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

const selectApplication = `
SELECT id, user_id, role_id, role_title, domain, company, mode, status,
       match_score, matched_terms, missing_terms, reason, cover_letter,
       created_at, updated_at
FROM applications`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanApplication(row rowScanner) (Application, error) {
	var app Application
	var matched, missing []byte
	err := row.Scan(
		&app.ID,
		&app.UserID,
		&app.RoleID,
		&app.RoleTitle,
		&app.Domain,
		&app.Company,
		&app.Mode,
		&app.Status,
		&app.MatchScore,
		&matched,
		&missing,
		&app.Reason,
		&app.CoverLetter,
		&app.CreatedAt,
		&app.UpdatedAt,
	)
	if err != nil {
		return Application{}, err
	}
	if len(matched) > 0 {
		if err := json.Unmarshal(matched, &app.MatchedTerms); err != nil {
			return Application{}, err
		}
	}
	if len(missing) > 0 {
		if err := json.Unmarshal(missing, &app.MissingTerms); err != nil {
			return Application{}, err
		}
	}
	return app, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
