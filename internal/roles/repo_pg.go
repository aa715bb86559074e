package roles

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// List returns all roles, oldest first.
func (r *PGRepo) List(ctx context.Context) ([]Role, error) {
	const query = `
SELECT id, title, company, domain, seniority, work_mode, summary, tags, created_at
FROM roles
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, role)
	}
	return out, rows.Err()
}

// GetByID returns a role by its ID.
func (r *PGRepo) GetByID(ctx context.Context, roleID string) (Role, error) {
	const query = `
SELECT id, title, company, domain, seniority, work_mode, summary, tags, created_at
FROM roles
WHERE id = $1
LIMIT 1`
	role, err := scanRole(r.DB.QueryRowContext(ctx, query, roleID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Role{}, ErrNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// Upsert inserts or replaces a catalog entry.
func (r *PGRepo) Upsert(ctx context.Context, role Role) error {
	const query = `
INSERT INTO roles (id, title, company, domain, seniority, work_mode, summary, tags, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
ON CONFLICT (id) DO UPDATE SET
  title = EXCLUDED.title,
  company = EXCLUDED.company,
  domain = EXCLUDED.domain,
  seniority = EXCLUDED.seniority,
  work_mode = EXCLUDED.work_mode,
  summary = EXCLUDED.summary,
  tags = EXCLUDED.tags`
	tags, err := json.Marshal(role.Tags)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		role.ID,
		role.Title,
		role.Company,
		role.Domain,
		role.Seniority,
		role.WorkMode,
		role.Summary,
		tags,
		role.CreatedAt,
	)
	return err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRole(row rowScanner) (Role, error) {
	var role Role
	var tags []byte
	err := row.Scan(
		&role.ID,
		&role.Title,
		&role.Company,
		&role.Domain,
		&role.Seniority,
		&role.WorkMode,
		&role.Summary,
		&tags,
		&role.CreatedAt,
	)
	if err != nil {
		return Role{}, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &role.Tags); err != nil {
			return Role{}, err
		}
	}
	return role, nil
}
