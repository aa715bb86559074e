package profiles

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

// Get returns the profile for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, full_name, email, job_title, skills, about,
       preferred_work_mode, resume_text, resume_key, resume_file_name,
       created_at, updated_at
FROM profiles
WHERE user_id = $1
LIMIT 1`
	var p Profile
	var skills []byte
	var fullName, email, jobTitle, about, workMode, resumeText, resumeKey, resumeFile sql.NullString
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&fullName,
		&email,
		&jobTitle,
		&skills,
		&about,
		&workMode,
		&resumeText,
		&resumeKey,
		&resumeFile,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.FullName = fullName.String
	p.Email = email.String
	p.JobTitle = jobTitle.String
	p.About = about.String
	p.PreferredWorkMode = workMode.String
	p.ResumeText = resumeText.String
	p.ResumeKey = resumeKey.String
	p.ResumeFileName = resumeFile.String
	if len(skills) > 0 {
		if err := json.Unmarshal(skills, &p.Skills); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

// Upsert inserts or replaces the profile.
func (r *PGRepo) Upsert(ctx context.Context, profile Profile) error {
	const query = `
INSERT INTO profiles (
	user_id, full_name, email, job_title, skills, about,
	preferred_work_mode, resume_text, resume_key, resume_file_name,
	created_at, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
ON CONFLICT (user_id) DO UPDATE SET
  full_name = EXCLUDED.full_name,
  email = EXCLUDED.email,
  job_title = EXCLUDED.job_title,
  skills = EXCLUDED.skills,
  about = EXCLUDED.about,
  preferred_work_mode = EXCLUDED.preferred_work_mode,
  resume_text = EXCLUDED.resume_text,
  resume_key = EXCLUDED.resume_key,
  resume_file_name = EXCLUDED.resume_file_name,
  updated_at = EXCLUDED.updated_at`
	skills, err := json.Marshal(profile.Skills)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		profile.UserID,
		nullable(profile.FullName),
		nullable(profile.Email),
		nullable(profile.JobTitle),
		skills,
		nullable(profile.About),
		nullable(profile.PreferredWorkMode),
		nullable(profile.ResumeText),
		nullable(profile.ResumeKey),
		nullable(profile.ResumeFileName),
		profile.CreatedAt,
		profile.UpdatedAt,
	)
	return err
}

func nullable(value string) any {
	if value == "" {
		return nil
	}
	return value
}
