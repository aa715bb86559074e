package automation

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

// Get returns the stored config for a user.
func (r *PGRepo) Get(ctx context.Context, userID string) (Config, error) {
	const query = `
SELECT user_id, apply_mode, daily_limit, min_match_score, work_modes,
       domains, excluded_keywords, title_targets, onboarding_completed, updated_at
FROM automation_configs
WHERE user_id = $1
LIMIT 1`
	var cfg Config
	var workModes, domains, excluded, titles []byte
	err := r.DB.QueryRowContext(ctx, query, userID).Scan(
		&cfg.UserID,
		&cfg.ApplyMode,
		&cfg.DailyLimit,
		&cfg.MinMatchScore,
		&workModes,
		&domains,
		&excluded,
		&titles,
		&cfg.OnboardingCompleted,
		&cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Config{}, ErrNotFound
		}
		return Config{}, err
	}
	for _, pair := range []struct {
		raw  []byte
		dest *[]string
	}{
		{workModes, &cfg.WorkModes},
		{domains, &cfg.Domains},
		{excluded, &cfg.ExcludedKeywords},
		{titles, &cfg.TitleTargets},
	} {
		if len(pair.raw) == 0 {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.dest); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Save upserts the config.
func (r *PGRepo) Save(ctx context.Context, cfg Config) error {
	const query = `
INSERT INTO automation_configs (
	user_id, apply_mode, daily_limit, min_match_score, work_modes,
	domains, excluded_keywords, title_targets, onboarding_completed, updated_at
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
ON CONFLICT (user_id) DO UPDATE SET
  apply_mode = EXCLUDED.apply_mode,
  daily_limit = EXCLUDED.daily_limit,
  min_match_score = EXCLUDED.min_match_score,
  work_modes = EXCLUDED.work_modes,
  domains = EXCLUDED.domains,
  excluded_keywords = EXCLUDED.excluded_keywords,
  title_targets = EXCLUDED.title_targets,
  onboarding_completed = EXCLUDED.onboarding_completed,
  updated_at = EXCLUDED.updated_at`
	workModes, err := json.Marshal(cfg.WorkModes)
	if err != nil {
		return err
	}
	domains, err := json.Marshal(cfg.Domains)
	if err != nil {
		return err
	}
	excluded, err := json.Marshal(cfg.ExcludedKeywords)
	if err != nil {
		return err
	}
	titles, err := json.Marshal(cfg.TitleTargets)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, query,
		cfg.UserID,
		cfg.ApplyMode,
		cfg.DailyLimit,
		cfg.MinMatchScore,
		workModes,
		domains,
		excluded,
		titles,
		cfg.OnboardingCompleted,
		cfg.UpdatedAt,
	)
	return err
}
