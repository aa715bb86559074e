package automation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/events"
	"jobmatch-backend/internal/shared/util"
)

// ProfileHints supplies role-aware defaults for first-time configs.
type ProfileHints interface {
	ConfigHints(ctx context.Context, userID string) (workMode string, jobTitle string, err error)
}

// Service manages automation configs.
type Service struct {
	Repo   Repo
	Hints  ProfileHints
	Events events.Repo
	Now    func() time.Time

	locks *util.KeyedMutex
}

// NewService constructs a Service.
func NewService(repo Repo, hints ProfileHints, audits events.Repo, now func() time.Time) *Service {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Service{
		Repo:   repo,
		Hints:  hints,
		Events: audits,
		Now:    now,
		locks:  util.NewKeyedMutex(),
	}
}

// GetOrDefault returns the stored config, or a synthesized default when
// none exists. The default is never persisted here; reads stay
// side-effect-free.
func (s *Service) GetOrDefault(ctx context.Context, userID string) (Config, error) {
	cfg, err := s.Repo.Get(ctx, userID)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Config{}, err
	}

	workMode, jobTitle := "", ""
	if s.Hints != nil {
		if wm, title, hintErr := s.Hints.ConfigHints(ctx, userID); hintErr == nil {
			workMode, jobTitle = wm, title
		}
	}
	return DefaultConfig(userID, workMode, jobTitle, s.Now()), nil
}

// Save merges a partial payload into the user's config (stored or
// default) and persists the result. The read-merge-write is serialized
// per user so concurrent saves cannot drop each other's fields.
func (s *Service) Save(ctx context.Context, userID string, raw map[string]any) (Config, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	base, err := s.GetOrDefault(ctx, userID)
	if err != nil {
		return Config{}, err
	}

	cfg := ApplyPatch(base, raw, s.Now())
	if err := s.Repo.Save(ctx, cfg); err != nil {
		return Config{}, fmt.Errorf("save automation config: %w", err)
	}

	audit := events.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Action:    events.ActionConfigUpdated,
		Details:   fmt.Sprintf("Automation settings saved: %s mode, limit %d, threshold %d", cfg.ApplyMode, cfg.DailyLimit, cfg.MinMatchScore),
		CreatedAt: cfg.UpdatedAt,
	}
	if err := s.Events.Append(ctx, audit); err != nil {
		return Config{}, fmt.Errorf("append config event: %w", err)
	}
	return cfg, nil
}
