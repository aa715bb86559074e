package profiles

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"jobmatch-backend/internal/events"
	"jobmatch-backend/internal/extract"
	"jobmatch-backend/internal/shared/storage/object"
)

const maxResumeBytes = 10 << 20

// ErrResumeTooLarge indicates the uploaded resume exceeds the size cap.
var ErrResumeTooLarge = errors.New("resume file too large")

// Service manages candidate profiles and resume ingestion.
type Service struct {
	Repo   Repo
	Store  object.ObjectStore
	Events events.Repo
	Now    func() time.Time
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now().UTC()
}

// Get returns the user's profile.
func (s *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return s.Repo.Get(ctx, userID)
}

// UpdateInput carries the editable profile fields.
type UpdateInput struct {
	FullName          string   `json:"fullName"`
	Email             string   `json:"email"`
	JobTitle          string   `json:"jobTitle"`
	Skills            []string `json:"skills"`
	About             string   `json:"about"`
	PreferredWorkMode string   `json:"preferredWorkMode"`
}

// Save upserts the editable fields, preserving any ingested resume.
func (s *Service) Save(ctx context.Context, userID string, input UpdateInput) (Profile, error) {
	now := s.now()
	profile, err := s.Repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Profile{}, err
		}
		profile = Profile{UserID: userID, CreatedAt: now}
	}

	profile.FullName = strings.TrimSpace(input.FullName)
	profile.Email = strings.TrimSpace(input.Email)
	profile.JobTitle = strings.TrimSpace(input.JobTitle)
	profile.Skills = trimAll(input.Skills)
	profile.About = strings.TrimSpace(input.About)
	profile.PreferredWorkMode = strings.ToLower(strings.TrimSpace(input.PreferredWorkMode))
	profile.UpdatedAt = now

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}
	return profile, nil
}

// IngestResume stores the uploaded file, extracts its text, and folds it
// into the profile used for matching.
func (s *Service) IngestResume(ctx context.Context, userID, fileName string, r io.Reader) (Profile, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxResumeBytes+1))
	if err != nil {
		return Profile{}, fmt.Errorf("read resume: %w", err)
	}
	if len(data) > maxResumeBytes {
		return Profile{}, ErrResumeTooLarge
	}

	key, _, mimeType, err := s.Store.Save(ctx, userID, fileName, strings.NewReader(string(data)))
	if err != nil {
		return Profile{}, fmt.Errorf("store resume: %w", err)
	}

	text, err := extract.ResumeText(data, mimeType, fileName)
	if err != nil {
		return Profile{}, fmt.Errorf("extract resume text: %w", err)
	}

	now := s.now()
	profile, err := s.Repo.Get(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			return Profile{}, err
		}
		profile = Profile{UserID: userID, CreatedAt: now}
	}
	profile.ResumeText = text
	profile.ResumeKey = key
	profile.ResumeFileName = fileName
	profile.UpdatedAt = now

	if err := s.Repo.Upsert(ctx, profile); err != nil {
		return Profile{}, fmt.Errorf("save profile: %w", err)
	}

	if s.Events != nil {
		audit := events.Event{
			ID:        uuid.NewString(),
			UserID:    userID,
			Action:    events.ActionResumeIngested,
			Details:   fmt.Sprintf("Resume %s ingested for matching", fileName),
			CreatedAt: now,
		}
		if err := s.Events.Append(ctx, audit); err != nil {
			return Profile{}, fmt.Errorf("append resume event: %w", err)
		}
	}
	return profile, nil
}

// CandidateTermsSource returns the aggregated free text used by the
// keyword extractor. Missing profiles yield empty text, not an error.
func (s *Service) CandidateTermsSource(ctx context.Context, userID string) (string, error) {
	profile, err := s.Repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return profile.AggregateText(), nil
}

// ConfigHints supplies role-aware defaults for first-time automation
// configs.
func (s *Service) ConfigHints(ctx context.Context, userID string) (string, string, error) {
	profile, err := s.Repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", "", nil
		}
		return "", "", err
	}
	return profile.PreferredWorkMode, profile.JobTitle, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
