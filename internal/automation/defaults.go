package automation

import (
	"strings"
	"time"

	"jobmatch-backend/internal/roles"
)

// DefaultConfig synthesizes the config served before a user ever saves
// one. workModeHint and jobTitleHint come from the candidate's profile
// and may be empty. Callers must not persist the result; defaults only
// become durable through an explicit save.
func DefaultConfig(userID, workModeHint, jobTitleHint string, now time.Time) Config {
	workModes := roles.AllWorkModes()
	if hint := strings.ToLower(strings.TrimSpace(workModeHint)); roles.IsWorkMode(hint) {
		workModes = []string{hint}
	}

	var titleTargets []string
	if title := strings.TrimSpace(jobTitleHint); title != "" {
		titleTargets = []string{title}
	}

	return Config{
		UserID:              userID,
		ApplyMode:           ModePreview,
		DailyLimit:          12,
		MinMatchScore:       70,
		WorkModes:           workModes,
		Domains:             roles.AllDomains(),
		ExcludedKeywords:    nil,
		TitleTargets:        titleTargets,
		OnboardingCompleted: false,
		UpdatedAt:           now,
	}
}
