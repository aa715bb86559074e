package automation

import "time"

// Apply modes.
const (
	ModePreview = "preview"
	ModeAuto    = "auto"
)

// Bounds applied to patched values.
const (
	DailyLimitMin = 1
	DailyLimitMax = 100

	MinMatchScoreFloor = 40
	MinMatchScoreCeil  = 100
)

// Config is a user's auto-apply policy. WorkModes and Domains are never
// empty: patches that would empty them fall back to the full sets.
type Config struct {
	UserID              string    `json:"userId"`
	ApplyMode           string    `json:"applyMode"`
	DailyLimit          int       `json:"dailyLimit"`
	MinMatchScore       int       `json:"minMatchScore"`
	WorkModes           []string  `json:"workModes"`
	Domains             []string  `json:"domains"`
	ExcludedKeywords    []string  `json:"excludedKeywords"`
	TitleTargets        []string  `json:"titleTargets"`
	OnboardingCompleted bool      `json:"onboardingCompleted"`
	UpdatedAt           time.Time `json:"updatedAt"`
}
