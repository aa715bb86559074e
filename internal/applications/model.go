package applications

import "time"

// Apply modes. The mode recorded on an application is the effective mode
// at creation time, not the config's current mode.
const (
	ModePreview = "preview"
	ModeAuto    = "auto"
)

// Lifecycle states.
const (
	StatusDraftPreview = "draft_preview"
	StatusSubmitted    = "submitted"
	StatusRejected     = "rejected"
	StatusInterview    = "interview"
	StatusOffer        = "offer"
	StatusHired        = "hired"
)

// Application is one (user, role) hiring-funnel record. Created only by
// the auto-apply orchestrator; afterwards it moves through the lifecycle
// via explicit user actions.
type Application struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	RoleID       string    `json:"roleId"`
	RoleTitle    string    `json:"roleTitle"`
	Domain       string    `json:"domain"`
	Company      string    `json:"company"`
	Mode         string    `json:"mode"`
	Status       string    `json:"status"`
	MatchScore   int       `json:"matchScore"`
	MatchedTerms []string  `json:"matchedTerms"`
	MissingTerms []string  `json:"missingTerms"`
	Reason       string    `json:"reason"`
	CoverLetter  string    `json:"coverLetter"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
