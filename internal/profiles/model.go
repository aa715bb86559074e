package profiles

import (
	"strings"
	"time"
)

// Profile aggregates everything we know about a candidate as free text
// inputs for matching. Ownership of the canonical profile/resume data is
// external; this is the engine's read model plus the ingested resume.
type Profile struct {
	UserID            string    `json:"userId"`
	FullName          string    `json:"fullName,omitempty"`
	Email             string    `json:"email,omitempty"`
	JobTitle          string    `json:"jobTitle,omitempty"`
	Skills            []string  `json:"skills,omitempty"`
	About             string    `json:"about,omitempty"`
	PreferredWorkMode string    `json:"preferredWorkMode,omitempty"`
	ResumeText        string    `json:"-"`
	ResumeKey         string    `json:"resumeKey,omitempty"`
	ResumeFileName    string    `json:"resumeFileName,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// AggregateText joins the profile's scoreable fields into the free text
// fed to the keyword extractor.
func (p Profile) AggregateText() string {
	parts := []string{p.FullName, p.JobTitle, strings.Join(p.Skills, " "), p.About, p.ResumeText}
	nonEmpty := parts[:0]
	for _, part := range parts {
		if strings.TrimSpace(part) != "" {
			nonEmpty = append(nonEmpty, part)
		}
	}
	return strings.Join(nonEmpty, "\n")
}
