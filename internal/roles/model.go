package roles

import "time"

// Work modes a role can be offered in.
const (
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
	WorkModeOnsite = "onsite"
)

// Role is a published job listing scoreable against a candidate.
// The catalog is owned externally; this package only caches and serves it.
type Role struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Company   string    `json:"company,omitempty"`
	Domain    string    `json:"domain"`
	Seniority string    `json:"seniority,omitempty"`
	WorkMode  string    `json:"workMode"`
	Summary   string    `json:"summary"`
	Tags      []string  `json:"tags,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// AllWorkModes returns the canonical work mode set, in display order.
func AllWorkModes() []string {
	return []string{WorkModeRemote, WorkModeHybrid, WorkModeOnsite}
}

// AllDomains returns the canonical hiring domain set, in display order.
func AllDomains() []string {
	return []string{"engineering", "operations", "data", "design", "product", "marketing"}
}

// IsWorkMode reports whether value is a known work mode.
func IsWorkMode(value string) bool {
	switch value {
	case WorkModeRemote, WorkModeHybrid, WorkModeOnsite:
		return true
	}
	return false
}

// IsDomain reports whether value is a known hiring domain.
func IsDomain(value string) bool {
	for _, d := range AllDomains() {
		if d == value {
			return true
		}
	}
	return false
}
