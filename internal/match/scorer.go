package match

import (
	"fmt"
	"math"
	"strings"

	"jobmatch-backend/internal/roles"
)

const (
	// displayTermLimit caps the matched/missing lists carried on results.
	// The numeric score is always computed over the full sets.
	displayTermLimit = 8
	reasonTermLimit  = 5
)

// Result is the outcome of scoring one candidate against one role.
type Result struct {
	RoleID  string   `json:"roleId"`
	Score   int      `json:"score"`
	Matched []string `json:"matchedTerms"`
	Missing []string `json:"missingTerms"`
	Reason  string   `json:"reason"`
}

// Scorer computes a 0-100 fit score between a candidate's terms and a
// role. Implementations must be pure: same inputs, same result.
type Scorer interface {
	Score(candidateTerms []string, role roles.Role) Result
}

// LexicalScorer scores by exact term overlap between the candidate's
// term set and the role's combined text (title, domain, summary, tags).
type LexicalScorer struct{}

// Score implements Scorer.
func (LexicalScorer) Score(candidateTerms []string, role roles.Role) Result {
	roleTerms := RoleTerms(role)
	candidate := TermSet(candidateTerms)

	matched := make([]string, 0, len(roleTerms))
	missing := make([]string, 0, len(roleTerms))
	for _, term := range roleTerms {
		if _, ok := candidate[term]; ok {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}

	score := 0
	if len(roleTerms) > 0 {
		score = int(math.Round(100 * float64(len(matched)) / float64(len(roleTerms))))
	}

	return Result{
		RoleID:  role.ID,
		Score:   score,
		Matched: truncateTerms(matched, displayTermLimit),
		Missing: truncateTerms(missing, displayTermLimit),
		Reason:  reason(matched),
	}
}

// RoleTerms extracts the deduplicated term list from a role's
// scoreable text.
func RoleTerms(role roles.Role) []string {
	parts := []string{role.Title, role.Domain, role.Summary}
	parts = append(parts, role.Tags...)
	return Terms(strings.Join(parts, " "))
}

func truncateTerms(terms []string, limit int) []string {
	if len(terms) <= limit {
		return terms
	}
	return terms[:limit]
}

func reason(matched []string) string {
	if len(matched) == 0 {
		return "No keyword overlap with your profile yet."
	}
	listed := truncateTerms(matched, reasonTermLimit)
	return fmt.Sprintf("Your profile matches on: %s.", strings.Join(listed, ", "))
}
