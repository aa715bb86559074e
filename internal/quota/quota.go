// Package quota tracks how many automated applications a user has
// created per UTC day. The counter is persisted independently of the
// application set, so repeated orchestrator runs within one day share a
// single budget instead of each minting a full shortlist.
package quota

import (
	"errors"
	"time"
)

// ErrLimitReached indicates the user's daily budget is exhausted.
var ErrLimitReached = errors.New("daily application limit reached")

// Usage is a user's consumption for one UTC day.
type Usage struct {
	UserID string `json:"userId"`
	Day    string `json:"day"`
	Used   int    `json:"used"`
}

// DayKey formats the UTC day bucket for a point in time.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
