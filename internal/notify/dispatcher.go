package notify

import (
	"context"

	"jobmatch-backend/internal/shared/telemetry"
)

// StageChange is the fact emitted when an application reaches a stage
// worth telling the candidate about. Rendering and delivery happen in an
// external dispatcher; the engine only decides that and what.
type StageChange struct {
	UserID        string `json:"userId"`
	ApplicationID string `json:"applicationId"`
	RoleTitle     string `json:"roleTitle"`
	Company       string `json:"company"`
	Stage         string `json:"stage"`
	MatchScore    int    `json:"matchScore"`
	Reason        string `json:"reason"`
}

// Dispatcher accepts stage-change facts. Implementations must not block
// the calling request on delivery.
type Dispatcher interface {
	Notify(ctx context.Context, change StageChange) error
}

// LogDispatcher records stage changes in the service log. It stands in
// for the external delivery system in dev and tests.
type LogDispatcher struct{}

// Notify implements Dispatcher.
func (LogDispatcher) Notify(ctx context.Context, change StageChange) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	telemetry.Info("notify.stage_change", map[string]any{
		"user_id":        change.UserID,
		"application_id": change.ApplicationID,
		"role_title":     change.RoleTitle,
		"company":        change.Company,
		"stage":          change.Stage,
		"match_score":    change.MatchScore,
	})
	return nil
}
