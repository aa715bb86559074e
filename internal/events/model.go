package events

import "time"

// Action tags form a closed enumeration so the audit trail stays queryable.
const (
	ActionAutoApplyRun       = "AUTO_APPLY_RUN"
	ActionApplicationCreated = "APPLICATION_CREATED"
	ActionApplicationApprove = "APPLICATION_APPROVED"
	ActionApplicationReject  = "APPLICATION_REJECTED"
	ActionApplicationStage   = "APPLICATION_STAGE_UPDATED"
	ActionConfigUpdated      = "AUTOMATION_CONFIG_UPDATED"
	ActionResumeIngested     = "RESUME_INGESTED"
)

// Event is an immutable audit record of a user- or system-driven action.
type Event struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	CreatedAt time.Time `json:"createdAt"`
}
