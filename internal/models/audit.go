package models

import "time"

// AuditAction constants represent actions to be logged.
const (
	AuditActionLogin          = "LOGIN"
	AuditActionRosterBuild    = "ROSTER_BUILD"
	AuditActionRosterOverride = "ROSTER_OVERRIDE"
	AuditActionCrewCreate     = "CREW_CREATE"
	AuditActionCrewUpdate     = "CREW_UPDATE"
	AuditActionCrewDeactivate = "CREW_DEACTIVATE"
	AuditActionFlightCreate   = "FLIGHT_CREATE"
)

// AuditEntry represents an audit trail record.
type AuditEntry struct {
	ID          string    `db:"id" json:"id"`
	Action      string    `db:"action" json:"action"`
	PerformedBy string    `db:"performed_by" json:"performed_by"`
	TargetTable string    `db:"target_table" json:"target_table"`
	TargetID    *string   `db:"target_id" json:"target_id,omitempty"`
	OldValue    *string   `db:"old_value" json:"old_value,omitempty"`
	NewValue    *string   `db:"new_value" json:"new_value,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
