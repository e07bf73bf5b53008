package models

import "time"

// Violation kinds recorded by the roster builder.
const (
	ViolationNoLegalLead            = "NO_LEGAL_LCC"
	ViolationInsufficientSupporting = "INSUFFICIENT_CC"
)

// Violation records a flight the builder could not fully staff. CrewID is
// nil when the shortfall is not tied to one person.
type Violation struct {
	ID        string    `db:"id" json:"id"`
	FlightID  string    `db:"flight_id" json:"flight_id"`
	CrewID    *string   `db:"crew_id" json:"crew_id,omitempty"`
	Kind      string    `db:"violation_type" json:"violation_type"`
	Details   string    `db:"details" json:"details"`
	FlaggedAt time.Time `db:"flagged_at" json:"flagged_at"`
}

// ViolationFilter captures query options for the legality audit view.
type ViolationFilter struct {
	Kind     string
	Start    *time.Time
	End      *time.Time
	Page     int
	PageSize int
}

// ViolationDetail joins a violation with its flight for listing.
type ViolationDetail struct {
	ID            string    `db:"id" json:"id"`
	FlightID      string    `db:"flight_id" json:"flight_id"`
	FlightNumber  string    `db:"flight_number" json:"flight_number"`
	DepartureTime time.Time `db:"departure_time" json:"departure_time"`
	CrewID        *string   `db:"crew_id" json:"crew_id,omitempty"`
	Kind          string    `db:"violation_type" json:"violation_type"`
	Details       string    `db:"details" json:"details"`
	FlaggedAt     time.Time `db:"flagged_at" json:"flagged_at"`
}
