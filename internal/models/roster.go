package models

import "time"

// Assignment is one roster row: a crew member placed on a flight.
// (FlightID, CrewID) pairs never repeat.
type Assignment struct {
	ID               string    `db:"id" json:"id"`
	FlightID         string    `db:"flight_id" json:"flight_id"`
	CrewID           string    `db:"crew_id" json:"crew_id"`
	DutyDate         time.Time `db:"duty_date" json:"duty_date"`
	IsManualOverride bool      `db:"is_manual_override" json:"is_manual_override"`
	OverrideReason   *string   `db:"override_reason" json:"override_reason,omitempty"`
	OverrideBy       *string   `db:"override_by" json:"override_by,omitempty"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// RosterEntry is an assignment joined with its flight and crew detail for
// listing views.
type RosterEntry struct {
	AssignmentID     string    `db:"assignment_id" json:"assignment_id"`
	FlightID         string    `db:"flight_id" json:"flight_id"`
	FlightNumber     string    `db:"flight_number" json:"flight_number"`
	Origin           string    `db:"origin" json:"origin"`
	Destination      string    `db:"destination" json:"destination"`
	DepartureTime    time.Time `db:"departure_time" json:"departure_time"`
	ArrivalTime      time.Time `db:"arrival_time" json:"arrival_time"`
	CrewID           string    `db:"crew_id" json:"crew_id"`
	EmployeeID       string    `db:"employee_id" json:"employee_id"`
	CrewName         string    `db:"crew_name" json:"crew_name"`
	Role             CrewRole  `db:"role" json:"role"`
	DutyDate         time.Time `db:"duty_date" json:"duty_date"`
	IsManualOverride bool      `db:"is_manual_override" json:"is_manual_override"`
}

// BuildResult aggregates the outcome of one roster build run.
type BuildResult struct {
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	FlightsProcessed int       `json:"flights_processed"`
	TotalAssignments int       `json:"total_assignments"`
	TotalViolations  int       `json:"total_violations"`
	Duration         string    `json:"duration"`
}
