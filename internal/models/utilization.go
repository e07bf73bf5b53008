package models

import "time"

// CrewUtilization aggregates one crew member's recent duty for the
// utilization view.
type CrewUtilization struct {
	CrewID       string     `db:"crew_id" json:"crew_id"`
	EmployeeID   string     `db:"employee_id" json:"employee_id"`
	FullName     string     `db:"full_name" json:"full_name"`
	Role         CrewRole   `db:"role" json:"role"`
	FlightsFlown int        `db:"flights_flown" json:"flights_flown"`
	HoursLast7   float64    `db:"hours_last_7" json:"hours_last_7"`
	HoursLast28  float64    `db:"hours_last_28" json:"hours_last_28"`
	LastDutyEnd  *time.Time `db:"last_duty_end" json:"last_duty_end,omitempty"`
}
