package models

import "time"

// DutyPeriod is one append-only duty log row: a crew member operating a
// flight from DutyStart to DutyEnd. DutyHours = (end - start) in hours.
type DutyPeriod struct {
	ID        string    `db:"id" json:"id"`
	CrewID    string    `db:"crew_id" json:"crew_id"`
	FlightID  string    `db:"flight_id" json:"flight_id"`
	DutyStart time.Time `db:"duty_start" json:"duty_start"`
	DutyEnd   time.Time `db:"duty_end" json:"duty_end"`
	DutyHours float64   `db:"total_duty_hours" json:"total_duty_hours"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
