package models

import "time"

// Flight represents a scheduled flight leg. Immutable once scheduled;
// ArrivalTime is always after DepartureTime.
type Flight struct {
	ID            string    `db:"id" json:"id"`
	FlightNumber  string    `db:"flight_number" json:"flight_number"`
	Origin        string    `db:"origin" json:"origin"`
	Destination   string    `db:"destination" json:"destination"`
	DepartureTime time.Time `db:"departure_time" json:"departure_time"`
	ArrivalTime   time.Time `db:"arrival_time" json:"arrival_time"`
	AircraftType  *string   `db:"aircraft_type" json:"aircraft_type,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// BlockHours returns the flight duration in real-valued hours.
func (f Flight) BlockHours() float64 {
	return f.ArrivalTime.Sub(f.DepartureTime).Hours()
}

// FlightFilter captures query options for listing flights.
type FlightFilter struct {
	FlightNumber string
	Origin       string
	Destination  string
	Start        *time.Time
	End          *time.Time
	Page         int
	PageSize     int
	SortBy       string
	SortOrder    string
}
