package dto

import "time"

// CreateFlightRequest schedules a new flight.
type CreateFlightRequest struct {
	FlightNumber  string    `json:"flight_number" validate:"required,max=10"`
	Origin        string    `json:"origin" validate:"required,len=3"`
	Destination   string    `json:"destination" validate:"required,len=3"`
	DepartureTime time.Time `json:"departure_time" validate:"required"`
	ArrivalTime   time.Time `json:"arrival_time" validate:"required"`
	AircraftType  *string   `json:"aircraft_type,omitempty" validate:"omitempty,max=20"`
}
