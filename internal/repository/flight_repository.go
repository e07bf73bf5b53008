package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skyops/crew-roster-api/internal/models"
)

// FlightRepository manages persistence for the flight schedule.
type FlightRepository struct {
	db *sqlx.DB
}

// NewFlightRepository constructs a FlightRepository.
func NewFlightRepository(db *sqlx.DB) *FlightRepository {
	return &FlightRepository{db: db}
}

// ListByDateRange returns flights departing within [start, end] ordered by
// departure time. The ordering is load-bearing: the roster builder relies
// on processing flights chronologically.
func (r *FlightRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Flight, error) {
	const query = `SELECT id, flight_number, origin, destination, departure_time, arrival_time, aircraft_type, created_at
FROM flight_schedule
WHERE departure_time >= $1 AND departure_time < $2
ORDER BY departure_time ASC, flight_number ASC`
	var flights []models.Flight
	if err := r.db.SelectContext(ctx, &flights, query, start, end); err != nil {
		return nil, fmt.Errorf("list flights by range: %w", err)
	}
	return flights, nil
}

// List returns flights matching filters along with total count.
func (r *FlightRepository) List(ctx context.Context, filter models.FlightFilter) ([]models.Flight, int, error) {
	base := "FROM flight_schedule WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.FlightNumber != "" {
		conditions = append(conditions, fmt.Sprintf("flight_number = $%d", len(args)+1))
		args = append(args, strings.ToUpper(filter.FlightNumber))
	}
	if filter.Origin != "" {
		conditions = append(conditions, fmt.Sprintf("origin = $%d", len(args)+1))
		args = append(args, strings.ToUpper(filter.Origin))
	}
	if filter.Destination != "" {
		conditions = append(conditions, fmt.Sprintf("destination = $%d", len(args)+1))
		args = append(args, strings.ToUpper(filter.Destination))
	}
	if filter.Start != nil {
		conditions = append(conditions, fmt.Sprintf("departure_time >= $%d", len(args)+1))
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, fmt.Sprintf("departure_time < $%d", len(args)+1))
		args = append(args, *filter.End)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT id, flight_number, origin, destination, departure_time, arrival_time, aircraft_type, created_at %s ORDER BY departure_time ASC LIMIT %d OFFSET %d", base, size, offset)
	var flights []models.Flight
	if err := r.db.SelectContext(ctx, &flights, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list flights: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count flights: %w", err)
	}

	return flights, total, nil
}

// FindByID fetches a flight by ID.
func (r *FlightRepository) FindByID(ctx context.Context, id string) (*models.Flight, error) {
	const query = `SELECT id, flight_number, origin, destination, departure_time, arrival_time, aircraft_type, created_at FROM flight_schedule WHERE id = $1`
	var flight models.Flight
	if err := r.db.GetContext(ctx, &flight, query, id); err != nil {
		return nil, err
	}
	return &flight, nil
}

// Create inserts a new scheduled flight.
func (r *FlightRepository) Create(ctx context.Context, flight *models.Flight) error {
	if flight.ID == "" {
		flight.ID = uuid.NewString()
	}
	if flight.CreatedAt.IsZero() {
		flight.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO flight_schedule (id, flight_number, origin, destination, departure_time, arrival_time, aircraft_type, created_at)
		VALUES (:id, :flight_number, :origin, :destination, :departure_time, :arrival_time, :aircraft_type, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, flight); err != nil {
		return fmt.Errorf("create flight: %w", err)
	}
	return nil
}
