package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/skyops/crew-roster-api/internal/models"
)

// DutyLogRepository reads the append-only duty log.
type DutyLogRepository struct {
	db *sqlx.DB
}

// NewDutyLogRepository constructs a DutyLogRepository.
func NewDutyLogRepository(db *sqlx.DB) *DutyLogRepository {
	return &DutyLogRepository{db: db}
}

// ListSince returns all duty periods starting at or after the given
// instant, ordered by start time. Used to seed crew duty state for
// incremental builds.
func (r *DutyLogRepository) ListSince(ctx context.Context, since time.Time) ([]models.DutyPeriod, error) {
	const query = `SELECT id, crew_id, flight_id, duty_start, duty_end, total_duty_hours, created_at
FROM duty_log
WHERE duty_start >= $1
ORDER BY duty_start ASC`
	var periods []models.DutyPeriod
	if err := r.db.SelectContext(ctx, &periods, query, since); err != nil {
		return nil, fmt.Errorf("list duty log since: %w", err)
	}
	return periods, nil
}

// ListByCrew returns one crew member's duty periods within [start, end].
func (r *DutyLogRepository) ListByCrew(ctx context.Context, crewID string, start, end time.Time) ([]models.DutyPeriod, error) {
	const query = `SELECT id, crew_id, flight_id, duty_start, duty_end, total_duty_hours, created_at
FROM duty_log
WHERE crew_id = $1 AND duty_start >= $2 AND duty_start < $3
ORDER BY duty_start ASC`
	var periods []models.DutyPeriod
	if err := r.db.SelectContext(ctx, &periods, query, crewID, start, end); err != nil {
		return nil, fmt.Errorf("list duty log by crew: %w", err)
	}
	return periods, nil
}

// UtilizationSummary aggregates recent duty per active crew member for the
// utilization view, relative to the provided reference instant.
func (r *DutyLogRepository) UtilizationSummary(ctx context.Context, at time.Time) ([]models.CrewUtilization, error) {
	const query = `
SELECT cm.id AS crew_id, cm.employee_id, cm.full_name, cm.role,
       COUNT(dl.id) AS flights_flown,
       COALESCE(SUM(dl.total_duty_hours) FILTER (WHERE dl.duty_start >= $1), 0) AS hours_last_7,
       COALESCE(SUM(dl.total_duty_hours), 0) AS hours_last_28,
       MAX(dl.duty_end) AS last_duty_end
FROM crew_master cm
LEFT JOIN duty_log dl ON dl.crew_id = cm.id AND dl.duty_start >= $2
WHERE cm.is_active = TRUE
GROUP BY cm.id, cm.employee_id, cm.full_name, cm.role
ORDER BY cm.employee_id ASC`
	var rows []models.CrewUtilization
	week := at.AddDate(0, 0, -7)
	window := at.AddDate(0, 0, -28)
	if err := r.db.SelectContext(ctx, &rows, query, week, window); err != nil {
		return nil, fmt.Errorf("crew utilization summary: %w", err)
	}
	return rows, nil
}
