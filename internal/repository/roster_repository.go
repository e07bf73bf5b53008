package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skyops/crew-roster-api/internal/models"
)

// RosterRepository persists roster assignments and the build output batch.
type RosterRepository struct {
	db *sqlx.DB
}

// NewRosterRepository constructs a RosterRepository.
func NewRosterRepository(db *sqlx.DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// SaveBuildOutput writes one build run's assignments, duty periods and
// violations in a single transaction. Prior engine-owned rows in the
// window are cleared first; manual overrides survive rebuilds. The
// assignment insert ignores existing (flight, crew) pairs so re-running a
// build is idempotent.
func (r *RosterRepository) SaveBuildOutput(ctx context.Context, start, end time.Time, assignments []models.Assignment, duties []models.DutyPeriod, violations []models.Violation) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin build transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	const clearDuty = `DELETE FROM duty_log WHERE duty_start >= $1 AND duty_start < $2`
	if _, err := tx.ExecContext(ctx, clearDuty, start, end); err != nil {
		return fmt.Errorf("clear duty log: %w", err)
	}
	const clearRoster = `DELETE FROM roster WHERE duty_date >= $1 AND duty_date < $2 AND is_manual_override = FALSE`
	if _, err := tx.ExecContext(ctx, clearRoster, start, end); err != nil {
		return fmt.Errorf("clear roster: %w", err)
	}
	const clearViolations = `DELETE FROM legality_violations WHERE flight_id IN (SELECT id FROM flight_schedule WHERE departure_time >= $1 AND departure_time < $2)`
	if _, err := tx.ExecContext(ctx, clearViolations, start, end); err != nil {
		return fmt.Errorf("clear violations: %w", err)
	}

	const insertAssignment = `INSERT INTO roster (id, flight_id, crew_id, duty_date, is_manual_override, created_at)
		VALUES (:id, :flight_id, :crew_id, :duty_date, :is_manual_override, :created_at)
		ON CONFLICT (flight_id, crew_id) DO NOTHING`
	for i := range assignments {
		if assignments[i].ID == "" {
			assignments[i].ID = uuid.NewString()
		}
		if assignments[i].CreatedAt.IsZero() {
			assignments[i].CreatedAt = time.Now().UTC()
		}
		if _, err := tx.NamedExecContext(ctx, insertAssignment, assignments[i]); err != nil {
			return fmt.Errorf("insert assignment: %w", err)
		}
	}

	const insertDuty = `INSERT INTO duty_log (id, crew_id, flight_id, duty_start, duty_end, total_duty_hours, created_at)
		VALUES (:id, :crew_id, :flight_id, :duty_start, :duty_end, :total_duty_hours, :created_at)`
	for i := range duties {
		if duties[i].ID == "" {
			duties[i].ID = uuid.NewString()
		}
		if duties[i].CreatedAt.IsZero() {
			duties[i].CreatedAt = time.Now().UTC()
		}
		if _, err := tx.NamedExecContext(ctx, insertDuty, duties[i]); err != nil {
			return fmt.Errorf("insert duty period: %w", err)
		}
	}

	const insertViolation = `INSERT INTO legality_violations (id, flight_id, crew_id, violation_type, details, flagged_at)
		VALUES (:id, :flight_id, :crew_id, :violation_type, :details, :flagged_at)`
	for i := range violations {
		if violations[i].ID == "" {
			violations[i].ID = uuid.NewString()
		}
		if violations[i].FlaggedAt.IsZero() {
			violations[i].FlaggedAt = time.Now().UTC()
		}
		if _, err := tx.NamedExecContext(ctx, insertViolation, violations[i]); err != nil {
			return fmt.Errorf("insert violation: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit build output: %w", err)
	}
	return nil
}

const rosterEntryColumns = `
SELECT ro.id AS assignment_id, ro.flight_id, fs.flight_number, fs.origin, fs.destination,
       fs.departure_time, fs.arrival_time, ro.crew_id, cm.employee_id,
       cm.full_name AS crew_name, cm.role, ro.duty_date, ro.is_manual_override
FROM roster ro
JOIN flight_schedule fs ON fs.id = ro.flight_id
JOIN crew_master cm ON cm.id = ro.crew_id`

// ListByDateRange returns roster entries for duty dates within [start, end).
func (r *RosterRepository) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RosterEntry, error) {
	query := rosterEntryColumns + `
WHERE ro.duty_date >= $1 AND ro.duty_date < $2
ORDER BY fs.departure_time ASC, cm.role DESC, cm.employee_id ASC`
	var entries []models.RosterEntry
	if err := r.db.SelectContext(ctx, &entries, query, start, end); err != nil {
		return nil, fmt.Errorf("list roster by range: %w", err)
	}
	return entries, nil
}

// ListByCrew returns one crew member's roster entries within [start, end).
func (r *RosterRepository) ListByCrew(ctx context.Context, crewID string, start, end time.Time) ([]models.RosterEntry, error) {
	query := rosterEntryColumns + `
WHERE ro.crew_id = $1 AND ro.duty_date >= $2 AND ro.duty_date < $3
ORDER BY fs.departure_time ASC`
	var entries []models.RosterEntry
	if err := r.db.SelectContext(ctx, &entries, query, crewID, start, end); err != nil {
		return nil, fmt.Errorf("list roster by crew: %w", err)
	}
	return entries, nil
}

// FindAssignment fetches a roster row by id.
func (r *RosterRepository) FindAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	const query = `SELECT id, flight_id, crew_id, duty_date, is_manual_override, override_reason, override_by, created_at FROM roster WHERE id = $1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// ExistsPair reports whether the (flight, crew) pair is already rostered.
func (r *RosterRepository) ExistsPair(ctx context.Context, flightID, crewID string) (bool, error) {
	const query = `SELECT 1 FROM roster WHERE flight_id = $1 AND crew_id = $2 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, flightID, crewID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check roster pair: %w", err)
	}
	return true, nil
}

// OverrideAssignment swaps the crew member on a roster row and rewrites
// the matching duty log row, in one transaction.
func (r *RosterRepository) OverrideAssignment(ctx context.Context, assignmentID, newCrewID, reason, overrideBy string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin override transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var current models.Assignment
	const fetch = `SELECT id, flight_id, crew_id, duty_date, is_manual_override, override_reason, override_by, created_at FROM roster WHERE id = $1 FOR UPDATE`
	if err := tx.GetContext(ctx, &current, fetch, assignmentID); err != nil {
		return err
	}

	const updateRoster = `UPDATE roster SET crew_id = $2, is_manual_override = TRUE, override_reason = $3, override_by = $4 WHERE id = $1`
	if _, err := tx.ExecContext(ctx, updateRoster, assignmentID, newCrewID, reason, overrideBy); err != nil {
		return fmt.Errorf("override roster row: %w", err)
	}

	const updateDuty = `UPDATE duty_log SET crew_id = $3 WHERE flight_id = $1 AND crew_id = $2`
	if _, err := tx.ExecContext(ctx, updateDuty, current.FlightID, current.CrewID, newCrewID); err != nil {
		return fmt.Errorf("override duty log row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit override: %w", err)
	}
	return nil
}
