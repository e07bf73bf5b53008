package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/crew-roster-api/internal/models"
)

func TestRosterRepositorySaveBuildOutput(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM duty_log").
		WithArgs(start, end).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM roster").
		WithArgs(start, end).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("DELETE FROM legality_violations").
		WithArgs(start, end).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO roster").
		WithArgs(sqlmock.AnyArg(), "f1", "crew-1", sqlmock.AnyArg(), false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO duty_log").
		WithArgs(sqlmock.AnyArg(), "crew-1", "f1", sqlmock.AnyArg(), sqlmock.AnyArg(), 2.0, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO legality_violations").
		WithArgs(sqlmock.AnyArg(), "f2", nil, models.ViolationNoLegalLead, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	assignments := []models.Assignment{{FlightID: "f1", CrewID: "crew-1", DutyDate: start}}
	duties := []models.DutyPeriod{{CrewID: "crew-1", FlightID: "f1", DutyStart: start.Add(8 * time.Hour), DutyEnd: start.Add(10 * time.Hour), DutyHours: 2.0}}
	violations := []models.Violation{{FlightID: "f2", Kind: models.ViolationNoLegalLead, Details: "No legal LCC for PK302 at 2024-03-01 20:00"}}

	err := repo.SaveBuildOutput(context.Background(), start, end, assignments, duties, violations)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositorySaveBuildOutputRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 7)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM duty_log").
		WithArgs(start, end).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := repo.SaveBuildOutput(context.Background(), start, end, nil, nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "clear duty log")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryListByDateRange(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	start := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	rows := sqlmock.NewRows([]string{"assignment_id", "flight_id", "flight_number", "origin", "destination", "departure_time", "arrival_time", "crew_id", "employee_id", "crew_name", "role", "duty_date", "is_manual_override"}).
		AddRow("asg-1", "f1", "PK301", "KHI", "ISB", start.Add(8*time.Hour), start.Add(10*time.Hour), "crew-1", "LCC001", "Lead One", "LCC", start, false)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ro.duty_date >= $1 AND ro.duty_date < $2")).
		WithArgs(start, end).
		WillReturnRows(rows)

	entries, err := repo.ListByDateRange(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "PK301", entries[0].FlightNumber)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryOverrideAssignment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	current := sqlmock.NewRows([]string{"id", "flight_id", "crew_id", "duty_date", "is_manual_override", "override_reason", "override_by", "created_at"}).
		AddRow("asg-1", "f1", "crew-old", time.Now(), false, nil, nil, time.Now())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT .+ FROM roster WHERE id = .+ FOR UPDATE").
		WithArgs("asg-1").
		WillReturnRows(current)
	mock.ExpectExec("UPDATE roster SET crew_id").
		WithArgs("asg-1", "crew-new", "sick leave cover", "ops@example.com").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE duty_log SET crew_id").
		WithArgs("f1", "crew-old", "crew-new").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.OverrideAssignment(context.Background(), "asg-1", "crew-new", "sick leave cover", "ops@example.com")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRosterRepositoryExistsPair(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRosterRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM roster WHERE flight_id = $1 AND crew_id = $2")).
		WithArgs("f1", "crew-1").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

	taken, err := repo.ExistsPair(context.Background(), "f1", "crew-1")
	require.NoError(t, err)
	assert.False(t, taken)
	assert.NoError(t, mock.ExpectationsWereMet())
}
