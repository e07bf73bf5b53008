package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/fdtl"
	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type rosterRepoStub struct {
	assignments map[string]*models.Assignment
	entries     []models.RosterEntry
	pairTaken   bool
	overrides   []string
	overrideErr error
}

func newRosterRepoStub() *rosterRepoStub {
	return &rosterRepoStub{assignments: map[string]*models.Assignment{}}
}

func (s *rosterRepoStub) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RosterEntry, error) {
	return s.entries, nil
}

func (s *rosterRepoStub) ListByCrew(ctx context.Context, crewID string, start, end time.Time) ([]models.RosterEntry, error) {
	return s.entries, nil
}

func (s *rosterRepoStub) FindAssignment(ctx context.Context, id string) (*models.Assignment, error) {
	assignment, ok := s.assignments[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return assignment, nil
}

func (s *rosterRepoStub) ExistsPair(ctx context.Context, flightID, crewID string) (bool, error) {
	return s.pairTaken, nil
}

func (s *rosterRepoStub) OverrideAssignment(ctx context.Context, assignmentID, newCrewID, reason, overrideBy string) error {
	if s.overrideErr != nil {
		return s.overrideErr
	}
	s.overrides = append(s.overrides, assignmentID+"->"+newCrewID)
	return nil
}

type dutyByCrewStub struct {
	periods []models.DutyPeriod
}

func (s *dutyByCrewStub) ListByCrew(ctx context.Context, crewID string, start, end time.Time) ([]models.DutyPeriod, error) {
	var out []models.DutyPeriod
	for _, p := range s.periods {
		if p.CrewID == crewID {
			out = append(out, p)
		}
	}
	return out, nil
}

type cacheInvalidatorStub struct {
	patterns []string
}

func (s *cacheInvalidatorStub) DeleteByPattern(ctx context.Context, pattern string) error {
	s.patterns = append(s.patterns, pattern)
	return nil
}

func overrideFixture() (*rosterRepoStub, *crewRepoStub, *flightRepoStub, *dutyByCrewStub) {
	roster := newRosterRepoStub()
	roster.assignments["asg-1"] = &models.Assignment{ID: "asg-1", FlightID: "f1", CrewID: "crew-old", DutyDate: at(1, 0, 0)}

	crew := newCrewRepoStub()
	crew.members["crew-old"] = &models.CrewMember{ID: "crew-old", EmployeeID: "CC001", FullName: "Old Crew", Role: models.RoleSupporting, Active: true}
	crew.members["crew-new"] = &models.CrewMember{ID: "crew-new", EmployeeID: "CC002", FullName: "New Crew", Role: models.RoleSupporting, Active: true}

	flights := newFlightRepoStub()
	f := mkFlight("f1", "PK301", at(1, 19, 0), at(1, 22, 0))
	flights.flights["f1"] = &f

	return roster, crew, flights, &dutyByCrewStub{}
}

// audit and cache take the interface types so tests passing a bare nil
// leave the service's nil checks meaningful.
func newRosterService(roster *rosterRepoStub, crew *crewRepoStub, flights *flightRepoStub, duty *dutyByCrewStub, audit auditWriter, cache cacheInvalidator) *RosterService {
	return NewRosterService(roster, crew, flights, duty, audit, cache, fdtl.Limits{}, nil, nil)
}

func TestOverrideSwapsCrewAndAudits(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	audit := &auditStub{}
	cache := &cacheInvalidatorStub{}
	svc := newRosterService(roster, crew, flights, duty, audit, cache)

	result, err := svc.Override(context.Background(), "asg-1", dto.OverrideAssignmentRequest{CrewID: "crew-new", Reason: "sick leave cover"}, "ops@example.com")
	require.NoError(t, err)
	assert.Empty(t, result.LegalityWarning)
	assert.Equal(t, []string{"asg-1->crew-new"}, roster.overrides)
	require.Len(t, audit.entries, 1)
	assert.Equal(t, models.AuditActionRosterOverride, audit.entries[0].Action)
	assert.Equal(t, []string{"utilization:*"}, cache.patterns)
}

func TestOverrideWarnsWhenReplacementUnderRested(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	// Replacement came off duty at 08:00; the 19:00 departure leaves 11h rest.
	duty.periods = []models.DutyPeriod{
		{CrewID: "crew-new", FlightID: "prior", DutyStart: at(1, 5, 0), DutyEnd: at(1, 8, 0), DutyHours: 3},
	}
	svc := newRosterService(roster, crew, flights, duty, nil, nil)

	result, err := svc.Override(context.Background(), "asg-1", dto.OverrideAssignmentRequest{CrewID: "crew-new", Reason: "sick leave cover"}, "ops@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Insufficient rest: 11.0h < 12h", result.LegalityWarning)
	// The swap still goes through; the operator owns the exception.
	assert.Len(t, roster.overrides, 1)
}

func TestOverrideIgnoresTheFlightsOwnDutyRow(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	// A stale duty row for this very flight must not count against the
	// replacement's history.
	duty.periods = []models.DutyPeriod{
		{CrewID: "crew-new", FlightID: "f1", DutyStart: at(1, 19, 0), DutyEnd: at(1, 22, 0), DutyHours: 3},
	}
	svc := newRosterService(roster, crew, flights, duty, nil, nil)

	result, err := svc.Override(context.Background(), "asg-1", dto.OverrideAssignmentRequest{CrewID: "crew-new", Reason: "sick leave cover"}, "ops@example.com")
	require.NoError(t, err)
	assert.Empty(t, result.LegalityWarning)
}

func TestOverrideRejectsRoleMismatch(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	crew.members["crew-new"].Role = models.RoleLead
	svc := newRosterService(roster, crew, flights, duty, nil, nil)

	_, err := svc.Override(context.Background(), "asg-1", dto.OverrideAssignmentRequest{CrewID: "crew-new", Reason: "sick leave cover"}, "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	assert.Empty(t, roster.overrides)
}

func TestOverrideRejectsInactiveReplacement(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	crew.members["crew-new"].Active = false
	svc := newRosterService(roster, crew, flights, duty, nil, nil)

	_, err := svc.Override(context.Background(), "asg-1", dto.OverrideAssignmentRequest{CrewID: "crew-new", Reason: "sick leave cover"}, "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
}

func TestOverrideRejectsDoubleBooking(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	roster.pairTaken = true
	svc := newRosterService(roster, crew, flights, duty, nil, nil)

	_, err := svc.Override(context.Background(), "asg-1", dto.OverrideAssignmentRequest{CrewID: "crew-new", Reason: "sick leave cover"}, "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestOverrideRejectsSameCrew(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	svc := newRosterService(roster, crew, flights, duty, nil, nil)

	_, err := svc.Override(context.Background(), "asg-1", dto.OverrideAssignmentRequest{CrewID: "crew-old", Reason: "sick leave cover"}, "ops@example.com")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestRosterListRejectsInvalidRange(t *testing.T) {
	roster, crew, flights, duty := overrideFixture()
	svc := newRosterService(roster, crew, flights, duty, nil, nil)

	_, err := svc.ListByDateRange(context.Background(), at(2, 0, 0), at(1, 0, 0))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidDateRange.Code, appErrors.FromError(err).Code)
}
