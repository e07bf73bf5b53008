package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skyops/crew-roster-api/internal/fdtl"
	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.March, day, hour, min, 0, 0, time.UTC)
}

func mkCrew(id string, role models.CrewRole) models.CrewMember {
	return models.CrewMember{ID: id, EmployeeID: id, FullName: "Crew " + id, Role: role, Active: true}
}

func mkFlight(id, number string, dep, arr time.Time) models.Flight {
	return models.Flight{ID: id, FlightNumber: number, Origin: "KHI", Destination: "ISB", DepartureTime: dep, ArrivalTime: arr}
}

type builderFlightStub struct {
	flights []models.Flight
	err     error
}

func (s *builderFlightStub) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Flight, error) {
	return s.flights, s.err
}

type builderCrewStub struct {
	leads      []models.CrewMember
	supporting []models.CrewMember
}

func (s *builderCrewStub) ListActiveByRole(ctx context.Context, role models.CrewRole) ([]models.CrewMember, error) {
	if role == models.RoleLead {
		return s.leads, nil
	}
	return s.supporting, nil
}

type builderDutyStub struct {
	history []models.DutyPeriod
}

func (s *builderDutyStub) ListSince(ctx context.Context, since time.Time) ([]models.DutyPeriod, error) {
	return s.history, nil
}

type buildWriterStub struct {
	calls       int
	assignments []models.Assignment
	duties      []models.DutyPeriod
	violations  []models.Violation
	err         error
}

func (s *buildWriterStub) SaveBuildOutput(ctx context.Context, start, end time.Time, assignments []models.Assignment, duties []models.DutyPeriod, violations []models.Violation) error {
	s.calls++
	s.assignments = assignments
	s.duties = duties
	s.violations = violations
	return s.err
}

func newBuilder(flights *builderFlightStub, crew *builderCrewStub, duty *builderDutyStub, writer *buildWriterStub, cfg RosterBuilderConfig) *RosterBuilderService {
	return NewRosterBuilderService(flights, crew, duty, writer, nil, nil, cfg)
}

func TestBuildRoundRobinAndShortfall(t *testing.T) {
	flights := &builderFlightStub{flights: []models.Flight{
		mkFlight("f1", "PK301", at(1, 8, 0), at(1, 10, 0)),
		mkFlight("f2", "PK302", at(1, 20, 0), at(1, 22, 0)),
	}}
	crew := &builderCrewStub{
		leads:      []models.CrewMember{mkCrew("L1", models.RoleLead), mkCrew("L2", models.RoleLead)},
		supporting: []models.CrewMember{mkCrew("C1", models.RoleSupporting), mkCrew("C2", models.RoleSupporting), mkCrew("C3", models.RoleSupporting)},
	}
	writer := &buildWriterStub{}
	svc := newBuilder(flights, crew, nil, writer, RosterBuilderConfig{SupportingPerFlight: 2})

	result, err := svc.Build(context.Background(), at(1, 0, 0), at(2, 0, 0))
	require.NoError(t, err)
	require.Equal(t, 1, writer.calls)

	// Flight 1: L1 plus C1, C2. Flight 2: rotation starts at L2/C3; the
	// flight-1 crew are all under-rested (10h gap), so only C3 clears.
	assert.Equal(t, 5, result.TotalAssignments)
	assert.Equal(t, 1, result.TotalViolations)

	byFlight := map[string][]string{}
	for _, a := range writer.assignments {
		byFlight[a.FlightID] = append(byFlight[a.FlightID], a.CrewID)
	}
	assert.Equal(t, []string{"L1", "C1", "C2"}, byFlight["f1"])
	assert.Equal(t, []string{"L2", "C3"}, byFlight["f2"])

	require.Len(t, writer.violations, 1)
	v := writer.violations[0]
	assert.Equal(t, "f2", v.FlightID)
	assert.Equal(t, models.ViolationInsufficientSupporting, v.Kind)
	assert.Equal(t, "Only 1/2 CC for PK302 at 2024-03-01 20:00", v.Details)
	assert.Nil(t, v.CrewID)
}

func TestBuildSupportingScanExaminesEachMemberOnce(t *testing.T) {
	// The second flight starts its scan mid-pool and has to step past the
	// under-rested flight-1 crew. The scan must walk C4..C6 in order,
	// never revisit a member after wrapping, and never skip one.
	flights := &builderFlightStub{flights: []models.Flight{
		mkFlight("f1", "PK301", at(1, 8, 0), at(1, 10, 0)),
		mkFlight("f2", "PK302", at(1, 20, 0), at(1, 22, 0)),
	}}
	crew := &builderCrewStub{
		leads: []models.CrewMember{mkCrew("L1", models.RoleLead), mkCrew("L2", models.RoleLead)},
		supporting: []models.CrewMember{
			mkCrew("C1", models.RoleSupporting), mkCrew("C2", models.RoleSupporting),
			mkCrew("C3", models.RoleSupporting), mkCrew("C4", models.RoleSupporting),
			mkCrew("C5", models.RoleSupporting), mkCrew("C6", models.RoleSupporting),
			mkCrew("C7", models.RoleSupporting), mkCrew("C8", models.RoleSupporting),
		},
	}
	writer := &buildWriterStub{}
	svc := newBuilder(flights, crew, nil, writer, RosterBuilderConfig{SupportingPerFlight: 3})

	result, err := svc.Build(context.Background(), at(1, 0, 0), at(2, 0, 0))
	require.NoError(t, err)
	assert.Zero(t, result.TotalViolations)

	byFlight := map[string][]string{}
	pairs := map[string]int{}
	for _, a := range writer.assignments {
		byFlight[a.FlightID] = append(byFlight[a.FlightID], a.CrewID)
		pairs[a.FlightID+"|"+a.CrewID]++
	}
	assert.Equal(t, []string{"L1", "C1", "C2", "C3"}, byFlight["f1"])
	assert.Equal(t, []string{"L2", "C4", "C5", "C6"}, byFlight["f2"])
	for pair, count := range pairs {
		assert.Equal(t, 1, count, "pair %s assigned %d times", pair, count)
	}
}

func TestBuildSkipsUnderRestedCandidate(t *testing.T) {
	flights := &builderFlightStub{flights: []models.Flight{
		mkFlight("f1", "PK401", at(1, 19, 0), at(1, 22, 0)),
	}}
	crew := &builderCrewStub{
		leads: []models.CrewMember{mkCrew("L1", models.RoleLead), mkCrew("L2", models.RoleLead)},
	}
	duty := &builderDutyStub{history: []models.DutyPeriod{
		{CrewID: "L1", FlightID: "prior", DutyStart: at(1, 5, 0), DutyEnd: at(1, 8, 0), DutyHours: 3},
	}}
	writer := &buildWriterStub{}
	svc := newBuilder(flights, crew, duty, writer, RosterBuilderConfig{SupportingPerFlight: 1, SeedDutyHistory: true})

	result, err := svc.Build(context.Background(), at(1, 0, 0), at(2, 0, 0))
	require.NoError(t, err)

	// L1 rested only 11h; the rotation moves on to L2.
	require.Len(t, writer.assignments, 1)
	assert.Equal(t, "L2", writer.assignments[0].CrewID)
	// No supporting crew at all: shortfall recorded, build continues.
	assert.Equal(t, 1, result.TotalViolations)
	assert.Equal(t, models.ViolationInsufficientSupporting, writer.violations[0].Kind)
}

func TestBuildNoLegalLeadViolation(t *testing.T) {
	flights := &builderFlightStub{flights: []models.Flight{
		mkFlight("f1", "PK501", at(1, 10, 0), at(1, 11, 30)),
	}}
	crew := &builderCrewStub{
		supporting: []models.CrewMember{mkCrew("C1", models.RoleSupporting), mkCrew("C2", models.RoleSupporting), mkCrew("C3", models.RoleSupporting)},
	}
	writer := &buildWriterStub{}
	svc := newBuilder(flights, crew, nil, writer, RosterBuilderConfig{SupportingPerFlight: 3})

	result, err := svc.Build(context.Background(), at(1, 0, 0), at(2, 0, 0))
	require.NoError(t, err)

	// Flight still gets its supporting crew alongside the lead shortfall.
	assert.Equal(t, 3, result.TotalAssignments)
	require.Len(t, writer.violations, 1)
	assert.Equal(t, models.ViolationNoLegalLead, writer.violations[0].Kind)
	assert.Equal(t, "No legal LCC for PK501 at 2024-03-01 10:00", writer.violations[0].Details)
}

func TestBuildFailsFastOnInvalidRange(t *testing.T) {
	writer := &buildWriterStub{}
	svc := newBuilder(&builderFlightStub{}, &builderCrewStub{}, nil, writer, RosterBuilderConfig{})

	_, err := svc.Build(context.Background(), at(2, 0, 0), at(1, 0, 0))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidDateRange.Code, appErrors.FromError(err).Code)
	assert.Zero(t, writer.calls)
}

func TestBuildFailsFastOnEmptyCrewPool(t *testing.T) {
	writer := &buildWriterStub{}
	svc := newBuilder(&builderFlightStub{}, &builderCrewStub{}, nil, writer, RosterBuilderConfig{})

	_, err := svc.Build(context.Background(), at(1, 0, 0), at(2, 0, 0))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrEmptyCrewPool.Code, appErrors.FromError(err).Code)
	assert.Zero(t, writer.calls)
}

func TestBuildPersistenceFailureAborts(t *testing.T) {
	flights := &builderFlightStub{flights: []models.Flight{
		mkFlight("f1", "PK301", at(1, 8, 0), at(1, 10, 0)),
	}}
	crew := &builderCrewStub{
		leads:      []models.CrewMember{mkCrew("L1", models.RoleLead)},
		supporting: []models.CrewMember{mkCrew("C1", models.RoleSupporting)},
	}
	writer := &buildWriterStub{err: errors.New("connection lost")}
	svc := newBuilder(flights, crew, nil, writer, RosterBuilderConfig{SupportingPerFlight: 1})

	_, err := svc.Build(context.Background(), at(1, 0, 0), at(2, 0, 0))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInternal.Code, appErrors.FromError(err).Code)
}

func TestBuildIsDeterministic(t *testing.T) {
	mk := func() (*RosterBuilderService, *buildWriterStub) {
		flights := &builderFlightStub{flights: []models.Flight{
			mkFlight("f1", "PK301", at(1, 8, 0), at(1, 11, 0)),
			mkFlight("f2", "PK302", at(1, 11, 0), at(1, 14, 0)),
			mkFlight("f3", "PK303", at(2, 8, 0), at(2, 11, 0)),
		}}
		crew := &builderCrewStub{
			leads: []models.CrewMember{mkCrew("L1", models.RoleLead), mkCrew("L2", models.RoleLead), mkCrew("L3", models.RoleLead)},
			supporting: []models.CrewMember{
				mkCrew("C1", models.RoleSupporting), mkCrew("C2", models.RoleSupporting),
				mkCrew("C3", models.RoleSupporting), mkCrew("C4", models.RoleSupporting),
			},
		}
		writer := &buildWriterStub{}
		return newBuilder(flights, crew, nil, writer, RosterBuilderConfig{SupportingPerFlight: 2}), writer
	}

	svcA, writerA := mk()
	svcB, writerB := mk()

	resA, err := svcA.Build(context.Background(), at(1, 0, 0), at(3, 0, 0))
	require.NoError(t, err)
	resB, err := svcB.Build(context.Background(), at(1, 0, 0), at(3, 0, 0))
	require.NoError(t, err)

	assert.Equal(t, resA.TotalAssignments, resB.TotalAssignments)
	assert.Equal(t, resA.TotalViolations, resB.TotalViolations)
	assert.Equal(t, writerA.assignments, writerB.assignments)
	assert.Equal(t, writerA.violations, writerB.violations)
}

func TestBuildInvariantsHold(t *testing.T) {
	var fleet []models.Flight
	// Three daily legs over four days, tight enough to force rotation.
	for day := 1; day <= 4; day++ {
		fleet = append(fleet,
			mkFlight(fid(day, 1), "PK301", at(day, 8, 0), at(day, 11, 0)),
			mkFlight(fid(day, 2), "PK302", at(day, 11, 30), at(day, 14, 30)),
			mkFlight(fid(day, 3), "PK303", at(day, 15, 0), at(day, 18, 0)),
		)
	}
	crew := &builderCrewStub{
		leads: []models.CrewMember{
			mkCrew("L1", models.RoleLead), mkCrew("L2", models.RoleLead),
			mkCrew("L3", models.RoleLead), mkCrew("L4", models.RoleLead),
		},
		supporting: []models.CrewMember{
			mkCrew("C1", models.RoleSupporting), mkCrew("C2", models.RoleSupporting),
			mkCrew("C3", models.RoleSupporting), mkCrew("C4", models.RoleSupporting),
			mkCrew("C5", models.RoleSupporting), mkCrew("C6", models.RoleSupporting),
			mkCrew("C7", models.RoleSupporting), mkCrew("C8", models.RoleSupporting),
		},
	}
	writer := &buildWriterStub{}
	svc := newBuilder(&builderFlightStub{flights: fleet}, crew, nil, writer, RosterBuilderConfig{SupportingPerFlight: 3})

	_, err := svc.Build(context.Background(), at(1, 0, 0), at(5, 0, 0))
	require.NoError(t, err)

	// No duplicate (flight, crew) pairs.
	pairs := map[string]bool{}
	for _, a := range writer.assignments {
		key := a.FlightID + "|" + a.CrewID
		assert.False(t, pairs[key], "duplicate pair %s", key)
		pairs[key] = true
	}

	// Rest invariant and no overlapping periods per crew member.
	limits := fdtl.DefaultLimits()
	byCrew := map[string][]models.DutyPeriod{}
	for _, d := range writer.duties {
		byCrew[d.CrewID] = append(byCrew[d.CrewID], d)
	}
	for crewID, periods := range byCrew {
		for i := 1; i < len(periods); i++ {
			gap := periods[i].DutyStart.Sub(periods[i-1].DutyEnd).Hours()
			assert.GreaterOrEqual(t, gap, limits.MinRestHours, "crew %s under-rested", crewID)
		}
	}

	// Completeness: every flight either fully staffed or flagged.
	flagged := map[string]bool{}
	for _, v := range writer.violations {
		flagged[v.FlightID] = true
	}
	for _, f := range fleet {
		leadCount, supCount := 0, 0
		for _, a := range writer.assignments {
			if a.FlightID != f.ID {
				continue
			}
			if a.CrewID[0] == 'L' {
				leadCount++
			} else {
				supCount++
			}
		}
		if leadCount != 1 || supCount != 3 {
			assert.True(t, flagged[f.ID], "flight %s understaffed without violation", f.ID)
		}
	}
}

func fid(day, leg int) string {
	return "f" + time.Date(2024, time.March, day, 0, 0, 0, 0, time.UTC).Format("02") + "-" + string(rune('0'+leg))
}
