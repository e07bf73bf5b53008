package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/skyops/crew-roster-api/internal/fdtl"
	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type rosterFlightReader interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.Flight, error)
}

type rosterCrewReader interface {
	ListActiveByRole(ctx context.Context, role models.CrewRole) ([]models.CrewMember, error)
}

type dutyHistoryReader interface {
	ListSince(ctx context.Context, since time.Time) ([]models.DutyPeriod, error)
}

type buildOutputWriter interface {
	SaveBuildOutput(ctx context.Context, start, end time.Time, assignments []models.Assignment, duties []models.DutyPeriod, violations []models.Violation) error
}

// RosterBuilderConfig tunes one builder instance.
type RosterBuilderConfig struct {
	Limits              fdtl.Limits
	SupportingPerFlight int
	SeedDutyHistory     bool
}

// RosterBuilderService assigns legal crew to every flight in a window.
// One Build call is a single deterministic greedy pass: flights are
// processed in departure order and each assignment is visible to the
// legality checks of all later flights. The service holds no state across
// calls; the duty ledger lives and dies with one invocation.
type RosterBuilderService struct {
	flights   rosterFlightReader
	crew      rosterCrewReader
	dutyLog   dutyHistoryReader
	writer    buildOutputWriter
	evaluator *fdtl.Evaluator
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       RosterBuilderConfig
}

// NewRosterBuilderService wires builder dependencies.
func NewRosterBuilderService(
	flights rosterFlightReader,
	crew rosterCrewReader,
	dutyLog dutyHistoryReader,
	writer buildOutputWriter,
	metrics *MetricsService,
	logger *zap.Logger,
	cfg RosterBuilderConfig,
) *RosterBuilderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.SupportingPerFlight <= 0 {
		cfg.SupportingPerFlight = 3
	}
	zero := fdtl.Limits{}
	if cfg.Limits == zero {
		cfg.Limits = fdtl.DefaultLimits()
	}
	return &RosterBuilderService{
		flights:   flights,
		crew:      crew,
		dutyLog:   dutyLog,
		writer:    writer,
		evaluator: fdtl.NewEvaluator(cfg.Limits),
		metrics:   metrics,
		logger:    logger,
		cfg:       cfg,
	}
}

// Build produces and persists the roster for [start, end). Per-flight
// staffing shortfalls are recorded as violations and never abort the run;
// only invalid input or storage failure does.
func (s *RosterBuilderService) Build(ctx context.Context, start, end time.Time) (*models.BuildResult, error) {
	began := time.Now()

	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrInvalidDateRange, fmt.Sprintf("end %s does not follow start %s", end.Format("2006-01-02"), start.Format("2006-01-02")))
	}

	flights, err := s.flights.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load flight schedule")
	}

	leads, err := s.crew.ListActiveByRole(ctx, models.RoleLead)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load lead crew pool")
	}
	supporting, err := s.crew.ListActiveByRole(ctx, models.RoleSupporting)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load supporting crew pool")
	}
	if len(leads) == 0 && len(supporting) == 0 {
		return nil, appErrors.ErrEmptyCrewPool
	}

	states := make(map[string]*fdtl.DutyState, len(leads)+len(supporting))
	state := func(crewID string) *fdtl.DutyState {
		st, ok := states[crewID]
		if !ok {
			st = fdtl.NewDutyState(crewID)
			states[crewID] = st
		}
		return st
	}

	if s.cfg.SeedDutyHistory && s.dutyLog != nil {
		// 28 days is the widest legality window; older duty cannot
		// influence any rule.
		history, err := s.dutyLog.ListSince(ctx, start.AddDate(0, 0, -28))
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load duty history")
		}
		for _, period := range history {
			state(period.CrewID).Assign(period.DutyStart, period.DutyEnd)
		}
	}

	var (
		assignments []models.Assignment
		duties      []models.DutyPeriod
		violations  []models.Violation
		leadPtr     int
		supPtr      int
	)

	for _, flight := range flights {
		dep, arr := flight.DepartureTime, flight.ArrivalTime
		var crewOnFlight []models.CrewMember

		// One legal lead, scanning from the rotation pointer with a
		// single wrap. The pointer only moves on success.
		leadIdx := -1
		for i := 0; i < len(leads); i++ {
			idx := (leadPtr + i) % len(leads)
			if legal, _ := s.evaluator.Check(state(leads[idx].ID), dep, arr); legal {
				leadIdx = idx
				break
			}
		}
		if leadIdx >= 0 {
			crewOnFlight = append(crewOnFlight, leads[leadIdx])
			leadPtr = (leadIdx + 1) % len(leads)
		} else {
			violations = append(violations, models.Violation{
				FlightID: flight.ID,
				Kind:     models.ViolationNoLegalLead,
				Details:  fmt.Sprintf("No legal LCC for %s at %s", flight.FlightNumber, dep.Format("2006-01-02 15:04")),
			})
		}

		// Supporting crew: keep collecting until the headcount is met or
		// the pool has been scanned once. The scan base is frozen for the
		// whole flight so every member is examined at most once; the
		// rotation pointer advances past the last taken member only.
		taken := 0
		base := supPtr
		for checked := 0; taken < s.cfg.SupportingPerFlight && checked < len(supporting); checked++ {
			idx := (base + checked) % len(supporting)
			if legal, _ := s.evaluator.Check(state(supporting[idx].ID), dep, arr); legal {
				crewOnFlight = append(crewOnFlight, supporting[idx])
				supPtr = (idx + 1) % len(supporting)
				taken++
			}
		}
		if taken < s.cfg.SupportingPerFlight {
			violations = append(violations, models.Violation{
				FlightID: flight.ID,
				Kind:     models.ViolationInsufficientSupporting,
				Details:  fmt.Sprintf("Only %d/%d CC for %s at %s", taken, s.cfg.SupportingPerFlight, flight.FlightNumber, dep.Format("2006-01-02 15:04")),
			})
		}

		// Commit immediately so later flights observe this duty.
		for _, member := range crewOnFlight {
			state(member.ID).Assign(dep, arr)
			assignments = append(assignments, models.Assignment{
				FlightID: flight.ID,
				CrewID:   member.ID,
				DutyDate: dutyDate(dep),
			})
			duties = append(duties, models.DutyPeriod{
				CrewID:    member.ID,
				FlightID:  flight.ID,
				DutyStart: dep,
				DutyEnd:   arr,
				DutyHours: flight.BlockHours(),
			})
		}
	}

	if err := s.writer.SaveBuildOutput(ctx, start, end, assignments, duties, violations); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist roster build")
	}

	duration := time.Since(began)
	result := &models.BuildResult{
		StartDate:        start,
		EndDate:          end,
		FlightsProcessed: len(flights),
		TotalAssignments: len(assignments),
		TotalViolations:  len(violations),
		Duration:         duration.String(),
	}

	if s.metrics != nil {
		s.metrics.ObserveRosterBuild(len(assignments), len(violations), duration)
	}
	s.logger.Info("roster build complete",
		zap.Time("start", start),
		zap.Time("end", end),
		zap.Int("flights", result.FlightsProcessed),
		zap.Int("assignments", result.TotalAssignments),
		zap.Int("violations", result.TotalViolations),
		zap.Duration("duration", duration),
	)

	return result, nil
}

func dutyDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
