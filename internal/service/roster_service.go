package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/fdtl"
	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type rosterRepository interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RosterEntry, error)
	ListByCrew(ctx context.Context, crewID string, start, end time.Time) ([]models.RosterEntry, error)
	FindAssignment(ctx context.Context, id string) (*models.Assignment, error)
	ExistsPair(ctx context.Context, flightID, crewID string) (bool, error)
	OverrideAssignment(ctx context.Context, assignmentID, newCrewID, reason, overrideBy string) error
}

type crewFinder interface {
	FindByID(ctx context.Context, id string) (*models.CrewMember, error)
}

type flightFinder interface {
	FindByID(ctx context.Context, id string) (*models.Flight, error)
}

type crewDutyReader interface {
	ListByCrew(ctx context.Context, crewID string, start, end time.Time) ([]models.DutyPeriod, error)
}

type cacheInvalidator interface {
	DeleteByPattern(ctx context.Context, pattern string) error
}

// RosterService serves roster views and manual overrides.
type RosterService struct {
	roster    rosterRepository
	crew      crewFinder
	flights   flightFinder
	dutyLog   crewDutyReader
	audit     auditWriter
	cache     cacheInvalidator
	evaluator *fdtl.Evaluator
	validator *validator.Validate
	logger    *zap.Logger
}

// NewRosterService constructs a RosterService.
func NewRosterService(
	roster rosterRepository,
	crew crewFinder,
	flights flightFinder,
	dutyLog crewDutyReader,
	audit auditWriter,
	cache cacheInvalidator,
	limits fdtl.Limits,
	validate *validator.Validate,
	logger *zap.Logger,
) *RosterService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	zero := fdtl.Limits{}
	if limits == zero {
		limits = fdtl.DefaultLimits()
	}
	return &RosterService{
		roster:    roster,
		crew:      crew,
		flights:   flights,
		dutyLog:   dutyLog,
		audit:     audit,
		cache:     cache,
		evaluator: fdtl.NewEvaluator(limits),
		validator: validate,
		logger:    logger,
	}
}

// ListByDateRange returns roster entries with duty dates in [start, end).
func (s *RosterService) ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RosterEntry, error) {
	if !end.After(start) {
		return nil, appErrors.ErrInvalidDateRange
	}
	entries, err := s.roster.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list roster")
	}
	return entries, nil
}

// ListByCrew returns one crew member's roster in [start, end).
func (s *RosterService) ListByCrew(ctx context.Context, crewID string, start, end time.Time) ([]models.RosterEntry, error) {
	if !end.After(start) {
		return nil, appErrors.ErrInvalidDateRange
	}
	if _, err := s.crew.FindByID(ctx, crewID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "crew member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load crew member")
	}
	entries, err := s.roster.ListByCrew(ctx, crewID, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list crew roster")
	}
	return entries, nil
}

// Override swaps the crew member on an assignment. The swap always goes
// through; if the replacement would be illegal under duty limits the
// result carries a warning and the operator's reason is kept on record.
func (s *RosterService) Override(ctx context.Context, assignmentID string, req dto.OverrideAssignmentRequest, performedBy string) (*dto.OverrideResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid override payload")
	}

	assignment, err := s.roster.FindAssignment(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}
	if assignment.CrewID == req.CrewID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "replacement crew matches current assignment")
	}

	current, err := s.crew.FindByID(ctx, assignment.CrewID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load current crew member")
	}
	replacement, err := s.crew.FindByID(ctx, req.CrewID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "replacement crew member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load replacement crew member")
	}
	if !replacement.Active {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "replacement crew member is inactive")
	}
	if replacement.Role != current.Role {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("replacement must hold role %s", current.Role))
	}

	flight, err := s.flights.FindByID(ctx, assignment.FlightID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load flight")
	}

	if taken, err := s.roster.ExistsPair(ctx, flight.ID, req.CrewID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check roster pair")
	} else if taken {
		return nil, appErrors.Clone(appErrors.ErrConflict, "replacement crew already rostered on this flight")
	}

	warning, err := s.legalityWarning(ctx, replacement.ID, flight)
	if err != nil {
		return nil, err
	}

	if err := s.roster.OverrideAssignment(ctx, assignmentID, req.CrewID, req.Reason, performedBy); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to apply override")
	}

	if s.audit != nil {
		old := assignment.CrewID
		if err := s.audit.Create(ctx, &models.AuditEntry{
			Action:      models.AuditActionRosterOverride,
			PerformedBy: performedBy,
			TargetTable: "roster",
			TargetID:    &assignmentID,
			OldValue:    &old,
			NewValue:    &req.CrewID,
		}); err != nil {
			s.logger.Warn("failed to record override audit entry", zap.Error(err))
		}
	}
	if s.cache != nil {
		if err := s.cache.DeleteByPattern(ctx, "utilization:*"); err != nil {
			s.logger.Warn("failed to invalidate utilization cache", zap.Error(err))
		}
	}

	s.logger.Info("assignment overridden",
		zap.String("assignment_id", assignmentID),
		zap.String("old_crew", assignment.CrewID),
		zap.String("new_crew", req.CrewID),
		zap.String("warning", warning),
	)

	return &dto.OverrideResult{
		AssignmentID:    assignmentID,
		CrewID:          req.CrewID,
		LegalityWarning: warning,
	}, nil
}

// legalityWarning replays the replacement's recent duty, minus the flight
// itself if already logged, and checks the flight against duty limits.
func (s *RosterService) legalityWarning(ctx context.Context, crewID string, flight *models.Flight) (string, error) {
	since := flight.DepartureTime.AddDate(0, 0, -28)
	until := flight.ArrivalTime.AddDate(0, 0, 1)
	periods, err := s.dutyLog.ListByCrew(ctx, crewID, since, until)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load replacement duty history")
	}

	state := fdtl.NewDutyState(crewID)
	for _, p := range periods {
		if p.FlightID == flight.ID {
			continue
		}
		state.Assign(p.DutyStart, p.DutyEnd)
	}

	legal, reason := s.evaluator.Check(state, flight.DepartureTime, flight.ArrivalTime)
	if legal {
		return "", nil
	}
	return reason, nil
}
