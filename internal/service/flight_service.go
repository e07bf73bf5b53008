package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type flightRepository interface {
	List(ctx context.Context, filter models.FlightFilter) ([]models.Flight, int, error)
	FindByID(ctx context.Context, id string) (*models.Flight, error)
	Create(ctx context.Context, flight *models.Flight) error
}

// FlightService manages the flight schedule.
type FlightService struct {
	repo      flightRepository
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewFlightService constructs a FlightService.
func NewFlightService(repo flightRepository, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *FlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &FlightService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns flights matching the filter.
func (s *FlightService) List(ctx context.Context, filter models.FlightFilter) ([]models.Flight, *models.Pagination, error) {
	flights, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list flights")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	return flights, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get fetches one flight.
func (s *FlightService) Get(ctx context.Context, id string) (*models.Flight, error) {
	flight, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "flight not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load flight")
	}
	return flight, nil
}

// Create schedules a new flight. Arrival must follow departure.
func (s *FlightService) Create(ctx context.Context, req dto.CreateFlightRequest, performedBy string) (*models.Flight, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid flight payload")
	}
	if !req.ArrivalTime.After(req.DepartureTime) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "arrival_time must be after departure_time")
	}

	flight := &models.Flight{
		FlightNumber:  strings.ToUpper(req.FlightNumber),
		Origin:        strings.ToUpper(req.Origin),
		Destination:   strings.ToUpper(req.Destination),
		DepartureTime: req.DepartureTime.UTC(),
		ArrivalTime:   req.ArrivalTime.UTC(),
		AircraftType:  req.AircraftType,
	}
	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create flight")
	}

	if s.audit != nil {
		if err := s.audit.Create(ctx, &models.AuditEntry{
			Action:      models.AuditActionFlightCreate,
			PerformedBy: performedBy,
			TargetTable: "flight_schedule",
			TargetID:    &flight.ID,
		}); err != nil {
			s.logger.Warn("failed to record flight audit entry", zap.Error(err))
		}
	}
	s.logger.Info("flight scheduled", zap.String("flight_id", flight.ID), zap.String("flight_number", flight.FlightNumber))
	return flight, nil
}
