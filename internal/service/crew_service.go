package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
)

type crewRepository interface {
	List(ctx context.Context, filter models.CrewFilter) ([]models.CrewMember, int, error)
	FindByID(ctx context.Context, id string) (*models.CrewMember, error)
	ExistsByEmployeeID(ctx context.Context, employeeID, excludeID string) (bool, error)
	Create(ctx context.Context, member *models.CrewMember) error
	Update(ctx context.Context, member *models.CrewMember) error
	Deactivate(ctx context.Context, id string) error
}

// CrewService manages the crew master roster pool.
type CrewService struct {
	repo      crewRepository
	audit     auditWriter
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCrewService constructs a CrewService.
func NewCrewService(repo crewRepository, audit auditWriter, validate *validator.Validate, logger *zap.Logger) *CrewService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CrewService{repo: repo, audit: audit, validator: validate, logger: logger}
}

// List returns crew members matching the filter.
func (s *CrewService) List(ctx context.Context, filter models.CrewFilter) ([]models.CrewMember, *models.Pagination, error) {
	crew, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list crew")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return crew, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get fetches one crew member.
func (s *CrewService) Get(ctx context.Context, id string) (*models.CrewMember, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "crew member not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load crew member")
	}
	return member, nil
}

// Create registers a new crew member.
func (s *CrewService) Create(ctx context.Context, req dto.CreateCrewRequest, performedBy string) (*models.CrewMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid crew payload")
	}

	exists, err := s.repo.ExistsByEmployeeID(ctx, req.EmployeeID, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check employee id")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "employee id already registered")
	}

	member := &models.CrewMember{
		EmployeeID: req.EmployeeID,
		FullName:   req.FullName,
		Role:       models.CrewRole(req.Role),
		Phone:      req.Phone,
		Active:     true,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create crew member")
	}

	s.recordAudit(ctx, models.AuditActionCrewCreate, performedBy, member.ID, nil)
	s.logger.Info("crew member created", zap.String("crew_id", member.ID), zap.String("employee_id", member.EmployeeID))
	return member, nil
}

// Update patches mutable fields on a crew member.
func (s *CrewService) Update(ctx context.Context, id string, req dto.UpdateCrewRequest, performedBy string) (*models.CrewMember, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid crew payload")
	}

	member, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	old := member.FullName
	if req.FullName != nil {
		member.FullName = *req.FullName
	}
	if req.Phone != nil {
		member.Phone = req.Phone
	}
	if req.Active != nil {
		member.Active = *req.Active
	}

	if err := s.repo.Update(ctx, member); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update crew member")
	}

	s.recordAudit(ctx, models.AuditActionCrewUpdate, performedBy, member.ID, &old)
	return member, nil
}

// Deactivate removes a crew member from future rotation. Historical duty
// and roster rows are kept.
func (s *CrewService) Deactivate(ctx context.Context, id, performedBy string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "crew member not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate crew member")
	}
	s.recordAudit(ctx, models.AuditActionCrewDeactivate, performedBy, id, nil)
	return nil
}

func (s *CrewService) recordAudit(ctx context.Context, action, performedBy, targetID string, oldValue *string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Create(ctx, &models.AuditEntry{
		Action:      action,
		PerformedBy: performedBy,
		TargetTable: "crew_master",
		TargetID:    &targetID,
		OldValue:    oldValue,
	}); err != nil {
		s.logger.Warn("failed to record crew audit entry", zap.Error(err))
	}
}
