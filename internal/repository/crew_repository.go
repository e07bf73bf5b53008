package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/skyops/crew-roster-api/internal/models"
)

// CrewRepository manages persistence for crew master records.
type CrewRepository struct {
	db *sqlx.DB
}

// NewCrewRepository constructs a CrewRepository.
func NewCrewRepository(db *sqlx.DB) *CrewRepository {
	return &CrewRepository{db: db}
}

const crewColumns = "id, employee_id, full_name, role, phone, is_active, created_at, updated_at"

// List returns crew members matching filters along with total count.
func (r *CrewRepository) List(ctx context.Context, filter models.CrewFilter) ([]models.CrewMember, int, error) {
	base := "FROM crew_master WHERE 1=1"
	var conditions []string
	var args []interface{}

	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("is_active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Role != nil {
		conditions = append(conditions, fmt.Sprintf("role = $%d", len(args)+1))
		args = append(args, *filter.Role)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(employee_id) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, search)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	sortBy := filter.SortBy
	if sortBy == "" {
		sortBy = "employee_id"
	}
	allowedSorts := map[string]string{
		"employee_id": "employee_id",
		"full_name":   "full_name",
		"created_at":  "created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "employee_id"
	}

	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s %s LIMIT %d OFFSET %d", crewColumns, base, column, order, size, offset)
	var crew []models.CrewMember
	if err := r.db.SelectContext(ctx, &crew, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list crew: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count crew: %w", err)
	}

	return crew, total, nil
}

// ListActiveByRole returns the active rotation pool for one role in a
// stable order; the roster builder's round robin depends on it.
func (r *CrewRepository) ListActiveByRole(ctx context.Context, role models.CrewRole) ([]models.CrewMember, error) {
	const query = `SELECT id, employee_id, full_name, role, phone, is_active, created_at, updated_at FROM crew_master WHERE is_active = TRUE AND role = $1 ORDER BY employee_id ASC`
	var crew []models.CrewMember
	if err := r.db.SelectContext(ctx, &crew, query, role); err != nil {
		return nil, fmt.Errorf("list active crew by role: %w", err)
	}
	return crew, nil
}

// FindByID fetches a crew member by ID.
func (r *CrewRepository) FindByID(ctx context.Context, id string) (*models.CrewMember, error) {
	const query = `SELECT id, employee_id, full_name, role, phone, is_active, created_at, updated_at FROM crew_master WHERE id = $1`
	var member models.CrewMember
	if err := r.db.GetContext(ctx, &member, query, id); err != nil {
		return nil, err
	}
	return &member, nil
}

// ExistsByEmployeeID checks employee id uniqueness.
func (r *CrewRepository) ExistsByEmployeeID(ctx context.Context, employeeID, excludeID string) (bool, error) {
	const query = `SELECT COUNT(*) FROM crew_master WHERE employee_id = $1 AND id <> $2`
	var count int
	if err := r.db.GetContext(ctx, &count, query, employeeID, excludeID); err != nil {
		return false, fmt.Errorf("check employee id: %w", err)
	}
	return count > 0, nil
}

// Create inserts a new crew member.
func (r *CrewRepository) Create(ctx context.Context, member *models.CrewMember) error {
	if member.ID == "" {
		member.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if member.CreatedAt.IsZero() {
		member.CreatedAt = now
	}
	member.UpdatedAt = now
	const query = `INSERT INTO crew_master (id, employee_id, full_name, role, phone, is_active, created_at, updated_at)
		VALUES (:id, :employee_id, :full_name, :role, :phone, :is_active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("create crew member: %w", err)
	}
	return nil
}

// Update persists mutable crew fields.
func (r *CrewRepository) Update(ctx context.Context, member *models.CrewMember) error {
	member.UpdatedAt = time.Now().UTC()
	const query = `UPDATE crew_master SET full_name = :full_name, role = :role, phone = :phone, is_active = :is_active, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, member); err != nil {
		return fmt.Errorf("update crew member: %w", err)
	}
	return nil
}

// Deactivate flags a crew member inactive; rows are never deleted because
// the duty log references them.
func (r *CrewRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE crew_master SET is_active = FALSE, updated_at = $2 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate crew member: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check deactivated rows: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
