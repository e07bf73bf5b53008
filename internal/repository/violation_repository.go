package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/skyops/crew-roster-api/internal/models"
)

// ViolationRepository reads the legality violations table. Writes happen
// through the roster build batch.
type ViolationRepository struct {
	db *sqlx.DB
}

// NewViolationRepository constructs a ViolationRepository.
func NewViolationRepository(db *sqlx.DB) *ViolationRepository {
	return &ViolationRepository{db: db}
}

// List returns violations matching filters along with total count.
func (r *ViolationRepository) List(ctx context.Context, filter models.ViolationFilter) ([]models.ViolationDetail, int, error) {
	base := `FROM legality_violations lv JOIN flight_schedule fs ON fs.id = lv.flight_id WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.Kind != "" {
		conditions = append(conditions, fmt.Sprintf("lv.violation_type = $%d", len(args)+1))
		args = append(args, filter.Kind)
	}
	if filter.Start != nil {
		conditions = append(conditions, fmt.Sprintf("fs.departure_time >= $%d", len(args)+1))
		args = append(args, *filter.Start)
	}
	if filter.End != nil {
		conditions = append(conditions, fmt.Sprintf("fs.departure_time < $%d", len(args)+1))
		args = append(args, *filter.End)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT lv.id, lv.flight_id, fs.flight_number, fs.departure_time, lv.crew_id, lv.violation_type, lv.details, lv.flagged_at %s ORDER BY fs.departure_time ASC, lv.flagged_at ASC LIMIT %d OFFSET %d`, base, size, offset)
	var violations []models.ViolationDetail
	if err := r.db.SelectContext(ctx, &violations, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list violations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count violations: %w", err)
	}

	return violations, total, nil
}
