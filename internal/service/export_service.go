package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
	"github.com/skyops/crew-roster-api/pkg/export"
)

type rosterLister interface {
	ListByDateRange(ctx context.Context, start, end time.Time) ([]models.RosterEntry, error)
}

type violationLister interface {
	List(ctx context.Context, filter models.ViolationFilter) ([]models.ViolationDetail, int, error)
}

type tableRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportFormat selects the rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ExportFile is a rendered export ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders roster and violation views as downloadable files.
type ExportService struct {
	roster     rosterLister
	violations violationLister
	csv        tableRenderer
	pdf        tableRenderer
	logger     *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(roster rosterLister, violations violationLister, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		roster:     roster,
		violations: violations,
		csv:        export.NewCSVExporter(),
		pdf:        export.NewPDFExporter(),
		logger:     logger,
	}
}

// Roster renders the roster for [start, end) in the requested format.
func (s *ExportService) Roster(ctx context.Context, start, end time.Time, format ExportFormat) (*ExportFile, error) {
	if !end.After(start) {
		return nil, appErrors.ErrInvalidDateRange
	}
	entries, err := s.roster.ListByDateRange(ctx, start, end)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster for export")
	}

	table := export.Table{
		Title:   fmt.Sprintf("Crew Roster %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		Columns: []string{"Duty Date", "Flight", "Route", "Departure", "Arrival", "Employee ID", "Crew Name", "Role", "Override"},
	}
	for _, e := range entries {
		override := ""
		if e.IsManualOverride {
			override = "YES"
		}
		table.Rows = append(table.Rows, []string{
			e.DutyDate.Format("2006-01-02"),
			e.FlightNumber,
			e.Origin + "-" + e.Destination,
			e.DepartureTime.Format("2006-01-02 15:04"),
			e.ArrivalTime.Format("2006-01-02 15:04"),
			e.EmployeeID,
			e.CrewName,
			string(e.Role),
			override,
		})
	}

	return s.render(table, "roster", start, end, format)
}

// Violations renders the legality violations for [start, end).
func (s *ExportService) Violations(ctx context.Context, start, end time.Time, format ExportFormat) (*ExportFile, error) {
	if !end.After(start) {
		return nil, appErrors.ErrInvalidDateRange
	}
	rows, _, err := s.violations.List(ctx, models.ViolationFilter{Start: &start, End: &end, PageSize: 200})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load violations for export")
	}

	table := export.Table{
		Title:   fmt.Sprintf("Legality Violations %s to %s", start.Format("2006-01-02"), end.Format("2006-01-02")),
		Columns: []string{"Flight", "Departure", "Type", "Details", "Flagged At"},
	}
	for _, v := range rows {
		table.Rows = append(table.Rows, []string{
			v.FlightNumber,
			v.DepartureTime.Format("2006-01-02 15:04"),
			v.Kind,
			v.Details,
			v.FlaggedAt.Format("2006-01-02 15:04"),
		})
	}

	return s.render(table, "violations", start, end, format)
}

func (s *ExportService) render(table export.Table, kind string, start, end time.Time, format ExportFormat) (*ExportFile, error) {
	var (
		payload     []byte
		contentType string
		err         error
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(table)
		contentType = "text/csv"
	case ExportFormatPDF:
		payload, err = s.pdf.Render(table)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("%s_%s_%s.%s", kind, start.Format("20060102"), end.Format("20060102"), format)
	return &ExportFile{Filename: filename, ContentType: contentType, Payload: payload}, nil
}
