package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skyops/crew-roster-api/internal/service"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
	"github.com/skyops/crew-roster-api/pkg/response"
)

// ExportHandler streams roster and violation exports.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler creates a new handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// Roster godoc
// @Summary Download the roster as CSV or PDF
// @Tags Exports
// @Produce octet-stream
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end, exclusive (YYYY-MM-DD)"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /exports/roster [get]
func (h *ExportHandler) Roster(c *gin.Context) {
	h.serve(c, h.service.Roster)
}

// Violations godoc
// @Summary Download violations as CSV or PDF
// @Tags Exports
// @Produce octet-stream
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end, exclusive (YYYY-MM-DD)"
// @Param format query string true "csv or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /exports/violations [get]
func (h *ExportHandler) Violations(c *gin.Context) {
	h.serve(c, h.service.Violations)
}

func (h *ExportHandler) serve(c *gin.Context, render func(ctx context.Context, start, end time.Time, format service.ExportFormat) (*service.ExportFile, error)) {
	start, ok := parseDate(c, "start_date")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start_date is required (YYYY-MM-DD)"))
		return
	}
	end, ok := parseDate(c, "end_date")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end_date is required (YYYY-MM-DD)"))
		return
	}

	file, err := render(c.Request.Context(), start, end, service.ExportFormat(c.Query("format")))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+file.Filename+`"`)
	c.Data(200, file.ContentType, file.Payload)
}
