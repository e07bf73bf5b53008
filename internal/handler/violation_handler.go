package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyops/crew-roster-api/internal/models"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
	"github.com/skyops/crew-roster-api/pkg/response"
)

type violationLister interface {
	List(ctx context.Context, filter models.ViolationFilter) ([]models.ViolationDetail, int, error)
}

// ViolationHandler serves the legality audit view.
type ViolationHandler struct {
	violations violationLister
}

// NewViolationHandler creates a new handler.
func NewViolationHandler(violations violationLister) *ViolationHandler {
	return &ViolationHandler{violations: violations}
}

// List godoc
// @Summary List legality violations
// @Tags Violations
// @Produce json
// @Param kind query string false "Filter by violation type (NO_LEGAL_LCC or INSUFFICIENT_CC)"
// @Param start_date query string false "Flights departing from this date (YYYY-MM-DD)"
// @Param end_date query string false "Flights departing before this date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /violations [get]
func (h *ViolationHandler) List(c *gin.Context) {
	filter := models.ViolationFilter{
		Kind:     c.Query("kind"),
		Page:     queryInt(c, "page", 1),
		PageSize: queryInt(c, "page_size", 50),
	}
	if filter.Kind != "" && filter.Kind != models.ViolationNoLegalLead && filter.Kind != models.ViolationInsufficientSupporting {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "kind must be NO_LEGAL_LCC or INSUFFICIENT_CC"))
		return
	}
	if start, ok := parseDate(c, "start_date"); ok {
		filter.Start = &start
	}
	if end, ok := parseDate(c, "end_date"); ok {
		filter.End = &end
	}

	violations, total, err := h.violations.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list violations"))
		return
	}
	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, violations, pagination)
}
