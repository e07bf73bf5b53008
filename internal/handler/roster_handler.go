package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/service"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
	"github.com/skyops/crew-roster-api/pkg/jobs"
	"github.com/skyops/crew-roster-api/pkg/response"
)

// BuildJobPayload is the queue payload for an asynchronous roster build.
type BuildJobPayload struct {
	Start       time.Time
	End         time.Time
	RequestedBy string
}

// RosterHandler wires roster build, listing and override endpoints.
type RosterHandler struct {
	builder *service.RosterBuilderService
	roster  *service.RosterService
	queue   *jobs.Queue
}

// NewRosterHandler creates a new handler. queue may be nil; builds then
// always run synchronously.
func NewRosterHandler(builder *service.RosterBuilderService, roster *service.RosterService, queue *jobs.Queue) *RosterHandler {
	return &RosterHandler{builder: builder, roster: roster, queue: queue}
}

// Build godoc
// @Summary Build the roster for a date window
// @Description Runs the legality-aware round-robin builder over [start_date, end_date). With async=true the build is queued and 202 is returned.
// @Tags Roster
// @Accept json
// @Produce json
// @Param payload body dto.BuildRosterRequest true "Build window"
// @Success 200 {object} response.Envelope
// @Success 202 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Security BearerAuth
// @Router /roster/build [post]
func (h *RosterHandler) Build(c *gin.Context) {
	var req dto.BuildRosterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid build payload"))
		return
	}

	start, err := time.ParseInLocation("2006-01-02", req.StartDate, time.UTC)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start_date must be YYYY-MM-DD"))
		return
	}
	end, err := time.ParseInLocation("2006-01-02", req.EndDate, time.UTC)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "end_date must be YYYY-MM-DD"))
		return
	}

	if req.Async && h.queue != nil {
		job := jobs.Job{
			ID:      uuid.NewString(),
			Type:    "roster_build",
			Payload: BuildJobPayload{Start: start, End: end, RequestedBy: performedBy(c)},
		}
		if err := h.queue.Enqueue(job); err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue build"))
			return
		}
		response.JSON(c, http.StatusAccepted, gin.H{"job_id": job.ID, "status": "queued"}, nil)
		return
	}

	result, err := h.builder.Build(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// List godoc
// @Summary List roster entries for a date window
// @Tags Roster
// @Produce json
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string true "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /roster [get]
func (h *RosterHandler) List(c *gin.Context) {
	start, ok := parseDate(c, "start_date")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start_date is required (YYYY-MM-DD)"))
		return
	}
	end, ok := parseDate(c, "end_date")
	if !ok {
		end = start.AddDate(0, 0, 7)
	}

	entries, err := h.roster.ListByDateRange(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// ListByCrew godoc
// @Summary List one crew member's roster
// @Tags Roster
// @Produce json
// @Param crew_id path string true "Crew ID"
// @Param start_date query string true "Window start (YYYY-MM-DD)"
// @Param end_date query string false "Window end, exclusive (YYYY-MM-DD)"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /roster/crew/{crew_id} [get]
func (h *RosterHandler) ListByCrew(c *gin.Context) {
	start, ok := parseDate(c, "start_date")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "start_date is required (YYYY-MM-DD)"))
		return
	}
	end, ok := parseDate(c, "end_date")
	if !ok {
		end = start.AddDate(0, 0, 7)
	}

	entries, err := h.roster.ListByCrew(c.Request.Context(), c.Param("crew_id"), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// Override godoc
// @Summary Manually override an assignment
// @Description Swaps the crew member on a roster row. Illegal swaps go through but the response carries a legality warning and the change is audited.
// @Tags Roster
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body dto.OverrideAssignmentRequest true "Override payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /roster/{id}/override [post]
func (h *RosterHandler) Override(c *gin.Context) {
	var req dto.OverrideAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid override payload"))
		return
	}

	result, err := h.roster.Override(c.Request.Context(), c.Param("id"), req, performedBy(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
