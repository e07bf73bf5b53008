package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/models"
	"github.com/skyops/crew-roster-api/internal/service"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
	"github.com/skyops/crew-roster-api/pkg/response"
)

// FlightHandler wires HTTP endpoints to the flight service.
type FlightHandler struct {
	service *service.FlightService
}

// NewFlightHandler creates a new handler.
func NewFlightHandler(svc *service.FlightService) *FlightHandler {
	return &FlightHandler{service: svc}
}

// List godoc
// @Summary List scheduled flights
// @Tags Flights
// @Produce json
// @Param flight_number query string false "Filter by flight number"
// @Param origin query string false "Filter by origin"
// @Param destination query string false "Filter by destination"
// @Param start_date query string false "Departures from this date (YYYY-MM-DD)"
// @Param end_date query string false "Departures before this date (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /flights [get]
func (h *FlightHandler) List(c *gin.Context) {
	filter := models.FlightFilter{
		FlightNumber: c.Query("flight_number"),
		Origin:       c.Query("origin"),
		Destination:  c.Query("destination"),
		Page:         queryInt(c, "page", 1),
		PageSize:     queryInt(c, "page_size", 50),
	}
	if start, ok := parseDate(c, "start_date"); ok {
		filter.Start = &start
	}
	if end, ok := parseDate(c, "end_date"); ok {
		filter.End = &end
	}

	flights, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, flights, pagination)
}

// Get godoc
// @Summary Get one flight
// @Tags Flights
// @Produce json
// @Param id path string true "Flight ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /flights/{id} [get]
func (h *FlightHandler) Get(c *gin.Context) {
	flight, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, flight, nil)
}

// Create godoc
// @Summary Schedule a flight
// @Tags Flights
// @Accept json
// @Produce json
// @Param payload body dto.CreateFlightRequest true "Flight payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Security BearerAuth
// @Router /flights [post]
func (h *FlightHandler) Create(c *gin.Context) {
	var req dto.CreateFlightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid flight payload"))
		return
	}

	flight, err := h.service.Create(c.Request.Context(), req, performedBy(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, flight)
}
