package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skyops/crew-roster-api/internal/dto"
	"github.com/skyops/crew-roster-api/internal/models"
	"github.com/skyops/crew-roster-api/internal/service"
	appErrors "github.com/skyops/crew-roster-api/pkg/errors"
	"github.com/skyops/crew-roster-api/pkg/response"
)

// CrewHandler wires HTTP endpoints to the crew service.
type CrewHandler struct {
	service *service.CrewService
}

// NewCrewHandler creates a new handler.
func NewCrewHandler(svc *service.CrewService) *CrewHandler {
	return &CrewHandler{service: svc}
}

// List godoc
// @Summary List crew members
// @Tags Crew
// @Produce json
// @Param role query string false "Filter by role (LCC or CC)"
// @Param active query bool false "Filter by active flag"
// @Param search query string false "Search name or employee id"
// @Param page query int false "Page number"
// @Param page_size query int false "Page size"
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /crew [get]
func (h *CrewHandler) List(c *gin.Context) {
	filter := models.CrewFilter{
		Search:    c.Query("search"),
		Page:      queryInt(c, "page", 1),
		PageSize:  queryInt(c, "page_size", 20),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
	}
	if raw := c.Query("role"); raw != "" {
		role := models.CrewRole(raw)
		if !role.Valid() {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "role must be LCC or CC"))
			return
		}
		filter.Role = &role
	}
	if raw := c.Query("active"); raw != "" {
		active, err := strconv.ParseBool(raw)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "active must be a boolean"))
			return
		}
		filter.Active = &active
	}

	crew, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, crew, pagination)
}

// Get godoc
// @Summary Get one crew member
// @Tags Crew
// @Produce json
// @Param id path string true "Crew ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /crew/{id} [get]
func (h *CrewHandler) Get(c *gin.Context) {
	member, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Create godoc
// @Summary Register a crew member
// @Tags Crew
// @Accept json
// @Produce json
// @Param payload body dto.CreateCrewRequest true "Crew payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Security BearerAuth
// @Router /crew [post]
func (h *CrewHandler) Create(c *gin.Context) {
	var req dto.CreateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid crew payload"))
		return
	}

	member, err := h.service.Create(c.Request.Context(), req, performedBy(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, member)
}

// Update godoc
// @Summary Update a crew member
// @Tags Crew
// @Accept json
// @Produce json
// @Param id path string true "Crew ID"
// @Param payload body dto.UpdateCrewRequest true "Crew patch"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /crew/{id} [put]
func (h *CrewHandler) Update(c *gin.Context) {
	var req dto.UpdateCrewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid crew payload"))
		return
	}

	member, err := h.service.Update(c.Request.Context(), c.Param("id"), req, performedBy(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, member, nil)
}

// Deactivate godoc
// @Summary Deactivate a crew member
// @Tags Crew
// @Param id path string true "Crew ID"
// @Success 204
// @Failure 404 {object} response.Envelope
// @Security BearerAuth
// @Router /crew/{id} [delete]
func (h *CrewHandler) Deactivate(c *gin.Context) {
	if err := h.service.Deactivate(c.Request.Context(), c.Param("id"), performedBy(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
