package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skyops/crew-roster-api/internal/service"
	"github.com/skyops/crew-roster-api/pkg/response"
)

// UtilizationHandler serves the per-crew utilization view.
type UtilizationHandler struct {
	service *service.UtilizationService
}

// NewUtilizationHandler creates a new handler.
func NewUtilizationHandler(svc *service.UtilizationService) *UtilizationHandler {
	return &UtilizationHandler{service: svc}
}

// Summary godoc
// @Summary Per-crew utilization summary
// @Description Flights flown plus trailing 7 and 28 day duty hours for each active crew member.
// @Tags Utilization
// @Produce json
// @Success 200 {object} response.Envelope
// @Security BearerAuth
// @Router /utilization [get]
func (h *UtilizationHandler) Summary(c *gin.Context) {
	rows, err := h.service.Summary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}
