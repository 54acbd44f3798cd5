package handler

import (
	"github.com/gin-gonic/gin"

	"naijatax/internal/service"
)

// StatsHandler handles stats endpoints.
type StatsHandler struct {
	statsService service.StatsService
}

// NewStatsHandler creates a new StatsHandler.
func NewStatsHandler(statsService service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetStats handles GET /api/v1/stats
// @Summary Dashboard totals of a year
// @Description Income, expenses and net VAT per month and for the whole year.
// @Tags stats
// @Produce json
// @Param year query int false "Year (defaults to the current year)"
// @Success 200 {object} APIResponse{data=domain.Stats} "Aggregate statistics"
// @Failure 401 {object} APIResponse "Unauthorized"
// @Security BearerAuth
// @Router /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	userID, ok := extractUserID(c)
	if !ok {
		return
	}
	year, ok := parseYearQuery(c)
	if !ok {
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), userID, year)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, stats)
}
