package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// periodHandler handles HTTP requests related to accounting periods.
type periodHandler struct {
	periodService portssvc.PeriodSvcFacade
}

func newPeriodHandler(periodService portssvc.PeriodSvcFacade) *periodHandler {
	return &periodHandler{
		periodService: periodService,
	}
}

// registerPeriodRoutes registers routes related to accounting periods.
func registerPeriodRoutes(rg *gin.RouterGroup, periodService portssvc.PeriodSvcFacade) {
	h := newPeriodHandler(periodService)

	periods := rg.Group("/periods")
	{
		periods.POST("", h.createPeriod)
		periods.GET("", h.listPeriods)
		periods.GET("/:periodID", h.getPeriod)
		periods.POST("/:periodID/close", h.closePeriod)
		periods.POST("/:periodID/reopen", h.reopenPeriod)
	}
}

// createPeriod godoc
// @Summary Open a new accounting period
// @Tags periods
// @Accept  json
// @Produce  json
// @Param   period body dto.CreatePeriodRequest true "Period details"
// @Success 201 {object} dto.PeriodResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Period overlaps an existing one"
// @Router /periods [post]
func (h *periodHandler) createPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	period, err := h.periodService.CreatePeriod(c.Request.Context(), orgID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create period")
		return
	}
	c.JSON(http.StatusCreated, dto.ToPeriodResponse(period))
}

// listPeriods godoc
// @Summary List accounting periods
// @Tags periods
// @Produce  json
// @Success 200 {array} dto.PeriodResponse
// @Failure 500 {object} map[string]string "Failed to list periods"
// @Router /periods [get]
func (h *periodHandler) listPeriods(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	periods, err := h.periodService.ListPeriods(c.Request.Context(), orgID)
	if err != nil {
		respondError(c, logger, err, "Failed to list periods")
		return
	}

	resp := make([]dto.PeriodResponse, len(periods))
	for i := range periods {
		resp[i] = dto.ToPeriodResponse(&periods[i])
	}
	c.JSON(http.StatusOK, resp)
}

// getPeriod godoc
// @Summary Get an accounting period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 200 {object} dto.PeriodResponse
// @Failure 404 {object} map[string]string "Period not found"
// @Router /periods/{periodID} [get]
func (h *periodHandler) getPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	period, err := h.periodService.GetPeriodByID(c.Request.Context(), orgID, periodID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve period")
		return
	}
	c.JSON(http.StatusOK, dto.ToPeriodResponse(period))
}

// closePeriod godoc
// @Summary Close an accounting period
// @Description Fails while any journal in the period is not in a terminal status
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 204 "Period closed"
// @Failure 409 {object} map[string]string "Journals in the period are still in flight"
// @Router /periods/{periodID}/close [post]
func (h *periodHandler) closePeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	if err := h.periodService.ClosePeriod(c.Request.Context(), orgID, periodID, actorID); err != nil {
		respondError(c, logger, err, "Failed to close period")
		return
	}

	logger.Info("Period closed via API", slog.String("period_id", periodID))
	c.Status(http.StatusNoContent)
}

// reopenPeriod godoc
// @Summary Reopen a closed accounting period
// @Tags periods
// @Produce  json
// @Param   periodID path string true "Period ID"
// @Success 204 "Period reopened"
// @Failure 409 {object} map[string]string "Period is not closed"
// @Router /periods/{periodID}/reopen [post]
func (h *periodHandler) reopenPeriod(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	periodID := c.Param("periodID")

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	if err := h.periodService.ReopenPeriod(c.Request.Context(), orgID, periodID, actorID); err != nil {
		respondError(c, logger, err, "Failed to reopen period")
		return
	}
	c.Status(http.StatusNoContent)
}
