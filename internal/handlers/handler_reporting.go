package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// reportingHandler handles HTTP requests for derived reports.
type reportingHandler struct {
	reportingService portssvc.ReportingSvcFacade
}

func newReportingHandler(reportingService portssvc.ReportingSvcFacade) *reportingHandler {
	return &reportingHandler{
		reportingService: reportingService,
	}
}

// registerReportingRoutes registers routes serving derived reports.
func registerReportingRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade) {
	h := newReportingHandler(reportingService)

	reports := rg.Group("/reports")
	{
		reports.GET("/trial-balance", h.trialBalance)
	}
}

// trialBalance godoc
// @Summary Trial balance for a period
// @Description Per-account debit and credit totals derived from posted journal lines
// @Tags reports
// @Produce  json
// @Param   periodID query string true "Period ID"
// @Success 200 {object} dto.TrialBalanceResponse
// @Failure 400 {object} map[string]string "Missing periodID"
// @Failure 404 {object} map[string]string "Period not found"
// @Router /reports/trial-balance [get]
func (h *reportingHandler) trialBalance(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	periodID := c.Query("periodID")
	if periodID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "periodID query parameter is required"})
		return
	}

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	report, err := h.reportingService.TrialBalance(c.Request.Context(), orgID, periodID)
	if err != nil {
		respondError(c, logger, err, "Failed to build trial balance")
		return
	}
	c.JSON(http.StatusOK, report)
}
