package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// matchHandler handles three-way match requests.
type matchHandler struct {
	matchService portssvc.MatchSvcFacade
}

func newMatchHandler(matchService portssvc.MatchSvcFacade) *matchHandler {
	return &matchHandler{
		matchService: matchService,
	}
}

// registerMatchRoutes registers the three-way match route.
func registerMatchRoutes(rg *gin.RouterGroup, matchService portssvc.MatchSvcFacade) {
	h := newMatchHandler(matchService)
	rg.POST("/match", h.matchDocuments)
}

// matchDocuments godoc
// @Summary Run a three-way match
// @Description Compares an order, a receipt and an invoice and reports per-line variances; nothing is persisted
// @Tags match
// @Accept  json
// @Produce  json
// @Param   request body dto.MatchRequest true "Document references and optional tolerance override"
// @Success 200 {object} domain.MatchResult
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Referenced document not found"
// @Failure 500 {object} map[string]string "Failed to run match"
// @Router /match [post]
func (h *matchHandler) matchDocuments(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.MatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	result, err := h.matchService.MatchDocuments(c.Request.Context(), orgID, req)
	if err != nil {
		respondError(c, logger, err, "Failed to run three-way match")
		return
	}
	c.JSON(http.StatusOK, result)
}
