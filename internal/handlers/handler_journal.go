package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// journalHandler handles HTTP requests related to journals.
type journalHandler struct {
	journalService portssvc.JournalSvcFacade
}

// newJournalHandler creates a new journalHandler.
func newJournalHandler(journalService portssvc.JournalSvcFacade) *journalHandler {
	return &journalHandler{
		journalService: journalService,
	}
}

// registerJournalRoutes registers routes related to journals.
func registerJournalRoutes(rg *gin.RouterGroup, journalService portssvc.JournalSvcFacade) {
	h := newJournalHandler(journalService)

	journals := rg.Group("/journals")
	{
		journals.POST("", h.createJournal)
		journals.GET("", h.listJournals)
		journals.POST("/bulk", h.bulkTransition)
		journals.GET("/:journalID", h.getJournal)
		journals.GET("/:journalID/audit", h.getAuditTrail)
		journals.GET("/:journalID/validate", h.validateJournal)
		journals.PUT("/:journalID/lines", h.replaceLines)
		journals.POST("/:journalID/submit", h.transition(domain.ActionSubmit))
		journals.POST("/:journalID/approve", h.transition(domain.ActionApprove))
		journals.POST("/:journalID/reject", h.transition(domain.ActionReject))
		journals.POST("/:journalID/post", h.transition(domain.ActionPost))
		journals.POST("/:journalID/cancel", h.transition(domain.ActionCancel))
		journals.POST("/:journalID/reverse", h.reverseJournal)
		journals.POST("/:journalID/duplicate", h.duplicateJournal)
	}
}

// createJournal godoc
// @Summary Create a draft journal
// @Description Creates a Draft journal with its lines; validation findings come back as warnings
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journal body dto.CreateJournalRequest true "Journal and lines"
// @Success 201 {object} dto.CreateJournalResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 404 {object} map[string]string "Period not found"
// @Failure 500 {object} map[string]string "Failed to create journal"
// @Router /journals [post]
func (h *journalHandler) createJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateJournalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createJournal", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	resp, err := h.journalService.CreateJournal(c.Request.Context(), orgID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create journal")
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// listJournals godoc
// @Summary List journals
// @Description Retrieves a page of journals, newest first
// @Tags journals
// @Produce  json
// @Param   limit query int false "Page size (default 20)"
// @Param   nextToken query string false "Pagination token from the previous page"
// @Success 200 {object} dto.ListJournalsResponse
// @Failure 400 {object} map[string]string "Invalid pagination token"
// @Failure 500 {object} map[string]string "Failed to list journals"
// @Router /journals [get]
func (h *journalHandler) listJournals(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var params dto.ListJournalsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	resp, err := h.journalService.ListJournals(c.Request.Context(), orgID, params)
	if err != nil {
		respondError(c, logger, err, "Failed to list journals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJournal godoc
// @Summary Get a journal with its lines
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.JournalResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve journal"
// @Router /journals/{journalID} [get]
func (h *journalHandler) getJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	journal, err := h.journalService.GetJournalByID(c.Request.Context(), orgID, journalID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve journal")
		return
	}
	c.JSON(http.StatusOK, dto.ToJournalResponse(journal))
}

// getAuditTrail godoc
// @Summary Get the lifecycle audit trail of a journal
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {array} dto.AuditEntryResponse
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to retrieve audit trail"
// @Router /journals/{journalID}/audit [get]
func (h *journalHandler) getAuditTrail(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	entries, err := h.journalService.GetAuditTrail(c.Request.Context(), orgID, journalID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve audit trail")
		return
	}
	c.JSON(http.StatusOK, dto.ToAuditEntryResponses(entries))
}

// validateJournal godoc
// @Summary Validate a journal without side effects
// @Description Runs the balance validator and returns the findings; an empty list means the journal is postable
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} map[string][]domain.ValidationFailure
// @Failure 404 {object} map[string]string "Journal not found"
// @Failure 500 {object} map[string]string "Failed to validate journal"
// @Router /journals/{journalID}/validate [get]
func (h *journalHandler) validateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	failures, err := h.journalService.ValidateJournal(c.Request.Context(), orgID, journalID)
	if err != nil {
		respondError(c, logger, err, "Failed to validate journal")
		return
	}
	if failures == nil {
		failures = []domain.ValidationFailure{}
	}
	c.JSON(http.StatusOK, gin.H{"failures": failures})
}

// replaceLines godoc
// @Summary Replace the lines of a Draft or PendingApproval journal
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Param   lines body dto.UpdateJournalLinesRequest true "Replacement line set"
// @Success 204 "Lines replaced"
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 409 {object} map[string]string "Journal lines are immutable in its current status"
// @Failure 500 {object} map[string]string "Failed to replace lines"
// @Router /journals/{journalID}/lines [put]
func (h *journalHandler) replaceLines(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	var req dto.UpdateJournalLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	if err := h.journalService.ReplaceLines(c.Request.Context(), orgID, journalID, req, actorID); err != nil {
		respondError(c, logger, err, "Failed to replace lines")
		return
	}
	c.Status(http.StatusNoContent)
}

// transition returns the handler for one lifecycle action. All five plain
// actions share the same shape: optional comment in, resulting status out.
func (h *journalHandler) transition(action domain.JournalAction) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := middleware.GetLoggerFromCtx(c.Request.Context())
		journalID := c.Param("journalID")

		var req dto.TransitionRequest
		if c.Request.ContentLength > 0 {
			if err := c.ShouldBindJSON(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
				return
			}
		}

		actorID, orgID, ok := actorAndOrg(c)
		if !ok {
			return
		}

		journal, err := h.journalService.Transition(c.Request.Context(), orgID, journalID, action, actorID, req.Comment)
		if err != nil {
			respondError(c, logger, err, "Failed to "+string(action)+" journal")
			return
		}

		logger.Info("Journal transitioned",
			slog.String("journal_id", journalID),
			slog.String("action", string(action)),
			slog.String("status", string(journal.Status)))
		c.JSON(http.StatusOK, dto.TransitionResponse{JournalID: journalID, Status: journal.Status})
	}
}

// reverseJournal godoc
// @Summary Reverse a posted journal
// @Description Spawns and posts the negating journal; the original stays Posted with a back-reference
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 200 {object} dto.TransitionResponse
// @Failure 409 {object} map[string]string "Journal is not Posted or already reversed"
// @Failure 500 {object} map[string]string "Failed to reverse journal"
// @Router /journals/{journalID}/reverse [post]
func (h *journalHandler) reverseJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	reversal, err := h.journalService.Reverse(c.Request.Context(), orgID, journalID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to reverse journal")
		return
	}

	c.JSON(http.StatusOK, dto.TransitionResponse{
		JournalID:        journalID,
		Status:           domain.Posted,
		SpawnedJournalID: reversal.JournalID,
	})
}

// duplicateJournal godoc
// @Summary Duplicate a journal into a new draft
// @Tags journals
// @Produce  json
// @Param   journalID path string true "Journal ID"
// @Success 201 {object} dto.TransitionResponse
// @Failure 409 {object} map[string]string "Journal cannot be duplicated in its current status"
// @Failure 500 {object} map[string]string "Failed to duplicate journal"
// @Router /journals/{journalID}/duplicate [post]
func (h *journalHandler) duplicateJournal(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	journalID := c.Param("journalID")

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	duplicate, err := h.journalService.Duplicate(c.Request.Context(), orgID, journalID, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to duplicate journal")
		return
	}

	c.JSON(http.StatusCreated, dto.TransitionResponse{
		JournalID:        journalID,
		Status:           duplicate.Status,
		SpawnedJournalID: duplicate.JournalID,
	})
}

// bulkTransition godoc
// @Summary Apply one lifecycle action to many journals
// @Description Each journal is processed in its own atomic unit; per-id results are returned
// @Tags journals
// @Accept  json
// @Produce  json
// @Param   request body dto.BulkTransitionRequest true "Journal ids and action"
// @Success 200 {object} dto.BulkTransitionResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Router /journals/bulk [post]
func (h *journalHandler) bulkTransition(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	results := h.journalService.BulkTransition(c.Request.Context(), orgID, req.JournalIDs,
		domain.JournalAction(req.Action), actorID, req.Comment)

	logger.Info("Bulk transition processed",
		slog.String("action", req.Action),
		slog.Int("count", len(results)))
	c.JSON(http.StatusOK, dto.BulkTransitionResponse{Results: results})
}
