package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// landedCostHandler handles HTTP requests related to landed cost documents.
type landedCostHandler struct {
	landedCostService portssvc.LandedCostSvcFacade
}

func newLandedCostHandler(landedCostService portssvc.LandedCostSvcFacade) *landedCostHandler {
	return &landedCostHandler{
		landedCostService: landedCostService,
	}
}

// registerLandedCostRoutes registers routes related to landed cost documents.
func registerLandedCostRoutes(rg *gin.RouterGroup, landedCostService portssvc.LandedCostSvcFacade) {
	h := newLandedCostHandler(landedCostService)

	landedCosts := rg.Group("/landed-costs")
	{
		landedCosts.POST("", h.createDocument)
		landedCosts.GET("/:documentID", h.getDocument)
		landedCosts.POST("/:documentID/allocate", h.allocateDocument)
		landedCosts.POST("/:documentID/unapply", h.unapplyDocument)
	}
}

// createDocument godoc
// @Summary Create a draft landed cost document
// @Tags landed-costs
// @Accept  json
// @Produce  json
// @Param   document body dto.CreateLandedCostRequest true "Document and cost lines"
// @Success 201 {object} dto.LandedCostDocumentResponse
// @Failure 400 {object} map[string]string "Invalid request format"
// @Failure 500 {object} map[string]string "Failed to create document"
// @Router /landed-costs [post]
func (h *landedCostHandler) createDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateLandedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	doc, err := h.landedCostService.CreateDocument(c.Request.Context(), orgID, req, actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to create landed cost document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToLandedCostDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get a landed cost document with its cost lines
// @Tags landed-costs
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 200 {object} dto.LandedCostDocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Router /landed-costs/{documentID} [get]
func (h *landedCostHandler) getDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	_, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	doc, err := h.landedCostService.GetDocument(c.Request.Context(), orgID, documentID)
	if err != nil {
		respondError(c, logger, err, "Failed to retrieve landed cost document")
		return
	}
	c.JSON(http.StatusOK, dto.ToLandedCostDocumentResponse(doc))
}

// allocateDocument godoc
// @Summary Allocate a landed cost document
// @Description Distributes the cost lines across the invoice lines and posts the distribution journal atomically
// @Tags landed-costs
// @Accept  json
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Param   request body dto.AllocateLandedCostRequest true "Allocation basis"
// @Success 200 {object} dto.AllocateLandedCostResponse
// @Failure 409 {object} map[string]string "Document is already allocated"
// @Failure 422 {object} map[string]string "Allocation is impossible (zero weights, missing target account)"
// @Failure 500 {object} map[string]string "Failed to allocate document"
// @Router /landed-costs/{documentID}/allocate [post]
func (h *landedCostHandler) allocateDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	var req dto.AllocateLandedCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	resp, err := h.landedCostService.Allocate(c.Request.Context(), orgID, documentID, domain.AllocationBasis(req.Basis), actorID)
	if err != nil {
		respondError(c, logger, err, "Failed to allocate landed cost document")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// unapplyDocument godoc
// @Summary Unapply an allocated landed cost document
// @Description Reverses the distribution journal and returns the document to Draft
// @Tags landed-costs
// @Produce  json
// @Param   documentID path string true "Document ID"
// @Success 204 "Document unapplied"
// @Failure 409 {object} map[string]string "Document is not allocated"
// @Failure 500 {object} map[string]string "Failed to unapply document"
// @Router /landed-costs/{documentID}/unapply [post]
func (h *landedCostHandler) unapplyDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	documentID := c.Param("documentID")

	actorID, orgID, ok := actorAndOrg(c)
	if !ok {
		return
	}

	if err := h.landedCostService.Unapply(c.Request.Context(), orgID, documentID, actorID); err != nil {
		respondError(c, logger, err, "Failed to unapply landed cost document")
		return
	}
	c.Status(http.StatusNoContent)
}
