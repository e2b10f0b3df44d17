package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/services"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

// respondError maps service errors onto HTTP statuses. Validation failures
// carry their structured findings; everything unrecognized is a 500 with a
// generic message so internals never leak.
func respondError(c *gin.Context, logger *slog.Logger, err error, fallback string) {
	var vErr *services.ValidationFailuresError
	if errors.As(err, &vErr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "failures": vErr.Failures})
		return
	}

	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Resource not found"})
	case errors.Is(err, apperrors.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrState),
		errors.Is(err, apperrors.ErrConflict),
		errors.Is(err, apperrors.ErrPeriodClose):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrPeriodClosed):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, apperrors.ErrAllocation):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// actorAndOrg pulls the pre-resolved identity headers out of the Gin context.
func actorAndOrg(c *gin.Context) (actorID, orgID string, ok bool) {
	actorID, ok = middleware.GetActorIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Actor not resolved"})
		return "", "", false
	}
	orgID, ok = middleware.GetOrgIDFromContext(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Organization not resolved"})
		return "", "", false
	}
	return actorID, orgID, true
}
