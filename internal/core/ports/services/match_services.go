package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// MatchSvcFacade performs the three-way order/receipt/invoice reconciliation.
// It is pure comparison: the report is returned, never persisted, and never
// blocks posting by itself.
type MatchSvcFacade interface {
	MatchDocuments(ctx context.Context, orgID string, req dto.MatchRequest) (*domain.MatchResult, error)
}
