package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// ReportingSvcFacade serves reports derived from posted journal lines.
type ReportingSvcFacade interface {
	TrialBalance(ctx context.Context, orgID, periodID string) (*dto.TrialBalanceResponse, error)
}
