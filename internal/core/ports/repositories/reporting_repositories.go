package repositories

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// ReportingRepositoryFacade derives balances by aggregating posted journal
// lines. Balances are never stored as mutable counters.
type ReportingRepositoryFacade interface {
	TrialBalance(ctx context.Context, orgID, periodID string) ([]domain.TrialBalanceRow, error)
}
