package dto

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TrialBalanceResponse is the derived per-account balance report for a period.
type TrialBalanceResponse struct {
	PeriodID    string                   `json:"periodID"`
	Rows        []domain.TrialBalanceRow `json:"rows"`
	TotalDebit  decimal.Decimal          `json:"totalDebit"`
	TotalCredit decimal.Decimal          `json:"totalCredit"`
}
