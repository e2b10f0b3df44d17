package domain

import "github.com/shopspring/decimal"

// TrialBalanceRow is one account's derived balance for a period. Amounts are
// aggregated from posted journal lines on read; nothing here is stored.
type TrialBalanceRow struct {
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode"`
	AccountName string          `json:"accountName"`
	AccountType AccountType     `json:"accountType"`
	TotalDebit  decimal.Decimal `json:"totalDebit"`
	TotalCredit decimal.Decimal `json:"totalCredit"`
	Net         decimal.Decimal `json:"net"` // debit - credit
}
