package domain

// AccountType classifies an account for reporting purposes.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the ledger-side view of a GL account. Balances are never stored
// here; they are derived by aggregating posted journal lines.
type Account struct {
	AccountID    string      `json:"accountID"`
	OrgID        string      `json:"orgID"`
	Code         string      `json:"code"`
	Name         string      `json:"name"`
	AccountType  AccountType `json:"accountType"`
	CurrencyCode string      `json:"currencyCode"`
	IsActive     bool        `json:"isActive"`
	AuditFields
}
