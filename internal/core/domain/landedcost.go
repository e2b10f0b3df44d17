package domain

import "github.com/shopspring/decimal"

// AllocationBasis is the weighting scheme used to spread a cost across invoice lines.
type AllocationBasis string

const (
	ByValue    AllocationBasis = "by_value"
	ByQuantity AllocationBasis = "by_quantity"
)

// LandedCostStatus is the lifecycle of a landed cost document.
type LandedCostStatus string

const (
	LandedCostDraft     LandedCostStatus = "DRAFT"
	LandedCostAllocated LandedCostStatus = "ALLOCATED"
)

// LandedCostDocument groups ancillary acquisition costs (freight, duty,
// insurance) against one purchase invoice. Once allocated it is immutable;
// re-allocation requires unapplying or a new document.
type LandedCostDocument struct {
	DocumentID       string           `json:"documentID"`
	OrgID            string           `json:"orgID"`
	InvoiceRef       string           `json:"invoiceRef"` // Source purchase invoice
	CurrencyCode     string           `json:"currencyCode"`
	ClearingAccount  string           `json:"clearingAccount"` // Credited by the distribution journal
	Status           LandedCostStatus `json:"status"`
	PostedJournalID  *string          `json:"postedJournalID,omitempty"`
	CostLines        []LandedCostLine `json:"costLines,omitempty"`
	AuditFields
}

// LandedCostLine is one cost component to be spread across the invoice lines.
type LandedCostLine struct {
	CostLineID    string          `json:"costLineID"`
	DocumentID    string          `json:"documentID"`
	LineNo        int             `json:"lineNo"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	TargetAccount string          `json:"targetAccount"` // Debited by the distribution journal
}

// LandedCostAllocation is the derived amount of one cost line landing on one
// invoice line. Factor is kept at full precision; Amount is rounded to the
// currency's minor unit with the last invoice line absorbing the remainder.
type LandedCostAllocation struct {
	AllocationID  string          `json:"allocationID"`
	DocumentID    string          `json:"documentID"`
	CostLineID    string          `json:"costLineID"`
	InvoiceLineNo int             `json:"invoiceLineNo"`
	Factor        decimal.Decimal `json:"factor"` // 0..1
	Amount        decimal.Decimal `json:"amount"`
}
