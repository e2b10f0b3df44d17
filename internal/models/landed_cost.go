package models

import "github.com/shopspring/decimal"

// LandedCostStatus mirrors the landed_cost_documents status enum.
type LandedCostStatus string

const (
	LandedCostDraft     LandedCostStatus = "DRAFT"
	LandedCostAllocated LandedCostStatus = "ALLOCATED"
)

// LandedCostDocument represents a row in the landed_cost_documents table.
type LandedCostDocument struct {
	DocumentID      string           `db:"document_id"` // Primary Key (UUID)
	OrgID           string           `db:"org_id"`
	InvoiceRef      string           `db:"invoice_ref"`
	CurrencyCode    string           `db:"currency_code"`
	ClearingAccount string           `db:"clearing_account"`
	Status          LandedCostStatus `db:"status"`
	PostedJournalID *string          `db:"posted_journal_id"` // Nullable until allocated
	AuditFields
}

// LandedCostLine represents a row in the landed_cost_lines table.
type LandedCostLine struct {
	CostLineID    string          `db:"cost_line_id"` // Primary Key (UUID)
	DocumentID    string          `db:"document_id"`
	LineNo        int             `db:"line_no"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	TargetAccount string          `db:"target_account"`
}

// LandedCostAllocation represents a row in the landed_cost_allocations table.
type LandedCostAllocation struct {
	AllocationID  string          `db:"allocation_id"` // Primary Key (UUID)
	DocumentID    string          `db:"document_id"`
	CostLineID    string          `db:"cost_line_id"`
	InvoiceLineNo int             `db:"invoice_line_no"`
	Factor        decimal.Decimal `db:"factor"` // 0-1, full precision
	Amount        decimal.Decimal `db:"amount"` // Rounded to the currency minor unit
}
