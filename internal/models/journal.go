package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus mirrors the lifecycle enum stored in the journals table.
type JournalStatus string

const (
	Draft           JournalStatus = "DRAFT"
	PendingApproval JournalStatus = "PENDING_APPROVAL"
	Approved        JournalStatus = "APPROVED"
	Posted          JournalStatus = "POSTED"
	Rejected        JournalStatus = "REJECTED"
	Reversed        JournalStatus = "REVERSED"
	Cancelled       JournalStatus = "CANCELLED"
)

// Journal represents a row in the journals table.
type Journal struct {
	JournalID    string        `db:"journal_id"` // Primary Key (UUID)
	OrgID        string        `db:"org_id"`
	PeriodID     string        `db:"period_id"`
	JournalType  string        `db:"journal_type"`
	JournalDate  time.Time     `db:"journal_date"`
	CurrencyCode string        `db:"currency_code"`
	Reference    string        `db:"reference"`
	Description  string        `db:"description"`
	Status       JournalStatus `db:"status"`

	ApprovedBy *string    `db:"approved_by"` // Nullable
	ApprovedAt *time.Time `db:"approved_at"` // Nullable
	PostedBy   *string    `db:"posted_by"`   // Nullable
	PostedAt   *time.Time `db:"posted_at"`   // Nullable

	ReversesJournalID   *string `db:"reverses_journal_id"`    // Nullable back-reference
	ReversedByJournalID *string `db:"reversed_by_journal_id"` // Nullable back-reference

	AuditFields
}

// JournalLine represents a row in the journal_lines table. Exactly one of
// debit/credit is positive, enforced by a table CHECK constraint as well.
type JournalLine struct {
	LineID      string          `db:"line_id"` // Primary Key (UUID)
	JournalID   string          `db:"journal_id"`
	LineNo      int             `db:"line_no"`
	AccountID   string          `db:"account_id"`
	Description string          `db:"description"`
	Debit       decimal.Decimal `db:"debit"`
	Credit      decimal.Decimal `db:"credit"`
	CostCenter  string          `db:"cost_center"` // Opaque dimension tag
	Department  string          `db:"department"`  // Opaque dimension tag
	AuditFields
}

// JournalAudit represents a row in the journal_audit table.
type JournalAudit struct {
	AuditID    string    `db:"audit_id"` // Primary Key (UUID)
	JournalID  string    `db:"journal_id"`
	Action     string    `db:"action"`
	FromStatus string    `db:"from_status"`
	ToStatus   string    `db:"to_status"`
	ActorID    string    `db:"actor_id"`
	Comment    string    `db:"comment"`
	OccurredAt time.Time `db:"occurred_at"`
}
