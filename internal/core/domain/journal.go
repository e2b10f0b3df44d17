package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// JournalStatus indicates where a journal sits in the approval/posting lifecycle.
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

// IsTerminal reports whether no further lifecycle action can change the journal.
// A Posted journal is terminal for period-close purposes: reversal spawns a new
// journal instead of mutating the original.
func (s JournalStatus) IsTerminal() bool {
	switch s {
	case Posted, Rejected, Reversed, Cancelled:
		return true
	}
	return false
}

// JournalType tags the business origin of a journal.
type JournalType string

const (
	GeneralJournal    JournalType = "GENERAL"
	PurchaseJournal   JournalType = "PURCHASE"
	LandedCostJournal JournalType = "LANDED_COST"
	ReversalJournal   JournalType = "REVERSAL"
)

// Journal represents a single, balanced financial event composed of multiple lines.
type Journal struct {
	JournalID    string        `json:"journalID"` // Primary Key (UUID)
	OrgID        string        `json:"orgID"`     // Owning organization/tenant
	PeriodID     string        `json:"periodID"`  // FK -> AccountingPeriod
	JournalType  JournalType   `json:"journalType"`
	JournalDate  time.Time     `json:"journalDate"`
	CurrencyCode string        `json:"currencyCode"`
	Reference    string        `json:"reference"` // Human reference from the scoped sequence
	Description  string        `json:"description"`
	Status       JournalStatus `json:"status"`

	ApprovedBy *string    `json:"approvedBy,omitempty"`
	ApprovedAt *time.Time `json:"approvedAt,omitempty"`
	PostedBy   *string    `json:"postedBy,omitempty"`
	PostedAt   *time.Time `json:"postedAt,omitempty"`

	// Back-references linking a reversal to its original. Neither side owns
	// the other's lifecycle.
	ReversesJournalID   *string `json:"reversesJournalID,omitempty"`
	ReversedByJournalID *string `json:"reversedByJournalID,omitempty"`

	Lines []JournalLine `json:"lines,omitempty"` // Exclusively owned, ordered by LineNo
	AuditFields
}

// JournalLine is a single debit or credit within a journal.
// Exactly one of Debit/Credit is positive; the other is zero.
type JournalLine struct {
	LineID      string          `json:"lineID"`
	JournalID   string          `json:"journalID"`
	LineNo      int             `json:"lineNo"` // 1-based document order
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CostCenter  string          `json:"costCenter,omitempty"` // Opaque dimension tag
	Department  string          `json:"department,omitempty"` // Opaque dimension tag
	AuditFields
}

// IsDebit reports whether the line carries a debit amount.
func (l JournalLine) IsDebit() bool {
	return l.Debit.IsPositive()
}

// Amount returns whichever side of the line is set.
func (l JournalLine) Amount() decimal.Decimal {
	if l.IsDebit() {
		return l.Debit
	}
	return l.Credit
}

// AuditEntry records one lifecycle action applied to a journal.
type AuditEntry struct {
	AuditID    string        `json:"auditID"`
	JournalID  string        `json:"journalID"`
	Action     JournalAction `json:"action"`
	FromStatus JournalStatus `json:"fromStatus"`
	ToStatus   JournalStatus `json:"toStatus"`
	ActorID    string        `json:"actorID"`
	Comment    string        `json:"comment,omitempty"`
	OccurredAt time.Time     `json:"occurredAt"`
}
