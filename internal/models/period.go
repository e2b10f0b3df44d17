package models

import "time"

// PeriodStatus mirrors the accounting_periods status enum.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod represents a row in the accounting_periods table.
type AccountingPeriod struct {
	PeriodID  string       `db:"period_id"` // Primary Key (UUID)
	OrgID     string       `db:"org_id"`
	Name      string       `db:"name"`
	StartDate time.Time    `db:"start_date"`
	EndDate   time.Time    `db:"end_date"`
	Status    PeriodStatus `db:"status"`
	AuditFields
}
