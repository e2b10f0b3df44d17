package domain

import "time"

// PeriodStatus indicates whether an accounting period accepts postings.
type PeriodStatus string

const (
	PeriodOpen   PeriodStatus = "OPEN"
	PeriodClosed PeriodStatus = "CLOSED"
)

// AccountingPeriod is a date range journals post into. Status is only mutated
// by the period close/reopen operations.
type AccountingPeriod struct {
	PeriodID  string       `json:"periodID"`
	OrgID     string       `json:"orgID"`
	Name      string       `json:"name"` // e.g. "2026-01"
	StartDate time.Time    `json:"startDate"`
	EndDate   time.Time    `json:"endDate"`
	Status    PeriodStatus `json:"status"`
	AuditFields
}

// Contains reports whether the given date falls inside the period range (inclusive).
func (p AccountingPeriod) Contains(date time.Time) bool {
	return !date.Before(p.StartDate) && !date.After(p.EndDate)
}

// IsOpen reports whether the period accepts postings.
func (p AccountingPeriod) IsOpen() bool {
	return p.Status == PeriodOpen
}
