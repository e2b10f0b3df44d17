package dto

import (
	"time"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateJournalLineRequest is one proposed line of a candidate journal.
// Exactly one of debit/credit must be positive; the validator reports
// violations as structured failures rather than binding errors.
type CreateJournalLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CostCenter  string          `json:"costCenter"`
	Department  string          `json:"department"`
}

// CreateJournalRequest creates a Draft journal with its lines.
type CreateJournalRequest struct {
	PeriodID     string                     `json:"periodID" binding:"required"`
	JournalType  string                     `json:"journalType" binding:"omitempty,journaltype"`
	Date         time.Time                  `json:"date" binding:"required"`
	CurrencyCode string                     `json:"currencyCode" binding:"required,len=3"`
	Description  string                     `json:"description" binding:"required"`
	Lines        []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// CreateJournalResponse returns the new draft plus informational validation
// warnings; warnings do not block creation, only posting.
type CreateJournalResponse struct {
	JournalID          string                     `json:"journalID"`
	Reference          string                     `json:"reference"`
	Status             domain.JournalStatus       `json:"status"`
	ValidationWarnings []domain.ValidationFailure `json:"validationWarnings"`
}

// UpdateJournalLinesRequest replaces the full line set of a Draft or
// PendingApproval journal.
type UpdateJournalLinesRequest struct {
	Lines []CreateJournalLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// JournalLineResponse is the outward view of one journal line.
type JournalLineResponse struct {
	LineID      string          `json:"lineID"`
	LineNo      int             `json:"lineNo"`
	AccountID   string          `json:"accountID"`
	Description string          `json:"description"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
	CostCenter  string          `json:"costCenter,omitempty"`
	Department  string          `json:"department,omitempty"`
}

// JournalResponse is the outward view of a journal header, optionally with lines.
type JournalResponse struct {
	JournalID           string                `json:"journalID"`
	PeriodID            string                `json:"periodID"`
	JournalType         domain.JournalType    `json:"journalType"`
	Date                time.Time             `json:"date"`
	CurrencyCode        string                `json:"currencyCode"`
	Reference           string                `json:"reference"`
	Description         string                `json:"description"`
	Status              domain.JournalStatus  `json:"status"`
	ReversesJournalID   *string               `json:"reversesJournalID,omitempty"`
	ReversedByJournalID *string               `json:"reversedByJournalID,omitempty"`
	PostedBy            *string               `json:"postedBy,omitempty"`
	PostedAt            *time.Time            `json:"postedAt,omitempty"`
	CreatedAt           time.Time             `json:"createdAt"`
	CreatedBy           string                `json:"createdBy"`
	Lines               []JournalLineResponse `json:"lines,omitempty"`
}

// ListJournalsParams holds paging parameters for listing journals.
type ListJournalsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// ListJournalsResponse is a page of journals plus the token for the next page.
type ListJournalsResponse struct {
	Journals  []JournalResponse `json:"journals"`
	NextToken *string           `json:"nextToken,omitempty"`
}

// AuditEntryResponse is one recorded lifecycle action.
type AuditEntryResponse struct {
	Action     domain.JournalAction `json:"action"`
	FromStatus domain.JournalStatus `json:"fromStatus"`
	ToStatus   domain.JournalStatus `json:"toStatus"`
	ActorID    string               `json:"actorID"`
	Comment    string               `json:"comment,omitempty"`
	OccurredAt time.Time            `json:"occurredAt"`
}

// ToJournalLineResponse converts a domain.JournalLine to its DTO.
func ToJournalLineResponse(l domain.JournalLine) JournalLineResponse {
	return JournalLineResponse{
		LineID:      l.LineID,
		LineNo:      l.LineNo,
		AccountID:   l.AccountID,
		Description: l.Description,
		Debit:       l.Debit,
		Credit:      l.Credit,
		CostCenter:  l.CostCenter,
		Department:  l.Department,
	}
}

// ToJournalResponse converts a domain.Journal (with or without lines) to its DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	resp := JournalResponse{
		JournalID:           j.JournalID,
		PeriodID:            j.PeriodID,
		JournalType:         j.JournalType,
		Date:                j.JournalDate,
		CurrencyCode:        j.CurrencyCode,
		Reference:           j.Reference,
		Description:         j.Description,
		Status:              j.Status,
		ReversesJournalID:   j.ReversesJournalID,
		ReversedByJournalID: j.ReversedByJournalID,
		PostedBy:            j.PostedBy,
		PostedAt:            j.PostedAt,
		CreatedAt:           j.CreatedAt,
		CreatedBy:           j.CreatedBy,
	}
	if len(j.Lines) > 0 {
		resp.Lines = make([]JournalLineResponse, len(j.Lines))
		for i, l := range j.Lines {
			resp.Lines[i] = ToJournalLineResponse(l)
		}
	}
	return resp
}

// ToAuditEntryResponses converts domain audit entries to DTOs.
func ToAuditEntryResponses(entries []domain.AuditEntry) []AuditEntryResponse {
	out := make([]AuditEntryResponse, len(entries))
	for i, e := range entries {
		out[i] = AuditEntryResponse{
			Action:     e.Action,
			FromStatus: e.FromStatus,
			ToStatus:   e.ToStatus,
			ActorID:    e.ActorID,
			Comment:    e.Comment,
			OccurredAt: e.OccurredAt,
		}
	}
	return out
}
