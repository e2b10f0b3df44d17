package mapping

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:           d.JournalID,
		OrgID:               d.OrgID,
		PeriodID:            d.PeriodID,
		JournalType:         string(d.JournalType),
		JournalDate:         d.JournalDate,
		CurrencyCode:        d.CurrencyCode,
		Reference:           d.Reference,
		Description:         d.Description,
		Status:              models.JournalStatus(d.Status),
		ApprovedBy:          d.ApprovedBy,
		ApprovedAt:          d.ApprovedAt,
		PostedBy:            d.PostedBy,
		PostedAt:            d.PostedAt,
		ReversesJournalID:   d.ReversesJournalID,
		ReversedByJournalID: d.ReversedByJournalID,
		AuditFields:         ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:           m.JournalID,
		OrgID:               m.OrgID,
		PeriodID:            m.PeriodID,
		JournalType:         domain.JournalType(m.JournalType),
		JournalDate:         m.JournalDate,
		CurrencyCode:        m.CurrencyCode,
		Reference:           m.Reference,
		Description:         m.Description,
		Status:              domain.JournalStatus(m.Status),
		ApprovedBy:          m.ApprovedBy,
		ApprovedAt:          m.ApprovedAt,
		PostedBy:            m.PostedBy,
		PostedAt:            m.PostedAt,
		ReversesJournalID:   m.ReversesJournalID,
		ReversedByJournalID: m.ReversedByJournalID,
		AuditFields:         ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelJournalLine converts a domain JournalLine to a model JournalLine
func ToModelJournalLine(d domain.JournalLine) models.JournalLine {
	return models.JournalLine{
		LineID:      d.LineID,
		JournalID:   d.JournalID,
		LineNo:      d.LineNo,
		AccountID:   d.AccountID,
		Description: d.Description,
		Debit:       d.Debit,
		Credit:      d.Credit,
		CostCenter:  d.CostCenter,
		Department:  d.Department,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainJournalLine converts a model JournalLine to a domain JournalLine
func ToDomainJournalLine(m models.JournalLine) domain.JournalLine {
	return domain.JournalLine{
		LineID:      m.LineID,
		JournalID:   m.JournalID,
		LineNo:      m.LineNo,
		AccountID:   m.AccountID,
		Description: m.Description,
		Debit:       m.Debit,
		Credit:      m.Credit,
		CostCenter:  m.CostCenter,
		Department:  m.Department,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainJournalLineSlice converts a slice of model JournalLines to domain JournalLines
func ToDomainJournalLineSlice(ms []models.JournalLine) []domain.JournalLine {
	ds := make([]domain.JournalLine, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainJournalLine(m)
	}
	return ds
}

// ToModelJournalAudit converts a domain AuditEntry to a model JournalAudit
func ToModelJournalAudit(d domain.AuditEntry) models.JournalAudit {
	return models.JournalAudit{
		AuditID:    d.AuditID,
		JournalID:  d.JournalID,
		Action:     string(d.Action),
		FromStatus: string(d.FromStatus),
		ToStatus:   string(d.ToStatus),
		ActorID:    d.ActorID,
		Comment:    d.Comment,
		OccurredAt: d.OccurredAt,
	}
}

// ToDomainAuditEntry converts a model JournalAudit to a domain AuditEntry
func ToDomainAuditEntry(m models.JournalAudit) domain.AuditEntry {
	return domain.AuditEntry{
		AuditID:    m.AuditID,
		JournalID:  m.JournalID,
		Action:     domain.JournalAction(m.Action),
		FromStatus: domain.JournalStatus(m.FromStatus),
		ToStatus:   domain.JournalStatus(m.ToStatus),
		ActorID:    m.ActorID,
		Comment:    m.Comment,
		OccurredAt: m.OccurredAt,
	}
}
