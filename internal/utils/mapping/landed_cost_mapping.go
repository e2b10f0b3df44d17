package mapping

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/models"
)

// ToModelLandedCostDocument converts a domain document to its model, without lines.
func ToModelLandedCostDocument(d domain.LandedCostDocument) models.LandedCostDocument {
	return models.LandedCostDocument{
		DocumentID:      d.DocumentID,
		OrgID:           d.OrgID,
		InvoiceRef:      d.InvoiceRef,
		CurrencyCode:    d.CurrencyCode,
		ClearingAccount: d.ClearingAccount,
		Status:          models.LandedCostStatus(d.Status),
		PostedJournalID: d.PostedJournalID,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainLandedCostDocument converts a model document to its domain form, without lines.
func ToDomainLandedCostDocument(m models.LandedCostDocument) domain.LandedCostDocument {
	return domain.LandedCostDocument{
		DocumentID:      m.DocumentID,
		OrgID:           m.OrgID,
		InvoiceRef:      m.InvoiceRef,
		CurrencyCode:    m.CurrencyCode,
		ClearingAccount: m.ClearingAccount,
		Status:          domain.LandedCostStatus(m.Status),
		PostedJournalID: m.PostedJournalID,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelLandedCostLine converts a domain cost line to its model
func ToModelLandedCostLine(d domain.LandedCostLine) models.LandedCostLine {
	return models.LandedCostLine{
		CostLineID:    d.CostLineID,
		DocumentID:    d.DocumentID,
		LineNo:        d.LineNo,
		Description:   d.Description,
		Amount:        d.Amount,
		TargetAccount: d.TargetAccount,
	}
}

// ToDomainLandedCostLine converts a model cost line to its domain form
func ToDomainLandedCostLine(m models.LandedCostLine) domain.LandedCostLine {
	return domain.LandedCostLine{
		CostLineID:    m.CostLineID,
		DocumentID:    m.DocumentID,
		LineNo:        m.LineNo,
		Description:   m.Description,
		Amount:        m.Amount,
		TargetAccount: m.TargetAccount,
	}
}

// ToModelAllocation converts a domain allocation to its model
func ToModelAllocation(d domain.LandedCostAllocation) models.LandedCostAllocation {
	return models.LandedCostAllocation{
		AllocationID:  d.AllocationID,
		DocumentID:    d.DocumentID,
		CostLineID:    d.CostLineID,
		InvoiceLineNo: d.InvoiceLineNo,
		Factor:        d.Factor,
		Amount:        d.Amount,
	}
}

// ToDomainAllocation converts a model allocation to its domain form
func ToDomainAllocation(m models.LandedCostAllocation) domain.LandedCostAllocation {
	return domain.LandedCostAllocation{
		AllocationID:  m.AllocationID,
		DocumentID:    m.DocumentID,
		CostLineID:    m.CostLineID,
		InvoiceLineNo: m.InvoiceLineNo,
		Factor:        m.Factor,
		Amount:        m.Amount,
	}
}
