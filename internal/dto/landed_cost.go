package dto

import (
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateLandedCostLineRequest is one cost component (freight, duty, insurance).
type CreateLandedCostLineRequest struct {
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	TargetAccount string          `json:"targetAccount"`
}

// CreateLandedCostRequest creates a Draft landed cost document against an invoice.
type CreateLandedCostRequest struct {
	InvoiceRef      string                        `json:"invoiceRef" binding:"required"`
	CurrencyCode    string                        `json:"currencyCode" binding:"required,len=3"`
	ClearingAccount string                        `json:"clearingAccount" binding:"required"`
	CostLines       []CreateLandedCostLineRequest `json:"costLines" binding:"required,min=1,dive"`
}

// AllocateLandedCostRequest selects the weighting scheme for allocation.
type AllocateLandedCostRequest struct {
	Basis string `json:"basis" binding:"required,oneof=by_value by_quantity"`
}

// AllocationResponse is one persisted (cost line x invoice line) allocation.
type AllocationResponse struct {
	CostLineID    string          `json:"costLineID"`
	InvoiceLineNo int             `json:"invoiceLineNo"`
	Factor        decimal.Decimal `json:"factor"`
	Amount        decimal.Decimal `json:"amount"`
}

// AllocateLandedCostResponse reports the allocations and the journal that
// recorded the distribution.
type AllocateLandedCostResponse struct {
	DocumentID      string               `json:"documentID"`
	Status          string               `json:"status"`
	Allocations     []AllocationResponse `json:"allocations"`
	PostedJournalID string               `json:"postedJournalID"`
}

// LandedCostDocumentResponse is the outward view of a document with cost lines.
type LandedCostDocumentResponse struct {
	DocumentID      string                  `json:"documentID"`
	InvoiceRef      string                  `json:"invoiceRef"`
	CurrencyCode    string                  `json:"currencyCode"`
	ClearingAccount string                  `json:"clearingAccount"`
	Status          domain.LandedCostStatus `json:"status"`
	PostedJournalID *string                 `json:"postedJournalID,omitempty"`
	CostLines       []LandedCostLineResponse `json:"costLines"`
}

// LandedCostLineResponse is the outward view of one cost component.
type LandedCostLineResponse struct {
	CostLineID    string          `json:"costLineID"`
	LineNo        int             `json:"lineNo"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	TargetAccount string          `json:"targetAccount"`
}

// ToLandedCostDocumentResponse converts a domain document to its DTO.
func ToLandedCostDocumentResponse(doc *domain.LandedCostDocument) LandedCostDocumentResponse {
	resp := LandedCostDocumentResponse{
		DocumentID:      doc.DocumentID,
		InvoiceRef:      doc.InvoiceRef,
		CurrencyCode:    doc.CurrencyCode,
		ClearingAccount: doc.ClearingAccount,
		Status:          doc.Status,
		PostedJournalID: doc.PostedJournalID,
		CostLines:       make([]LandedCostLineResponse, len(doc.CostLines)),
	}
	for i, cl := range doc.CostLines {
		resp.CostLines[i] = LandedCostLineResponse{
			CostLineID:    cl.CostLineID,
			LineNo:        cl.LineNo,
			Description:   cl.Description,
			Amount:        cl.Amount,
			TargetAccount: cl.TargetAccount,
		}
	}
	return resp
}

// ToAllocationResponses converts domain allocations to DTOs.
func ToAllocationResponses(allocations []domain.LandedCostAllocation) []AllocationResponse {
	out := make([]AllocationResponse, len(allocations))
	for i, a := range allocations {
		out[i] = AllocationResponse{
			CostLineID:    a.CostLineID,
			InvoiceLineNo: a.InvoiceLineNo,
			Factor:        a.Factor,
			Amount:        a.Amount,
		}
	}
	return out
}
