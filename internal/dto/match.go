package dto

import "github.com/shopspring/decimal"

// MatchRequest identifies the order/receipt/invoice documents to reconcile.
// TolerancePct overrides the configured default when set.
type MatchRequest struct {
	OrderRef     string           `json:"orderRef" binding:"required"`
	ReceiptRef   string           `json:"receiptRef" binding:"required"`
	InvoiceRef   string           `json:"invoiceRef" binding:"required"`
	TolerancePct *decimal.Decimal `json:"tolerancePct"`
}
