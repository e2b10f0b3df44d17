package domain

import "github.com/shopspring/decimal"

// MatchClassification grades one matched line or a whole match report.
type MatchClassification string

const (
	MatchPass MatchClassification = "PASS"
	MatchWarn MatchClassification = "WARN"
	MatchFail MatchClassification = "FAIL"
)

// worse orders classifications for aggregation.
var matchSeverity = map[MatchClassification]int{
	MatchPass: 0,
	MatchWarn: 1,
	MatchFail: 2,
}

// Worse returns the more severe of two classifications.
func (c MatchClassification) Worse(other MatchClassification) MatchClassification {
	if matchSeverity[other] > matchSeverity[c] {
		return other
	}
	return c
}

// OrderLine is the read-only purchase order side of a match triple.
type OrderLine struct {
	ProductRef string          `json:"productRef"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Amount     decimal.Decimal `json:"amount"`
}

// ReceiptLine is the read-only goods receipt side of a match triple.
type ReceiptLine struct {
	ProductRef string          `json:"productRef"`
	Quantity   decimal.Decimal `json:"quantity"`
}

// InvoiceLine is the read-only invoice side of a match triple. It doubles as
// the allocation target for landed cost documents.
type InvoiceLine struct {
	ProductRef string          `json:"productRef"`
	LineNo     int             `json:"lineNo"`
	Quantity   decimal.Decimal `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	Amount     decimal.Decimal `json:"amount"`
}

// MatchLineResult is the variance report for one order/receipt/invoice triple.
type MatchLineResult struct {
	ProductRef     string              `json:"productRef"`
	QtyVariance    decimal.Decimal     `json:"qtyVariance"`   // invoice qty - receipt qty
	PriceVariance  decimal.Decimal     `json:"priceVariance"` // invoice unit price - order unit price
	AmountVariance decimal.Decimal     `json:"amountVariance"`
	VariancePct    decimal.Decimal     `json:"variancePct"` // |amount variance| / order amount * 100
	Classification MatchClassification `json:"classification"`
	Reason         string              `json:"reason,omitempty"`
}

// MatchResult is the transient output of a three-way match. It is never
// persisted by the core; callers decide whether to act on it.
type MatchResult struct {
	OrderRef   string              `json:"orderRef"`
	ReceiptRef string              `json:"receiptRef"`
	InvoiceRef string              `json:"invoiceRef"`
	Tolerance  decimal.Decimal     `json:"tolerancePct"`
	Lines      []MatchLineResult   `json:"lines"`
	Overall    MatchClassification `json:"overall"`
}
