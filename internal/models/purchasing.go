package models

import "github.com/shopspring/decimal"

// OrderLine represents a row in the purchase_order_lines table. The purchasing
// tables are read-only from the ledger's point of view.
type OrderLine struct {
	OrderRef   string          `db:"order_ref"`
	ProductRef string          `db:"product_ref"`
	Quantity   decimal.Decimal `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	Amount     decimal.Decimal `db:"amount"`
}

// ReceiptLine represents a row in the goods_receipt_lines table.
type ReceiptLine struct {
	ReceiptRef string          `db:"receipt_ref"`
	ProductRef string          `db:"product_ref"`
	Quantity   decimal.Decimal `db:"quantity"`
}

// InvoiceLine represents a row in the purchase_invoice_lines table.
type InvoiceLine struct {
	InvoiceRef string          `db:"invoice_ref"`
	ProductRef string          `db:"product_ref"`
	LineNo     int             `db:"line_no"`
	Quantity   decimal.Decimal `db:"quantity"`
	UnitPrice  decimal.Decimal `db:"unit_price"`
	Amount     decimal.Decimal `db:"amount"`
}
