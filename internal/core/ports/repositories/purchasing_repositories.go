package repositories

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// PurchasingRepositoryFacade reads the purchasing-side documents the core
// matches and allocates against. The core never writes these.
type PurchasingRepositoryFacade interface {
	FindOrderLines(ctx context.Context, orgID, orderRef string) ([]domain.OrderLine, error)
	FindReceiptLines(ctx context.Context, orgID, receiptRef string) ([]domain.ReceiptLine, error)
	FindInvoiceLines(ctx context.Context, orgID, invoiceRef string) ([]domain.InvoiceLine, error)
}
