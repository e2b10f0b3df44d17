package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/finbooks/erp_ledger_app/internal/models"
)

type PgxPurchasingRepository struct {
	BaseRepository
}

// newPgxPurchasingRepository creates a read-only repository over the
// purchasing-side tables.
func newPgxPurchasingRepository(pool *pgxpool.Pool) portsrepo.PurchasingRepositoryFacade {
	return &PgxPurchasingRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PurchasingRepositoryFacade = (*PgxPurchasingRepository)(nil)

// FindOrderLines retrieves the lines of a purchase order.
func (r *PgxPurchasingRepository) FindOrderLines(ctx context.Context, orgID, orderRef string) ([]domain.OrderLine, error) {
	query := `
		SELECT l.product_ref, l.quantity, l.unit_price, l.amount
		FROM purchase_order_lines l
		JOIN purchase_orders o ON l.order_ref = o.order_ref
		WHERE o.org_id = $1 AND l.order_ref = $2
		ORDER BY l.product_ref;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, orderRef)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query order lines for "+orderRef, err)
	}
	defer rows.Close()

	lines := []domain.OrderLine{}
	for rows.Next() {
		var m models.OrderLine
		if err := rows.Scan(&m.ProductRef, &m.Quantity, &m.UnitPrice, &m.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan order line row for "+orderRef, err)
		}
		lines = append(lines, domain.OrderLine{
			ProductRef: m.ProductRef,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			Amount:     m.Amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating order line rows for "+orderRef, err)
	}
	return lines, nil
}

// FindReceiptLines retrieves the lines of a goods receipt.
func (r *PgxPurchasingRepository) FindReceiptLines(ctx context.Context, orgID, receiptRef string) ([]domain.ReceiptLine, error) {
	query := `
		SELECT l.product_ref, l.quantity
		FROM goods_receipt_lines l
		JOIN goods_receipts g ON l.receipt_ref = g.receipt_ref
		WHERE g.org_id = $1 AND l.receipt_ref = $2
		ORDER BY l.product_ref;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, receiptRef)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query receipt lines for "+receiptRef, err)
	}
	defer rows.Close()

	lines := []domain.ReceiptLine{}
	for rows.Next() {
		var m models.ReceiptLine
		if err := rows.Scan(&m.ProductRef, &m.Quantity); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan receipt line row for "+receiptRef, err)
		}
		lines = append(lines, domain.ReceiptLine{
			ProductRef: m.ProductRef,
			Quantity:   m.Quantity,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating receipt line rows for "+receiptRef, err)
	}
	return lines, nil
}

// FindInvoiceLines retrieves the lines of a purchase invoice in document order.
func (r *PgxPurchasingRepository) FindInvoiceLines(ctx context.Context, orgID, invoiceRef string) ([]domain.InvoiceLine, error) {
	query := `
		SELECT l.product_ref, l.line_no, l.quantity, l.unit_price, l.amount
		FROM purchase_invoice_lines l
		JOIN purchase_invoices i ON l.invoice_ref = i.invoice_ref
		WHERE i.org_id = $1 AND l.invoice_ref = $2
		ORDER BY l.line_no;
	`
	rows, err := r.Pool.Query(ctx, query, orgID, invoiceRef)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query invoice lines for "+invoiceRef, err)
	}
	defer rows.Close()

	lines := []domain.InvoiceLine{}
	for rows.Next() {
		var m models.InvoiceLine
		if err := rows.Scan(&m.ProductRef, &m.LineNo, &m.Quantity, &m.UnitPrice, &m.Amount); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan invoice line row for "+invoiceRef, err)
		}
		lines = append(lines, domain.InvoiceLine{
			ProductRef: m.ProductRef,
			LineNo:     m.LineNo,
			Quantity:   m.Quantity,
			UnitPrice:  m.UnitPrice,
			Amount:     m.Amount,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating invoice line rows for "+invoiceRef, err)
	}
	return lines, nil
}
