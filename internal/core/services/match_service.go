package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

var hundred = decimal.NewFromInt(100)

// matchService reconciles a purchase order, its goods receipt and the
// resulting invoice. It only compares; the report is never persisted and a
// failing match never blocks posting on its own.
type matchService struct {
	purchasingRepo   portsrepo.PurchasingRepositoryFacade
	defaultTolerance decimal.Decimal
}

// NewMatchService creates the three-way match validator. defaultTolerance is
// the amount-variance percentage above which a line is flagged.
func NewMatchService(purchasingRepo portsrepo.PurchasingRepositoryFacade, defaultTolerance decimal.Decimal) portssvc.MatchSvcFacade {
	return &matchService{
		purchasingRepo:   purchasingRepo,
		defaultTolerance: defaultTolerance,
	}
}

var _ portssvc.MatchSvcFacade = (*matchService)(nil)

// MatchDocuments loads the three documents, pairs their lines by product
// reference and grades each triple. Overall classification is the worst line.
func (s *matchService) MatchDocuments(ctx context.Context, orgID string, req dto.MatchRequest) (*domain.MatchResult, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	tolerance := s.defaultTolerance
	if req.TolerancePct != nil {
		if req.TolerancePct.IsNegative() {
			return nil, fmt.Errorf("%w: tolerance must not be negative", apperrors.ErrValidation)
		}
		tolerance = *req.TolerancePct
	}

	orderLines, err := s.purchasingRepo.FindOrderLines(ctx, orgID, req.OrderRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load order %s: %w", req.OrderRef, err)
	}
	receiptLines, err := s.purchasingRepo.FindReceiptLines(ctx, orgID, req.ReceiptRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load receipt %s: %w", req.ReceiptRef, err)
	}
	invoiceLines, err := s.purchasingRepo.FindInvoiceLines(ctx, orgID, req.InvoiceRef)
	if err != nil {
		return nil, fmt.Errorf("failed to load invoice %s: %w", req.InvoiceRef, err)
	}
	if len(invoiceLines) == 0 {
		return nil, fmt.Errorf("%w: invoice %s has no lines", apperrors.ErrValidation, req.InvoiceRef)
	}

	ordersByRef := make(map[string]domain.OrderLine, len(orderLines))
	for _, line := range orderLines {
		ordersByRef[line.ProductRef] = line
	}
	receiptsByRef := make(map[string]domain.ReceiptLine, len(receiptLines))
	for _, line := range receiptLines {
		receiptsByRef[line.ProductRef] = line
	}

	result := &domain.MatchResult{
		OrderRef:   req.OrderRef,
		ReceiptRef: req.ReceiptRef,
		InvoiceRef: req.InvoiceRef,
		Tolerance:  tolerance,
		Lines:      make([]domain.MatchLineResult, 0, len(invoiceLines)),
		Overall:    domain.MatchPass,
	}

	for _, invLine := range invoiceLines {
		lineResult := matchLine(invLine, ordersByRef, receiptsByRef, tolerance)
		result.Lines = append(result.Lines, lineResult)
		result.Overall = result.Overall.Worse(lineResult.Classification)
	}

	logger.Info("Three-way match computed",
		slog.String("order_ref", req.OrderRef),
		slog.String("invoice_ref", req.InvoiceRef),
		slog.String("overall", string(result.Overall)))
	return result, nil
}

// matchLine grades one invoice line against its order and receipt counterparts.
// A missing counterpart or over-invoiced quantity is a hard Fail; an amount
// variance above tolerance is a Warn; everything else passes.
func matchLine(invLine domain.InvoiceLine, orders map[string]domain.OrderLine, receipts map[string]domain.ReceiptLine, tolerance decimal.Decimal) domain.MatchLineResult {
	result := domain.MatchLineResult{
		ProductRef:     invLine.ProductRef,
		Classification: domain.MatchPass,
	}

	orderLine, hasOrder := orders[invLine.ProductRef]
	if !hasOrder {
		result.Classification = domain.MatchFail
		result.Reason = "invoiced product not on order"
		return result
	}
	receiptLine, hasReceipt := receipts[invLine.ProductRef]
	if !hasReceipt {
		result.Classification = domain.MatchFail
		result.Reason = "invoiced product not on receipt"
		return result
	}

	result.QtyVariance = invLine.Quantity.Sub(receiptLine.Quantity)
	result.PriceVariance = invLine.UnitPrice.Sub(orderLine.UnitPrice)
	result.AmountVariance = invLine.Amount.Sub(orderLine.Amount)
	if orderLine.Amount.IsZero() {
		if !result.AmountVariance.IsZero() {
			result.Classification = domain.MatchFail
			result.Reason = "invoiced amount against zero-amount order line"
		}
		return result
	}
	result.VariancePct = result.AmountVariance.Abs().Div(orderLine.Amount).Mul(hundred)

	if result.QtyVariance.IsPositive() {
		result.Classification = domain.MatchFail
		result.Reason = "invoiced quantity exceeds received quantity"
		return result
	}
	if result.VariancePct.GreaterThan(tolerance) {
		result.Classification = domain.MatchWarn
		result.Reason = fmt.Sprintf("amount variance %s%% exceeds tolerance %s%%",
			result.VariancePct.Round(2), tolerance)
	}
	return result
}
