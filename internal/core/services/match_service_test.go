package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/core/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

type MatchServiceTestSuite struct {
	suite.Suite
	mockPurchasingRepo *MockPurchasingRepository
	service            portssvc.MatchSvcFacade

	orgID string
	req   dto.MatchRequest
}

func (s *MatchServiceTestSuite) SetupTest() {
	s.mockPurchasingRepo = new(MockPurchasingRepository)
	s.service = services.NewMatchService(s.mockPurchasingRepo, decimal.NewFromFloat(5.0))

	s.orgID = "org-1"
	s.req = dto.MatchRequest{
		OrderRef:   "PO-100",
		ReceiptRef: "GR-100",
		InvoiceRef: "INV-100",
	}
}

func (s *MatchServiceTestSuite) expectDocuments(orders []domain.OrderLine, receipts []domain.ReceiptLine, invoices []domain.InvoiceLine) {
	ctx := context.Background()
	s.mockPurchasingRepo.On("FindOrderLines", ctx, s.orgID, s.req.OrderRef).Return(orders, nil).Once()
	s.mockPurchasingRepo.On("FindReceiptLines", ctx, s.orgID, s.req.ReceiptRef).Return(receipts, nil).Once()
	s.mockPurchasingRepo.On("FindInvoiceLines", ctx, s.orgID, s.req.InvoiceRef).Return(invoices, nil).Once()
}

func (s *MatchServiceTestSuite) TestMatch_ExactMatchPasses() {
	s.expectDocuments(
		[]domain.OrderLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5), Amount: decimal.NewFromInt(50)}},
		[]domain.ReceiptLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10)}},
		[]domain.InvoiceLine{{ProductRef: "WIDGET", LineNo: 1, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(5), Amount: decimal.NewFromInt(50)}},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchPass, result.Overall)
	s.Require().Len(result.Lines, 1)
	s.Equal(domain.MatchPass, result.Lines[0].Classification)
	s.True(result.Lines[0].QtyVariance.IsZero())
	s.True(result.Lines[0].AmountVariance.IsZero())
}

func (s *MatchServiceTestSuite) TestMatch_VarianceWithinToleranceStillPasses() {
	// 4% over the ordered amount with a 5% tolerance.
	s.expectDocuments(
		[]domain.OrderLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(100)}},
		[]domain.ReceiptLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10)}},
		[]domain.InvoiceLine{{ProductRef: "WIDGET", LineNo: 1, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromFloat(10.4), Amount: decimal.NewFromInt(104)}},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchPass, result.Overall)
	s.True(result.Lines[0].VariancePct.Equal(decimal.NewFromInt(4)))
}

func (s *MatchServiceTestSuite) TestMatch_VarianceAboveToleranceWarns() {
	s.expectDocuments(
		[]domain.OrderLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(100)}},
		[]domain.ReceiptLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10)}},
		[]domain.InvoiceLine{{ProductRef: "WIDGET", LineNo: 1, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromFloat(10.6), Amount: decimal.NewFromInt(106)}},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchWarn, result.Overall)
	s.Equal(domain.MatchWarn, result.Lines[0].Classification)
	s.NotEmpty(result.Lines[0].Reason)
}

func (s *MatchServiceTestSuite) TestMatch_VarianceAtToleranceBoundaryPasses() {
	// Exactly 5% is not above tolerance.
	s.expectDocuments(
		[]domain.OrderLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(100)}},
		[]domain.ReceiptLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10)}},
		[]domain.InvoiceLine{{ProductRef: "WIDGET", LineNo: 1, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromFloat(10.5), Amount: decimal.NewFromInt(105)}},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchPass, result.Overall)
}

func (s *MatchServiceTestSuite) TestMatch_OverInvoicedQuantityFails() {
	s.expectDocuments(
		[]domain.OrderLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(100)}},
		[]domain.ReceiptLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(8)}},
		[]domain.InvoiceLine{{ProductRef: "WIDGET", LineNo: 1, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(100)}},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchFail, result.Overall)
	s.True(result.Lines[0].QtyVariance.Equal(decimal.NewFromInt(2)))
}

func (s *MatchServiceTestSuite) TestMatch_ProductMissingFromOrderFails() {
	s.expectDocuments(
		[]domain.OrderLine{},
		[]domain.ReceiptLine{{ProductRef: "GADGET", Quantity: decimal.NewFromInt(1)}},
		[]domain.InvoiceLine{{ProductRef: "GADGET", LineNo: 1, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)}},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchFail, result.Overall)
	s.Equal("invoiced product not on order", result.Lines[0].Reason)
}

func (s *MatchServiceTestSuite) TestMatch_WorstLineDrivesOverall() {
	s.expectDocuments(
		[]domain.OrderLine{
			{ProductRef: "A", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)},
			{ProductRef: "B", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)},
		},
		[]domain.ReceiptLine{
			{ProductRef: "A", Quantity: decimal.NewFromInt(1)},
			{ProductRef: "B", Quantity: decimal.NewFromInt(1)},
		},
		[]domain.InvoiceLine{
			{ProductRef: "A", LineNo: 1, Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(10)},
			{ProductRef: "B", LineNo: 2, Quantity: decimal.NewFromInt(2), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(20)},
		},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchPass, result.Lines[0].Classification)
	s.Equal(domain.MatchFail, result.Lines[1].Classification)
	s.Equal(domain.MatchFail, result.Overall)
}

func (s *MatchServiceTestSuite) TestMatch_PerCallToleranceOverride() {
	override := decimal.NewFromInt(10)
	s.req.TolerancePct = &override

	// 6% variance warns at the default 5% but passes at 10%.
	s.expectDocuments(
		[]domain.OrderLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromInt(10), Amount: decimal.NewFromInt(100)}},
		[]domain.ReceiptLine{{ProductRef: "WIDGET", Quantity: decimal.NewFromInt(10)}},
		[]domain.InvoiceLine{{ProductRef: "WIDGET", LineNo: 1, Quantity: decimal.NewFromInt(10), UnitPrice: decimal.NewFromFloat(10.6), Amount: decimal.NewFromInt(106)}},
	)

	result, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().NoError(err)
	s.Equal(domain.MatchPass, result.Overall)
	s.True(result.Tolerance.Equal(override))
}

func (s *MatchServiceTestSuite) TestMatch_NegativeToleranceRefused() {
	negative := decimal.NewFromInt(-1)
	s.req.TolerancePct = &negative

	_, err := s.service.MatchDocuments(context.Background(), s.orgID, s.req)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
}

func TestMatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(MatchServiceTestSuite))
}
