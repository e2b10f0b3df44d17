package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/core/services"
)

type BalanceValidatorTestSuite struct {
	suite.Suite
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	validator        *services.BalanceValidator

	orgID          string
	cashAccount    domain.Account
	payableAccount domain.Account
	journal        domain.Journal
}

func (s *BalanceValidatorTestSuite) SetupTest() {
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCurrencyRepo = new(MockCurrencyRepository)
	s.validator = services.NewBalanceValidator(s.mockAccountRepo, s.mockCurrencyRepo)

	s.orgID = uuid.NewString()
	s.cashAccount = domain.Account{AccountID: uuid.NewString(), OrgID: s.orgID, Code: "1000", AccountType: domain.Asset, IsActive: true}
	s.payableAccount = domain.Account{AccountID: uuid.NewString(), OrgID: s.orgID, Code: "2000", AccountType: domain.Liability, IsActive: true}
	s.journal = domain.Journal{JournalID: uuid.NewString(), OrgID: s.orgID, CurrencyCode: "USD"}
}

func (s *BalanceValidatorTestSuite) expectAccounts(accounts ...domain.Account) {
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, a := range accounts {
		accountsMap[a.AccountID] = a
	}
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, s.orgID, mock.Anything).Return(accountsMap, nil).Once()
}

func (s *BalanceValidatorTestSuite) expectUSD() {
	usd := &domain.Currency{CurrencyCode: "USD", DecimalPlaces: 2}
	s.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").Return(usd, nil).Once()
}

func (s *BalanceValidatorTestSuite) line(lineNo int, accountID string, debit, credit decimal.Decimal) domain.JournalLine {
	return domain.JournalLine{
		LineID:    uuid.NewString(),
		JournalID: s.journal.JournalID,
		LineNo:    lineNo,
		AccountID: accountID,
		Debit:     debit,
		Credit:    credit,
	}
}

func (s *BalanceValidatorTestSuite) TestValidate_BalancedJournal_NoFailures() {
	lines := []domain.JournalLine{
		s.line(1, s.cashAccount.AccountID, decimal.NewFromInt(100), decimal.Zero),
		s.line(2, s.payableAccount.AccountID, decimal.Zero, decimal.NewFromInt(100)),
	}
	s.expectAccounts(s.cashAccount, s.payableAccount)
	s.expectUSD()

	failures, err := s.validator.Validate(context.Background(), s.orgID, &s.journal, lines)

	s.Require().NoError(err)
	s.Empty(failures)
}

func (s *BalanceValidatorTestSuite) TestValidate_NoLines_ShortCircuits() {
	failures, err := s.validator.Validate(context.Background(), s.orgID, &s.journal, nil)

	s.Require().NoError(err)
	s.Require().Len(failures, 1)
	s.Equal(domain.FailureNoLines, failures[0].Code)
	s.mockAccountRepo.AssertNotCalled(s.T(), "FindAccountsByIDs", mock.Anything, mock.Anything, mock.Anything)
}

func (s *BalanceValidatorTestSuite) TestValidate_Unbalanced_ReportsDifference() {
	lines := []domain.JournalLine{
		s.line(1, s.cashAccount.AccountID, decimal.NewFromInt(110), decimal.Zero),
		s.line(2, s.payableAccount.AccountID, decimal.Zero, decimal.NewFromInt(100)),
	}
	s.expectAccounts(s.cashAccount, s.payableAccount)
	s.expectUSD()

	failures, err := s.validator.Validate(context.Background(), s.orgID, &s.journal, lines)

	s.Require().NoError(err)
	s.Require().Len(failures, 1)
	s.Equal(domain.FailureUnbalanced, failures[0].Code)
	s.Require().NotNil(failures[0].Difference)
	s.True(failures[0].Difference.Equal(decimal.NewFromInt(10)), "expected difference 10, got %s", failures[0].Difference)
}

func (s *BalanceValidatorTestSuite) TestValidate_BothSidesSet_AmountInvalid() {
	lines := []domain.JournalLine{
		s.line(1, s.cashAccount.AccountID, decimal.NewFromInt(50), decimal.NewFromInt(50)),
		s.line(2, s.payableAccount.AccountID, decimal.Zero, decimal.Zero),
	}
	s.expectAccounts(s.cashAccount, s.payableAccount)
	s.expectUSD()

	failures, err := s.validator.Validate(context.Background(), s.orgID, &s.journal, lines)

	s.Require().NoError(err)
	codes := make([]string, 0, len(failures))
	for _, f := range failures {
		codes = append(codes, f.Code)
	}
	s.Contains(codes, domain.FailureAmountInvalid)
	s.NotContains(codes, domain.FailureAccountMissing)
}

func (s *BalanceValidatorTestSuite) TestValidate_AmountDefectDoesNotHideKnownAccount() {
	// The cash account appears only on the amount-defective line; its id must
	// still be part of the referential fetch so the only finding for that
	// line is the amount one.
	lines := []domain.JournalLine{
		s.line(1, s.cashAccount.AccountID, decimal.NewFromInt(50), decimal.NewFromInt(50)),
		s.line(2, s.payableAccount.AccountID, decimal.NewFromInt(30), decimal.Zero),
		s.line(3, s.payableAccount.AccountID, decimal.Zero, decimal.NewFromInt(30)),
	}
	s.expectAccounts(s.cashAccount, s.payableAccount)
	s.expectUSD()

	failures, err := s.validator.Validate(context.Background(), s.orgID, &s.journal, lines)

	s.Require().NoError(err)
	s.Require().Len(failures, 1)
	s.Equal(domain.FailureAmountInvalid, failures[0].Code)
	s.Equal(1, failures[0].LineNo)
	fetched := s.mockAccountRepo.Calls[0].Arguments.Get(2).([]string)
	s.Contains(fetched, s.cashAccount.AccountID)
}

func (s *BalanceValidatorTestSuite) TestValidate_UnknownAndInactiveAccounts() {
	inactive := domain.Account{AccountID: uuid.NewString(), OrgID: s.orgID, Code: "9999", AccountType: domain.Expense, IsActive: false}
	unknownID := uuid.NewString()

	lines := []domain.JournalLine{
		s.line(1, inactive.AccountID, decimal.NewFromInt(100), decimal.Zero),
		s.line(2, unknownID, decimal.Zero, decimal.NewFromInt(100)),
	}
	s.expectAccounts(inactive)
	s.expectUSD()

	failures, err := s.validator.Validate(context.Background(), s.orgID, &s.journal, lines)

	s.Require().NoError(err)
	s.Require().Len(failures, 2)
	codes := []string{failures[0].Code, failures[1].Code}
	s.Contains(codes, domain.FailureAccountInactive)
	s.Contains(codes, domain.FailureAccountMissing)
}

func (s *BalanceValidatorTestSuite) TestValidate_UnknownCurrency_FallsBackToTwoPlaces() {
	// 0.005 debits vs zero credits rounds to 0.01 at two places, so the
	// journal is still reported unbalanced even without a registered currency.
	lines := []domain.JournalLine{
		s.line(1, s.cashAccount.AccountID, decimal.NewFromFloat(0.005), decimal.Zero),
		s.line(2, s.payableAccount.AccountID, decimal.Zero, decimal.NewFromFloat(0.001)),
	}
	s.expectAccounts(s.cashAccount, s.payableAccount)
	s.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").
		Return(nil, apperrors.NewAppError(404, "currency USD not found", apperrors.ErrNotFound)).Once()

	failures, err := s.validator.Validate(context.Background(), s.orgID, &s.journal, lines)

	s.Require().NoError(err)
	s.Require().Len(failures, 1)
	s.Equal(domain.FailureUnbalanced, failures[0].Code)
}

func (s *BalanceValidatorTestSuite) TestValidateAuthoritative_WrapsErrValidation() {
	lines := []domain.JournalLine{
		s.line(1, s.cashAccount.AccountID, decimal.NewFromInt(100), decimal.Zero),
	}
	s.expectAccounts(s.cashAccount)
	s.expectUSD()

	err := s.validator.ValidateAuthoritative(context.Background(), s.orgID, &s.journal, lines)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
	var vErr *services.ValidationFailuresError
	s.Require().True(errors.As(err, &vErr))
	s.NotEmpty(vErr.Failures)
}

func TestBalanceValidatorTestSuite(t *testing.T) {
	suite.Run(t, new(BalanceValidatorTestSuite))
}
