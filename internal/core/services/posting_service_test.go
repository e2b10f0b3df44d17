package services_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/core/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

type PostingServiceTestSuite struct {
	suite.Suite
	mockJournalRepo  *MockJournalRepository
	mockPeriodRepo   *MockPeriodRepository
	mockSequenceRepo *MockSequenceRepository
	mockAccountRepo  *MockAccountRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          portssvc.JournalSvcFacade

	orgID   string
	actorID string
	period  domain.AccountingPeriod

	cashAccount    domain.Account
	expenseAccount domain.Account
}

func (s *PostingServiceTestSuite) SetupTest() {
	s.mockJournalRepo = new(MockJournalRepository)
	s.mockPeriodRepo = new(MockPeriodRepository)
	s.mockSequenceRepo = new(MockSequenceRepository)
	s.mockAccountRepo = new(MockAccountRepository)
	s.mockCurrencyRepo = new(MockCurrencyRepository)

	validator := services.NewBalanceValidator(s.mockAccountRepo, s.mockCurrencyRepo)
	s.service = services.NewPostingService(s.mockJournalRepo, s.mockPeriodRepo, s.mockSequenceRepo, validator)

	s.orgID = uuid.NewString()
	s.actorID = uuid.NewString()
	s.period = domain.AccountingPeriod{
		PeriodID:  uuid.NewString(),
		OrgID:     s.orgID,
		Name:      "2026-01",
		StartDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		Status:    domain.PeriodOpen,
	}
	s.cashAccount = domain.Account{AccountID: uuid.NewString(), OrgID: s.orgID, Code: "1000", AccountType: domain.Asset, IsActive: true}
	s.expenseAccount = domain.Account{AccountID: uuid.NewString(), OrgID: s.orgID, Code: "5000", AccountType: domain.Expense, IsActive: true}
}

func (s *PostingServiceTestSuite) expectValidationCollaborators() {
	accountsMap := map[string]domain.Account{
		s.cashAccount.AccountID:    s.cashAccount,
		s.expenseAccount.AccountID: s.expenseAccount,
	}
	s.mockAccountRepo.On("FindAccountsByIDs", mock.Anything, s.orgID, mock.Anything).Return(accountsMap, nil)
	usd := &domain.Currency{CurrencyCode: "USD", DecimalPlaces: 2}
	s.mockCurrencyRepo.On("FindCurrencyByCode", mock.Anything, "USD").Return(usd, nil)
}

func (s *PostingServiceTestSuite) balancedCreateRequest() dto.CreateJournalRequest {
	return dto.CreateJournalRequest{
		PeriodID:     s.period.PeriodID,
		Date:         time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
		Description:  "Office supplies",
		Lines: []dto.CreateJournalLineRequest{
			{AccountID: s.expenseAccount.AccountID, Debit: decimal.NewFromInt(100)},
			{AccountID: s.cashAccount.AccountID, Credit: decimal.NewFromInt(100)},
		},
	}
}

func (s *PostingServiceTestSuite) postedJournal() *domain.Journal {
	return &domain.Journal{
		JournalID:    uuid.NewString(),
		OrgID:        s.orgID,
		PeriodID:     s.period.PeriodID,
		JournalType:  domain.GeneralJournal,
		JournalDate:  time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC),
		CurrencyCode: "USD",
		Reference:    "GJ-2026-01-000001",
		Status:       domain.Posted,
	}
}

func (s *PostingServiceTestSuite) postedLines(journalID string) []domain.JournalLine {
	return []domain.JournalLine{
		{LineID: uuid.NewString(), JournalID: journalID, LineNo: 1, AccountID: s.expenseAccount.AccountID, Debit: decimal.NewFromInt(100)},
		{LineID: uuid.NewString(), JournalID: journalID, LineNo: 2, AccountID: s.cashAccount.AccountID, Credit: decimal.NewFromInt(100)},
	}
}

func (s *PostingServiceTestSuite) TestCreateJournal_Success() {
	ctx := context.Background()
	req := s.balancedCreateRequest()

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&s.period, nil).Once()
	s.mockSequenceRepo.On("NextSequence", ctx, s.orgID, s.period.PeriodID).Return(int64(42), nil).Once()
	s.expectValidationCollaborators()
	s.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	resp, err := s.service.CreateJournal(ctx, s.orgID, req, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.NotEmpty(resp.JournalID)
	s.Equal("GJ-2026-01-000042", resp.Reference)
	s.Equal(domain.Draft, resp.Status)
	s.Empty(resp.ValidationWarnings)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestCreateJournal_UnbalancedStillSavedWithWarnings() {
	ctx := context.Background()
	req := s.balancedCreateRequest()
	req.Lines[1].Credit = decimal.NewFromInt(90)

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&s.period, nil).Once()
	s.mockSequenceRepo.On("NextSequence", ctx, s.orgID, s.period.PeriodID).Return(int64(1), nil).Once()
	s.expectValidationCollaborators()
	s.mockJournalRepo.On("SaveJournal", ctx, mock.Anything, mock.Anything, mock.Anything).Return(nil).Once()

	resp, err := s.service.CreateJournal(ctx, s.orgID, req, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(resp)
	s.Require().Len(resp.ValidationWarnings, 1)
	s.Equal(domain.FailureUnbalanced, resp.ValidationWarnings[0].Code)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestCreateJournal_DateOutsidePeriod() {
	ctx := context.Background()
	req := s.balancedCreateRequest()
	req.Date = time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC)

	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&s.period, nil).Once()

	resp, err := s.service.CreateJournal(ctx, s.orgID, req, s.actorID)

	s.Require().Error(err)
	s.Nil(resp)
	s.True(errors.Is(err, apperrors.ErrValidation))
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestTransition_SubmitSuccess() {
	ctx := context.Background()
	journal := s.postedJournal()
	journal.Status = domain.Draft

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Twice()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&s.period, nil).Once()
	s.mockJournalRepo.On("TransitionJournal", ctx, s.orgID, journal.JournalID, domain.Draft, domain.PendingApproval, mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	result, err := s.service.Transition(ctx, s.orgID, journal.JournalID, domain.ActionSubmit, s.actorID, "")

	s.Require().NoError(err)
	s.Require().NotNil(result)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestTransition_SubmitIntoClosedPeriodRefused() {
	ctx := context.Background()
	journal := s.postedJournal()
	journal.Status = domain.Draft
	closed := s.period
	closed.Status = domain.PeriodClosed

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&closed, nil).Once()

	_, err := s.service.Transition(ctx, s.orgID, journal.JournalID, domain.ActionSubmit, s.actorID, "")

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrPeriodClosed))
	s.mockJournalRepo.AssertNotCalled(s.T(), "TransitionJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestTransition_RejectRequiresComment() {
	ctx := context.Background()
	journal := s.postedJournal()
	journal.Status = domain.PendingApproval

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Once()

	_, err := s.service.Transition(ctx, s.orgID, journal.JournalID, domain.ActionReject, s.actorID, "")

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrValidation))
}

func (s *PostingServiceTestSuite) TestTransition_IllegalActionRefused() {
	ctx := context.Background()
	journal := s.postedJournal()
	journal.Status = domain.Draft

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Once()

	_, err := s.service.Transition(ctx, s.orgID, journal.JournalID, domain.ActionApprove, s.actorID, "")

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrState))
}

func (s *PostingServiceTestSuite) TestTransition_PostDelegatesToRepository() {
	ctx := context.Background()
	journal := s.postedJournal()
	journal.Status = domain.Approved

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Twice()
	s.mockJournalRepo.On("PostJournal", ctx, s.orgID, journal.JournalID, s.actorID, mock.AnythingOfType("time.Time"), mock.Anything).Return(nil).Once()

	_, err := s.service.Transition(ctx, s.orgID, journal.JournalID, domain.ActionPost, s.actorID, "")

	s.Require().NoError(err)
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestTransition_ConcurrentStatusChangeSurfaces() {
	ctx := context.Background()
	journal := s.postedJournal()
	journal.Status = domain.PendingApproval
	concurrent := apperrors.NewAppError(409, "journal status changed concurrently", apperrors.ErrState)

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Once()
	s.mockJournalRepo.On("TransitionJournal", ctx, s.orgID, journal.JournalID, domain.PendingApproval, domain.Approved, mock.Anything).Return(concurrent).Once()

	_, err := s.service.Transition(ctx, s.orgID, journal.JournalID, domain.ActionApprove, s.actorID, "")

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrState))
}

func (s *PostingServiceTestSuite) TestReverse_Success() {
	ctx := context.Background()
	original := s.postedJournal()
	lines := s.postedLines(original.JournalID)

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, original.JournalID).Return(original, nil).Once()
	s.mockJournalRepo.On("FindJournalLines", ctx, original.JournalID).Return(lines, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&s.period, nil).Once()
	s.mockSequenceRepo.On("NextSequence", ctx, s.orgID, s.period.PeriodID).Return(int64(7), nil).Once()
	s.expectValidationCollaborators()
	s.mockJournalRepo.On("SaveReversal", ctx, original.JournalID, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("[]domain.AuditEntry")).Return(nil).Once()

	reversal, err := s.service.Reverse(ctx, s.orgID, original.JournalID, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(reversal)
	s.Equal(domain.ReversalJournal, reversal.JournalType)
	s.Equal(domain.Posted, reversal.Status)
	s.Equal("RV-2026-01-000007", reversal.Reference)
	s.Require().NotNil(reversal.ReversesJournalID)
	s.Equal(original.JournalID, *reversal.ReversesJournalID)

	// Lines are the exact negation of the original's, in the same order.
	s.Require().Len(reversal.Lines, 2)
	s.True(reversal.Lines[0].Credit.Equal(decimal.NewFromInt(100)))
	s.True(reversal.Lines[1].Debit.Equal(decimal.NewFromInt(100)))
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestReverse_AlreadyReversedConflicts() {
	ctx := context.Background()
	original := s.postedJournal()
	reversalID := uuid.NewString()
	original.ReversedByJournalID = &reversalID

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, original.JournalID).Return(original, nil).Once()
	s.mockJournalRepo.On("FindJournalLines", ctx, original.JournalID).Return(s.postedLines(original.JournalID), nil).Once()

	_, err := s.service.Reverse(ctx, s.orgID, original.JournalID, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrConflict))
}

func (s *PostingServiceTestSuite) TestReverse_OfDraftRefused() {
	ctx := context.Background()
	journal := s.postedJournal()
	journal.Status = domain.Draft

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Once()
	s.mockJournalRepo.On("FindJournalLines", ctx, journal.JournalID).Return([]domain.JournalLine{}, nil).Once()

	_, err := s.service.Reverse(ctx, s.orgID, journal.JournalID, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrState))
}

func (s *PostingServiceTestSuite) TestReverse_OfReversalRefused() {
	ctx := context.Background()
	journal := s.postedJournal()
	sourceID := uuid.NewString()
	journal.ReversesJournalID = &sourceID

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, journal.JournalID).Return(journal, nil).Once()
	s.mockJournalRepo.On("FindJournalLines", ctx, journal.JournalID).Return(s.postedLines(journal.JournalID), nil).Once()

	_, err := s.service.Reverse(ctx, s.orgID, journal.JournalID, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrConflict))
}

func (s *PostingServiceTestSuite) TestDuplicate_CopiesLinesIntoFreshDraft() {
	ctx := context.Background()
	source := s.postedJournal()
	source.Status = domain.Approved
	lines := s.postedLines(source.JournalID)

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, source.JournalID).Return(source, nil).Once()
	s.mockJournalRepo.On("FindJournalLines", ctx, source.JournalID).Return(lines, nil).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&s.period, nil).Once()
	s.mockSequenceRepo.On("NextSequence", ctx, s.orgID, s.period.PeriodID).Return(int64(43), nil).Once()
	s.mockJournalRepo.On("SaveJournal", ctx, mock.AnythingOfType("domain.Journal"), mock.AnythingOfType("[]domain.JournalLine"), mock.AnythingOfType("domain.AuditEntry")).Return(nil).Once()

	duplicate, err := s.service.Duplicate(ctx, s.orgID, source.JournalID, s.actorID)

	s.Require().NoError(err)
	s.Require().NotNil(duplicate)
	s.NotEqual(source.JournalID, duplicate.JournalID)
	s.Equal(domain.Draft, duplicate.Status)
	s.Equal("GJ-2026-01-000043", duplicate.Reference)
	s.Require().Len(duplicate.Lines, 2)
	s.NotEqual(lines[0].LineID, duplicate.Lines[0].LineID)
	s.True(duplicate.Lines[0].Debit.Equal(lines[0].Debit))
	s.mockJournalRepo.AssertExpectations(s.T())
}

func (s *PostingServiceTestSuite) TestDuplicate_OfPostedRefused() {
	ctx := context.Background()
	source := s.postedJournal()

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, source.JournalID).Return(source, nil).Once()
	s.mockJournalRepo.On("FindJournalLines", ctx, source.JournalID).Return(s.postedLines(source.JournalID), nil).Once()

	_, err := s.service.Duplicate(ctx, s.orgID, source.JournalID, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrState))
	s.mockJournalRepo.AssertNotCalled(s.T(), "SaveJournal", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (s *PostingServiceTestSuite) TestDuplicate_OfCancelledRefused() {
	ctx := context.Background()
	source := s.postedJournal()
	source.Status = domain.Cancelled

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, source.JournalID).Return(source, nil).Once()
	s.mockJournalRepo.On("FindJournalLines", ctx, source.JournalID).Return([]domain.JournalLine{}, nil).Once()

	_, err := s.service.Duplicate(ctx, s.orgID, source.JournalID, s.actorID)

	s.Require().Error(err)
	s.True(errors.Is(err, apperrors.ErrState))
}

func (s *PostingServiceTestSuite) TestBulkTransition_FailuresAreIsolated() {
	ctx := context.Background()

	okJournal := s.postedJournal()
	okJournal.Status = domain.Draft
	badID := uuid.NewString()

	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, okJournal.JournalID).Return(okJournal, nil).Twice()
	s.mockJournalRepo.On("FindJournalByID", ctx, s.orgID, badID).Return(nil, fmt.Errorf("journal %s: %w", badID, apperrors.ErrNotFound)).Once()
	s.mockPeriodRepo.On("FindPeriodByID", ctx, s.orgID, s.period.PeriodID).Return(&s.period, nil).Once()
	s.mockJournalRepo.On("TransitionJournal", ctx, s.orgID, okJournal.JournalID, domain.Draft, domain.PendingApproval, mock.Anything).Return(nil).Once()

	results := s.service.BulkTransition(ctx, s.orgID, []string{okJournal.JournalID, badID}, domain.ActionSubmit, s.actorID, "")

	s.Require().Len(results, 2)
	s.True(results[0].Success)
	s.False(results[1].Success)
	s.NotEmpty(results[1].Error)
}

func TestPostingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(PostingServiceTestSuite))
}
