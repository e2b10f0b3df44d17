package services_test

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
)

// --- Mock JournalRepository ---
type MockJournalRepository struct {
	mock.Mock
}

var _ portsrepo.JournalRepositoryFacade = (*MockJournalRepository)(nil)

func (m *MockJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error {
	args := m.Called(ctx, journal, lines, audit)
	return args.Error(0)
}

func (m *MockJournalRepository) FindJournalByID(ctx context.Context, orgID, journalID string) (*domain.Journal, error) {
	args := m.Called(ctx, orgID, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Journal), args.Error(1)
}

func (m *MockJournalRepository) FindJournalLines(ctx context.Context, journalID string) ([]domain.JournalLine, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.JournalLine), args.Error(1)
}

func (m *MockJournalRepository) ListJournals(ctx context.Context, orgID string, limit int, nextToken *string) ([]domain.Journal, *string, error) {
	args := m.Called(ctx, orgID, limit, nextToken)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedToken = &tokenVal
	}
	return args.Get(0).([]domain.Journal), returnedToken, args.Error(2)
}

func (m *MockJournalRepository) FindAuditTrail(ctx context.Context, journalID string) ([]domain.AuditEntry, error) {
	args := m.Called(ctx, journalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AuditEntry), args.Error(1)
}

func (m *MockJournalRepository) TransitionJournal(ctx context.Context, orgID, journalID string, from, to domain.JournalStatus, audit domain.AuditEntry) error {
	args := m.Called(ctx, orgID, journalID, from, to, audit)
	return args.Error(0)
}

func (m *MockJournalRepository) PostJournal(ctx context.Context, orgID, journalID, actorID string, at time.Time,
	validate func(journal *domain.Journal, lines []domain.JournalLine) error) error {
	args := m.Called(ctx, orgID, journalID, actorID, at, validate)
	return args.Error(0)
}

func (m *MockJournalRepository) SaveReversal(ctx context.Context, originalID string, reversal domain.Journal, lines []domain.JournalLine, audits []domain.AuditEntry) error {
	args := m.Called(ctx, originalID, reversal, lines, audits)
	return args.Error(0)
}

func (m *MockJournalRepository) ReplaceJournalLines(ctx context.Context, orgID, journalID string, lines []domain.JournalLine, actorID string, at time.Time) error {
	args := m.Called(ctx, orgID, journalID, lines, actorID, at)
	return args.Error(0)
}

func (m *MockJournalRepository) InsertJournalInTx(ctx context.Context, tx pgx.Tx, journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error {
	args := m.Called(ctx, tx, journal, lines, audit)
	return args.Error(0)
}

func (m *MockJournalRepository) MarkReversedInTx(ctx context.Context, tx pgx.Tx, originalID, reversalID, actorID string, at time.Time) error {
	args := m.Called(ctx, tx, originalID, reversalID, actorID, at)
	return args.Error(0)
}

// --- Mock PeriodRepository ---
type MockPeriodRepository struct {
	mock.Mock
}

var _ portsrepo.PeriodRepositoryFacade = (*MockPeriodRepository)(nil)

func (m *MockPeriodRepository) SavePeriod(ctx context.Context, period domain.AccountingPeriod) error {
	args := m.Called(ctx, period)
	return args.Error(0)
}

func (m *MockPeriodRepository) FindPeriodByID(ctx context.Context, orgID, periodID string) (*domain.AccountingPeriod, error) {
	args := m.Called(ctx, orgID, periodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ListPeriods(ctx context.Context, orgID string) ([]domain.AccountingPeriod, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AccountingPeriod), args.Error(1)
}

func (m *MockPeriodRepository) ClosePeriod(ctx context.Context, orgID, periodID, actorID string, at time.Time) error {
	args := m.Called(ctx, orgID, periodID, actorID, at)
	return args.Error(0)
}

func (m *MockPeriodRepository) ReopenPeriod(ctx context.Context, orgID, periodID, actorID string, at time.Time) error {
	args := m.Called(ctx, orgID, periodID, actorID, at)
	return args.Error(0)
}

// --- Mock SequenceRepository ---
type MockSequenceRepository struct {
	mock.Mock
}

var _ portsrepo.SequenceRepositoryFacade = (*MockSequenceRepository)(nil)

func (m *MockSequenceRepository) NextSequence(ctx context.Context, orgID, periodID string) (int64, error) {
	args := m.Called(ctx, orgID, periodID)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock AccountRepository ---
type MockAccountRepository struct {
	mock.Mock
}

var _ portsrepo.AccountRepositoryFacade = (*MockAccountRepository)(nil)

func (m *MockAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error) {
	args := m.Called(ctx, orgID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	args := m.Called(ctx, orgID, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Account), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

// --- Mock LandedCostRepository ---
type MockLandedCostRepository struct {
	mock.Mock
}

var _ portsrepo.LandedCostRepositoryFacade = (*MockLandedCostRepository)(nil)

func (m *MockLandedCostRepository) SaveDocument(ctx context.Context, doc domain.LandedCostDocument) error {
	args := m.Called(ctx, doc)
	return args.Error(0)
}

func (m *MockLandedCostRepository) FindDocumentByID(ctx context.Context, orgID, documentID string) (*domain.LandedCostDocument, error) {
	args := m.Called(ctx, orgID, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.LandedCostDocument), args.Error(1)
}

func (m *MockLandedCostRepository) FindAllocations(ctx context.Context, documentID string) ([]domain.LandedCostAllocation, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.LandedCostAllocation), args.Error(1)
}

func (m *MockLandedCostRepository) AllocateDocument(ctx context.Context, doc domain.LandedCostDocument, allocations []domain.LandedCostAllocation,
	journal domain.Journal, lines []domain.JournalLine, audit domain.AuditEntry) error {
	args := m.Called(ctx, doc, allocations, journal, lines, audit)
	return args.Error(0)
}

func (m *MockLandedCostRepository) UnapplyDocument(ctx context.Context, doc domain.LandedCostDocument,
	reversal domain.Journal, lines []domain.JournalLine, audits []domain.AuditEntry, actorID string, at time.Time) error {
	args := m.Called(ctx, doc, reversal, lines, audits, actorID, at)
	return args.Error(0)
}

// --- Mock PurchasingRepository ---
type MockPurchasingRepository struct {
	mock.Mock
}

var _ portsrepo.PurchasingRepositoryFacade = (*MockPurchasingRepository)(nil)

func (m *MockPurchasingRepository) FindOrderLines(ctx context.Context, orgID, orderRef string) ([]domain.OrderLine, error) {
	args := m.Called(ctx, orgID, orderRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OrderLine), args.Error(1)
}

func (m *MockPurchasingRepository) FindReceiptLines(ctx context.Context, orgID, receiptRef string) ([]domain.ReceiptLine, error) {
	args := m.Called(ctx, orgID, receiptRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ReceiptLine), args.Error(1)
}

func (m *MockPurchasingRepository) FindInvoiceLines(ctx context.Context, orgID, invoiceRef string) ([]domain.InvoiceLine, error) {
	args := m.Called(ctx, orgID, invoiceRef)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InvoiceLine), args.Error(1)
}
