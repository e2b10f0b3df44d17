package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
	"github.com/finbooks/erp_ledger_app/internal/utils/accounting"
)

var (
	ErrZeroWeight       = errors.New("allocation basis weights sum to zero")
	ErrNoInvoiceLines   = errors.New("target invoice has no lines")
	ErrMissingTarget    = errors.New("cost line has no target account")
	ErrAlreadyAllocated = errors.New("document is already allocated")
	ErrNotAllocated     = errors.New("document is not allocated")
)

// landedCostService distributes ancillary cost amounts across the lines of a
// purchase invoice and posts the distribution journal.
type landedCostService struct {
	landedCostRepo portsrepo.LandedCostRepositoryFacade
	purchasingRepo portsrepo.PurchasingRepositoryFacade
	periodRepo     portsrepo.PeriodRepositoryFacade
	sequenceRepo   portsrepo.SequenceRepositoryFacade
	currencyRepo   portsrepo.CurrencyRepositoryFacade
	validator      *BalanceValidator
	now            func() time.Time
}

// NewLandedCostService creates the landed cost allocator.
func NewLandedCostService(landedCostRepo portsrepo.LandedCostRepositoryFacade, purchasingRepo portsrepo.PurchasingRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade, sequenceRepo portsrepo.SequenceRepositoryFacade,
	currencyRepo portsrepo.CurrencyRepositoryFacade, validator *BalanceValidator) portssvc.LandedCostSvcFacade {
	return &landedCostService{
		landedCostRepo: landedCostRepo,
		purchasingRepo: purchasingRepo,
		periodRepo:     periodRepo,
		sequenceRepo:   sequenceRepo,
		currencyRepo:   currencyRepo,
		validator:      validator,
		now:            time.Now,
	}
}

var _ portssvc.LandedCostSvcFacade = (*landedCostService)(nil)

// CreateDocument stores a Draft landed cost document with its cost lines.
func (s *landedCostService) CreateDocument(ctx context.Context, orgID string, req dto.CreateLandedCostRequest, creatorID string) (*domain.LandedCostDocument, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	invoiceLines, err := s.purchasingRepo.FindInvoiceLines(ctx, orgID, req.InvoiceRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve invoice %s: %w", req.InvoiceRef, err)
	}
	if len(invoiceLines) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrNoInvoiceLines)
	}

	now := s.now().UTC()
	documentID := uuid.NewString()

	doc := domain.LandedCostDocument{
		DocumentID:      documentID,
		OrgID:           orgID,
		InvoiceRef:      req.InvoiceRef,
		CurrencyCode:    req.CurrencyCode,
		ClearingAccount: req.ClearingAccount,
		Status:          domain.LandedCostDraft,
		CostLines:       make([]domain.LandedCostLine, len(req.CostLines)),
		AuditFields:     newAuditFields(creatorID, now),
	}
	for i, cl := range req.CostLines {
		if cl.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: cost line %d amount must be positive", apperrors.ErrValidation, i+1)
		}
		doc.CostLines[i] = domain.LandedCostLine{
			CostLineID:    uuid.NewString(),
			DocumentID:    documentID,
			LineNo:        i + 1,
			Description:   cl.Description,
			Amount:        cl.Amount,
			TargetAccount: cl.TargetAccount,
		}
	}

	if err := s.landedCostRepo.SaveDocument(ctx, doc); err != nil {
		logger.Error("Failed to save landed cost document", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save landed cost document: %w", err)
	}

	logger.Info("Landed cost document created", slog.String("document_id", documentID), slog.String("invoice_ref", req.InvoiceRef))
	return &doc, nil
}

// GetDocument retrieves a document with its cost lines.
func (s *landedCostService) GetDocument(ctx context.Context, orgID, documentID string) (*domain.LandedCostDocument, error) {
	return s.landedCostRepo.FindDocumentByID(ctx, orgID, documentID)
}

// Allocate computes one allocation per (cost line x invoice line) pair and
// commits them together with the posted distribution journal. Factors are
// computed at full precision; the last invoice line absorbs the rounding
// residual so every cost line's allocations sum to its amount exactly.
func (s *landedCostService) Allocate(ctx context.Context, orgID, documentID string, basis domain.AllocationBasis, actorID string) (*dto.AllocateLandedCostResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.landedCostRepo.FindDocumentByID(ctx, orgID, documentID)
	if err != nil {
		return nil, err
	}
	if doc.Status != domain.LandedCostDraft {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrState, ErrAlreadyAllocated)
	}
	for _, cl := range doc.CostLines {
		if cl.TargetAccount == "" {
			return nil, fmt.Errorf("%w: cost line %d: %s", apperrors.ErrAllocation, cl.LineNo, ErrMissingTarget)
		}
	}

	invoiceLines, err := s.purchasingRepo.FindInvoiceLines(ctx, orgID, doc.InvoiceRef)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve invoice %s: %w", doc.InvoiceRef, err)
	}
	weights, err := basisWeights(invoiceLines, basis)
	if err != nil {
		return nil, err
	}

	places, err := s.decimalPlaces(ctx, doc.CurrencyCode)
	if err != nil {
		return nil, err
	}

	allocations := make([]domain.LandedCostAllocation, 0, len(doc.CostLines)*len(invoiceLines))
	for _, cl := range doc.CostLines {
		factors, amounts := accounting.Allocate(cl.Amount, weights, places)
		for i, invLine := range invoiceLines {
			allocations = append(allocations, domain.LandedCostAllocation{
				AllocationID:  uuid.NewString(),
				DocumentID:    documentID,
				CostLineID:    cl.CostLineID,
				InvoiceLineNo: invLine.LineNo,
				Factor:        factors[i],
				Amount:        amounts[i],
			})
		}
	}

	journal, lines, audit, err := s.buildDistributionJournal(ctx, doc, actorID, domain.LandedCostJournal)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAuthoritative(ctx, orgID, journal, lines); err != nil {
		return nil, err
	}

	doc.Status = domain.LandedCostAllocated
	doc.PostedJournalID = &journal.JournalID
	if err := s.landedCostRepo.AllocateDocument(ctx, *doc, allocations, *journal, lines, audit); err != nil {
		logger.Error("Failed to allocate landed cost document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Landed cost allocated",
		slog.String("document_id", documentID),
		slog.String("basis", string(basis)),
		slog.String("posted_journal_id", journal.JournalID))

	return &dto.AllocateLandedCostResponse{
		DocumentID:      documentID,
		Status:          string(domain.LandedCostAllocated),
		Allocations:     dto.ToAllocationResponses(allocations),
		PostedJournalID: journal.JournalID,
	}, nil
}

// Unapply reverses the distribution journal and returns the document to Draft
// so it can be re-allocated.
func (s *landedCostService) Unapply(ctx context.Context, orgID, documentID, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	doc, err := s.landedCostRepo.FindDocumentByID(ctx, orgID, documentID)
	if err != nil {
		return err
	}
	if doc.Status != domain.LandedCostAllocated || doc.PostedJournalID == nil {
		return fmt.Errorf("%w: %s", apperrors.ErrState, ErrNotAllocated)
	}

	// The unapply journal is the exact negation of the distribution journal,
	// referenced as a reversal.
	journal, lines, audit, err := s.buildDistributionJournal(ctx, doc, actorID, domain.ReversalJournal)
	if err != nil {
		return err
	}
	journal.Description = fmt.Sprintf("Unapply landed cost %s", doc.DocumentID)
	journal.ReversesJournalID = doc.PostedJournalID
	reversed := accounting.ReverseLines(lines)
	for i := range reversed {
		reversed[i].LineID = uuid.NewString()
		reversed[i].JournalID = journal.JournalID
		reversed[i].AuditFields = lines[i].AuditFields
	}

	now := s.now().UTC()
	audits := []domain.AuditEntry{
		audit,
		{
			AuditID:    uuid.NewString(),
			JournalID:  *doc.PostedJournalID,
			Action:     domain.ActionReverse,
			FromStatus: domain.Posted,
			ToStatus:   domain.Posted,
			ActorID:    actorID,
			Comment:    fmt.Sprintf("Landed cost %s unapplied", doc.DocumentID),
			OccurredAt: now,
		},
	}

	if err := s.landedCostRepo.UnapplyDocument(ctx, *doc, *journal, reversed, audits, actorID, now); err != nil {
		logger.Error("Failed to unapply landed cost document", slog.String("document_id", documentID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Landed cost unapplied", slog.String("document_id", documentID))
	return nil
}

// buildDistributionJournal constructs the posted journal recording the cost
// distribution: one debit per cost line's target account, one credit to the
// clearing account for the document total.
func (s *landedCostService) buildDistributionJournal(ctx context.Context, doc *domain.LandedCostDocument, actorID string, journalType domain.JournalType) (*domain.Journal, []domain.JournalLine, domain.AuditEntry, error) {
	now := s.now().UTC()

	period, err := s.currentOpenPeriod(ctx, doc.OrgID, now)
	if err != nil {
		return nil, nil, domain.AuditEntry{}, err
	}

	seq, err := s.sequenceRepo.NextSequence(ctx, doc.OrgID, period.PeriodID)
	if err != nil {
		return nil, nil, domain.AuditEntry{}, fmt.Errorf("failed to generate journal reference: %w", err)
	}

	journalID := uuid.NewString()
	journal := &domain.Journal{
		JournalID:    journalID,
		OrgID:        doc.OrgID,
		PeriodID:     period.PeriodID,
		JournalType:  journalType,
		JournalDate:  now,
		CurrencyCode: doc.CurrencyCode,
		Reference:    fmt.Sprintf("%s-%s-%06d", referencePrefixes[journalType], period.Name, seq),
		Description:  fmt.Sprintf("Landed cost distribution for invoice %s", doc.InvoiceRef),
		Status:       domain.Posted,
		PostedBy:     &actorID,
		PostedAt:     &now,
		AuditFields:  newAuditFields(actorID, now),
	}

	total := decimal.Zero
	lines := make([]domain.JournalLine, 0, len(doc.CostLines)+1)
	for i, cl := range doc.CostLines {
		total = total.Add(cl.Amount)
		lines = append(lines, domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			LineNo:      i + 1,
			AccountID:   cl.TargetAccount,
			Description: cl.Description,
			Debit:       cl.Amount,
			AuditFields: newAuditFields(actorID, now),
		})
	}
	lines = append(lines, domain.JournalLine{
		LineID:      uuid.NewString(),
		JournalID:   journalID,
		LineNo:      len(doc.CostLines) + 1,
		AccountID:   doc.ClearingAccount,
		Description: "Landed cost clearing",
		Credit:      total,
		AuditFields: newAuditFields(actorID, now),
	})

	audit := domain.AuditEntry{
		AuditID:    uuid.NewString(),
		JournalID:  journalID,
		Action:     domain.ActionPost,
		FromStatus: domain.Draft,
		ToStatus:   domain.Posted,
		ActorID:    actorID,
		OccurredAt: now,
	}
	return journal, lines, audit, nil
}

// currentOpenPeriod picks the open period containing the given date.
func (s *landedCostService) currentOpenPeriod(ctx context.Context, orgID string, at time.Time) (*domain.AccountingPeriod, error) {
	periods, err := s.periodRepo.ListPeriods(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	for i := range periods {
		if periods[i].IsOpen() && periods[i].Contains(at) {
			return &periods[i], nil
		}
	}
	return nil, fmt.Errorf("%w: no open period contains %s", apperrors.ErrPeriodClosed, at.Format("2006-01-02"))
}

func (s *landedCostService) decimalPlaces(ctx context.Context, currencyCode string) (int32, error) {
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, currencyCode)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return defaultDecimalPlaces, nil
		}
		return 0, fmt.Errorf("failed to resolve currency %s: %w", currencyCode, err)
	}
	return currency.DecimalPlaces, nil
}

// basisWeights extracts per-line weights for the chosen allocation basis,
// preserving invoice line document order.
func basisWeights(invoiceLines []domain.InvoiceLine, basis domain.AllocationBasis) ([]decimal.Decimal, error) {
	if len(invoiceLines) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAllocation, ErrNoInvoiceLines)
	}
	weights := make([]decimal.Decimal, len(invoiceLines))
	total := decimal.Zero
	for i, line := range invoiceLines {
		switch basis {
		case domain.ByQuantity:
			weights[i] = line.Quantity
		case domain.ByValue:
			weights[i] = line.Amount
		default:
			return nil, fmt.Errorf("%w: unknown allocation basis %q", apperrors.ErrAllocation, basis)
		}
		total = total.Add(weights[i])
	}
	if total.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrAllocation, ErrZeroWeight)
	}
	return weights, nil
}
