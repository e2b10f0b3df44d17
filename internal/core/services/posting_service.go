package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/erp_ledger_app/internal/apperrors"
	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
	"github.com/finbooks/erp_ledger_app/internal/utils/accounting"
)

var (
	ErrCommentRequired = errors.New("a comment is required to reject a journal")
	ErrAlreadyReversed = errors.New("journal has already been reversed")
)

// referencePrefixes maps journal types to the prefix of generated references.
var referencePrefixes = map[domain.JournalType]string{
	domain.GeneralJournal:    "GJ",
	domain.PurchaseJournal:   "PJ",
	domain.LandedCostJournal: "LC",
	domain.ReversalJournal:   "RV",
}

// postingService is the posting engine: it orchestrates lifecycle actions,
// consulting the state machine, the balance validator and the period lock
// manager, and is the only component that persists status changes.
type postingService struct {
	journalRepo  portsrepo.JournalRepositoryFacade
	periodRepo   portsrepo.PeriodRepositoryFacade
	sequenceRepo portsrepo.SequenceRepositoryFacade
	validator    *BalanceValidator
	now          func() time.Time
}

// NewPostingService creates the posting engine service.
func NewPostingService(journalRepo portsrepo.JournalRepositoryFacade, periodRepo portsrepo.PeriodRepositoryFacade,
	sequenceRepo portsrepo.SequenceRepositoryFacade, validator *BalanceValidator) portssvc.JournalSvcFacade {
	return &postingService{
		journalRepo:  journalRepo,
		periodRepo:   periodRepo,
		sequenceRepo: sequenceRepo,
		validator:    validator,
		now:          time.Now,
	}
}

var _ portssvc.JournalSvcFacade = (*postingService)(nil)

// CreateJournal stores a Draft journal with its lines. Validation findings are
// returned as warnings; only posting treats them as fatal.
func (s *postingService) CreateJournal(ctx context.Context, orgID string, req dto.CreateJournalRequest, creatorID string) (*dto.CreateJournalResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	period, err := s.periodRepo.FindPeriodByID(ctx, orgID, req.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve period %s: %w", req.PeriodID, err)
	}
	if !period.Contains(req.Date) {
		return nil, fmt.Errorf("%w: journal date %s is outside period %s", apperrors.ErrValidation, req.Date.Format("2006-01-02"), period.Name)
	}

	journalType := domain.GeneralJournal
	if req.JournalType != "" {
		journalType = domain.JournalType(req.JournalType)
	}

	now := s.now().UTC()
	journalID := uuid.NewString()

	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			LineNo:      i + 1,
			AccountID:   lineReq.AccountID,
			Description: lineReq.Description,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			CostCenter:  lineReq.CostCenter,
			Department:  lineReq.Department,
			AuditFields: newAuditFields(creatorID, now),
		}
	}

	reference, err := s.nextReference(ctx, orgID, period, journalType)
	if err != nil {
		return nil, err
	}

	journal := domain.Journal{
		JournalID:    journalID,
		OrgID:        orgID,
		PeriodID:     req.PeriodID,
		JournalType:  journalType,
		JournalDate:  req.Date,
		CurrencyCode: req.CurrencyCode,
		Reference:    reference,
		Description:  req.Description,
		Status:       domain.Draft,
		AuditFields:  newAuditFields(creatorID, now),
	}

	warnings, err := s.validator.Validate(ctx, orgID, &journal, lines)
	if err != nil {
		return nil, err
	}

	audit := domain.AuditEntry{
		AuditID:    uuid.NewString(),
		JournalID:  journalID,
		Action:     domain.ActionCreate,
		FromStatus: domain.Draft,
		ToStatus:   domain.Draft,
		ActorID:    creatorID,
		OccurredAt: now,
	}
	if err := s.journalRepo.SaveJournal(ctx, journal, lines, audit); err != nil {
		logger.Error("Failed to save journal", slog.String("error", err.Error()), slog.String("org_id", orgID))
		return nil, fmt.Errorf("failed to save journal: %w", err)
	}

	logger.Info("Journal created", slog.String("journal_id", journalID), slog.String("reference", reference))
	return &dto.CreateJournalResponse{
		JournalID:          journalID,
		Reference:          reference,
		Status:             domain.Draft,
		ValidationWarnings: warnings,
	}, nil
}

// GetJournalByID retrieves a journal with its lines.
func (s *postingService) GetJournalByID(ctx context.Context, orgID, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, orgID, journalID)
	if err != nil {
		return nil, err
	}
	lines, err := s.journalRepo.FindJournalLines(ctx, journalID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve lines for journal %s: %w", journalID, err)
	}
	journal.Lines = lines
	return journal, nil
}

// ListJournals retrieves a page of journal headers.
func (s *postingService) ListJournals(ctx context.Context, orgID string, params dto.ListJournalsParams) (*dto.ListJournalsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	journals, nextToken, err := s.journalRepo.ListJournals(ctx, orgID, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve journals: %w", err)
	}
	responses := make([]dto.JournalResponse, len(journals))
	for i := range journals {
		responses[i] = dto.ToJournalResponse(&journals[i])
	}
	return &dto.ListJournalsResponse{Journals: responses, NextToken: nextToken}, nil
}

// GetAuditTrail returns the recorded lifecycle actions for a journal.
func (s *postingService) GetAuditTrail(ctx context.Context, orgID, journalID string) ([]domain.AuditEntry, error) {
	if _, err := s.journalRepo.FindJournalByID(ctx, orgID, journalID); err != nil {
		return nil, err
	}
	return s.journalRepo.FindAuditTrail(ctx, journalID)
}

// ValidateJournal is the informational pre-submit check.
func (s *postingService) ValidateJournal(ctx context.Context, orgID, journalID string) ([]domain.ValidationFailure, error) {
	journal, err := s.GetJournalByID(ctx, orgID, journalID)
	if err != nil {
		return nil, err
	}
	return s.validator.Validate(ctx, orgID, journal, journal.Lines)
}

// ReplaceLines swaps the line set of a journal that is still mutable.
func (s *postingService) ReplaceLines(ctx context.Context, orgID, journalID string, req dto.UpdateJournalLinesRequest, actorID string) error {
	now := s.now().UTC()
	lines := make([]domain.JournalLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   journalID,
			LineNo:      i + 1,
			AccountID:   lineReq.AccountID,
			Description: lineReq.Description,
			Debit:       lineReq.Debit,
			Credit:      lineReq.Credit,
			CostCenter:  lineReq.CostCenter,
			Department:  lineReq.Department,
			AuditFields: newAuditFields(actorID, now),
		}
	}
	return s.journalRepo.ReplaceJournalLines(ctx, orgID, journalID, lines, actorID, now)
}

// Transition applies submit, approve, reject, post or cancel. The repository
// re-checks the from-status under a row lock, so a concurrent status change
// surfaces as an ErrState instead of a silent overwrite.
func (s *postingService) Transition(ctx context.Context, orgID, journalID string, action domain.JournalAction, actorID, comment string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	journal, err := s.journalRepo.FindJournalByID(ctx, orgID, journalID)
	if err != nil {
		return nil, err
	}

	next, err := domain.NextStatus(journal.Status, action)
	if err != nil {
		return nil, err
	}

	if action == domain.ActionReject && comment == "" {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrCommentRequired)
	}

	// Submit is gated on the period being open; post re-checks this inside the
	// posting transaction.
	if action == domain.ActionSubmit {
		period, err := s.periodRepo.FindPeriodByID(ctx, orgID, journal.PeriodID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve period %s: %w", journal.PeriodID, err)
		}
		if !period.IsOpen() {
			return nil, fmt.Errorf("%w: period %s", apperrors.ErrPeriodClosed, period.Name)
		}
	}

	now := s.now().UTC()
	audit := domain.AuditEntry{
		AuditID:    uuid.NewString(),
		JournalID:  journalID,
		Action:     action,
		FromStatus: journal.Status,
		ToStatus:   next,
		ActorID:    actorID,
		Comment:    comment,
		OccurredAt: now,
	}

	if action == domain.ActionPost {
		err = s.journalRepo.PostJournal(ctx, orgID, journalID, actorID, now, func(j *domain.Journal, lines []domain.JournalLine) error {
			return s.validator.ValidateAuthoritative(ctx, orgID, j, lines)
		})
	} else {
		err = s.journalRepo.TransitionJournal(ctx, orgID, journalID, journal.Status, next, audit)
	}
	if err != nil {
		logger.Warn("Journal transition failed",
			slog.String("journal_id", journalID),
			slog.String("action", string(action)),
			slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal transitioned",
		slog.String("journal_id", journalID),
		slog.String("action", string(action)),
		slog.String("from", string(journal.Status)),
		slog.String("to", string(next)))

	return s.journalRepo.FindJournalByID(ctx, orgID, journalID)
}

// Reverse spawns a new journal whose lines are the exact negation of the
// original's and posts it immediately. The original stays Posted and gains the
// reversed-by back-reference; neither journal owns the other.
func (s *postingService) Reverse(ctx context.Context, orgID, journalID, actorID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	original, err := s.GetJournalByID(ctx, orgID, journalID)
	if err != nil {
		return nil, err
	}
	if !domain.CanReverse(original.Status) {
		return nil, fmt.Errorf("%w: cannot reverse a journal in status %s", apperrors.ErrState, original.Status)
	}
	if original.ReversedByJournalID != nil {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrConflict, ErrAlreadyReversed)
	}
	if original.ReversesJournalID != nil {
		return nil, fmt.Errorf("%w: cannot reverse a journal that is itself a reversal", apperrors.ErrConflict)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, orgID, original.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve period %s: %w", original.PeriodID, err)
	}

	now := s.now().UTC()
	reversalID := uuid.NewString()
	reference, err := s.nextReference(ctx, orgID, period, domain.ReversalJournal)
	if err != nil {
		return nil, err
	}

	reversal := domain.Journal{
		JournalID:         reversalID,
		OrgID:             orgID,
		PeriodID:          original.PeriodID,
		JournalType:       domain.ReversalJournal,
		JournalDate:       original.JournalDate,
		CurrencyCode:      original.CurrencyCode,
		Reference:         reference,
		Description:       fmt.Sprintf("Reversal of %s", original.Reference),
		Status:            domain.Posted,
		PostedBy:          &actorID,
		PostedAt:          &now,
		ReversesJournalID: &original.JournalID,
		AuditFields:       newAuditFields(actorID, now),
	}

	lines := accounting.ReverseLines(original.Lines)
	for i := range lines {
		lines[i].LineID = uuid.NewString()
		lines[i].JournalID = reversalID
		lines[i].AuditFields = newAuditFields(actorID, now)
	}

	if err := s.validator.ValidateAuthoritative(ctx, orgID, &reversal, lines); err != nil {
		return nil, err
	}

	audits := []domain.AuditEntry{
		{
			AuditID:    uuid.NewString(),
			JournalID:  reversalID,
			Action:     domain.ActionPost,
			FromStatus: domain.Draft,
			ToStatus:   domain.Posted,
			ActorID:    actorID,
			OccurredAt: now,
		},
		{
			AuditID:    uuid.NewString(),
			JournalID:  original.JournalID,
			Action:     domain.ActionReverse,
			FromStatus: domain.Posted,
			ToStatus:   domain.Posted,
			ActorID:    actorID,
			Comment:    fmt.Sprintf("Reversed by %s", reference),
			OccurredAt: now,
		},
	}

	if err := s.journalRepo.SaveReversal(ctx, original.JournalID, reversal, lines, audits); err != nil {
		logger.Error("Failed to save reversal", slog.String("journal_id", journalID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Journal reversed", slog.String("journal_id", journalID), slog.String("reversal_id", reversalID))
	reversal.Lines = lines
	return &reversal, nil
}

// Duplicate copies header and lines verbatim into a brand-new Draft journal
// with a freshly generated reference. No transition is recorded on the source.
func (s *postingService) Duplicate(ctx context.Context, orgID, journalID, actorID string) (*domain.Journal, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	source, err := s.GetJournalByID(ctx, orgID, journalID)
	if err != nil {
		return nil, err
	}
	if !domain.CanDuplicate(source.Status) {
		return nil, fmt.Errorf("%w: cannot duplicate a journal in status %s", apperrors.ErrState, source.Status)
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, orgID, source.PeriodID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve period %s: %w", source.PeriodID, err)
	}

	now := s.now().UTC()
	copyID := uuid.NewString()
	reference, err := s.nextReference(ctx, orgID, period, source.JournalType)
	if err != nil {
		return nil, err
	}

	duplicate := domain.Journal{
		JournalID:    copyID,
		OrgID:        orgID,
		PeriodID:     source.PeriodID,
		JournalType:  source.JournalType,
		JournalDate:  source.JournalDate,
		CurrencyCode: source.CurrencyCode,
		Reference:    reference,
		Description:  source.Description,
		Status:       domain.Draft,
		AuditFields:  newAuditFields(actorID, now),
	}

	lines := make([]domain.JournalLine, len(source.Lines))
	for i, l := range source.Lines {
		lines[i] = domain.JournalLine{
			LineID:      uuid.NewString(),
			JournalID:   copyID,
			LineNo:      l.LineNo,
			AccountID:   l.AccountID,
			Description: l.Description,
			Debit:       l.Debit,
			Credit:      l.Credit,
			CostCenter:  l.CostCenter,
			Department:  l.Department,
			AuditFields: newAuditFields(actorID, now),
		}
	}

	audit := domain.AuditEntry{
		AuditID:    uuid.NewString(),
		JournalID:  copyID,
		Action:     domain.ActionCreate,
		FromStatus: domain.Draft,
		ToStatus:   domain.Draft,
		ActorID:    actorID,
		Comment:    fmt.Sprintf("Duplicated from %s", source.Reference),
		OccurredAt: now,
	}
	if err := s.journalRepo.SaveJournal(ctx, duplicate, lines, audit); err != nil {
		logger.Error("Failed to save duplicate journal", slog.String("source_id", journalID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save duplicate journal: %w", err)
	}

	logger.Info("Journal duplicated", slog.String("source_id", journalID), slog.String("copy_id", copyID))
	duplicate.Lines = lines
	return &duplicate, nil
}

// BulkTransition applies one action to each id in its own atomic unit. One
// item's failure is reported in its result and never affects the others.
func (s *postingService) BulkTransition(ctx context.Context, orgID string, journalIDs []string, action domain.JournalAction, actorID, comment string) []dto.BulkTransitionResult {
	results := make([]dto.BulkTransitionResult, len(journalIDs))
	for i, id := range journalIDs {
		_, err := s.Transition(ctx, orgID, id, action, actorID, comment)
		results[i] = dto.BulkTransitionResult{JournalID: id, Success: err == nil}
		if err != nil {
			results[i].Error = err.Error()
		}
	}
	return results
}

func (s *postingService) nextReference(ctx context.Context, orgID string, period *domain.AccountingPeriod, journalType domain.JournalType) (string, error) {
	seq, err := s.sequenceRepo.NextSequence(ctx, orgID, period.PeriodID)
	if err != nil {
		return "", fmt.Errorf("failed to generate journal reference: %w", err)
	}
	prefix, ok := referencePrefixes[journalType]
	if !ok {
		prefix = "GJ"
	}
	return fmt.Sprintf("%s-%s-%06d", prefix, period.Name, seq), nil
}

func newAuditFields(actorID string, at time.Time) domain.AuditFields {
	return domain.AuditFields{
		CreatedAt:     at,
		CreatedBy:     actorID,
		LastUpdatedAt: at,
		LastUpdatedBy: actorID,
	}
}
