package services

import (
	"context"
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
)

// periodService manages accounting periods and answers the open/closed gate
// question for the posting engine.
type periodService struct {
	periodRepo portsrepo.PeriodRepositoryFacade
	now        func() time.Time
}

// NewPeriodService creates the period lock manager.
func NewPeriodService(periodRepo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: periodRepo, now: time.Now}
}

var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

// CreatePeriod opens a new period after checking the date range does not
// overlap an existing one.
func (s *periodService) CreatePeriod(ctx context.Context, orgID string, req dto.CreatePeriodRequest, creatorID string) (*domain.AccountingPeriod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.EndDate.After(req.StartDate) {
		return nil, fmt.Errorf("%w: period end date must be after start date", apperrors.ErrValidation)
	}

	existing, err := s.periodRepo.ListPeriods(ctx, orgID)
	if err != nil {
		return nil, fmt.Errorf("failed to list periods: %w", err)
	}
	for _, p := range existing {
		if req.StartDate.Before(p.EndDate) && p.StartDate.Before(req.EndDate) {
			return nil, fmt.Errorf("%w: period overlaps %s", apperrors.ErrDuplicate, p.Name)
		}
	}

	period := domain.AccountingPeriod{
		PeriodID:    uuid.NewString(),
		OrgID:       orgID,
		Name:        req.Name,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Status:      domain.PeriodOpen,
		AuditFields: newAuditFields(creatorID, s.now().UTC()),
	}
	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		logger.Error("Failed to save period", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save period: %w", err)
	}

	logger.Info("Accounting period created", slog.String("period_id", period.PeriodID), slog.String("name", period.Name))
	return &period, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, orgID, periodID string) (*domain.AccountingPeriod, error) {
	return s.periodRepo.FindPeriodByID(ctx, orgID, periodID)
}

func (s *periodService) ListPeriods(ctx context.Context, orgID string) ([]domain.AccountingPeriod, error) {
	return s.periodRepo.ListPeriods(ctx, orgID)
}

// IsOpen reports whether the period accepts new postings. The posting
// repository re-checks this under the period row lock; this answer alone is
// advisory.
func (s *periodService) IsOpen(ctx context.Context, orgID, periodID string) (bool, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, orgID, periodID)
	if err != nil {
		return false, err
	}
	return period.IsOpen(), nil
}

// ClosePeriod locks the period against further postings. The repository holds
// the period row lock while verifying every journal in the period is terminal.
func (s *periodService) ClosePeriod(ctx context.Context, orgID, periodID, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.periodRepo.ClosePeriod(ctx, orgID, periodID, actorID, s.now().UTC()); err != nil {
		logger.Warn("Period close refused", slog.String("period_id", periodID), slog.String("error", err.Error()))
		return err
	}
	logger.Info("Accounting period closed", slog.String("period_id", periodID), slog.String("actor_id", actorID))
	return nil
}

// ReopenPeriod returns a Closed period to Open.
func (s *periodService) ReopenPeriod(ctx context.Context, orgID, periodID, actorID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.periodRepo.ReopenPeriod(ctx, orgID, periodID, actorID, s.now().UTC()); err != nil {
		return err
	}
	logger.Info("Accounting period reopened", slog.String("period_id", periodID), slog.String("actor_id", actorID))
	return nil
}
