package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// PeriodSvcFacade is the period lock manager.
type PeriodSvcFacade interface {
	CreatePeriod(ctx context.Context, orgID string, req dto.CreatePeriodRequest, creatorID string) (*domain.AccountingPeriod, error)
	GetPeriodByID(ctx context.Context, orgID, periodID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, orgID string) ([]domain.AccountingPeriod, error)

	// IsOpen answers the posting gate question. Posting re-checks this
	// transactionally in the repository; this form serves submit-time checks.
	IsOpen(ctx context.Context, orgID, periodID string) (bool, error)

	// ClosePeriod fails with apperrors.ErrPeriodClose while journals in the
	// period are non-terminal.
	ClosePeriod(ctx context.Context, orgID, periodID, actorID string) error
	ReopenPeriod(ctx context.Context, orgID, periodID, actorID string) error
}
