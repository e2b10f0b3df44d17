package repositories

import (
	"context"
	"time"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// PeriodRepositoryFacade defines persistence operations for accounting periods.
type PeriodRepositoryFacade interface {
	SavePeriod(ctx context.Context, period domain.AccountingPeriod) error
	FindPeriodByID(ctx context.Context, orgID, periodID string) (*domain.AccountingPeriod, error)
	ListPeriods(ctx context.Context, orgID string) ([]domain.AccountingPeriod, error)

	// ClosePeriod flips the period to Closed under an exclusive row lock. It
	// fails with apperrors.ErrPeriodClose while any journal in the period is
	// non-terminal. The same row lock is taken by journal posting, so a close
	// cannot interleave with a concurrent post.
	ClosePeriod(ctx context.Context, orgID, periodID, actorID string, at time.Time) error

	// ReopenPeriod flips a Closed period back to Open.
	ReopenPeriod(ctx context.Context, orgID, periodID, actorID string, at time.Time) error
}
