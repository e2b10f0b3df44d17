package repositories

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
)

// AccountRepositoryFacade defines persistence operations for GL accounts.
type AccountRepositoryFacade interface {
	SaveAccount(ctx context.Context, account domain.Account) error
	FindAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error)
	FindAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)
}
