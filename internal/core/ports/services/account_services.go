package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// AccountSvcFacade provides the account lookups the validator and reports rely on.
type AccountSvcFacade interface {
	CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error)
	GetAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error)
	GetAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error)
	ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error)
}
