package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/dto"
	"github.com/finbooks/erp_ledger_app/internal/middleware"
)

type accountService struct {
	accountRepo portsrepo.AccountRepositoryFacade
	now         func() time.Time
}

// NewAccountService creates the account lookup service.
func NewAccountService(accountRepo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: accountRepo, now: time.Now}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, orgID string, req dto.CreateAccountRequest, creatorID string) (*domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	account := domain.Account{
		AccountID:    uuid.NewString(),
		OrgID:        orgID,
		Code:         req.Code,
		Name:         req.Name,
		AccountType:  domain.AccountType(req.AccountType),
		CurrencyCode: req.CurrencyCode,
		IsActive:     true,
		AuditFields:  newAuditFields(creatorID, s.now().UTC()),
	}
	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		logger.Error("Failed to save account", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to save account: %w", err)
	}

	logger.Info("Account created", slog.String("account_id", account.AccountID), slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, orgID, accountID string) (*domain.Account, error) {
	return s.accountRepo.FindAccountByID(ctx, orgID, accountID)
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, orgID string, accountIDs []string) (map[string]domain.Account, error) {
	return s.accountRepo.FindAccountsByIDs(ctx, orgID, accountIDs)
}

func (s *accountService) ListAccounts(ctx context.Context, orgID string) ([]domain.Account, error) {
	return s.accountRepo.ListAccounts(ctx, orgID)
}
