package services

import (
	"context"

	"github.com/finbooks/erp_ledger_app/internal/core/domain"
	"github.com/finbooks/erp_ledger_app/internal/dto"
)

// CurrencySvcFacade manages currencies and their rounding precision.
type CurrencySvcFacade interface {
	CreateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, creatorID string) (*domain.Currency, error)
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)
}
