package dto

import "github.com/finbooks/erp_ledger_app/internal/core/domain"

// CreateAccountRequest registers a GL account the ledger may post to.
type CreateAccountRequest struct {
	Code         string `json:"code" binding:"required"`
	Name         string `json:"name" binding:"required"`
	AccountType  string `json:"accountType" binding:"required,oneof=ASSET LIABILITY EQUITY REVENUE EXPENSE"`
	CurrencyCode string `json:"currencyCode" binding:"required,len=3"`
}

// AccountResponse is the outward view of a GL account.
type AccountResponse struct {
	AccountID    string             `json:"accountID"`
	Code         string             `json:"code"`
	Name         string             `json:"name"`
	AccountType  domain.AccountType `json:"accountType"`
	CurrencyCode string             `json:"currencyCode"`
	IsActive     bool               `json:"isActive"`
}

// ToAccountResponse converts a domain account to its DTO.
func ToAccountResponse(a *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:    a.AccountID,
		Code:         a.Code,
		Name:         a.Name,
		AccountType:  a.AccountType,
		CurrencyCode: a.CurrencyCode,
		IsActive:     a.IsActive,
	}
}
