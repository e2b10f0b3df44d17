package services

import (
	"github.com/shopspring/decimal"

	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/finbooks/erp_ledger_app/internal/core/ports/services"
	"github.com/finbooks/erp_ledger_app/internal/platform/config"
)

// NewServiceContainer wires the service layer onto the repository layer.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	validator := NewBalanceValidator(repos.AccountRepo, repos.CurrencyRepo)

	container := &portssvc.ServiceContainer{}
	container.Journal = NewPostingService(repos.JournalRepo, repos.PeriodRepo, repos.SequenceRepo, validator)
	container.Period = NewPeriodService(repos.PeriodRepo)
	container.LandedCost = NewLandedCostService(repos.LandedCostRepo, repos.PurchasingRepo,
		repos.PeriodRepo, repos.SequenceRepo, repos.CurrencyRepo, validator)
	container.Match = NewMatchService(repos.PurchasingRepo, decimal.NewFromFloat(cfg.MatchTolerancePct))
	container.Account = NewAccountService(repos.AccountRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, repos.PeriodRepo)

	return container
}
