package pgsql

import (
	portsrepo "github.com/finbooks/erp_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	journalRepo := newPgxJournalRepository(dbPool)
	periodRepo := newPgxPeriodRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	currencyRepo := newPgxCurrencyRepository(dbPool)
	landedCostRepo := newPgxLandedCostRepository(dbPool, journalRepo)
	purchasingRepo := newPgxPurchasingRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)
	reportingRepo := newReportingRepository(dbPool)

	return portsrepo.RepositoryProvider{
		JournalRepo:    journalRepo,
		PeriodRepo:     periodRepo,
		AccountRepo:    accountRepo,
		CurrencyRepo:   currencyRepo,
		LandedCostRepo: landedCostRepo,
		PurchasingRepo: purchasingRepo,
		SequenceRepo:   sequenceRepo,
		ReportingRepo:  reportingRepo,
	}
}
