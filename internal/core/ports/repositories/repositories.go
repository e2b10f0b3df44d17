package repositories

// RepositoryProvider bundles the repository facades handed to the service layer.
type RepositoryProvider struct {
	JournalRepo    JournalRepositoryFacade
	PeriodRepo     PeriodRepositoryFacade
	AccountRepo    AccountRepositoryFacade
	CurrencyRepo   CurrencyRepositoryFacade
	LandedCostRepo LandedCostRepositoryFacade
	PurchasingRepo PurchasingRepositoryFacade
	SequenceRepo   SequenceRepositoryFacade
	ReportingRepo  ReportingRepositoryFacade
}
