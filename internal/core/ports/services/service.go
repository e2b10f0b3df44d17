package services

// ServiceContainer bundles the service facades handed to the HTTP layer.
type ServiceContainer struct {
	Journal    JournalSvcFacade
	Period     PeriodSvcFacade
	LandedCost LandedCostSvcFacade
	Match      MatchSvcFacade
	Account    AccountSvcFacade
	Currency   CurrencySvcFacade
	Reporting  ReportingSvcFacade
}
