package repositories

// RepositoryProvider holds all repository interfaces needed by services. This makes
// passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	RequestRepo      RequestRepositoryFacade
	BudgetCodeRepo   BudgetCodeRepositoryFacade
	CurrencyRepo     CurrencyRepositoryFacade
	ExchangeRateRepo ExchangeRateRepositoryFacade
	ApprovalRepo     ApprovalRepositoryFacade
	UserRepo         UserRepositoryFacade
	HistoryRepo      RequestHistoryRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
}
