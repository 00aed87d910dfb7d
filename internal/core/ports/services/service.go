package services

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	User         UserSvcFacade
	Department   DepartmentSvcFacade
	Request      RequestSvcFacade
	Approval     ApprovalSvcFacade
	Steps        StepCatalogSvc
	Budget       BudgetSvcFacade
	Currency     CurrencySvcFacade
	ExchangeRate ExchangeRateSvcFacade
	Converter    ConverterSvc
	Notification NotificationSvcFacade
	History      HistorySvc
}
