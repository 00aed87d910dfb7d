package services

import (
	"github.com/candenizkocak/procurementsystem/internal/platform/config"

	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	portssvc "github.com/candenizkocak/procurementsystem/internal/core/ports/services"
)

// NewServiceContainer creates a new service container with properly initialized
// dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	// Foundational services first; the workflow services depend on them.
	converter := NewConverterService(repos.ExchangeRateRepo)
	classifier := NewClassifierService(cfg.HighValueThreshold)
	notifier := NewNotificationService(repos.NotificationRepo, repos.UserRepo)
	history := NewHistoryService(repos.HistoryRepo, repos.RequestRepo, repos.UserRepo)

	container.Converter = converter
	container.Notification = notifier
	container.History = history

	container.User = NewUserService(repos.UserRepo, cfg.JWTSecret, cfg.JWTExpiryDuration)
	container.Department = NewDepartmentService(repos.UserRepo)
	container.Currency = NewCurrencyService(repos.CurrencyRepo)
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency)
	container.Budget = NewBudgetService(repos.BudgetCodeRepo, repos.UserRepo)
	container.Steps = NewStepCatalogService(repos.ApprovalRepo)

	container.Request = NewRequestService(
		repos.RequestRepo,
		repos.BudgetCodeRepo,
		repos.UserRepo,
		repos.ApprovalRepo,
		converter,
		classifier,
		notifier,
		history,
	)

	container.Approval = NewApprovalService(
		repos.RequestRepo,
		repos.ApprovalRepo,
		repos.UserRepo,
		converter,
		cfg.HighValueThreshold,
		notifier,
		history,
	)

	return container
}
