package pgsql

import (
	portsrepo "github.com/candenizkocak/procurementsystem/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		RequestRepo:      newPgxRequestRepository(dbPool),
		BudgetCodeRepo:   newPgxBudgetCodeRepository(dbPool),
		CurrencyRepo:     newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo: newPgxExchangeRateRepository(dbPool),
		ApprovalRepo:     newPgxApprovalRepository(dbPool),
		UserRepo:         newPgxUserRepository(dbPool),
		HistoryRepo:      newPgxRequestHistoryRepository(dbPool),
		NotificationRepo: newPgxNotificationRepository(dbPool),
	}
}
