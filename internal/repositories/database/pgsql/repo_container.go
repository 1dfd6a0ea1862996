package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	userRepo := newPgxUserRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	categoryRepo := newPgxCategoryRepository(dbPool)
	transactionRepo := newPgxTransactionRepository(dbPool, accountRepo)
	budgetRepo := newPgxBudgetRepository(dbPool)
	goalRepo := newPgxGoalRepository(dbPool)

	return portsrepo.RepositoryProvider{
		UserRepo:        userRepo,
		AccountRepo:     accountRepo,
		CategoryRepo:    categoryRepo,
		TransactionRepo: transactionRepo,
		BudgetRepo:      budgetRepo,
		GoalRepo:        goalRepo,
	}
}
