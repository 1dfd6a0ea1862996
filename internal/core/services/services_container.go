package services

import (
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
	portssvc "github.com/pft-app/pft_backend/internal/core/ports/services"
	"github.com/pft-app/pft_backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg, container.User)
	container.GoogleOAuth = NewGoogleOAuthHandlerService(cfg)

	container.Account = NewAccountService(repos.AccountRepo, repos.TransactionRepo)
	container.Category = NewCategoryService(repos.CategoryRepo, repos.TransactionRepo, repos.BudgetRepo)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.CategoryRepo)
	container.Goal = NewGoalService(repos.GoalRepo)
	container.Dashboard = NewDashboardService(repos.AccountRepo, repos.TransactionRepo, repos.BudgetRepo, repos.GoalRepo)

	return container
}
