package repositories

import (
	"context"
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budget data
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget by its unique identifier.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// ListBudgetsByUser retrieves a user's budgets, optionally only active ones.
	ListBudgetsByUser(ctx context.Context, userID string, activeOnly bool) ([]domain.Budget, error)

	// CountBudgetsByCategory returns how many budgets reference the category.
	CountBudgetsByCategory(ctx context.Context, categoryID string) (int64, error)
}

// BudgetWriter defines write operations for budget data
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget persists changes to an existing budget.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// AdjustSpentAmount atomically adds delta to the budget's spent amount.
	AdjustSpentAmount(ctx context.Context, budgetID string, delta decimal.Decimal, now time.Time) error

	// ResetSpentAmount sets the budget's spent amount back to zero.
	ResetSpentAmount(ctx context.Context, budgetID string, now time.Time) error

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, budgetID string) error
}

// BudgetRepositoryFacade combines all budget-related repository interfaces
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
