package services

import (
	"context"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/pft-app/pft_backend/internal/dto"
)

// BudgetReaderSvc defines read operations for budget data
type BudgetReaderSvc interface {
	// GetBudgetByID retrieves a specific budget owned by the user.
	GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)

	// ListBudgets retrieves the user's budgets, optionally only active ones.
	ListBudgets(ctx context.Context, userID string, activeOnly bool) ([]domain.Budget, error)
}

// BudgetWriterSvc defines write operations for budget data
type BudgetWriterSvc interface {
	// CreateBudget persists a new budget.
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)

	// UpdateBudget updates an existing budget's details.
	UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error)

	// AddSpent adds an amount to the budget's spent total.
	AddSpent(ctx context.Context, userID string, budgetID string, req dto.AdjustSpentRequest) (*domain.Budget, error)

	// ResetSpent sets the budget's spent total back to zero.
	ResetSpent(ctx context.Context, userID string, budgetID string) (*domain.Budget, error)

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, userID string, budgetID string) error
}

// BudgetSvcFacade combines all budget-related service interfaces
type BudgetSvcFacade interface {
	BudgetReaderSvc
	BudgetWriterSvc
}
