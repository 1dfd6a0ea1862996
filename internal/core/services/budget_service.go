package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/core/domain"
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
	portssvc "github.com/pft-app/pft_backend/internal/core/ports/services"
	"github.com/pft-app/pft_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// budgetService implements the BudgetSvcFacade interface.
// Spent totals move only through AddSpent and ResetSpent; the transaction
// ledger never feeds them implicitly.
type budgetService struct {
	BaseService
	budgetRepo   portsrepo.BudgetRepositoryFacade
	categoryRepo portsrepo.CategoryReader
}

// NewBudgetService creates a new budget service
func NewBudgetService(repo portsrepo.BudgetRepositoryFacade, categoryReader portsrepo.CategoryReader) portssvc.BudgetSvcFacade {
	return &budgetService{
		budgetRepo:   repo,
		categoryRepo: categoryReader,
	}
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("budget amount must be positive: %w", apperrors.ErrValidation)
	}

	if req.CategoryID != "" {
		category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
		if err != nil {
			return nil, err
		}
		if err := requireOwner(category.UserID, userID); err != nil {
			return nil, err
		}
	}

	alertThreshold := domain.DefaultAlertThreshold
	if req.AlertThreshold != nil {
		alertThreshold = *req.AlertThreshold
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         userID,
		CategoryID:     req.CategoryID,
		Name:           req.Name,
		Description:    req.Description,
		Amount:         req.Amount,
		SpentAmount:    decimal.Zero,
		Period:         req.Period,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		Color:          req.Color,
		AlertThreshold: alertThreshold,
		IsActive:       true,
		Status:         domain.BudgetActive,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to save budget", slog.String("budget_id", budget.BudgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", budget.BudgetID))
	return &budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find budget", slog.String("budget_id", budgetID))
		}
		return nil, err
	}
	if err := requireOwner(budget.UserID, userID); err != nil {
		return nil, err
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, activeOnly bool) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, userID string, budgetID string, req dto.UpdateBudgetRequest) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		budget.Name = *req.Name
	}
	if req.Description != nil {
		budget.Description = *req.Description
	}
	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			category, err := s.categoryRepo.FindCategoryByID(ctx, *req.CategoryID)
			if err != nil {
				return nil, err
			}
			if err := requireOwner(category.UserID, userID); err != nil {
				return nil, err
			}
		}
		budget.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		if !req.Amount.IsPositive() {
			return nil, fmt.Errorf("budget amount must be positive: %w", apperrors.ErrValidation)
		}
		budget.Amount = *req.Amount
	}
	if req.Period != nil {
		budget.Period = *req.Period
	}
	if req.StartDate != nil {
		budget.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		budget.EndDate = req.EndDate
	}
	if req.Color != nil {
		budget.Color = *req.Color
	}
	if req.AlertThreshold != nil {
		budget.AlertThreshold = *req.AlertThreshold
	}
	if req.IsActive != nil {
		budget.IsActive = *req.IsActive
		if budget.IsActive {
			budget.Status = domain.BudgetActive
		} else {
			budget.Status = domain.BudgetInactive
		}
	}
	budget.UpdatedAt = time.Now()

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		s.LogError(ctx, err, "Failed to update budget", slog.String("budget_id", budgetID))
		return nil, err
	}

	s.LogInfo(ctx, "Budget updated", slog.String("budget_id", budgetID))
	return budget, nil
}

// AddSpent records spending against the budget. The total may exceed the
// limit; derived fields flag that rather than the write failing.
func (s *budgetService) AddSpent(ctx context.Context, userID string, budgetID string, req dto.AdjustSpentRequest) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	delta := req.Amount.Abs()
	now := time.Now()
	if err := s.budgetRepo.AdjustSpentAmount(ctx, budgetID, delta, now); err != nil {
		s.LogError(ctx, err, "Failed to adjust budget spent amount", slog.String("budget_id", budgetID))
		return nil, err
	}

	budget.SpentAmount = budget.SpentAmount.Add(delta)
	budget.UpdatedAt = now
	s.LogInfo(ctx, "Budget spending recorded",
		slog.String("budget_id", budgetID),
		slog.String("amount", delta.String()))
	return budget, nil
}

func (s *budgetService) ResetSpent(ctx context.Context, userID string, budgetID string) (*domain.Budget, error) {
	budget, err := s.GetBudgetByID(ctx, userID, budgetID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.budgetRepo.ResetSpentAmount(ctx, budgetID, now); err != nil {
		s.LogError(ctx, err, "Failed to reset budget spent amount", slog.String("budget_id", budgetID))
		return nil, err
	}

	budget.SpentAmount = decimal.Zero
	budget.UpdatedAt = now
	s.LogInfo(ctx, "Budget spending reset", slog.String("budget_id", budgetID))
	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	if _, err := s.GetBudgetByID(ctx, userID, budgetID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return err
	}

	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
