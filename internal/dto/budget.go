package dto

import (
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the data needed to create a new budget.
type CreateBudgetRequest struct {
	Name           string              `json:"name" binding:"required"`
	Description    string              `json:"description"`
	CategoryID     string              `json:"categoryID"`
	Amount         decimal.Decimal     `json:"amount" binding:"required"`
	Period         domain.BudgetPeriod `json:"period" binding:"required,oneof=WEEKLY MONTHLY QUARTERLY YEARLY"`
	StartDate      time.Time           `json:"startDate" binding:"required"`
	EndDate        *time.Time          `json:"endDate"`
	Color          string              `json:"color"`
	AlertThreshold *int                `json:"alertThreshold" binding:"omitempty,min=1,max=100"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateBudgetRequest struct {
	Name           *string              `json:"name"`
	Description    *string              `json:"description"`
	CategoryID     *string              `json:"categoryID"`
	Amount         *decimal.Decimal     `json:"amount"`
	Period         *domain.BudgetPeriod `json:"period" binding:"omitempty,oneof=WEEKLY MONTHLY QUARTERLY YEARLY"`
	StartDate      *time.Time           `json:"startDate"`
	EndDate        *time.Time           `json:"endDate"`
	Color          *string              `json:"color"`
	AlertThreshold *int                 `json:"alertThreshold" binding:"omitempty,min=1,max=100"`
	IsActive       *bool                `json:"isActive"`
}

// AdjustSpentRequest carries an amount to add to a budget's spent total.
type AdjustSpentRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// BudgetResponse defines the data returned for a budget, including
// derived usage figures.
type BudgetResponse struct {
	BudgetID        string              `json:"budgetID"`
	Name            string              `json:"name"`
	Description     string              `json:"description,omitempty"`
	CategoryID      string              `json:"categoryID,omitempty"`
	Amount          decimal.Decimal     `json:"amount"`
	SpentAmount     decimal.Decimal     `json:"spentAmount"`
	RemainingAmount decimal.Decimal     `json:"remainingAmount"`
	PercentageUsed  decimal.Decimal     `json:"percentageUsed"`
	IsOverBudget    bool                `json:"isOverBudget"`
	IsNearLimit     bool                `json:"isNearLimit"`
	Period          domain.BudgetPeriod `json:"period"`
	StartDate       time.Time           `json:"startDate"`
	EndDate         *time.Time          `json:"endDate,omitempty"`
	Color           string              `json:"color,omitempty"`
	AlertThreshold  int                 `json:"alertThreshold"`
	IsActive        bool                `json:"isActive"`
	Status          domain.BudgetStatus `json:"status"`
	CreatedAt       time.Time           `json:"createdAt"`
	UpdatedAt       time.Time           `json:"updatedAt"`
}

// ToBudgetResponse converts a domain.Budget to BudgetResponse DTO
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:        b.BudgetID,
		Name:            b.Name,
		Description:     b.Description,
		CategoryID:      b.CategoryID,
		Amount:          b.Amount,
		SpentAmount:     b.SpentAmount,
		RemainingAmount: b.Remaining(),
		PercentageUsed:  b.PercentageUsed(),
		IsOverBudget:    b.IsOverBudget(),
		IsNearLimit:     b.IsNearLimit(),
		Period:          b.Period,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Color:           b.Color,
		AlertThreshold:  b.AlertThreshold,
		IsActive:        b.IsActive,
		Status:          b.Status,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ToListBudgetResponse converts a slice of domain.Budget to a slice of BudgetResponse DTOs
func ToListBudgetResponse(budgets []domain.Budget) []BudgetResponse {
	res := make([]BudgetResponse, len(budgets))
	for i, b := range budgets {
		res[i] = ToBudgetResponse(&b)
	}
	return res
}
