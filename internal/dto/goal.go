package dto

import (
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateGoalRequest defines the data needed to create a new goal.
type CreateGoalRequest struct {
	Name          string          `json:"name" binding:"required"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"targetAmount" binding:"required"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	GoalType      domain.GoalType `json:"goalType" binding:"required,oneof=SAVINGS DEBT_PAYOFF EMERGENCY_FUND INVESTMENT PURCHASE TRAVEL OTHER"`
	TargetDate    *time.Time      `json:"targetDate"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
}

// UpdateGoalRequest defines the data allowed for updating a goal.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateGoalRequest struct {
	Name         *string            `json:"name"`
	Description  *string            `json:"description"`
	TargetAmount *decimal.Decimal   `json:"targetAmount"`
	GoalType     *domain.GoalType   `json:"goalType" binding:"omitempty,oneof=SAVINGS DEBT_PAYOFF EMERGENCY_FUND INVESTMENT PURCHASE TRAVEL OTHER"`
	TargetDate   *time.Time         `json:"targetDate"`
	Color        *string            `json:"color"`
	Icon         *string            `json:"icon"`
	Status       *domain.GoalStatus `json:"status" binding:"omitempty,oneof=ACTIVE COMPLETED PAUSED CANCELLED"`
}

// GoalProgressRequest carries an amount for progress adjustments.
type GoalProgressRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// ListGoalsParams defines query parameters for listing goals.
type ListGoalsParams struct {
	Status *domain.GoalStatus `form:"status" binding:"omitempty,oneof=ACTIVE COMPLETED PAUSED CANCELLED"`
}

// GoalResponse defines the data returned for a goal, including derived
// progress figures.
type GoalResponse struct {
	GoalID             string          `json:"goalID"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	TargetAmount       decimal.Decimal `json:"targetAmount"`
	CurrentAmount      decimal.Decimal `json:"currentAmount"`
	RemainingAmount    decimal.Decimal `json:"remainingAmount"`
	PercentageComplete decimal.Decimal `json:"percentageComplete"`
	IsCompleted        bool            `json:"isCompleted"`
	IsOverdue          bool            `json:"isOverdue"`
	IsNearCompletion   bool            `json:"isNearCompletion"`
	DaysRemaining      int64           `json:"daysRemaining"`
	GoalType           domain.GoalType `json:"goalType"`
	TargetDate         *time.Time      `json:"targetDate,omitempty"`
	Color              string          `json:"color,omitempty"`
	Icon               string          `json:"icon,omitempty"`
	Status             domain.GoalStatus `json:"status"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// ToGoalResponse converts a domain.Goal to GoalResponse DTO.
// Derived fields are computed as of now.
func ToGoalResponse(g *domain.Goal, now time.Time) GoalResponse {
	return GoalResponse{
		GoalID:             g.GoalID,
		Name:               g.Name,
		Description:        g.Description,
		TargetAmount:       g.TargetAmount,
		CurrentAmount:      g.CurrentAmount,
		RemainingAmount:    g.Remaining(),
		PercentageComplete: g.PercentageComplete(),
		IsCompleted:        g.IsCompleted(),
		IsOverdue:          g.IsOverdue(now),
		IsNearCompletion:   g.IsNearCompletion(),
		DaysRemaining:      g.DaysRemaining(now),
		GoalType:           g.GoalType,
		TargetDate:         g.TargetDate,
		Color:              g.Color,
		Icon:               g.Icon,
		Status:             g.Status,
		CreatedAt:          g.CreatedAt,
		UpdatedAt:          g.UpdatedAt,
	}
}

// ToListGoalResponse converts a slice of domain.Goal to a slice of GoalResponse DTOs
func ToListGoalResponse(goals []domain.Goal, now time.Time) []GoalResponse {
	res := make([]GoalResponse, len(goals))
	for i, g := range goals {
		res[i] = ToGoalResponse(&g, now)
	}
	return res
}
