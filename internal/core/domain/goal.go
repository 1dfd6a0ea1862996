package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// GoalType classifies what a savings goal is for.
type GoalType string

const (
	GoalSavings       GoalType = "SAVINGS"
	GoalDebtPayoff    GoalType = "DEBT_PAYOFF"
	GoalEmergencyFund GoalType = "EMERGENCY_FUND"
	GoalInvestment    GoalType = "INVESTMENT"
	GoalPurchase      GoalType = "PURCHASE"
	GoalTravel        GoalType = "TRAVEL"
	GoalOther         GoalType = "OTHER"
)

// GoalStatus is the lifecycle state of a goal. COMPLETED is entered
// automatically when the current amount reaches the target and is never
// reverted automatically.
type GoalStatus string

const (
	GoalActive    GoalStatus = "ACTIVE"
	GoalCompleted GoalStatus = "COMPLETED"
	GoalPaused    GoalStatus = "PAUSED"
	GoalCancelled GoalStatus = "CANCELLED"
)

// nearCompletionThreshold is fixed for goals, unlike the budget alert
// threshold which is configurable per budget.
const nearCompletionThreshold = 80

// Goal tracks progress toward a savings target.
type Goal struct {
	GoalID        string          `json:"goalID"` // Primary Key (UUID)
	UserID        string          `json:"userID"` // Owner
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	TargetAmount  decimal.Decimal `json:"targetAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	GoalType      GoalType        `json:"goalType"`
	TargetDate    *time.Time      `json:"targetDate,omitempty"`
	Color         string          `json:"color"`
	Icon          string          `json:"icon"`
	Status        GoalStatus      `json:"status"`
	AuditFields
}

// Remaining is the amount still needed to reach the target.
func (g Goal) Remaining() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// PercentageComplete is current/target as a percentage, quotient rounded to
// four decimal places half-up before the multiply, zero when target is zero.
func (g Goal) PercentageComplete() decimal.Decimal {
	return percentageOf(g.CurrentAmount, g.TargetAmount)
}

// IsCompleted reports whether the goal has reached its target.
func (g Goal) IsCompleted() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}

// IsOverdue reports whether an active goal has passed its target date without
// completing.
func (g Goal) IsOverdue(now time.Time) bool {
	return g.TargetDate != nil && now.After(*g.TargetDate) && g.Status == GoalActive && !g.IsCompleted()
}

// IsNearCompletion reports whether progress has reached 80 percent.
func (g Goal) IsNearCompletion() bool {
	return g.PercentageComplete().GreaterThanOrEqual(decimal.NewFromInt(nearCompletionThreshold))
}

// DaysRemaining returns whole days until the target date, 0 once overdue, and
// -1 when no target date is set.
func (g Goal) DaysRemaining(now time.Time) int64 {
	if g.TargetDate == nil {
		return -1
	}
	if now.After(*g.TargetDate) {
		return 0
	}
	return int64(g.TargetDate.Sub(now).Hours() / 24)
}
