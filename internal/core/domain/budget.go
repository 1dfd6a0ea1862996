package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BudgetPeriod is the recurrence window a budget covers.
type BudgetPeriod string

const (
	BudgetWeekly    BudgetPeriod = "WEEKLY"
	BudgetMonthly   BudgetPeriod = "MONTHLY"
	BudgetQuarterly BudgetPeriod = "QUARTERLY"
	BudgetYearly    BudgetPeriod = "YEARLY"
)

// BudgetStatus is the lifecycle state of a budget.
type BudgetStatus string

const (
	BudgetActive    BudgetStatus = "ACTIVE"
	BudgetInactive  BudgetStatus = "INACTIVE"
	BudgetCompleted BudgetStatus = "COMPLETED"
	BudgetCancelled BudgetStatus = "CANCELLED"
)

// DefaultAlertThreshold is the percentage at which a budget is flagged as
// nearing its limit when the owner did not configure one.
const DefaultAlertThreshold = 80

// Budget caps spending for a user, optionally scoped to one category.
// SpentAmount is a running total mutated only by explicit AddSpent/ResetSpent
// calls; it is not derived from the transaction ledger.
type Budget struct {
	BudgetID       string          `json:"budgetID"` // Primary Key (UUID)
	UserID         string          `json:"userID"`   // Owner
	CategoryID     string          `json:"categoryID"` // Optional scope
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"` // Limit
	SpentAmount    decimal.Decimal `json:"spentAmount"`
	Period         BudgetPeriod    `json:"period"`
	StartDate      time.Time       `json:"startDate"`
	EndDate        *time.Time      `json:"endDate,omitempty"`
	Color          string          `json:"color"`
	AlertThreshold int             `json:"alertThreshold"` // Percentage
	IsActive       bool            `json:"isActive"`
	Status         BudgetStatus    `json:"status"`
	AuditFields
}

// Remaining is the unspent portion of the budget (negative when over).
func (b Budget) Remaining() decimal.Decimal {
	return b.Amount.Sub(b.SpentAmount)
}

// PercentageUsed is spent/amount as a percentage, with the quotient rounded to
// four decimal places (half up) before the multiply. Zero when the limit is zero.
func (b Budget) PercentageUsed() decimal.Decimal {
	return percentageOf(b.SpentAmount, b.Amount)
}

// IsOverBudget reports whether spending has exceeded the limit.
func (b Budget) IsOverBudget() bool {
	return b.SpentAmount.GreaterThan(b.Amount)
}

// IsNearLimit reports whether usage has reached the configured alert threshold.
func (b Budget) IsNearLimit() bool {
	return b.PercentageUsed().GreaterThanOrEqual(decimal.NewFromInt(int64(b.AlertThreshold)))
}

// percentageOf computes part/whole * 100 with the division rounded to four
// decimal places half-up, defined as zero when the denominator is zero.
func percentageOf(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.DivRound(whole, 4).Mul(decimal.NewFromInt(100))
}
