package dto

import (
	"github.com/shopspring/decimal"
)

// DashboardStatsResponse is the aggregate summary shown on the dashboard.
type DashboardStatsResponse struct {
	TotalBalance       decimal.Decimal       `json:"totalBalance"`
	MonthlyIncome      decimal.Decimal       `json:"monthlyIncome"`
	MonthlyExpenses    decimal.Decimal       `json:"monthlyExpenses"`
	MonthlySavings     decimal.Decimal       `json:"monthlySavings"`
	AccountCount       int                   `json:"accountCount"`
	RecentTransactions []TransactionResponse `json:"recentTransactions"`
	ActiveBudgets      []BudgetResponse      `json:"activeBudgets"`
	ActiveGoals        []GoalResponse        `json:"activeGoals"`
}
