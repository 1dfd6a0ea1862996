package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
	portssvc "github.com/pft-app/pft_backend/internal/core/ports/services"
	"github.com/pft-app/pft_backend/internal/dto"
)

// recentTransactionCount is how many transactions the dashboard shows.
const recentTransactionCount = 5

// dashboardService implements the DashboardSvcFacade interface
type dashboardService struct {
	BaseService
	accountRepo     portsrepo.AccountReader
	transactionRepo portsrepo.TransactionReader
	budgetRepo      portsrepo.BudgetReader
	goalRepo        portsrepo.GoalReader
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(accountReader portsrepo.AccountReader, txnReader portsrepo.TransactionReader, budgetReader portsrepo.BudgetReader, goalReader portsrepo.GoalReader) portssvc.DashboardSvcFacade {
	return &dashboardService{
		accountRepo:     accountReader,
		transactionRepo: txnReader,
		budgetRepo:      budgetReader,
		goalRepo:        goalReader,
	}
}

var _ portssvc.DashboardSvcFacade = (*dashboardService)(nil)

// GetStats aggregates balances, the current calendar month's income and
// expenses, recent transactions, active budgets and active goals.
func (s *dashboardService) GetStats(ctx context.Context, userID string, now time.Time) (*dto.DashboardStatsResponse, error) {
	totalBalance, err := s.accountRepo.SumBalancesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum balances for dashboard", slog.String("user_id", userID))
		return nil, err
	}

	accountCount, err := s.accountRepo.CountAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts for dashboard", slog.String("user_id", userID))
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	nextMonthStart := monthStart.AddDate(0, 1, 0)

	monthlyIncome, err := s.transactionRepo.SumAmountByUserTypeAndDateRange(ctx, userID, domain.Income, monthStart, nextMonthStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum monthly income", slog.String("user_id", userID))
		return nil, err
	}

	monthlyExpenses, err := s.transactionRepo.SumAmountByUserTypeAndDateRange(ctx, userID, domain.Expense, monthStart, nextMonthStart)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum monthly expenses", slog.String("user_id", userID))
		return nil, err
	}

	recent, err := s.transactionRepo.ListTransactionsByUser(ctx, userID, portsrepo.TransactionFilter{
		Limit: recentTransactionCount,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list recent transactions", slog.String("user_id", userID))
		return nil, err
	}

	budgets, err := s.budgetRepo.ListBudgetsByUser(ctx, userID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active budgets", slog.String("user_id", userID))
		return nil, err
	}

	activeStatus := domain.GoalActive
	goals, err := s.goalRepo.ListGoalsByUser(ctx, userID, &activeStatus)
	if err != nil {
		s.LogError(ctx, err, "Failed to list active goals", slog.String("user_id", userID))
		return nil, err
	}

	return &dto.DashboardStatsResponse{
		TotalBalance:       totalBalance,
		MonthlyIncome:      monthlyIncome,
		MonthlyExpenses:    monthlyExpenses,
		MonthlySavings:     monthlyIncome.Sub(monthlyExpenses),
		AccountCount:       int(accountCount),
		RecentTransactions: dto.ToTransactionResponses(recent),
		ActiveBudgets:      dto.ToListBudgetResponse(budgets),
		ActiveGoals:        dto.ToListGoalResponse(goals, now),
	}, nil
}
