package repositories

import (
	"context"
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing. Nil fields are unset.
type TransactionFilter struct {
	AccountID  *string
	CategoryID *string
	Type       *domain.TransactionType
	From       *time.Time
	To         *time.Time
	Limit      int
	Offset     int
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a specific transaction by its unique identifier.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactionsByUser retrieves transactions across a user's accounts,
	// newest first, narrowed by the filter.
	ListTransactionsByUser(ctx context.Context, userID string, filter TransactionFilter) ([]domain.Transaction, error)

	// FindDueRecurringByUser retrieves recurring transactions whose next
	// occurrence date is at or before asOf. Read-only surfacing of candidates;
	// nothing advances the schedule.
	FindDueRecurringByUser(ctx context.Context, userID string, asOf time.Time) ([]domain.Transaction, error)

	// CountTransactionsByAccount returns how many transactions reference the
	// account as source or destination.
	CountTransactionsByAccount(ctx context.Context, accountID string) (int64, error)

	// CountTransactionsByCategory returns how many transactions reference the category.
	CountTransactionsByCategory(ctx context.Context, categoryID string) (int64, error)

	// SumAmountByUserTypeAndDateRange sums transaction magnitudes for a user
	// and type within [from, to).
	SumAmountByUserTypeAndDateRange(ctx context.Context, userID string, txType domain.TransactionType, from, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter persists transaction rows together with the account
// balance deltas they imply, each call one atomic database transaction.
type TransactionWriter interface {
	// SaveTransaction inserts the transaction row, then applies balanceChanges
	// to the affected accounts under row locks.
	SaveTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// UpdateTransaction updates the transaction row and applies balanceChanges
	// (empty when the amount did not change).
	UpdateTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error

	// DeleteTransaction applies balanceChanges and removes the row.
	DeleteTransaction(ctx context.Context, txn domain.Transaction, balanceChanges map[string]decimal.Decimal) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
