package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccountsByUser retrieves all accounts owned by a user, default first.
	ListAccountsByUser(ctx context.Context, userID string) ([]domain.Account, error)

	// FindDefaultAccountByUser retrieves the user's default account, if any.
	FindDefaultAccountByUser(ctx context.Context, userID string) (*domain.Account, error)

	// CountAccountsByUser returns how many accounts a user owns.
	CountAccountsByUser(ctx context.Context, userID string) (int64, error)

	// SumBalancesByUser returns the sum of current balances across a user's accounts.
	SumBalancesByUser(ctx context.Context, userID string) (decimal.Decimal, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row.
	DeleteAccount(ctx context.Context, accountID string) error

	// SetDefaultAccount clears the previous default and marks the given account
	// as default for the user, atomically.
	SetDefaultAccount(ctx context.Context, userID string, accountID string, now time.Time) error
}

// AccountBalanceSupport defines the operations the transaction lifecycle uses
// to mutate balances inside its transactional boundary.
type AccountBalanceSupport interface {
	// FindAccountsByIDsForUpdate selects accounts and locks them for update within a transaction.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// UpdateAccountBalancesInTx applies per-account balance deltas within a given transaction.
	UpdateAccountBalancesInTx(ctx context.Context, tx pgx.Tx, balanceChanges map[string]decimal.Decimal, now time.Time) error
}

// AccountRepositoryFacade combines all account-related repository interfaces
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}
