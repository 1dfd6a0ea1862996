package services

import (
	"context"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/pft-app/pft_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves a specific account owned by the user.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// ListAccounts retrieves all accounts belonging to the user.
	ListAccounts(ctx context.Context, userID string) ([]domain.Account, error)

	// GetDefaultAccount retrieves the user's default account, if any.
	GetDefaultAccount(ctx context.Context, userID string) (*domain.Account, error)

	// TotalBalance sums current balances across the user's accounts.
	TotalBalance(ctx context.Context, userID string) (decimal.Decimal, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account. The user's first account becomes
	// the default automatically.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)

	// SetDefaultAccount marks the account as the user's default, clearing any
	// previous default.
	SetDefaultAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// DeleteAccount removes an account that has no transactions.
	DeleteAccount(ctx context.Context, userID string, accountID string) error
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
}
