package services

import (
	"context"
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/pft-app/pft_backend/internal/dto"
)

// TransactionReaderSvc defines read operations for transaction data
type TransactionReaderSvc interface {
	// GetTransactionByID retrieves a specific transaction owned by the user.
	GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves the user's transactions, newest first,
	// narrowed by the request filters.
	ListTransactions(ctx context.Context, userID string, req dto.ListTransactionsRequest) ([]domain.Transaction, error)

	// ListDueRecurring retrieves recurring transactions whose next occurrence
	// is due at or before asOf.
	ListDueRecurring(ctx context.Context, userID string, asOf time.Time) ([]domain.Transaction, error)
}

// TransactionWriterSvc defines write operations for transaction data.
// Every mutation keeps account balances consistent with the stored rows.
type TransactionWriterSvc interface {
	// CreateTransaction persists a new transaction and applies its balance
	// effect to the involved accounts.
	CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)

	// UpdateTransaction updates an existing transaction, reversing the old
	// amount's effect and applying the new one.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)

	// DeleteTransaction removes a transaction and reverses its balance effect.
	DeleteTransaction(ctx context.Context, userID string, transactionID string) error
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
