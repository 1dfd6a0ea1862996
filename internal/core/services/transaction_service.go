package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/core/domain"
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
	portssvc "github.com/pft-app/pft_backend/internal/core/ports/services"
	"github.com/pft-app/pft_backend/internal/dto"
	"github.com/shopspring/decimal"
)

// transactionService implements the TransactionSvcFacade interface.
// Every mutation pairs the transaction row change with the account balance
// deltas it implies, handed to the repository as one atomic unit.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryFacade
	accountRepo     portsrepo.AccountReader
	categoryRepo    portsrepo.CategoryReader
}

// NewTransactionService creates a new transaction service
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, accountReader portsrepo.AccountReader, categoryReader portsrepo.CategoryReader) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: repo,
		accountRepo:     accountReader,
		categoryRepo:    categoryReader,
	}
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// ownedAccount loads an account and verifies it belongs to the user.
func (s *transactionService) ownedAccount(ctx context.Context, userID, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(account.UserID, userID); err != nil {
		return nil, err
	}
	return account, nil
}

// ownedCategory loads a category and verifies it belongs to the user.
func (s *transactionService) ownedCategory(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(category.UserID, userID); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *transactionService) CreateTransaction(ctx context.Context, userID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	amount := req.Amount.Abs()
	if amount.IsZero() {
		return nil, fmt.Errorf("transaction amount must be non-zero: %w", apperrors.ErrValidation)
	}

	account, err := s.ownedAccount(ctx, userID, req.AccountID)
	if err != nil {
		return nil, err
	}

	toAccountID := ""
	if req.TransactionType == domain.Transfer {
		if req.ToAccountID == "" {
			return nil, fmt.Errorf("transfers require a destination account: %w", apperrors.ErrValidation)
		}
		if req.ToAccountID == req.AccountID {
			return nil, fmt.Errorf("transfer source and destination must differ: %w", apperrors.ErrValidation)
		}
		if _, err := s.ownedAccount(ctx, userID, req.ToAccountID); err != nil {
			return nil, err
		}
		toAccountID = req.ToAccountID
	}

	if req.CategoryID != "" {
		if _, err := s.ownedCategory(ctx, userID, req.CategoryID); err != nil {
			return nil, err
		}
	}

	// Funds are checked only when money leaves the account, and only here at
	// creation time. Updates and reversals may legitimately drive a balance
	// negative.
	if req.TransactionType == domain.Expense || req.TransactionType == domain.Transfer {
		if !account.HasSufficientFunds(amount) {
			return nil, fmt.Errorf("account %s balance %s below %s: %w",
				account.AccountID, account.CurrentBalance, amount, apperrors.ErrInsufficientFunds)
		}
	}

	if req.IsRecurring && req.RecurringFrequency == "" {
		return nil, fmt.Errorf("recurring transactions require a frequency: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:      uuid.NewString(),
		AccountID:          req.AccountID,
		ToAccountID:        toAccountID,
		CategoryID:         req.CategoryID,
		Amount:             amount,
		Description:        req.Description,
		TransactionType:    req.TransactionType,
		TransactionDate:    req.TransactionDate,
		ReferenceNumber:    req.ReferenceNumber,
		Notes:              req.Notes,
		Status:             domain.TxnCompleted,
		IsRecurring:        req.IsRecurring,
		RecurringFrequency: req.RecurringFrequency,
		NextRecurringDate:  req.NextRecurringDate,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.transactionRepo.SaveTransaction(ctx, txn, txn.BalanceChanges()); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("transaction_id", txn.TransactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("type", string(txn.TransactionType)),
		slog.String("amount", amount.String()))
	return &txn, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, userID string, transactionID string) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	if _, err := s.ownedAccount(ctx, userID, txn.AccountID); err != nil {
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, userID string, req dto.ListTransactionsRequest) ([]domain.Transaction, error) {
	if req.AccountID != nil {
		if _, err := s.ownedAccount(ctx, userID, *req.AccountID); err != nil {
			return nil, err
		}
	}

	filter := portsrepo.TransactionFilter{
		AccountID:  req.AccountID,
		CategoryID: req.CategoryID,
		Type:       req.Type,
		From:       req.From,
		To:         req.To,
		Limit:      req.Limit,
		Offset:     req.Offset,
	}

	txns, err := s.transactionRepo.ListTransactionsByUser(ctx, userID, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

func (s *transactionService) ListDueRecurring(ctx context.Context, userID string, asOf time.Time) ([]domain.Transaction, error) {
	txns, err := s.transactionRepo.FindDueRecurringByUser(ctx, userID, asOf)
	if err != nil {
		s.LogError(ctx, err, "Failed to list due recurring transactions", slog.String("user_id", userID))
		return nil, err
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// UpdateTransaction applies field changes to an existing transaction. When the
// amount changes, the old amount's full effect is reversed and the new
// amount's full effect applied, so balances land exactly where a delete plus
// re-create would put them. The account, destination and type never change.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}

	oldAmount := txn.Amount

	if req.CategoryID != nil {
		if *req.CategoryID != "" {
			if _, err := s.ownedCategory(ctx, userID, *req.CategoryID); err != nil {
				return nil, err
			}
		}
		txn.CategoryID = *req.CategoryID
	}
	if req.Amount != nil {
		newAmount := req.Amount.Abs()
		if newAmount.IsZero() {
			return nil, fmt.Errorf("transaction amount must be non-zero: %w", apperrors.ErrValidation)
		}
		txn.Amount = newAmount
	}
	if req.Description != nil {
		txn.Description = *req.Description
	}
	if req.TransactionDate != nil {
		txn.TransactionDate = *req.TransactionDate
	}
	if req.ReferenceNumber != nil {
		txn.ReferenceNumber = *req.ReferenceNumber
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.Status != nil {
		txn.Status = *req.Status
	}
	if req.IsRecurring != nil {
		txn.IsRecurring = *req.IsRecurring
	}
	if req.RecurringFrequency != nil {
		txn.RecurringFrequency = *req.RecurringFrequency
	}
	if req.NextRecurringDate != nil {
		txn.NextRecurringDate = req.NextRecurringDate
	}
	if txn.IsRecurring && txn.RecurringFrequency == "" {
		return nil, fmt.Errorf("recurring transactions require a frequency: %w", apperrors.ErrValidation)
	}
	txn.UpdatedAt = time.Now()

	balanceChanges := map[string]decimal.Decimal{}
	if !txn.Amount.Equal(oldAmount) {
		balanceChanges = txn.ReversalChanges(oldAmount)
		for accountID, delta := range txn.BalanceChanges() {
			balanceChanges[accountID] = balanceChanges[accountID].Add(delta)
		}
	}

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn, balanceChanges); err != nil {
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated", slog.String("transaction_id", transactionID))
	return txn, nil
}

// DeleteTransaction removes a transaction and restores the involved account
// balances to what they were before it was recorded.
func (s *transactionService) DeleteTransaction(ctx context.Context, userID string, transactionID string) error {
	txn, err := s.GetTransactionByID(ctx, userID, transactionID)
	if err != nil {
		return err
	}

	if err := s.transactionRepo.DeleteTransaction(ctx, *txn, txn.ReversalChanges(txn.Amount)); err != nil {
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	return nil
}
