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

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	transactionRepo portsrepo.TransactionReader
}

// NewAccountService creates a new account service. The transaction reader is
// used to block deletion of accounts that still have transactions.
func NewAccountService(repo portsrepo.AccountRepositoryFacade, txnReader portsrepo.TransactionReader) portssvc.AccountSvcFacade {
	return &accountService{
		accountRepo:     repo,
		transactionRepo: txnReader,
	}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	count, err := s.accountRepo.CountAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count user accounts", slog.String("user_id", userID))
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:       uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		AccountType:     req.AccountType,
		InitialBalance:  req.InitialBalance,
		CurrentBalance:  req.InitialBalance,
		AccountNumber:   req.AccountNumber,
		InstitutionName: req.InstitutionName,
		Color:           req.Color,
		Icon:            req.Icon,
		Status:          domain.AccountActive,
		IsDefault:       count == 0, // first account becomes the default
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", account.AccountID), slog.Bool("is_default", account.IsDefault))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if err := requireOwner(account.UserID, userID); err != nil {
		return nil, err
	}
	return account, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccountsByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	if accounts == nil {
		return []domain.Account{}, nil
	}
	return accounts, nil
}

func (s *accountService) GetDefaultAccount(ctx context.Context, userID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindDefaultAccountByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find default account", slog.String("user_id", userID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) TotalBalance(ctx context.Context, userID string) (decimal.Decimal, error) {
	total, err := s.accountRepo.SumBalancesByUser(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum account balances", slog.String("user_id", userID))
		return decimal.Zero, err
	}
	return total, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		account.Name = *req.Name
	}
	if req.AccountNumber != nil {
		account.AccountNumber = *req.AccountNumber
	}
	if req.InstitutionName != nil {
		account.InstitutionName = *req.InstitutionName
	}
	if req.Color != nil {
		account.Color = *req.Color
	}
	if req.Icon != nil {
		account.Icon = *req.Icon
	}
	if req.Status != nil {
		account.Status = *req.Status
	}
	account.UpdatedAt = time.Now()

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated", slog.String("account_id", accountID))
	return account, nil
}

// SetDefaultAccount marks the account as the user's default. Clearing the
// previous default and setting the new one happen in one statement pair inside
// the repository, so there is never more than one default per user.
func (s *accountService) SetDefaultAccount(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	if account.IsDefault {
		return account, nil
	}

	now := time.Now()
	if err := s.accountRepo.SetDefaultAccount(ctx, userID, accountID, now); err != nil {
		s.LogError(ctx, err, "Failed to set default account", slog.String("account_id", accountID))
		return nil, err
	}

	account.IsDefault = true
	account.UpdatedAt = now
	s.LogInfo(ctx, "Default account changed", slog.String("account_id", accountID))
	return account, nil
}

// DeleteAccount removes an account. Accounts that still have transactions
// cannot be deleted; the ledger stays intact.
func (s *accountService) DeleteAccount(ctx context.Context, userID string, accountID string) error {
	if _, err := s.GetAccountByID(ctx, userID, accountID); err != nil {
		return err
	}

	count, err := s.transactionRepo.CountTransactionsByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count account transactions", slog.String("account_id", accountID))
		return err
	}
	if count > 0 {
		return fmt.Errorf("account has %d transactions: %w", count, apperrors.ErrConflict)
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted", slog.String("account_id", accountID))
	return nil
}
