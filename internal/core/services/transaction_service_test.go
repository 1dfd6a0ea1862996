package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/core/domain"
	portssvc "github.com/pft-app/pft_backend/internal/core/ports/services"
	"github.com/pft-app/pft_backend/internal/core/services"
	"github.com/pft-app/pft_backend/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockAccountRepo  *MockAccountRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.TransactionSvcFacade

	userID  string
	account *domain.Account
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockAccountRepo = new(MockAccountRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewTransactionService(suite.mockTxnRepo, suite.mockAccountRepo, suite.mockCategoryRepo)

	suite.userID = uuid.NewString()
	suite.account = &domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Checking",
		AccountType:    domain.Checking,
		CurrentBalance: decimal.NewFromInt(100),
		Status:         domain.AccountActive,
	}
}

func (suite *TransactionServiceTestSuite) expenseRequest(amount int64) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		AccountID:       suite.account.AccountID,
		Amount:          decimal.NewFromInt(amount),
		Description:     "Groceries",
		TransactionType: domain.Expense,
		TransactionDate: time.Now(),
	}
}

// --- Test Cases ---

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseDebitsAccount() {
	ctx := context.Background()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 1 && changes[suite.account.AccountID].Equal(decimal.NewFromInt(-30))
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.expenseRequest(30))

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	suite.NotEmpty(txn.TransactionID)
	suite.Equal(domain.TxnCompleted, txn.Status)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(30)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeCreditsAccount() {
	ctx := context.Background()
	req := suite.expenseRequest(40)
	req.TransactionType = domain.Income

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.account.AccountID].Equal(decimal.NewFromInt(40))
	})).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_NegativeAmountNormalized() {
	ctx := context.Background()
	req := suite.expenseRequest(0)
	req.Amount = decimal.NewFromInt(-25)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Amount.Equal(decimal.NewFromInt(25))
	}), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.account.AccountID].Equal(decimal.NewFromInt(-25))
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(decimal.NewFromInt(25)))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ZeroAmountRejected() {
	ctx := context.Background()
	req := suite.expenseRequest(0)

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_InsufficientFunds() {
	ctx := context.Background()
	suite.account.CurrentBalance = decimal.NewFromInt(10)

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.expenseRequest(30))

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrInsufficientFunds)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeIgnoresBalance() {
	ctx := context.Background()
	suite.account.CurrentBalance = decimal.Zero
	req := suite.expenseRequest(500)
	req.TransactionType = domain.Income

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.Anything).Return(nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferMovesBothBalances() {
	ctx := context.Background()
	destination := &domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Savings",
		AccountType:    domain.Savings,
		CurrentBalance: decimal.NewFromInt(5),
		Status:         domain.AccountActive,
	}
	req := suite.expenseRequest(50)
	req.TransactionType = domain.Transfer
	req.ToAccountID = destination.AccountID

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, destination.AccountID).Return(destination, nil).Once()
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 2 &&
			changes[suite.account.AccountID].Equal(decimal.NewFromInt(-50)) &&
			changes[destination.AccountID].Equal(decimal.NewFromInt(50))
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(destination.AccountID, txn.ToAccountID)
	suite.mockTxnRepo.AssertExpectations(suite.T())
	suite.mockAccountRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferToSameAccountRejected() {
	ctx := context.Background()
	req := suite.expenseRequest(50)
	req.TransactionType = domain.Transfer
	req.ToAccountID = suite.account.AccountID

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_TransferWithoutDestinationRejected() {
	ctx := context.Background()
	req := suite.expenseRequest(50)
	req.TransactionType = domain.Transfer

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ForeignAccountForbidden() {
	ctx := context.Background()
	suite.account.UserID = uuid.NewString() // someone else's account

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.expenseRequest(30))

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RecurringRequiresFrequency() {
	ctx := context.Background()
	req := suite.expenseRequest(30)
	req.IsRecurring = true

	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) existingExpense(amount int64) *domain.Transaction {
	return &domain.Transaction{
		TransactionID:   uuid.NewString(),
		AccountID:       suite.account.AccountID,
		Amount:          decimal.NewFromInt(amount),
		Description:     "Groceries",
		TransactionType: domain.Expense,
		TransactionDate: time.Now().Add(-24 * time.Hour),
		Status:          domain.TxnCompleted,
	}
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AmountChangeReversesAndReapplies() {
	ctx := context.Background()
	existing := suite.existingExpense(30)
	newAmount := decimal.NewFromInt(50)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	// Reversing -30 then applying -50 nets to -20.
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 1 && changes[suite.account.AccountID].Equal(decimal.NewFromInt(-20))
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, req)

	suite.Require().NoError(err)
	suite.True(updated.Amount.Equal(newAmount))
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NoAmountChangeLeavesBalancesAlone() {
	ctx := context.Background()
	existing := suite.existingExpense(30)
	newDescription := "Weekly groceries"
	req := dto.UpdateTransactionRequest{Description: &newDescription}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 0
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, req)

	suite.Require().NoError(err)
	suite.Equal(newDescription, updated.Description)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_AllowsOverdraw() {
	ctx := context.Background()
	// Balance 10, expense grows from 5 to 200. No funds re-check on update.
	suite.account.CurrentBalance = decimal.NewFromInt(10)
	existing := suite.existingExpense(5)
	newAmount := decimal.NewFromInt(200)
	req := dto.UpdateTransactionRequest{Amount: &newAmount}

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("UpdateTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.account.AccountID].Equal(decimal.NewFromInt(-195))
	})).Return(nil).Once()

	_, err := suite.service.UpdateTransaction(ctx, suite.userID, existing.TransactionID, req)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_RestoresBalance() {
	ctx := context.Background()
	existing := suite.existingExpense(30)

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return len(changes) == 1 && changes[suite.account.AccountID].Equal(decimal.NewFromInt(30))
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, existing.TransactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_TransferRestoresBothBalances() {
	ctx := context.Background()
	destinationID := uuid.NewString()
	existing := suite.existingExpense(50)
	existing.TransactionType = domain.Transfer
	existing.ToAccountID = destinationID

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()
	suite.mockTxnRepo.On("DeleteTransaction", ctx, mock.AnythingOfType("domain.Transaction"), mock.MatchedBy(func(changes map[string]decimal.Decimal) bool {
		return changes[suite.account.AccountID].Equal(decimal.NewFromInt(50)) &&
			changes[destinationID].Equal(decimal.NewFromInt(-50))
	})).Return(nil).Once()

	err := suite.service.DeleteTransaction(ctx, suite.userID, existing.TransactionID)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestGetTransactionByID_ForeignAccountForbidden() {
	ctx := context.Background()
	existing := suite.existingExpense(30)
	suite.account.UserID = uuid.NewString()

	suite.mockTxnRepo.On("FindTransactionByID", ctx, existing.TransactionID).Return(existing, nil).Once()
	suite.mockAccountRepo.On("FindAccountByID", ctx, suite.account.AccountID).Return(suite.account, nil).Once()

	txn, err := suite.service.GetTransactionByID(ctx, suite.userID, existing.TransactionID)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ValidatesFilterAccountOwnership() {
	ctx := context.Background()
	foreignAccount := &domain.Account{
		AccountID: uuid.NewString(),
		UserID:    uuid.NewString(),
	}
	req := dto.ListTransactionsRequest{AccountID: &foreignAccount.AccountID}

	suite.mockAccountRepo.On("FindAccountByID", ctx, foreignAccount.AccountID).Return(foreignAccount, nil).Once()

	txns, err := suite.service.ListTransactions(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(txns)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "ListTransactionsByUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
