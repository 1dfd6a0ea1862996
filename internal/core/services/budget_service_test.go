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

type BudgetServiceTestSuite struct {
	suite.Suite
	mockBudgetRepo   *MockBudgetRepository
	mockCategoryRepo *MockCategoryRepository
	service          portssvc.BudgetSvcFacade

	userID string
}

func (suite *BudgetServiceTestSuite) SetupTest() {
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.service = services.NewBudgetService(suite.mockBudgetRepo, suite.mockCategoryRepo)
	suite.userID = uuid.NewString()
}

func (suite *BudgetServiceTestSuite) ownedBudget() *domain.Budget {
	return &domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         suite.userID,
		Name:           "Monthly groceries",
		Amount:         decimal.NewFromInt(400),
		SpentAmount:    decimal.NewFromInt(150),
		Period:         domain.BudgetMonthly,
		StartDate:      time.Now().AddDate(0, 0, -10),
		AlertThreshold: 80,
		IsActive:       true,
		Status:         domain.BudgetActive,
	}
}

// --- Test Cases ---

func (suite *BudgetServiceTestSuite) TestCreateBudget_AppliesDefaults() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Name:      "Monthly groceries",
		Amount:    decimal.NewFromInt(400),
		Period:    domain.BudgetMonthly,
		StartDate: time.Now(),
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(budget domain.Budget) bool {
		return budget.AlertThreshold == domain.DefaultAlertThreshold &&
			budget.SpentAmount.IsZero() &&
			budget.IsActive &&
			budget.Status == domain.BudgetActive
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(budget)
	suite.Equal(domain.DefaultAlertThreshold, budget.AlertThreshold)
	suite.True(budget.SpentAmount.IsZero())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_ExplicitAlertThreshold() {
	ctx := context.Background()
	threshold := 50
	req := dto.CreateBudgetRequest{
		Name:           "Dining out",
		Amount:         decimal.NewFromInt(200),
		Period:         domain.BudgetMonthly,
		StartDate:      time.Now(),
		AlertThreshold: &threshold,
	}

	suite.mockBudgetRepo.On("SaveBudget", ctx, mock.MatchedBy(func(budget domain.Budget) bool {
		return budget.AlertThreshold == 50
	})).Return(nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Equal(50, budget.AlertThreshold)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_NonPositiveAmountRejected() {
	ctx := context.Background()
	req := dto.CreateBudgetRequest{
		Name:      "Broken",
		Amount:    decimal.Zero,
		Period:    domain.BudgetMonthly,
		StartDate: time.Now(),
	}

	budget, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestCreateBudget_ForeignCategoryForbidden() {
	ctx := context.Background()
	category := &domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     uuid.NewString(),
		Name:       "Groceries",
	}
	req := dto.CreateBudgetRequest{
		Name:       "Monthly groceries",
		CategoryID: category.CategoryID,
		Amount:     decimal.NewFromInt(400),
		Period:     domain.BudgetMonthly,
		StartDate:  time.Now(),
	}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()

	budget, err := suite.service.CreateBudget(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(budget)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "SaveBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestGetBudgetByID_ForeignBudgetForbidden() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	budget.UserID = uuid.NewString()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()

	found, err := suite.service.GetBudgetByID(ctx, suite.userID, budget.BudgetID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_DeactivatingSyncsStatus() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	inactive := false
	req := dto.UpdateBudgetRequest{IsActive: &inactive}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(updated domain.Budget) bool {
		return !updated.IsActive && updated.Status == domain.BudgetInactive
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().NoError(err)
	suite.False(updated.IsActive)
	suite.Equal(domain.BudgetInactive, updated.Status)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_RescopesCategory() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	category := &domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     suite.userID,
		Name:       "Dining",
	}
	req := dto.UpdateBudgetRequest{CategoryID: &category.CategoryID}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(updated domain.Budget) bool {
		return updated.CategoryID == category.CategoryID
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().NoError(err)
	suite.Equal(category.CategoryID, updated.CategoryID)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_ClearsCategory() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	budget.CategoryID = uuid.NewString()
	empty := ""
	req := dto.UpdateBudgetRequest{CategoryID: &empty}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("UpdateBudget", ctx, mock.MatchedBy(func(updated domain.Budget) bool {
		return updated.CategoryID == ""
	})).Return(nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().NoError(err)
	suite.Empty(updated.CategoryID)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "FindCategoryByID", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_ForeignCategoryForbidden() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	category := &domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     uuid.NewString(),
	}
	req := dto.UpdateBudgetRequest{CategoryID: &category.CategoryID}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestUpdateBudget_NonPositiveAmountRejected() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	bad := decimal.NewFromInt(-10)
	req := dto.UpdateBudgetRequest{Amount: &bad}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()

	updated, err := suite.service.UpdateBudget(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBudgetRepo.AssertNotCalled(suite.T(), "UpdateBudget", mock.Anything, mock.Anything)
}

func (suite *BudgetServiceTestSuite) TestAddSpent_UsesAbsoluteDelta() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	req := dto.AdjustSpentRequest{Amount: decimal.NewFromInt(-60)}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, budget.BudgetID, mock.MatchedBy(func(delta decimal.Decimal) bool {
		return delta.Equal(decimal.NewFromInt(60))
	}), mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.AddSpent(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().NoError(err)
	suite.True(updated.SpentAmount.Equal(decimal.NewFromInt(210)))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestAddSpent_MayExceedLimit() {
	ctx := context.Background()
	budget := suite.ownedBudget()
	req := dto.AdjustSpentRequest{Amount: decimal.NewFromInt(500)}

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("AdjustSpentAmount", ctx, budget.BudgetID, mock.Anything, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.AddSpent(ctx, suite.userID, budget.BudgetID, req)

	suite.Require().NoError(err)
	suite.True(updated.SpentAmount.GreaterThan(updated.Amount))
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestResetSpent() {
	ctx := context.Background()
	budget := suite.ownedBudget()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("ResetSpentAmount", ctx, budget.BudgetID, mock.AnythingOfType("time.Time")).Return(nil).Once()

	updated, err := suite.service.ResetSpent(ctx, suite.userID, budget.BudgetID)

	suite.Require().NoError(err)
	suite.True(updated.SpentAmount.IsZero())
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func (suite *BudgetServiceTestSuite) TestDeleteBudget_Success() {
	ctx := context.Background()
	budget := suite.ownedBudget()

	suite.mockBudgetRepo.On("FindBudgetByID", ctx, budget.BudgetID).Return(budget, nil).Once()
	suite.mockBudgetRepo.On("DeleteBudget", ctx, budget.BudgetID).Return(nil).Once()

	err := suite.service.DeleteBudget(ctx, suite.userID, budget.BudgetID)

	suite.Require().NoError(err)
	suite.mockBudgetRepo.AssertExpectations(suite.T())
}

func TestBudgetServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BudgetServiceTestSuite))
}
