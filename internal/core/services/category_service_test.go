package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/core/domain"
	portssvc "github.com/pft-app/pft_backend/internal/core/ports/services"
	"github.com/pft-app/pft_backend/internal/core/services"
	"github.com/pft-app/pft_backend/internal/dto"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	mockTxnRepo      *MockTransactionRepository
	mockBudgetRepo   *MockBudgetRepository
	service          portssvc.CategorySvcFacade

	userID string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockBudgetRepo = new(MockBudgetRepository)
	suite.service = services.NewCategoryService(suite.mockCategoryRepo, suite.mockTxnRepo, suite.mockBudgetRepo)
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) ownedCategory() *domain.Category {
	return &domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       suite.userID,
		Name:         "Groceries",
		CategoryType: domain.CategoryExpense,
		Status:       domain.CategoryActive,
	}
}

// --- Test Cases ---

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{
		Name:         "Groceries",
		CategoryType: domain.CategoryExpense,
	}

	suite.mockCategoryRepo.On("CategoryNameExists", ctx, suite.userID, "Groceries", "").Return(false, nil).Once()
	suite.mockCategoryRepo.On("SaveCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.userID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(category)
	suite.NotEmpty(category.CategoryID)
	suite.Equal(domain.CategoryActive, category.Status)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_DuplicateName() {
	ctx := context.Background()
	req := dto.CreateCategoryRequest{
		Name:         "Groceries",
		CategoryType: domain.CategoryExpense,
	}

	suite.mockCategoryRepo.On("CategoryNameExists", ctx, suite.userID, "Groceries", "").Return(true, nil).Once()

	category, err := suite.service.CreateCategory(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.Nil(category)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestGetCategoryByID_ForeignCategoryForbidden() {
	ctx := context.Background()
	category := suite.ownedCategory()
	category.UserID = uuid.NewString()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()

	found, err := suite.service.GetCategoryByID(ctx, suite.userID, category.CategoryID)

	suite.Require().Error(err)
	suite.Nil(found)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_RenameChecksOtherCategories() {
	ctx := context.Background()
	category := suite.ownedCategory()
	newName := "Food"
	req := dto.UpdateCategoryRequest{Name: &newName}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockCategoryRepo.On("CategoryNameExists", ctx, suite.userID, newName, category.CategoryID).Return(false, nil).Once()
	suite.mockCategoryRepo.On("UpdateCategory", ctx, mock.MatchedBy(func(updated domain.Category) bool {
		return updated.Name == newName
	})).Return(nil).Once()

	updated, err := suite.service.UpdateCategory(ctx, suite.userID, category.CategoryID, req)

	suite.Require().NoError(err)
	suite.Equal(newName, updated.Name)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_SameNameSkipsUniquenessCheck() {
	ctx := context.Background()
	category := suite.ownedCategory()
	sameName := category.Name
	req := dto.UpdateCategoryRequest{Name: &sameName}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockCategoryRepo.On("UpdateCategory", ctx, mock.AnythingOfType("domain.Category")).Return(nil).Once()

	_, err := suite.service.UpdateCategory(ctx, suite.userID, category.CategoryID, req)

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "CategoryNameExists", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestUpdateCategory_RenameToExistingName() {
	ctx := context.Background()
	category := suite.ownedCategory()
	newName := "Food"
	req := dto.UpdateCategoryRequest{Name: &newName}

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockCategoryRepo.On("CategoryNameExists", ctx, suite.userID, newName, category.CategoryID).Return(true, nil).Once()

	updated, err := suite.service.UpdateCategory(ctx, suite.userID, category.CategoryID, req)

	suite.Require().Error(err)
	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "UpdateCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_DefaultBlocked() {
	ctx := context.Background()
	category := suite.ownedCategory()
	category.IsDefault = true

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.userID, category.CategoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReferencedByTransactions() {
	ctx := context.Background()
	category := suite.ownedCategory()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByCategory", ctx, category.CategoryID).Return(int64(4), nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.userID, category.CategoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_ReferencedByBudgets() {
	ctx := context.Background()
	category := suite.ownedCategory()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByCategory", ctx, category.CategoryID).Return(int64(0), nil).Once()
	suite.mockBudgetRepo.On("CountBudgetsByCategory", ctx, category.CategoryID).Return(int64(1), nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.userID, category.CategoryID)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrConflict)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "DeleteCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestDeleteCategory_Success() {
	ctx := context.Background()
	category := suite.ownedCategory()

	suite.mockCategoryRepo.On("FindCategoryByID", ctx, category.CategoryID).Return(category, nil).Once()
	suite.mockTxnRepo.On("CountTransactionsByCategory", ctx, category.CategoryID).Return(int64(0), nil).Once()
	suite.mockBudgetRepo.On("CountBudgetsByCategory", ctx, category.CategoryID).Return(int64(0), nil).Once()
	suite.mockCategoryRepo.On("DeleteCategory", ctx, category.CategoryID).Return(nil).Once()

	err := suite.service.DeleteCategory(ctx, suite.userID, category.CategoryID)

	suite.Require().NoError(err)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
