package services

import (
	"context"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/pft-app/pft_backend/internal/dto"
)

// CategoryReaderSvc defines read operations for category data
type CategoryReaderSvc interface {
	// GetCategoryByID retrieves a specific category owned by the user.
	GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error)

	// ListCategories retrieves the user's categories, optionally filtered by type.
	ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error)
}

// CategoryWriterSvc defines write operations for category data
type CategoryWriterSvc interface {
	// CreateCategory persists a new category. Names are unique per user.
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)

	// DeleteCategory removes a category that is not a default and is not
	// referenced by transactions or budgets.
	DeleteCategory(ctx context.Context, userID string, categoryID string) error
}

// CategorySvcFacade combines all category-related service interfaces
type CategorySvcFacade interface {
	CategoryReaderSvc
	CategoryWriterSvc
}
