package repositories

import (
	"context"

	"github.com/pft-app/pft_backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a specific category by its unique identifier.
	FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error)

	// ListCategoriesByUser retrieves all categories owned by a user, optionally
	// filtered by type (pass nil for no filter).
	ListCategoriesByUser(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error)

	// CategoryNameExists reports whether the user already has a category with
	// the given name, excluding the category with excludeID (pass "" to check all).
	CategoryNameExists(ctx context.Context, userID string, name string, excludeID string) (bool, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category's details.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category row.
	DeleteCategory(ctx context.Context, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}
