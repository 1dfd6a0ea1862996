package dto

import (
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a new category.
type CreateCategoryRequest struct {
	Name         string              `json:"name" binding:"required"`
	Description  string              `json:"description"`
	CategoryType domain.CategoryType `json:"categoryType" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	Color        string              `json:"color"`
	Icon         string              `json:"icon"`
}

// UpdateCategoryRequest defines the data allowed for updating a category.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateCategoryRequest struct {
	Name        *string                `json:"name"`
	Description *string                `json:"description"`
	Color       *string                `json:"color"`
	Icon        *string                `json:"icon"`
	Status      *domain.CategoryStatus `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// ListCategoriesParams defines query parameters for listing categories.
type ListCategoriesParams struct {
	Type *domain.CategoryType `form:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID   string                `json:"categoryID"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	CategoryType domain.CategoryType   `json:"categoryType"`
	Color        string                `json:"color"`
	Icon         string                `json:"icon"`
	IsDefault    bool                  `json:"isDefault"`
	Status       domain.CategoryStatus `json:"status"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(cat *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:   cat.CategoryID,
		Name:         cat.Name,
		Description:  cat.Description,
		CategoryType: cat.CategoryType,
		Color:        cat.Color,
		Icon:         cat.Icon,
		IsDefault:    cat.IsDefault,
		Status:       cat.Status,
		CreatedAt:    cat.CreatedAt,
		UpdatedAt:    cat.UpdatedAt,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to a slice of CategoryResponse DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		res[i] = ToCategoryResponse(&cat)
	}
	return res
}
