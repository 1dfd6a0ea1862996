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
)

// categoryService implements the CategorySvcFacade interface
type categoryService struct {
	BaseService
	categoryRepo    portsrepo.CategoryRepositoryFacade
	transactionRepo portsrepo.TransactionReader
	budgetRepo      portsrepo.BudgetReader
}

// NewCategoryService creates a new category service. Transaction and budget
// readers guard against deleting categories that are still referenced.
func NewCategoryService(repo portsrepo.CategoryRepositoryFacade, txnReader portsrepo.TransactionReader, budgetReader portsrepo.BudgetReader) portssvc.CategorySvcFacade {
	return &categoryService{
		categoryRepo:    repo,
		transactionRepo: txnReader,
		budgetRepo:      budgetReader,
	}
}

var _ portssvc.CategorySvcFacade = (*categoryService)(nil)

func (s *categoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	exists, err := s.categoryRepo.CategoryNameExists(ctx, userID, req.Name, "")
	if err != nil {
		s.LogError(ctx, err, "Failed to check category name", slog.String("user_id", userID))
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("category %q already exists: %w", req.Name, apperrors.ErrDuplicate)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID:   uuid.NewString(),
		UserID:       userID,
		Name:         req.Name,
		Description:  req.Description,
		CategoryType: req.CategoryType,
		Color:        req.Color,
		Icon:         req.Icon,
		Status:       domain.CategoryActive,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		s.LogError(ctx, err, "Failed to save category", slog.String("category_id", category.CategoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category created", slog.String("category_id", category.CategoryID))
	return &category, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, userID string, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, categoryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find category", slog.String("category_id", categoryID))
		}
		return nil, err
	}
	if err := requireOwner(category.UserID, userID); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *categoryService) ListCategories(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategoriesByUser(ctx, userID, categoryType)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	if categories == nil {
		return []domain.Category{}, nil
	}
	return categories, nil
}

func (s *categoryService) UpdateCategory(ctx context.Context, userID string, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil && *req.Name != category.Name {
		exists, err := s.categoryRepo.CategoryNameExists(ctx, userID, *req.Name, categoryID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check category name", slog.String("category_id", categoryID))
			return nil, err
		}
		if exists {
			return nil, fmt.Errorf("category %q already exists: %w", *req.Name, apperrors.ErrDuplicate)
		}
		category.Name = *req.Name
	}
	if req.Description != nil {
		category.Description = *req.Description
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	if req.Status != nil {
		category.Status = *req.Status
	}
	category.UpdatedAt = time.Now()

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		s.LogError(ctx, err, "Failed to update category", slog.String("category_id", categoryID))
		return nil, err
	}

	s.LogInfo(ctx, "Category updated", slog.String("category_id", categoryID))
	return category, nil
}

// DeleteCategory removes a category. Defaults and categories still referenced
// by transactions or budgets cannot be deleted.
func (s *categoryService) DeleteCategory(ctx context.Context, userID string, categoryID string) error {
	category, err := s.GetCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return err
	}

	if category.IsDefault {
		return fmt.Errorf("default categories cannot be deleted: %w", apperrors.ErrConflict)
	}

	txnCount, err := s.transactionRepo.CountTransactionsByCategory(ctx, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count category transactions", slog.String("category_id", categoryID))
		return err
	}
	if txnCount > 0 {
		return fmt.Errorf("category has %d transactions: %w", txnCount, apperrors.ErrConflict)
	}

	budgetCount, err := s.budgetRepo.CountBudgetsByCategory(ctx, categoryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to count category budgets", slog.String("category_id", categoryID))
		return err
	}
	if budgetCount > 0 {
		return fmt.Errorf("category has %d budgets: %w", budgetCount, apperrors.ErrConflict)
	}

	if err := s.categoryRepo.DeleteCategory(ctx, categoryID); err != nil {
		s.LogError(ctx, err, "Failed to delete category", slog.String("category_id", categoryID))
		return err
	}

	s.LogInfo(ctx, "Category deleted", slog.String("category_id", categoryID))
	return nil
}
