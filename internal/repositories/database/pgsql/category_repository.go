package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/core/domain"
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
	"github.com/pft-app/pft_backend/internal/models"
)

type PgxCategoryRepository struct {
	pool *pgxpool.Pool
}

// newPgxCategoryRepository creates a new repository for category data.
func newPgxCategoryRepository(pool *pgxpool.Pool) portsrepo.CategoryRepositoryFacade {
	return &PgxCategoryRepository{pool: pool}
}

// Ensure PgxCategoryRepository implements portsrepo.CategoryRepositoryFacade
var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

// Helper to convert domain.Category to models.Category for DB storage
func toModelCategory(d domain.Category) models.Category {
	return models.Category{
		CategoryID:   d.CategoryID,
		UserID:       d.UserID,
		Name:         d.Name,
		Description:  d.Description,
		CategoryType: string(d.CategoryType),
		Color:        d.Color,
		Icon:         d.Icon,
		IsDefault:    d.IsDefault,
		Status:       string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
}

// Helper to convert models.Category from DB to domain.Category
func toDomainCategory(m models.Category) domain.Category {
	return domain.Category{
		CategoryID:   m.CategoryID,
		UserID:       m.UserID,
		Name:         m.Name,
		Description:  m.Description,
		CategoryType: domain.CategoryType(m.CategoryType),
		Color:        m.Color,
		Icon:         m.Icon,
		IsDefault:    m.IsDefault,
		Status:       domain.CategoryStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
}

const categoryColumns = `category_id, user_id, name, description, category_type, color, icon, is_default, status, created_at, updated_at`

func scanCategory(row pgx.Row) (models.Category, error) {
	var m models.Category
	err := row.Scan(
		&m.CategoryID,
		&m.UserID,
		&m.Name,
		&m.Description,
		&m.CategoryType,
		&m.Color,
		&m.Icon,
		&m.IsDefault,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveCategory inserts a new category.
func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	modelCat := toModelCategory(category)

	query := `
		INSERT INTO categories (` + categoryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.UserID,
		modelCat.Name,
		modelCat.Description,
		modelCat.CategoryType,
		modelCat.Color,
		modelCat.Icon,
		modelCat.IsDefault,
		modelCat.Status,
		modelCat.CreatedAt,
		modelCat.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, modelCat.Name)
		}
		return fmt.Errorf("failed to save category %s: %w", modelCat.CategoryID, err)
	}
	return nil
}

// FindCategoryByID retrieves a category by its ID.
func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE category_id = $1;`

	modelCat, err := scanCategory(r.pool.QueryRow(ctx, query, categoryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}

	domainCat := toDomainCategory(modelCat)
	return &domainCat, nil
}

// ListCategoriesByUser retrieves a user's categories, optionally filtered by type.
func (r *PgxCategoryRepository) ListCategoriesByUser(ctx context.Context, userID string, categoryType *domain.CategoryType) ([]domain.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE user_id = $1`
	args := []any{userID}
	if categoryType != nil {
		query += ` AND category_type = $2`
		args = append(args, string(*categoryType))
	}
	query += ` ORDER BY name;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for user %s: %w", userID, err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		modelCat, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan category row for user %s: %w", userID, err)
		}
		categories = append(categories, toDomainCategory(modelCat))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating category rows for user %s: %w", userID, rows.Err())
	}

	return categories, nil
}

// CategoryNameExists reports whether the user already has a category with the
// given name. Matching is case-insensitive; excludeID skips one category,
// which update paths use to exclude the category being renamed.
func (r *PgxCategoryRepository) CategoryNameExists(ctx context.Context, userID string, name string, excludeID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM categories
			WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND category_id != $3
		);
	`
	var exists bool
	err := r.pool.QueryRow(ctx, query, userID, name, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check category name %q for user %s: %w", name, userID, err)
	}
	return exists, nil
}

// UpdateCategory updates an existing category in the database.
func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	modelCat := toModelCategory(category)

	query := `
		UPDATE categories
		SET name = $2, description = $3, color = $4, icon = $5, status = $6, updated_at = $7
		WHERE category_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelCat.CategoryID,
		modelCat.Name,
		modelCat.Description,
		modelCat.Color,
		modelCat.Icon,
		modelCat.Status,
		modelCat.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: category named %q already exists", apperrors.ErrDuplicate, modelCat.Name)
		}
		return fmt.Errorf("failed to execute update category %s: %w", modelCat.CategoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category row.
func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE category_id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
