package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pft-app/pft_backend/internal/apperrors"
	"github.com/pft-app/pft_backend/internal/core/domain"
	portsrepo "github.com/pft-app/pft_backend/internal/core/ports/repositories"
	"github.com/pft-app/pft_backend/internal/models"
	"github.com/shopspring/decimal"
)

type PgxBudgetRepository struct {
	pool *pgxpool.Pool
}

// newPgxBudgetRepository creates a new repository for budget data.
func newPgxBudgetRepository(pool *pgxpool.Pool) portsrepo.BudgetRepositoryFacade {
	return &PgxBudgetRepository{pool: pool}
}

// Ensure PgxBudgetRepository implements portsrepo.BudgetRepositoryFacade
var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

// Helper to convert domain.Budget to models.Budget for DB storage
func toModelBudget(d domain.Budget) models.Budget {
	m := models.Budget{
		BudgetID:       d.BudgetID,
		UserID:         d.UserID,
		Name:           d.Name,
		Description:    d.Description,
		Amount:         d.Amount,
		SpentAmount:    d.SpentAmount,
		Period:         string(d.Period),
		StartDate:      d.StartDate,
		Color:          d.Color,
		AlertThreshold: d.AlertThreshold,
		IsActive:       d.IsActive,
		Status:         string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
	if d.CategoryID != "" {
		m.CategoryID = sql.NullString{String: d.CategoryID, Valid: true}
	}
	if d.EndDate != nil {
		m.EndDate = sql.NullTime{Time: *d.EndDate, Valid: true}
	}
	return m
}

// Helper to convert models.Budget from DB to domain.Budget
func toDomainBudget(m models.Budget) domain.Budget {
	d := domain.Budget{
		BudgetID:       m.BudgetID,
		UserID:         m.UserID,
		Name:           m.Name,
		Description:    m.Description,
		Amount:         m.Amount,
		SpentAmount:    m.SpentAmount,
		Period:         domain.BudgetPeriod(m.Period),
		StartDate:      m.StartDate,
		Color:          m.Color,
		AlertThreshold: m.AlertThreshold,
		IsActive:       m.IsActive,
		Status:         domain.BudgetStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.CategoryID.Valid {
		d.CategoryID = m.CategoryID.String
	}
	if m.EndDate.Valid {
		t := m.EndDate.Time
		d.EndDate = &t
	}
	return d
}

const budgetColumns = `budget_id, user_id, category_id, name, description, amount, spent_amount, period, start_date, end_date, color, alert_threshold, is_active, status, created_at, updated_at`

func scanBudget(row pgx.Row) (models.Budget, error) {
	var m models.Budget
	err := row.Scan(
		&m.BudgetID,
		&m.UserID,
		&m.CategoryID,
		&m.Name,
		&m.Description,
		&m.Amount,
		&m.SpentAmount,
		&m.Period,
		&m.StartDate,
		&m.EndDate,
		&m.Color,
		&m.AlertThreshold,
		&m.IsActive,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveBudget inserts a new budget.
func (r *PgxBudgetRepository) SaveBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := toModelBudget(budget)

	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.pool.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.UserID,
		modelBudget.CategoryID,
		modelBudget.Name,
		modelBudget.Description,
		modelBudget.Amount,
		modelBudget.SpentAmount,
		modelBudget.Period,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.Color,
		modelBudget.AlertThreshold,
		modelBudget.IsActive,
		modelBudget.Status,
		modelBudget.CreatedAt,
		modelBudget.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: budget with ID %s already exists", apperrors.ErrDuplicate, modelBudget.BudgetID)
		}
		return fmt.Errorf("failed to save budget %s: %w", modelBudget.BudgetID, err)
	}
	return nil
}

// FindBudgetByID retrieves a budget by its ID.
func (r *PgxBudgetRepository) FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE budget_id = $1;`

	modelBudget, err := scanBudget(r.pool.QueryRow(ctx, query, budgetID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget by ID %s: %w", budgetID, err)
	}

	domainBudget := toDomainBudget(modelBudget)
	return &domainBudget, nil
}

// ListBudgetsByUser retrieves a user's budgets, optionally only active ones.
func (r *PgxBudgetRepository) ListBudgetsByUser(ctx context.Context, userID string, activeOnly bool) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE user_id = $1`
	if activeOnly {
		query += ` AND is_active = TRUE`
	}
	query += ` ORDER BY start_date DESC, name;`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budgets for user %s: %w", userID, err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		modelBudget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row for user %s: %w", userID, err)
		}
		budgets = append(budgets, toDomainBudget(modelBudget))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating budget rows for user %s: %w", userID, rows.Err())
	}

	return budgets, nil
}

// CountBudgetsByCategory returns how many budgets reference the category.
func (r *PgxBudgetRepository) CountBudgetsByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM budgets WHERE category_id = $1;`, categoryID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count budgets for category %s: %w", categoryID, err)
	}
	return count, nil
}

// UpdateBudget updates an existing budget in the database.
func (r *PgxBudgetRepository) UpdateBudget(ctx context.Context, budget domain.Budget) error {
	modelBudget := toModelBudget(budget)

	query := `
		UPDATE budgets
		SET name = $2, description = $3, category_id = $4, amount = $5, period = $6, start_date = $7,
		    end_date = $8, color = $9, alert_threshold = $10, is_active = $11, status = $12, updated_at = $13
		WHERE budget_id = $1;
	`
	// spent_amount moves only through AdjustSpentAmount and ResetSpentAmount.
	cmdTag, err := r.pool.Exec(ctx, query,
		modelBudget.BudgetID,
		modelBudget.Name,
		modelBudget.Description,
		modelBudget.CategoryID,
		modelBudget.Amount,
		modelBudget.Period,
		modelBudget.StartDate,
		modelBudget.EndDate,
		modelBudget.Color,
		modelBudget.AlertThreshold,
		modelBudget.IsActive,
		modelBudget.Status,
		modelBudget.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update budget %s: %w", modelBudget.BudgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// AdjustSpentAmount atomically adds delta to the budget's spent amount.
func (r *PgxBudgetRepository) AdjustSpentAmount(ctx context.Context, budgetID string, delta decimal.Decimal, now time.Time) error {
	query := `
		UPDATE budgets
		SET spent_amount = COALESCE(spent_amount, 0) + $2, updated_at = $3
		WHERE budget_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, budgetID, delta, now)
	if err != nil {
		return fmt.Errorf("failed to adjust spent amount for budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ResetSpentAmount sets the budget's spent amount back to zero.
func (r *PgxBudgetRepository) ResetSpentAmount(ctx context.Context, budgetID string, now time.Time) error {
	query := `
		UPDATE budgets
		SET spent_amount = 0, updated_at = $2
		WHERE budget_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query, budgetID, now)
	if err != nil {
		return fmt.Errorf("failed to reset spent amount for budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteBudget removes a budget row.
func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, budgetID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM budgets WHERE budget_id = $1;`, budgetID)
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", budgetID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
