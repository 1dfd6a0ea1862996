package pgsql

import (
	"context"
	"database/sql"
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

type PgxGoalRepository struct {
	pool *pgxpool.Pool
}

// newPgxGoalRepository creates a new repository for goal data.
func newPgxGoalRepository(pool *pgxpool.Pool) portsrepo.GoalRepositoryFacade {
	return &PgxGoalRepository{pool: pool}
}

// Ensure PgxGoalRepository implements portsrepo.GoalRepositoryFacade
var _ portsrepo.GoalRepositoryFacade = (*PgxGoalRepository)(nil)

// Helper to convert domain.Goal to models.Goal for DB storage
func toModelGoal(d domain.Goal) models.Goal {
	m := models.Goal{
		GoalID:        d.GoalID,
		UserID:        d.UserID,
		Name:          d.Name,
		Description:   d.Description,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		GoalType:      string(d.GoalType),
		Color:         d.Color,
		Icon:          d.Icon,
		Status:        string(d.Status),
		AuditFields: models.AuditFields{
			CreatedAt: d.CreatedAt,
			UpdatedAt: d.UpdatedAt,
		},
	}
	if d.TargetDate != nil {
		m.TargetDate = sql.NullTime{Time: *d.TargetDate, Valid: true}
	}
	return m
}

// Helper to convert models.Goal from DB to domain.Goal
func toDomainGoal(m models.Goal) domain.Goal {
	d := domain.Goal{
		GoalID:        m.GoalID,
		UserID:        m.UserID,
		Name:          m.Name,
		Description:   m.Description,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		GoalType:      domain.GoalType(m.GoalType),
		Color:         m.Color,
		Icon:          m.Icon,
		Status:        domain.GoalStatus(m.Status),
		AuditFields: domain.AuditFields{
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
	}
	if m.TargetDate.Valid {
		t := m.TargetDate.Time
		d.TargetDate = &t
	}
	return d
}

const goalColumns = `goal_id, user_id, name, description, target_amount, current_amount, goal_type, target_date, color, icon, status, created_at, updated_at`

func scanGoal(row pgx.Row) (models.Goal, error) {
	var m models.Goal
	err := row.Scan(
		&m.GoalID,
		&m.UserID,
		&m.Name,
		&m.Description,
		&m.TargetAmount,
		&m.CurrentAmount,
		&m.GoalType,
		&m.TargetDate,
		&m.Color,
		&m.Icon,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// SaveGoal inserts a new goal.
func (r *PgxGoalRepository) SaveGoal(ctx context.Context, goal domain.Goal) error {
	modelGoal := toModelGoal(goal)

	query := `
		INSERT INTO goals (` + goalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.pool.Exec(ctx, query,
		modelGoal.GoalID,
		modelGoal.UserID,
		modelGoal.Name,
		modelGoal.Description,
		modelGoal.TargetAmount,
		modelGoal.CurrentAmount,
		modelGoal.GoalType,
		modelGoal.TargetDate,
		modelGoal.Color,
		modelGoal.Icon,
		modelGoal.Status,
		modelGoal.CreatedAt,
		modelGoal.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: goal with ID %s already exists", apperrors.ErrDuplicate, modelGoal.GoalID)
		}
		return fmt.Errorf("failed to save goal %s: %w", modelGoal.GoalID, err)
	}
	return nil
}

// FindGoalByID retrieves a goal by its ID.
func (r *PgxGoalRepository) FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE goal_id = $1;`

	modelGoal, err := scanGoal(r.pool.QueryRow(ctx, query, goalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find goal by ID %s: %w", goalID, err)
	}

	domainGoal := toDomainGoal(modelGoal)
	return &domainGoal, nil
}

// ListGoalsByUser retrieves a user's goals, optionally filtered by status.
func (r *PgxGoalRepository) ListGoalsByUser(ctx context.Context, userID string, status *domain.GoalStatus) ([]domain.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goals WHERE user_id = $1`
	args := []any{userID}
	if status != nil {
		query += ` AND status = $2`
		args = append(args, string(*status))
	}
	query += ` ORDER BY target_date NULLS LAST, name;`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals for user %s: %w", userID, err)
	}
	defer rows.Close()

	goals := []domain.Goal{}
	for rows.Next() {
		modelGoal, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal row for user %s: %w", userID, err)
		}
		goals = append(goals, toDomainGoal(modelGoal))
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating goal rows for user %s: %w", userID, rows.Err())
	}

	return goals, nil
}

// UpdateGoal updates an existing goal in the database.
func (r *PgxGoalRepository) UpdateGoal(ctx context.Context, goal domain.Goal) error {
	modelGoal := toModelGoal(goal)

	query := `
		UPDATE goals
		SET name = $2, description = $3, target_amount = $4, current_amount = $5,
		    goal_type = $6, target_date = $7, color = $8, icon = $9, status = $10, updated_at = $11
		WHERE goal_id = $1;
	`
	cmdTag, err := r.pool.Exec(ctx, query,
		modelGoal.GoalID,
		modelGoal.Name,
		modelGoal.Description,
		modelGoal.TargetAmount,
		modelGoal.CurrentAmount,
		modelGoal.GoalType,
		modelGoal.TargetDate,
		modelGoal.Color,
		modelGoal.Icon,
		modelGoal.Status,
		modelGoal.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update goal %s: %w", modelGoal.GoalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteGoal removes a goal row.
func (r *PgxGoalRepository) DeleteGoal(ctx context.Context, goalID string) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM goals WHERE goal_id = $1;`, goalID)
	if err != nil {
		return fmt.Errorf("failed to delete goal %s: %w", goalID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
