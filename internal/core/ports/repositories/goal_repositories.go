package repositories

import (
	"context"

	"github.com/pft-app/pft_backend/internal/core/domain"
)

// GoalReader defines read operations for goal data
type GoalReader interface {
	// FindGoalByID retrieves a specific goal by its unique identifier.
	FindGoalByID(ctx context.Context, goalID string) (*domain.Goal, error)

	// ListGoalsByUser retrieves a user's goals, optionally filtered by status.
	ListGoalsByUser(ctx context.Context, userID string, status *domain.GoalStatus) ([]domain.Goal, error)
}

// GoalWriter defines write operations for goal data
type GoalWriter interface {
	// SaveGoal persists a new goal.
	SaveGoal(ctx context.Context, goal domain.Goal) error

	// UpdateGoal persists changes to an existing goal.
	UpdateGoal(ctx context.Context, goal domain.Goal) error

	// DeleteGoal removes a goal.
	DeleteGoal(ctx context.Context, goalID string) error
}

// GoalRepositoryFacade combines all goal-related repository interfaces
type GoalRepositoryFacade interface {
	GoalReader
	GoalWriter
}
