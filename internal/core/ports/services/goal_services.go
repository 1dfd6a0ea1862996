package services

import (
	"context"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/pft-app/pft_backend/internal/dto"
)

// GoalReaderSvc defines read operations for goal data
type GoalReaderSvc interface {
	// GetGoalByID retrieves a specific goal owned by the user.
	GetGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error)

	// ListGoals retrieves the user's goals, optionally filtered by status.
	ListGoals(ctx context.Context, userID string, status *domain.GoalStatus) ([]domain.Goal, error)
}

// GoalWriterSvc defines write operations for goal data
type GoalWriterSvc interface {
	// CreateGoal persists a new goal.
	CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error)

	// UpdateGoal updates an existing goal's details.
	UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error)

	// AddProgress adds an amount to the goal's current total. Reaching the
	// target marks the goal completed.
	AddProgress(ctx context.Context, userID string, goalID string, req dto.GoalProgressRequest) (*domain.Goal, error)

	// SetProgress replaces the goal's current total. Reaching the target marks
	// the goal completed.
	SetProgress(ctx context.Context, userID string, goalID string, req dto.GoalProgressRequest) (*domain.Goal, error)

	// DeleteGoal removes a goal.
	DeleteGoal(ctx context.Context, userID string, goalID string) error
}

// GoalSvcFacade combines all goal-related service interfaces
type GoalSvcFacade interface {
	GoalReaderSvc
	GoalWriterSvc
}
