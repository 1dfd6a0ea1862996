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

// goalService implements the GoalSvcFacade interface
type goalService struct {
	BaseService
	goalRepo portsrepo.GoalRepositoryFacade
}

// NewGoalService creates a new goal service
func NewGoalService(repo portsrepo.GoalRepositoryFacade) portssvc.GoalSvcFacade {
	return &goalService{goalRepo: repo}
}

var _ portssvc.GoalSvcFacade = (*goalService)(nil)

func (s *goalService) CreateGoal(ctx context.Context, userID string, req dto.CreateGoalRequest) (*domain.Goal, error) {
	if !req.TargetAmount.IsPositive() {
		return nil, fmt.Errorf("goal target must be positive: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	goal := domain.Goal{
		GoalID:        uuid.NewString(),
		UserID:        userID,
		Name:          req.Name,
		Description:   req.Description,
		TargetAmount:  req.TargetAmount,
		CurrentAmount: req.CurrentAmount.Abs(),
		GoalType:      req.GoalType,
		TargetDate:    req.TargetDate,
		Color:         req.Color,
		Icon:          req.Icon,
		Status:        domain.GoalActive,
		AuditFields: domain.AuditFields{
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
	if goal.IsCompleted() {
		goal.Status = domain.GoalCompleted
	}

	if err := s.goalRepo.SaveGoal(ctx, goal); err != nil {
		s.LogError(ctx, err, "Failed to save goal", slog.String("goal_id", goal.GoalID))
		return nil, err
	}

	s.LogInfo(ctx, "Goal created", slog.String("goal_id", goal.GoalID))
	return &goal, nil
}

func (s *goalService) GetGoalByID(ctx context.Context, userID string, goalID string) (*domain.Goal, error) {
	goal, err := s.goalRepo.FindGoalByID(ctx, goalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find goal", slog.String("goal_id", goalID))
		}
		return nil, err
	}
	if err := requireOwner(goal.UserID, userID); err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *goalService) ListGoals(ctx context.Context, userID string, status *domain.GoalStatus) ([]domain.Goal, error) {
	goals, err := s.goalRepo.ListGoalsByUser(ctx, userID, status)
	if err != nil {
		s.LogError(ctx, err, "Failed to list goals", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	if goals == nil {
		return []domain.Goal{}, nil
	}
	return goals, nil
}

func (s *goalService) UpdateGoal(ctx context.Context, userID string, goalID string, req dto.UpdateGoalRequest) (*domain.Goal, error) {
	goal, err := s.GetGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		goal.Name = *req.Name
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, fmt.Errorf("goal target must be positive: %w", apperrors.ErrValidation)
		}
		goal.TargetAmount = *req.TargetAmount
	}
	if req.GoalType != nil {
		goal.GoalType = *req.GoalType
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}
	if req.Color != nil {
		goal.Color = *req.Color
	}
	if req.Icon != nil {
		goal.Icon = *req.Icon
	}
	if req.Status != nil {
		goal.Status = *req.Status
	}
	s.applyAutoComplete(goal)
	goal.UpdatedAt = time.Now()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update goal", slog.String("goal_id", goalID))
		return nil, err
	}

	s.LogInfo(ctx, "Goal updated", slog.String("goal_id", goalID))
	return goal, nil
}

// AddProgress adds an amount to the goal's saved total.
func (s *goalService) AddProgress(ctx context.Context, userID string, goalID string, req dto.GoalProgressRequest) (*domain.Goal, error) {
	goal, err := s.GetGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = goal.CurrentAmount.Add(req.Amount.Abs())
	return s.persistProgress(ctx, goal)
}

// SetProgress replaces the goal's saved total.
func (s *goalService) SetProgress(ctx context.Context, userID string, goalID string, req dto.GoalProgressRequest) (*domain.Goal, error) {
	goal, err := s.GetGoalByID(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}

	goal.CurrentAmount = req.Amount.Abs()
	return s.persistProgress(ctx, goal)
}

func (s *goalService) persistProgress(ctx context.Context, goal *domain.Goal) (*domain.Goal, error) {
	s.applyAutoComplete(goal)
	goal.UpdatedAt = time.Now()

	if err := s.goalRepo.UpdateGoal(ctx, *goal); err != nil {
		s.LogError(ctx, err, "Failed to update goal progress", slog.String("goal_id", goal.GoalID))
		return nil, err
	}

	s.LogInfo(ctx, "Goal progress updated",
		slog.String("goal_id", goal.GoalID),
		slog.String("current_amount", goal.CurrentAmount.String()),
		slog.String("status", string(goal.Status)))
	return goal, nil
}

// applyAutoComplete promotes an active goal to COMPLETED once the target is
// reached. The promotion is one-way; dropping below the target later never
// reverts the status automatically.
func (s *goalService) applyAutoComplete(goal *domain.Goal) {
	if goal.Status == domain.GoalActive && goal.IsCompleted() {
		goal.Status = domain.GoalCompleted
	}
}

func (s *goalService) DeleteGoal(ctx context.Context, userID string, goalID string) error {
	if _, err := s.GetGoalByID(ctx, userID, goalID); err != nil {
		return err
	}

	if err := s.goalRepo.DeleteGoal(ctx, goalID); err != nil {
		s.LogError(ctx, err, "Failed to delete goal", slog.String("goal_id", goalID))
		return err
	}

	s.LogInfo(ctx, "Goal deleted", slog.String("goal_id", goalID))
	return nil
}
