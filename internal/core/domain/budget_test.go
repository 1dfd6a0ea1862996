package domain_test

import (
	"testing"
	"time"

	"github.com/pft-app/pft_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBudget_Derived(t *testing.T) {
	tests := []struct {
		name           string
		amount         float64
		spent          float64
		threshold      int
		wantRemaining  float64
		wantPercentage float64
		wantOver       bool
		wantNearLimit  bool
	}{
		{
			name:           "under budget",
			amount:         200.00,
			spent:          50.00,
			threshold:      80,
			wantRemaining:  150.00,
			wantPercentage: 25.00,
		},
		{
			name:           "exactly at threshold",
			amount:         100.00,
			spent:          80.00,
			threshold:      80,
			wantRemaining:  20.00,
			wantPercentage: 80.00,
			wantNearLimit:  true,
		},
		{
			name:           "just below threshold",
			amount:         100.00,
			spent:          79.99,
			threshold:      80,
			wantRemaining:  0.01,
			wantPercentage: 79.99,
		},
		{
			name:           "over budget",
			amount:         100.00,
			spent:          120.00,
			threshold:      80,
			wantRemaining:  -20.00,
			wantPercentage: 120.00,
			wantOver:       true,
			wantNearLimit:  true,
		},
		{
			name:           "custom threshold",
			amount:         100.00,
			spent:          50.00,
			threshold:      50,
			wantRemaining:  50.00,
			wantPercentage: 50.00,
			wantNearLimit:  true,
		},
		{
			name:           "zero limit yields zero percentage",
			amount:         0,
			spent:          10.00,
			threshold:      80,
			wantRemaining:  -10.00,
			wantPercentage: 0,
			wantOver:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := domain.Budget{
				Amount:         decimal.NewFromFloat(tt.amount),
				SpentAmount:    decimal.NewFromFloat(tt.spent),
				AlertThreshold: tt.threshold,
			}
			assert.True(t, decimal.NewFromFloat(tt.wantRemaining).Equal(b.Remaining()), "remaining: got %s", b.Remaining())
			assert.True(t, decimal.NewFromFloat(tt.wantPercentage).Equal(b.PercentageUsed()), "percentage: got %s", b.PercentageUsed())
			assert.Equal(t, tt.wantOver, b.IsOverBudget())
			assert.Equal(t, tt.wantNearLimit, b.IsNearLimit())
		})
	}
}

func TestBudget_PercentageUsed_RoundsHalfUp(t *testing.T) {
	// 1/3 rounds to 0.3333 before the multiply; 2/3 rounds to 0.6667.
	b := domain.Budget{Amount: decimal.NewFromInt(3), SpentAmount: decimal.NewFromInt(1)}
	assert.Equal(t, "33.33", b.PercentageUsed().String())

	b.SpentAmount = decimal.NewFromInt(2)
	assert.Equal(t, "66.67", b.PercentageUsed().String())
}

func TestGoal_Derived(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	t.Run("in progress", func(t *testing.T) {
		target := now.AddDate(0, 0, 10)
		g := domain.Goal{
			TargetAmount:  decimal.NewFromFloat(1000.00),
			CurrentAmount: decimal.NewFromFloat(250.00),
			TargetDate:    &target,
			Status:        domain.GoalActive,
		}
		assert.True(t, g.Remaining().Equal(decimal.NewFromFloat(750.00)))
		assert.True(t, g.PercentageComplete().Equal(decimal.NewFromInt(25)))
		assert.False(t, g.IsCompleted())
		assert.False(t, g.IsOverdue(now))
		assert.False(t, g.IsNearCompletion())
		assert.Equal(t, int64(10), g.DaysRemaining(now))
	})

	t.Run("near completion at 80 percent", func(t *testing.T) {
		g := domain.Goal{
			TargetAmount:  decimal.NewFromFloat(100.00),
			CurrentAmount: decimal.NewFromFloat(80.00),
			Status:        domain.GoalActive,
		}
		assert.True(t, g.IsNearCompletion())
		assert.False(t, g.IsCompleted())
	})

	t.Run("completed when current reaches target", func(t *testing.T) {
		g := domain.Goal{
			TargetAmount:  decimal.NewFromFloat(100.00),
			CurrentAmount: decimal.NewFromFloat(100.00),
			Status:        domain.GoalActive,
		}
		assert.True(t, g.IsCompleted())
	})

	t.Run("overdue only while active and incomplete", func(t *testing.T) {
		past := now.AddDate(0, -1, 0)
		g := domain.Goal{
			TargetAmount:  decimal.NewFromFloat(100.00),
			CurrentAmount: decimal.NewFromFloat(10.00),
			TargetDate:    &past,
			Status:        domain.GoalActive,
		}
		assert.True(t, g.IsOverdue(now))
		assert.Equal(t, int64(0), g.DaysRemaining(now))

		g.Status = domain.GoalPaused
		assert.False(t, g.IsOverdue(now))

		g.Status = domain.GoalActive
		g.CurrentAmount = g.TargetAmount
		assert.False(t, g.IsOverdue(now))
	})

	t.Run("no target date", func(t *testing.T) {
		g := domain.Goal{
			TargetAmount:  decimal.NewFromFloat(100.00),
			CurrentAmount: decimal.NewFromFloat(10.00),
			Status:        domain.GoalActive,
		}
		assert.False(t, g.IsOverdue(now))
		assert.Equal(t, int64(-1), g.DaysRemaining(now))
	})

	t.Run("zero target yields zero percentage", func(t *testing.T) {
		g := domain.Goal{TargetAmount: decimal.Zero, CurrentAmount: decimal.NewFromFloat(5.00)}
		assert.True(t, g.PercentageComplete().IsZero())
	})
}
