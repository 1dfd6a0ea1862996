package services

import (
	"context"
	"time"

	"github.com/pft-app/pft_backend/internal/dto"
)

// DashboardSvcFacade aggregates account, transaction, budget and goal data
// into a single summary for the authenticated user.
type DashboardSvcFacade interface {
	// GetStats builds the dashboard summary as of the given time.
	GetStats(ctx context.Context, userID string, now time.Time) (*dto.DashboardStatsResponse, error)
}
