package http

import (
	"context"

	"courtside/internal/services"
)

// DashboardServiceInterface defines the contract the dashboard handler
// depends on. Kept narrow so tests can substitute a mock.
type DashboardServiceInterface interface {
	Seasons(ctx context.Context) (*services.SeasonOptions, error)
	Teams(ctx context.Context, season int) ([]string, error)
	View(ctx context.Context, req services.ViewRequest) (*services.ViewResponse, error)
}
