package repository

import (
	"context"

	"smartlibrary-backend/internal/domains/reporting/model"
)

type RepositoryInterface interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	RecentActivity(ctx context.Context, limit int) ([]model.OpenLoan, error)
}
