package service

import (
	"context"

	"smartlibrary-backend/internal/domains/reporting/model"
)

type ServiceInterface interface {
	DashboardStats(ctx context.Context) (*model.DashboardStats, error)
	RecentActivity(ctx context.Context) ([]model.OpenLoan, error)
}
