package service

import (
	"context"
	"time"

	"smartlibrary-backend/internal/domains/reporting/model"
	"smartlibrary-backend/internal/domains/reporting/repository"
	"smartlibrary-backend/internal/shared/policy"
	"smartlibrary-backend/pkg/cache"
	"smartlibrary-backend/pkg/logger"
)

const (
	statsCacheKey = "dashboard:stats"
	statsCacheTTL = 30 * time.Second

	defaultActivityLimit = 15
)

type reportingService struct {
	repo          repository.RepositoryInterface
	cache         cache.Cache
	activityLimit int
}

func NewReportingService(repo repository.RepositoryInterface, cache cache.Cache, activityLimit int) ServiceInterface {
	if activityLimit <= 0 {
		activityLimit = defaultActivityLimit
	}
	return &reportingService{
		repo:          repo,
		cache:         cache,
		activityLimit: activityLimit,
	}
}

// DashboardStats serves the counters from cache when fresh. The counters are
// cheap to recompute, so a short TTL keeps them close to live without hitting
// the database on every dashboard poll.
func (s *reportingService) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, err
	}

	if s.cache != nil {
		var cached model.DashboardStats
		found, err := s.cache.Get(ctx, statsCacheKey, &cached)
		if err != nil {
			logger.Warn("failed to read dashboard stats from cache", map[string]interface{}{
				"error": err.Error(),
			})
		}
		if found {
			return &cached, nil
		}
	}

	stats, err := s.repo.DashboardStats(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, statsCacheKey, stats, statsCacheTTL); err != nil {
			logger.Warn("failed to cache dashboard stats", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}

	return stats, nil
}

func (s *reportingService) RecentActivity(ctx context.Context) ([]model.OpenLoan, error) {
	if _, err := policy.RequireActor(ctx); err != nil {
		return nil, err
	}

	return s.repo.RecentActivity(ctx, s.activityLimit)
}
