package container

import (
	"context"
	"fmt"
	"time"

	"smartlibrary-backend/internal/config"
	infraCache "smartlibrary-backend/internal/infrastructure/cache"
	"smartlibrary-backend/internal/infrastructure/database"
	"smartlibrary-backend/pkg/cache"
	"smartlibrary-backend/pkg/jwt"
	"smartlibrary-backend/pkg/logger"

	catalogHandler "smartlibrary-backend/internal/domains/catalog/handler"
	catalogRepo "smartlibrary-backend/internal/domains/catalog/repository"
	catalogService "smartlibrary-backend/internal/domains/catalog/service"
	clubHandler "smartlibrary-backend/internal/domains/club/handler"
	clubRepo "smartlibrary-backend/internal/domains/club/repository"
	clubService "smartlibrary-backend/internal/domains/club/service"
	lendingHandler "smartlibrary-backend/internal/domains/lending/handler"
	lendingRepo "smartlibrary-backend/internal/domains/lending/repository"
	lendingService "smartlibrary-backend/internal/domains/lending/service"
	membershipHandler "smartlibrary-backend/internal/domains/membership/handler"
	membershipRepo "smartlibrary-backend/internal/domains/membership/repository"
	membershipService "smartlibrary-backend/internal/domains/membership/service"
	reportingHandler "smartlibrary-backend/internal/domains/reporting/handler"
	reportingRepo "smartlibrary-backend/internal/domains/reporting/repository"
	reportingService "smartlibrary-backend/internal/domains/reporting/service"
)

// Container is the root of the dependency graph. Everything in it is a
// singleton created once at startup; construction order is config,
// infrastructure, repositories, services, handlers.
type Container struct {
	Config     *config.Config
	DB         *database.PostgresDB
	Cache      cache.Cache
	JWTManager *jwt.Manager

	CatalogRepo    catalogRepo.RepositoryInterface
	MembershipRepo membershipRepo.RepositoryInterface
	LendingRepo    lendingRepo.RepositoryInterface
	ClubRepo       clubRepo.RepositoryInterface
	ReportingRepo  reportingRepo.RepositoryInterface

	CatalogService    catalogService.ServiceInterface
	MembershipService membershipService.ServiceInterface
	LendingService    lendingService.ServiceInterface
	ClubService       clubService.ServiceInterface
	ReportingService  reportingService.ServiceInterface

	CatalogHandler    *catalogHandler.CatalogHandler
	MembershipHandler *membershipHandler.MembershipHandler
	LendingHandler    *lendingHandler.LendingHandler
	ClubHandler       *clubHandler.ClubHandler
	ReportingHandler  *reportingHandler.ReportingHandler
}

func NewContainer() (*Container, error) {
	c := &Container{}

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		return nil, fmt.Errorf("database health check failed: %w", err)
	}
	c.DB = db

	redisClient := infraCache.NewRedisClient(
		cfg.Redis.Host,
		cfg.Redis.Password,
		cfg.Redis.DB,
	)
	if err := redisClient.Connect(ctx); err != nil {
		// Cache misses fall through to the database, so a dead Redis
		// degrades performance but not correctness.
		logger.Warn("redis connection failed, continuing without cache", map[string]interface{}{
			"error": err.Error(),
		})
	}
	c.Cache = redisClient

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret)

	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("container initialized", map[string]interface{}{
		"environment": cfg.App.Environment,
	})

	return c, nil
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool

	c.CatalogRepo = catalogRepo.NewPostgresRepository(pool, c.Cache)
	c.MembershipRepo = membershipRepo.NewPostgresRepository(pool)
	c.LendingRepo = lendingRepo.NewPostgresRepository(pool, c.Cache)
	c.ClubRepo = clubRepo.NewPostgresRepository(pool)
	c.ReportingRepo = reportingRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.CatalogService = catalogService.NewCatalogService(c.CatalogRepo)
	c.MembershipService = membershipService.NewMembershipService(c.MembershipRepo)
	c.LendingService = lendingService.NewLendingService(c.LendingRepo, c.Config.Lending.LoanPeriodDays)
	c.ClubService = clubService.NewClubService(c.ClubRepo)
	c.ReportingService = reportingService.NewReportingService(c.ReportingRepo, c.Cache, c.Config.Lending.RecentActivityLimit)
}

func (c *Container) initHandlers() {
	c.CatalogHandler = catalogHandler.NewCatalogHandler(c.CatalogService)
	c.MembershipHandler = membershipHandler.NewMembershipHandler(c.MembershipService)
	c.LendingHandler = lendingHandler.NewLendingHandler(c.LendingService)
	c.ClubHandler = clubHandler.NewClubHandler(c.ClubService)
	c.ReportingHandler = reportingHandler.NewReportingHandler(c.ReportingService)
}

// Cleanup releases infrastructure connections during graceful shutdown.
func (c *Container) Cleanup() {
	if c.DB != nil {
		c.DB.Close()
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisClient); ok {
			if err := rc.Close(); err != nil {
				logger.Error("failed to close redis client", err)
			}
		}
	}

	logger.Info("container cleanup completed", nil)
}
