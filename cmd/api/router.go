package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"smartlibrary-backend/internal/shared/middleware"
	"smartlibrary-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", healthCheckHandler(c))

		setupCatalogRoutes(v1, c)
		setupMembershipRoutes(v1, c)
		setupLendingRoutes(v1, c)
		setupClubRoutes(v1, c)
		setupReportingRoutes(v1, c)
	}

	return router
}

// Every route past the health check requires a valid token. Librarian-only
// routes add RequireLibrarian on top; the services enforce the same rule
// again so background callers get it too.
func setupCatalogRoutes(v1 *gin.RouterGroup, c *container.Container) {
	librarian := middleware.RequireLibrarian()

	books := v1.Group("/books")
	books.Use(middleware.Auth(c.JWTManager))
	{
		books.GET("", c.CatalogHandler.SearchBooks)
		books.GET("/:id", c.CatalogHandler.GetBook)
		books.POST("", librarian, c.CatalogHandler.AddBook)
		books.DELETE("/:id", librarian, c.CatalogHandler.RemoveBook)
	}

	authors := v1.Group("/authors")
	authors.Use(middleware.Auth(c.JWTManager))
	{
		authors.GET("", c.CatalogHandler.ListAuthors)
		authors.POST("", librarian, c.CatalogHandler.CreateAuthor)
		authors.DELETE("/:id", librarian, c.CatalogHandler.DeleteAuthor)
	}
}

func setupMembershipRoutes(v1 *gin.RouterGroup, c *container.Container) {
	members := v1.Group("/members")
	members.Use(middleware.Auth(c.JWTManager))
	{
		members.GET("", c.MembershipHandler.ListMembers)
		members.GET("/:id", c.MembershipHandler.GetMember)
		members.GET("/:id/loans", c.LendingHandler.LoanHistory)
		members.POST("", middleware.RequireLibrarian(), c.MembershipHandler.AddMember)
	}
}

func setupLendingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	librarian := middleware.RequireLibrarian()

	loans := v1.Group("/loans")
	loans.Use(middleware.Auth(c.JWTManager))
	{
		loans.GET("", c.LendingHandler.ListLoans)
		loans.GET("/:id", c.LendingHandler.GetLoan)
		loans.POST("", librarian, c.LendingHandler.Checkout)
		loans.POST("/:id/return", librarian, c.LendingHandler.ReturnBook)
		loans.POST("/overdue-sweep", librarian, c.LendingHandler.SweepOverdue)
	}
}

func setupClubRoutes(v1 *gin.RouterGroup, c *container.Container) {
	librarian := middleware.RequireLibrarian()

	clubs := v1.Group("/clubs")
	clubs.Use(middleware.Auth(c.JWTManager))
	{
		clubs.GET("", c.ClubHandler.ListClubs)
		clubs.POST("", librarian, c.ClubHandler.CreateClub)
		clubs.POST("/:id/members", librarian, c.ClubHandler.AddClubMember)
	}
}

func setupReportingRoutes(v1 *gin.RouterGroup, c *container.Container) {
	dashboard := v1.Group("/dashboard")
	dashboard.Use(middleware.Auth(c.JWTManager))
	{
		dashboard.GET("/stats", c.ReportingHandler.DashboardStats)
		dashboard.GET("/recent", c.ReportingHandler.RecentActivity)
	}
}

func healthCheckHandler(c *container.Container) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		status := http.StatusOK
		checks := gin.H{"database": "up", "cache": "up"}

		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			checks["database"] = "down"
			status = http.StatusServiceUnavailable
		}
		if err := c.Cache.Ping(ctx.Request.Context()); err != nil {
			checks["cache"] = "down"
		}

		overall := "UP"
		if status != http.StatusOK {
			overall = "DOWN"
		}

		ctx.JSON(status, gin.H{
			"status":    overall,
			"checks":    checks,
			"timestamp": time.Now().UTC(),
		})
	}
}
