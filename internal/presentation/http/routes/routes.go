package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/sangkips/fueltrack-api/internal/config"
	domainRepo "github.com/sangkips/fueltrack-api/internal/domain/repository"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/handler"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/middleware"
	"github.com/sangkips/fueltrack-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth        *handler.AuthHandler
	Vehicle     *handler.VehicleHandler
	Station     *handler.StationHandler
	Receipt     *handler.ReceiptHandler
	Maintenance *handler.MaintenanceHandler
	Analytics   *handler.AnalyticsHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	Logger          zerolog.Logger
	// Registry receives the HTTP collectors and backs /metrics. Defaults to
	// the global Prometheus registry.
	Registry *prometheus.Registry
	// RateLimiter is created from Cfg.RateLimit when nil
	RateLimiter *middleware.UserRateLimiter
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	handler.RegisterValidators()

	router := gin.New()

	var (
		reg      prometheus.Registerer = prometheus.DefaultRegisterer
		gatherer prometheus.Gatherer   = prometheus.DefaultGatherer
	)
	if deps.Registry != nil {
		reg, gatherer = deps.Registry, deps.Registry
	}
	metrics := middleware.NewHTTPMetrics("fueltrack", reg)

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(metrics.Middleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		registerAuthRoutes(v1, h)
		v1.GET("/fuel-types", handler.ListFuelTypes)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		rateLimiter := deps.RateLimiter
		if rateLimiter == nil {
			rateLimiter = middleware.NewUserRateLimiter(rateLimiterConfig(&deps.Cfg.RateLimit))
		}
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func rateLimiterConfig(cfg *config.RateLimitConfig) middleware.RateLimiterConfig {
	rl := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rl.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rl.BurstSize = cfg.Requests
	}
	rl.CleanupInterval = 5 * time.Minute
	rl.EntryTTL = 10 * time.Minute
	return rl
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.POST("/register", h.Auth.Register)
		auth.POST("/refresh", h.Auth.RefreshToken)
	}
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	protected.GET("/profile", h.Auth.GetProfile)

	registerVehicleRoutes(protected, h)
	registerStationRoutes(protected, h)
	registerReceiptRoutes(protected, h, deps)
	registerMaintenanceRoutes(protected, h)
	registerAnalyticsRoutes(protected, h)
}

func registerVehicleRoutes(protected *gin.RouterGroup, h *Handlers) {
	vehicles := protected.Group("/vehicles")
	{
		vehicles.GET("", h.Vehicle.List)
		vehicles.POST("", h.Vehicle.Create)
		vehicles.GET("/:id", h.Vehicle.Get)
		vehicles.PUT("/:id", h.Vehicle.Update)
		vehicles.DELETE("/:id", h.Vehicle.Delete)

		vehicles.GET("/:id/maintenance-events", h.Maintenance.ListEvents)
		vehicles.POST("/:id/maintenance-events", h.Maintenance.RecordEvent)
		vehicles.GET("/:id/reminders", h.Maintenance.ListReminders)
		vehicles.POST("/:id/reminders", h.Maintenance.CreateReminder)
	}
}

func registerStationRoutes(protected *gin.RouterGroup, h *Handlers) {
	stations := protected.Group("/stations")
	{
		stations.GET("", h.Station.List)
		stations.POST("", h.Station.Create)
		stations.GET("/:id", h.Station.Get)
		stations.PUT("/:id", h.Station.Update)
		stations.DELETE("/:id", h.Station.Delete)
	}
}

func registerReceiptRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	receipts := protected.Group("/receipts")
	{
		receipts.GET("", h.Receipt.List)
		// Receipt creation uses idempotency middleware to prevent duplicates
		receipts.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		}), h.Receipt.Create)
		receipts.GET("/export", h.Receipt.Export)
		receipts.GET("/:id", h.Receipt.Get)
		receipts.DELETE("/:id", h.Receipt.Delete)
	}
}

func registerMaintenanceRoutes(protected *gin.RouterGroup, h *Handlers) {
	protected.DELETE("/maintenance-events/:id", h.Maintenance.DeleteEvent)
	protected.POST("/reminders/:id/complete", h.Maintenance.CompleteReminder)
	protected.DELETE("/reminders/:id", h.Maintenance.DeleteReminder)
}

func registerAnalyticsRoutes(protected *gin.RouterGroup, h *Handlers) {
	analytics := protected.Group("/analytics")
	{
		analytics.GET("/kpis", h.Analytics.GetKPIs)
		analytics.POST("/refresh", h.Analytics.Refresh)
	}
}
