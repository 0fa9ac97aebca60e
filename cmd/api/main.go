package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/fueltrack-api/internal/application/service"
	"github.com/sangkips/fueltrack-api/internal/config"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/cache"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/database"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/geocoding"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/queue"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/repository"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/handler"
	"github.com/sangkips/fueltrack-api/internal/presentation/http/routes"
	"github.com/sangkips/fueltrack-api/pkg/logger"
	"github.com/sangkips/fueltrack-api/pkg/utils"
)

func main() {
	// Load configuration
	cfg := config.Load()
	appLogger := logger.New(cfg.Log.Format, cfg.Log.Level)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	if err := database.SeedDemoUser(db, os.Getenv("DEMO_USER_NAME"), os.Getenv("DEMO_USER_EMAIL"), os.Getenv("DEMO_USER_PASSWORD")); err != nil {
		log.Warn().Err(err).Msg("failed to seed demo user")
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer asynqClient.Close()
	tasks := queue.NewClient(asynqClient)

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	stationRepo := repository.NewStationRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	kpiCache := cache.NewJSONCache(redisClient, cfg.App.Name+":", cfg.Analytics.CacheTTL)
	geocoder := geocoding.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, cfg.Geocoding.Timeout)

	// Initialize services
	authService := service.NewAuthService(userRepo, jwtManager)
	vehicleService := service.NewVehicleService(vehicleRepo)
	stationService := service.NewStationService(stationRepo, geocoder, tasks)
	receiptService := service.NewReceiptService(receiptRepo, vehicleRepo, stationRepo, tasks)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, vehicleRepo, tasks)
	analyticsService := service.NewAnalyticsService(analyticsRepo, kpiCache, tasks)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:        handler.NewAuthHandler(authService),
		Vehicle:     handler.NewVehicleHandler(vehicleService),
		Station:     handler.NewStationHandler(stationService),
		Receipt:     handler.NewReceiptHandler(receiptService),
		Maintenance: handler.NewMaintenanceHandler(maintenanceService),
		Analytics:   handler.NewAnalyticsHandler(analyticsService),
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		Logger:          appLogger,
		Registry:        registry,
	})

	// Get port from environment or use default
	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Str("env", cfg.App.Env).Msgf("starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
