package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/sangkips/fueltrack-api/internal/application/service"
	"github.com/sangkips/fueltrack-api/internal/config"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/cache"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/database"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/geocoding"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/queue"
	"github.com/sangkips/fueltrack-api/internal/infrastructure/repository"
	"github.com/sangkips/fueltrack-api/pkg/logger"
)

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Log.Format, cfg.Log.Level).With().Str("component", "worker").Logger()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}

	redisClient, err := database.NewRedisClient(ctx, &cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("connect redis")
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("close redis")
		}
	}()

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}
	asynqClient := asynq.NewClient(redisOpt)
	defer asynqClient.Close()
	tasks := queue.NewClient(asynqClient)

	stationRepo := repository.NewStationRepository(db)
	vehicleRepo := repository.NewVehicleRepository(db)
	maintenanceRepo := repository.NewMaintenanceRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)

	kpiCache := cache.NewJSONCache(redisClient, cfg.App.Name+":", cfg.Analytics.CacheTTL)
	geocoder := geocoding.NewClient(cfg.Geocoding.BaseURL, cfg.Geocoding.UserAgent, cfg.Geocoding.Timeout)

	analyticsService := service.NewAnalyticsService(analyticsRepo, kpiCache, tasks)
	stationService := service.NewStationService(stationRepo, geocoder, tasks)
	maintenanceService := service.NewMaintenanceService(maintenanceRepo, vehicleRepo, tasks)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	taskMetrics := queue.NewTaskMetrics("fueltrack", registry)

	handlers := queue.NewHandlers(analyticsService, stationService, log)
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: cfg.Queue.Concurrency,
		Logger:      asynqLogger{log},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error().Err(err).Str("type", task.Type()).Msg("task failed")
		}),
	})
	if err := srv.Start(handlers.ServeMux(taskMetrics)); err != nil {
		log.Fatal().Err(err).Msg("start task server")
	}

	scheduler, err := queue.NewScheduler(log, time.Minute,
		queue.Job{
			Name: "reminder_sweep",
			Spec: cfg.Queue.ReminderSweepSpec,
			Run:  maintenanceService.SweepDueReminders,
		},
		queue.Job{
			Name: "idempotency_cleanup",
			Spec: cfg.Queue.IdempotencyCleanupSpec,
			Run: func(ctx context.Context) (int64, error) {
				return idempotencyRepo.DeleteExpired(ctx, time.Now())
			},
		},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("configure scheduler")
	}
	scheduler.Start()

	metricsSrv := &http.Server{
		Addr:              ":" + cfg.Queue.MetricsPort,
		Handler:           promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("metrics server stopped")
		}
	}()

	log.Info().Int("concurrency", cfg.Queue.Concurrency).Str("metrics_port", cfg.Queue.MetricsPort).Msg("worker starting")
	<-ctx.Done()
	log.Info().Msg("worker shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	scheduler.Stop(shutdownCtx)
	srv.Shutdown()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("metrics server shutdown")
	}
	log.Info().Msg("worker shutdown complete")
}

// asynqLogger routes asynq's internal logging through zerolog
type asynqLogger struct {
	l zerolog.Logger
}

func (a asynqLogger) Debug(args ...interface{}) { a.l.Debug().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Info(args ...interface{})  { a.l.Info().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Warn(args ...interface{})  { a.l.Warn().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Error(args ...interface{}) { a.l.Error().Msg(fmt.Sprint(args...)) }
func (a asynqLogger) Fatal(args ...interface{}) { a.l.Fatal().Msg(fmt.Sprint(args...)) }
