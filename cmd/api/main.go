package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/medibook/medibook/internal/api/router"
	"github.com/medibook/medibook/internal/appointments"
	appconfig "github.com/medibook/medibook/internal/config"
	"github.com/medibook/medibook/internal/doctors"
	"github.com/medibook/medibook/internal/favorites"
	"github.com/medibook/medibook/internal/observability/metrics"
	"github.com/medibook/medibook/pkg/logging"
)

func main() {
	// Load configuration (.env is optional)
	_ = godotenv.Load()
	cfg := appconfig.Load()

	// Initialize logger
	var logger *logging.Logger
	if cfg.IsDevelopment() {
		logger = logging.NewText(cfg.LogLevel)
	} else {
		logger = logging.New(cfg.LogLevel)
	}
	logger.Info("starting medibook API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// Metrics registry
	registry := prometheus.NewRegistry()
	directoryMetrics := metrics.NewDirectoryMetrics(registry)
	appointmentMetrics := metrics.NewAppointmentMetrics(registry)

	// Optional Redis-backed durable storage; falls back to a JSON file
	// for favorites when Redis is not configured.
	var redisClient *redis.Client
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
	}

	ctx := context.Background()

	var favPersist favorites.Persistence
	if redisClient != nil {
		favPersist = favorites.NewRedisPersistence(redisClient)
	} else {
		favPersist = favorites.NewFilePersistence(cfg.FavoritesFile)
	}
	favoriteStore, err := favorites.NewStore(ctx, favPersist, logger)
	if err != nil {
		logger.Error("failed to initialize favorites store", "error", err)
		os.Exit(1)
	}

	// Appointment store, optionally restored from a Redis snapshot.
	var storeOpts []appointments.StoreOption
	storeOpts = append(storeOpts, appointments.WithMetrics(appointmentMetrics))
	if redisClient != nil && cfg.SnapshotAppointments {
		storeOpts = append(storeOpts, appointments.WithSnapshot(appointments.NewRedisSnapshot(redisClient)))
	}
	appointmentStore, err := appointments.NewStore(ctx, logger, storeOpts...)
	if err != nil {
		logger.Error("failed to initialize appointment store", "error", err)
		os.Exit(1)
	}

	// Doctor directory over the upstream doctors API.
	doctorClient := doctors.NewClient(cfg.DoctorsAPIBaseURL,
		doctors.WithTimeout(cfg.DoctorsAPITimeout),
		doctors.WithLogger(logger),
	)
	directory := doctors.NewDirectory(doctorClient, logger, doctors.WithMetrics(directoryMetrics))

	// Warm the directory; a failed upstream is reported through the
	// status field and retried via POST /api/doctors/refresh.
	if err := directory.FetchAll(ctx); err != nil {
		logger.Warn("initial doctor fetch failed", "error", err)
	}

	// Setup router
	routerCfg := &router.Config{
		Logger:              logger,
		DoctorsHandler:      doctors.NewHandler(directory, logger, doctors.WithWindowDays(cfg.BookingWindowDays)),
		AppointmentsHandler: appointments.NewHandler(appointmentStore, directory, logger),
		FavoritesHandler:    favorites.NewHandler(favoriteStore, logger),
		MetricsHandler:      promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins:  cfg.CORSAllowedOrigins,
	}
	r := router.New(routerCfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
