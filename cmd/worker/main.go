// Package main provides the entrypoint for the AutoCare maintenance
// reconcile worker.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/database"
	"github.com/autocare/autocare/internal/maintenance"
	"github.com/autocare/autocare/internal/notification"
	"github.com/autocare/autocare/internal/settings"
	"github.com/autocare/autocare/internal/vehicle"
	"github.com/autocare/autocare/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "autocare-worker"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AutoCare worker")

	// Worker also exposes a health endpoint for container platforms
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The worker reconciles the shared store, so it requires Postgres.
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Str("database", dbConfig.Database).
		Msg("database connected")

	vehicleRepo := vehicle.NewPostgresRepository(pool)
	notificationService := notification.NewService(notification.NewPostgresRepository(pool), log)
	settingsService := settings.NewService(settings.ServiceConfig{
		Repository: settings.NewPostgresRepository(pool),
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	maintenanceService := maintenance.NewService(maintenance.ServiceConfig{
		Repository:    maintenance.NewPostgresRepository(pool),
		Vehicles:      vehicleRepo,
		Catalog:       catalog.Default(),
		Settings:      settingsService,
		Notifications: notificationService,
		Logger:        log,
	})

	reconcileJob := worker.NewReconcileJob(worker.ReconcileJobConfig{
		Config:             worker.DefaultReconcileConfig(),
		Logger:             log,
		Vehicles:           vehicleRepo,
		MaintenanceService: maintenanceService,
	})

	// Health check server with a metrics snapshot
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"version": Version,
			"metrics": reconcileJob.MetricsSnapshot(),
		})
	})

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("health server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Msg("health server error")
		}
	}()

	// Pub/Sub trigger when configured, otherwise a local ticker loop
	projectID := os.Getenv("PUBSUB_PROJECT_ID")
	if projectID != "" {
		subscription := os.Getenv("PUBSUB_SUBSCRIPTION")
		if subscription == "" {
			subscription = "maintenance-reconcile"
		}

		pubsubHandler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
			ProjectID:        projectID,
			SubscriptionName: subscription,
			ReconcileJob:     reconcileJob,
			Logger:           log,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create pubsub handler")
		}
		defer pubsubHandler.Close()

		go func() {
			if err := pubsubHandler.Start(ctx); err != nil && ctx.Err() == nil {
				log.Error().Err(err).Msg("pubsub handler stopped")
			}
		}()
		log.Info().
			Str("project", projectID).
			Str("subscription", subscription).
			Msg("pubsub trigger enabled")
	} else {
		interval := 1 * time.Hour
		if raw := os.Getenv("RECONCILE_INTERVAL"); raw != "" {
			if parsed, err := time.ParseDuration(raw); err == nil && parsed > 0 {
				interval = parsed
			}
		}

		go func() {
			log.Info().Dur("interval", interval).Msg("periodic reconcile enabled")
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			// First pass on startup, then on every tick
			reconcileJob.Run(ctx)
			for {
				select {
				case <-ctx.Done():
					return
				case <-ticker.C:
					reconcileJob.Run(ctx)
				}
			}
		}()
	}

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down worker")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
