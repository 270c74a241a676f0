// Package main provides the entrypoint for the AutoCare API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/api"
	"github.com/autocare/autocare/internal/api/handler"
	"github.com/autocare/autocare/internal/api/middleware"
	"github.com/autocare/autocare/internal/auth"
	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/database"
	"github.com/autocare/autocare/internal/maintenance"
	"github.com/autocare/autocare/internal/notification"
	"github.com/autocare/autocare/internal/provider"
	"github.com/autocare/autocare/internal/settings"
	"github.com/autocare/autocare/internal/telemetry"
	"github.com/autocare/autocare/internal/vehicle"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "autocare-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AutoCare API")

	// Get configuration from environment
	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}

	otlpEndpoint := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT")
	if otlpEndpoint == "" {
		otlpEndpoint = "localhost:4317"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	// Initialize OpenTelemetry
	ctx := context.Background()
	telemetryEnabled := os.Getenv("OTEL_ENABLED") == "true"

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        telemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if telemetryEnabled {
		log.Info().
			Str("otlp_endpoint", otlpEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	// Repositories: Postgres when configured, in-memory for local mode.
	// Local mode keeps everything in process, matching a single-user
	// installation without server-side persistence.
	var (
		pool             *pgxpool.Pool
		vehicleRepo      vehicle.Repository
		maintenanceRepo  maintenance.Repository
		notificationRepo notification.Repository
		settingsRepo     settings.Repository
		readiness        map[string]handler.ReadinessCheckFunc
	)
	if os.Getenv("USE_POSTGRES") == "true" {
		dbConfig := database.ConfigFromEnv()
		pool, err = database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")

		vehicleRepo = vehicle.NewPostgresRepository(pool)
		maintenanceRepo = maintenance.NewPostgresRepository(pool)
		notificationRepo = notification.NewPostgresRepository(pool)
		settingsRepo = settings.NewPostgresRepository(pool)
		readiness = map[string]handler.ReadinessCheckFunc{
			"postgres": pool.Ping,
		}
	} else {
		log.Info().Msg("running with in-memory storage")
		vehicleRepo = vehicle.NewInMemoryRepository()
		maintenanceRepo = maintenance.NewInMemoryRepository()
		notificationRepo = notification.NewInMemoryRepository()
		settingsRepo = settings.NewInMemoryRepository()
	}

	// Auth: disabled by default, the app runs single-user.
	authEnabled := os.Getenv("AUTH_ENABLED") == "true"
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if authEnabled && jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}
	authService := auth.NewService(auth.ServiceConfig{
		Enabled: authEnabled,
		JWT: auth.NewJWTService(auth.JWTConfig{
			SigningKey: jwtSigningKey,
			Issuer:     os.Getenv("JWT_ISSUER"),
			Audience:   os.Getenv("JWT_AUDIENCE"),
		}),
		Logger: log,
	})
	if !authEnabled {
		log.Info().Msg("authentication disabled - requests run as the local user")
	}

	// Domain services
	cat := catalog.Default()

	notificationService := notification.NewService(notificationRepo, log)

	settingsService := settings.NewService(settings.ServiceConfig{
		Repository: settingsRepo,
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})

	vehicleService := vehicle.NewService(vehicle.ServiceConfig{
		Repository:    vehicleRepo,
		Notifications: notificationService,
		Logger:        log,
	})

	maintenanceService := maintenance.NewService(maintenance.ServiceConfig{
		Repository:    maintenanceRepo,
		Vehicles:      vehicleRepo,
		Catalog:       cat,
		Settings:      settingsService,
		Notifications: notificationService,
		Logger:        log,
	})
	log.Info().Msg("maintenance services initialized")

	// Provider search: real places API when configured, simulated data
	// otherwise.
	var searcher provider.Searcher
	if placesURL := os.Getenv("PLACES_API_URL"); placesURL != "" {
		searcher = provider.NewPlacesClient(provider.PlacesConfig{
			BaseURL: placesURL,
			APIKey:  os.Getenv("PLACES_API_KEY"),
		})
		log.Info().Str("base_url", placesURL).Msg("places client initialized")
	} else {
		searcher = provider.NewSimulatedSearcher()
		log.Info().Msg("provider search using simulated data")
	}
	providerService := provider.NewService(searcher, log)

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:             Version,
		BuildTime:           BuildTime,
		Logger:              log,
		ServiceName:         serviceName,
		Metrics:             metrics,
		Readiness:           readiness,
		AuthService:         authService,
		Catalog:             cat,
		VehicleService:      vehicleService,
		MaintenanceService:  maintenanceService,
		NotificationService: notificationService,
		SettingsService:     settingsService,
		ProviderService:     providerService,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
