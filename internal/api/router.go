// Package api provides the HTTP API for AutoCare.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/api/handler"
	"github.com/autocare/autocare/internal/api/middleware"
	"github.com/autocare/autocare/internal/auth"
	"github.com/autocare/autocare/internal/catalog"
	"github.com/autocare/autocare/internal/maintenance"
	"github.com/autocare/autocare/internal/notification"
	"github.com/autocare/autocare/internal/provider"
	"github.com/autocare/autocare/internal/settings"
	"github.com/autocare/autocare/internal/vehicle"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version   string
	BuildTime string
	Logger    zerolog.Logger

	ServiceName string
	Metrics     *middleware.Metrics
	Readiness   map[string]handler.ReadinessCheckFunc

	AuthService         *auth.Service
	Catalog             *catalog.Catalog
	VehicleService      *vehicle.Service
	MaintenanceService  *maintenance.Service
	NotificationService *notification.Service
	SettingsService     *settings.Service
	ProviderService     *provider.Service
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "autocare-api"
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Readiness)
	vehicleHandler := handler.NewVehicleHandler(cfg.VehicleService, cfg.MaintenanceService)
	maintenanceHandler := handler.NewMaintenanceHandler(cfg.MaintenanceService, cfg.Catalog)
	notificationHandler := handler.NewNotificationHandler(cfg.NotificationService)
	settingsHandler := handler.NewSettingsHandler(cfg.SettingsService)
	providerHandler := handler.NewProviderHandler(cfg.ProviderService)

	// Create auth middleware
	authMiddleware := middleware.Auth(cfg.AuthService)

	// Create rate limit middleware for different endpoint categories
	expensiveRateLimit := middleware.RateLimitByIP(middleware.ExpensiveRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(middleware.StandardRateLimit)   // 100 req/min

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			// Status endpoint requires authentication
			r.With(authMiddleware).Get("/status", opsHandler.SystemStatus)
		})

		// Catalog (public, read-only) - standard rate limiting
		r.With(standardRateLimit).Get("/catalog", maintenanceHandler.GetCatalog)

		// Vehicles (authenticated) - user-based rate limiting
		r.Route("/vehicles", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit)) // 100 req/min per user
			r.Get("/", vehicleHandler.ListVehicles)
			r.Post("/", vehicleHandler.CreateVehicle)
			r.Route("/{vehicleId}", func(r chi.Router) {
				r.Get("/", vehicleHandler.GetVehicle)
				r.Put("/", vehicleHandler.UpdateVehicle)
				r.Delete("/", vehicleHandler.DeleteVehicle)
				r.Post("/odometer", vehicleHandler.UpdateOdometer)
				r.Get("/analysis", vehicleHandler.GetAnalysis)
				r.Post("/reconcile", vehicleHandler.Reconcile)

				// Maintenance history
				r.Get("/maintenance", maintenanceHandler.ListEvents)
				r.Post("/maintenance", maintenanceHandler.LogEvent)
			})
		})

		// Maintenance events (authenticated)
		r.Route("/maintenance", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Route("/{eventId}", func(r chi.Router) {
				r.Get("/", maintenanceHandler.GetEvent)
				r.Delete("/", maintenanceHandler.DeleteEvent)
				r.Post("/complete", maintenanceHandler.CompleteEvent)
			})
		})

		// Notifications (authenticated)
		r.Route("/notifications", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Get("/", notificationHandler.ListNotifications)
			r.Get("/unread-count", notificationHandler.UnreadCount)
			r.Post("/read-all", notificationHandler.MarkAllRead)
			r.Post("/{notificationId}/read", notificationHandler.MarkRead)
		})

		// Alert settings (authenticated)
		r.Route("/settings", func(r chi.Router) {
			r.Use(authMiddleware)
			r.Use(middleware.RateLimitByUser(middleware.StandardRateLimit))
			r.Get("/alerts", settingsHandler.GetAlertSettings)
			r.Put("/alerts", settingsHandler.UpdateAlertSettings)
		})

		// Provider search - external lookups, strict rate limiting
		r.With(expensiveRateLimit).Get("/providers/search", providerHandler.SearchProviders)
	})

	return r
}
