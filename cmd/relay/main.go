// Package main provides the entrypoint for the AutoCare webhook relay.
// The relay accepts appointment-created webhooks from third parties and
// fans them out to notification channels.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/autocare/autocare/internal/relay"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "autocare-relay"

	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting AutoCare webhook relay")

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8081"
	}

	secret := os.Getenv("WEBHOOK_SECRET")
	if secret == "" {
		secret = "local-dev-webhook-secret"
		log.Warn().Msg("using default webhook secret - not secure for production")
	}

	service := relay.NewService(relay.ServiceConfig{
		Secret: secret,
		Logger: log,
	})
	handler := relay.NewHandler(service, log)

	server := &http.Server{
		Addr:         ":" + port,
		Handler:      handler.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("relay listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down relay")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("relay stopped")
}
