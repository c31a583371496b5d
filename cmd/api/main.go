// Package main provides the entrypoint for the wildpost API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/wildpost/wildpost/internal/api"
	"github.com/wildpost/wildpost/internal/api/middleware"
	"github.com/wildpost/wildpost/internal/auth"
	"github.com/wildpost/wildpost/internal/database"
	"github.com/wildpost/wildpost/internal/eventbus"
	"github.com/wildpost/wildpost/internal/inbox"
	"github.com/wildpost/wildpost/internal/notification"
	"github.com/wildpost/wildpost/internal/telemetry"
	"github.com/wildpost/wildpost/internal/token"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "wildpost-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting wildpost API")

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

	// Connect to database
	dbConfig := database.ConfigFromEnv()
	pool, err := database.Connect(ctx, dbConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	log.Info().
		Str("host", dbConfig.Host).
		Int("port", dbConfig.Port).
		Str("database", dbConfig.Database).
		Msg("database connected")

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	// Initialize JWT service (get signing key from environment)
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		jwtSigningKey = "local-dev-signing-key-change-in-production"
		log.Warn().Msg("using default JWT signing key - not secure for production")
	}

	jwtService := auth.NewJWTService(auth.JWTConfig{
		SigningKey: jwtSigningKey,
		Issuer:     os.Getenv("JWT_ISSUER"),
		Audience:   os.Getenv("JWT_AUDIENCE"),
	})

	// Initialize the admin allow-list
	allowlist := auth.ParseAllowlist(os.Getenv("ADMIN_ALLOWED_EMAILS"))
	if allowlist.Len() == 0 {
		log.Warn().Msg("ADMIN_ALLOWED_EMAILS is empty - admin endpoints will reject everyone")
	} else {
		log.Info().Int("admins", allowlist.Len()).Msg("admin allow-list loaded")
	}

	// Initialize the created-event publisher
	publisher, err := eventbus.NewPublisher(ctx, eventbus.Config{
		ProjectID: os.Getenv("PUBSUB_PROJECT_ID"),
		TopicName: os.Getenv("PUBSUB_TOPIC"),
		Logger:    log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize publisher")
	}
	defer func() {
		if closeErr := publisher.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close publisher")
		}
	}()
	log.Info().Msg("event publisher initialized")

	// Initialize domain services
	inboxService := inbox.NewService(inbox.NewPostgresRepository(pool))
	notificationService := notification.NewService(notification.NewPostgresRepository(pool))
	tokenRegistry := token.NewRegistry(token.NewPostgresRepository(pool))
	log.Info().Msg("domain services initialized")

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:             Version,
		BuildTime:           BuildTime,
		Logger:              log,
		ServiceName:         serviceName,
		Metrics:             metrics,
		JWTService:          jwtService,
		Allowlist:           allowlist,
		InboxService:        inboxService,
		Publisher:           publisher,
		NotificationService: notificationService,
		TokenRegistry:       tokenRegistry,
		DB:                  pool,
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
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
