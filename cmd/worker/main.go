// Package main provides the entrypoint for the wildpost notification worker.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/wildpost/wildpost/internal/database"
	"github.com/wildpost/wildpost/internal/dedupe"
	"github.com/wildpost/wildpost/internal/notification"
	"github.com/wildpost/wildpost/internal/push"
	"github.com/wildpost/wildpost/internal/push/fcm"
	"github.com/wildpost/wildpost/internal/telemetry"
	"github.com/wildpost/wildpost/internal/token"
	"github.com/wildpost/wildpost/internal/worker"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "wildpost-worker"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting wildpost worker")

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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry
	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    env,
		OTLPEndpoint:   otlpEndpoint,
		Enabled:        os.Getenv("OTEL_ENABLED") == "true",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	// Connect to database
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

	if err := database.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("failed to apply schema")
	}

	// Idempotency gate
	gate := dedupe.NewGate(dedupe.NewPostgresStore(pool), dedupe.DefaultMarkerTTL)

	// Notification writer and token registry
	notificationService := notification.NewService(notification.NewPostgresRepository(pool))
	tokenRegistry := token.NewRegistry(token.NewPostgresRepository(pool))

	// FCM client and push dispatcher
	fcmClient, err := fcm.NewClient(ctx, fcm.ClientConfig{
		ProjectID: os.Getenv("FCM_PROJECT_ID"),
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize FCM client")
	}

	dispatcher := push.NewDispatcher(push.Config{
		Messenger: fcmClient,
		Revoker:   tokenRegistry,
		Logger:    log,
	})

	// Pipeline metrics
	pipelineMetrics, err := worker.NewMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize pipeline metrics")
	}

	pipeline := worker.NewPipeline(worker.PipelineConfig{
		Gate:          gate,
		Notifications: notificationService,
		Tokens:        tokenRegistry,
		Dispatcher:    dispatcher,
		Logger:        log,
		Metrics:       pipelineMetrics,
	})

	// Pub/Sub subscriber
	handler, err := worker.NewPubSubHandler(ctx, worker.PubSubConfig{
		ProjectID:        os.Getenv("PUBSUB_PROJECT_ID"),
		SubscriptionName: os.Getenv("PUBSUB_SUBSCRIPTION"),
		Pipeline:         pipeline,
		Logger:           log,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize pubsub handler")
	}
	defer func() {
		if closeErr := handler.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close pubsub handler")
		}
	}()

	// Health endpoint for the container runtime
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"healthy","version":"%s"}`, Version)
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

	// Start consuming events
	receiveErr := make(chan error, 1)
	go func() {
		receiveErr <- handler.Start(ctx)
	}()

	// Wait for interrupt signal or subscriber failure
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		log.Info().Msg("shutting down worker")
	case err := <-receiveErr:
		if err != nil {
			log.Error().Err(err).Msg("pubsub receive failed")
		}
	}
	cancel()

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("health server forced to shutdown")
	}

	log.Info().Msg("worker stopped")
}
