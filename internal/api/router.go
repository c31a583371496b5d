// Package api provides the HTTP API for wildpost.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/wildpost/wildpost/internal/api/handler"
	"github.com/wildpost/wildpost/internal/api/middleware"
	"github.com/wildpost/wildpost/internal/auth"
	"github.com/wildpost/wildpost/internal/inbox"
	"github.com/wildpost/wildpost/internal/notification"
	"github.com/wildpost/wildpost/internal/token"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version             string
	BuildTime           string
	Logger              zerolog.Logger
	ServiceName         string
	Metrics             *middleware.Metrics
	JWTService          *auth.JWTService
	Allowlist           auth.Allowlist
	InboxService        *inbox.Service
	Publisher           handler.EventPublisher
	NotificationService *notification.Service
	TokenRegistry       *token.Registry
	DB                  handler.Pinger
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "wildpost-api"
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
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.DB)
	submissionHandler := handler.NewSubmissionHandler(cfg.InboxService, cfg.Publisher, cfg.Logger)
	notificationHandler := handler.NewNotificationHandler(cfg.NotificationService)
	tokenHandler := handler.NewTokenHandler(cfg.TokenRegistry)

	// Create auth middleware
	adminAuth := middleware.AdminAuth(cfg.JWTService, cfg.Allowlist)

	// Create rate limit middleware
	submitRateLimit := middleware.RateLimitByIP(middleware.SubmitRateLimit) // 10 req/min per IP

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
		})

		// Public submission endpoints - strict rate limiting
		r.Group(func(r chi.Router) {
			r.Use(submitRateLimit)
			r.Use(middleware.RequireJSON)
			r.Post("/contacts", submissionHandler.CreateContact)
			r.Post("/allow-requests", submissionHandler.CreateAllowRequest)
			r.Post("/part-requests", submissionHandler.CreatePartRequest)
		})

		// Admin endpoints (authenticated, allow-list gated)
		r.Route("/admin", func(r chi.Router) {
			r.Use(adminAuth)
			r.Use(middleware.RateLimitByAdmin(middleware.AdminRateLimit)) // 100 req/min per admin

			r.Route("/notifications", func(r chi.Router) {
				r.Get("/", notificationHandler.ListNotifications)
				r.Post("/{notificationId}/read", notificationHandler.MarkNotificationRead)
				r.Delete("/{notificationId}", notificationHandler.DeleteNotification)
			})

			r.Route("/push-tokens", func(r chi.Router) {
				r.Post("/", tokenHandler.RegisterToken)
				r.Delete("/", tokenHandler.RevokeTokens)
			})
		})
	})

	return r
}
