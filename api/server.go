// ABOUTME: Huma API server configuration and setup
// ABOUTME: Provides OpenAPI documentation, CORS, middleware and route registration

package api

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"shoplist-api/api/handlers"
	"shoplist-api/api/middleware"
	"shoplist-api/core/interfaces"
	"shoplist-api/pkg/featureflags"
)

const (
	apiTitle   = "Shoplist API"
	apiVersion = "1.0.0"
)

// APIConfig holds configuration for the API
type APIConfig struct {
	Logger     interfaces.Logger
	Flags      featureflags.Manager
	RateLimit  int           // requests per window
	RateWindow time.Duration // rate limit window

	// RateLimiter overrides RateLimit and RateWindow so the caller can stop it
	RateLimiter *middleware.RateLimiter
}

// Services are the core services exposed over HTTP
type Services struct {
	Shares    interfaces.ShareService
	Snapshots interfaces.SnapshotService
	Identity  interfaces.IdentityProvider
}

// corsHandler allows browser clients from any origin
func corsHandler() func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "Authorization"},
		ExposedHeaders: []string{"Content-Length"},
		MaxAge:         600,
	})
}

func humaConfig() huma.Config {
	config := huma.DefaultConfig(apiTitle, apiVersion)
	config.Info.Description = "API for sharing shopping products by short code and keeping a user's shopping lists"

	// Bodies keep the exact documented shapes, so no $schema link is added
	config.CreateHooks = nil

	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:         "http",
			Scheme:       "bearer",
			BearerFormat: "JWT",
		},
	}
	return config
}

// NewAPI creates and configures a new Huma API instance
func NewAPI() (huma.API, chi.Router) {
	router := chi.NewRouter()
	router.Use(corsHandler())

	// The OpenAPI spec is served at /openapi.json and the docs UI at /docs
	api := humachi.New(router, humaConfig())

	return api, router
}

// NewAPIWithMiddleware creates a new API with middleware configured
func NewAPIWithMiddleware(cfg APIConfig) (huma.API, chi.Router) {
	router := chi.NewRouter()

	// CORS first so preflight requests are never rate limited
	router.Use(corsHandler())

	// Snapshots and shares with long price histories are the largest bodies
	router.Use(chimiddleware.Compress(5, "application/json"))

	if cfg.Flags != nil {
		router.Use(middleware.FeatureFlagsMiddleware(cfg.Flags))
	}

	if cfg.Logger != nil {
		router.Use(middleware.RequestLoggingMiddleware(cfg.Logger))
	}

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.RateLimit > 0 && cfg.RateWindow > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	if limiter != nil {
		router.Use(middleware.RateLimitMiddleware(limiter))
	}

	api := humachi.New(router, humaConfig())

	return api, router
}

// RegisterRoutes registers every handler on api
func RegisterRoutes(api huma.API, svc Services) {
	handlers.NewAccountHandler(svc.Identity).RegisterRoutes(api)
	handlers.NewShareHandler(svc.Shares).RegisterRoutes(api)
	handlers.NewMeHandler(svc.Identity, svc.Snapshots).RegisterRoutes(api)
}
