// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging, panic recovery, metrics, CORS,
// security headers, authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/auth"
	"github.com/secondchance/connect-backend/internal/config"
	"github.com/secondchance/connect-backend/internal/http/handlers"
	"github.com/secondchance/connect-backend/internal/http/middleware"
	"github.com/secondchance/connect-backend/internal/ratelimit"
	"github.com/secondchance/connect-backend/internal/services"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), authentication and
// rate limiting, CORS and security headers, health and metrics endpoints, and
// then mounts the versioned public API under cfg.APIBasePath.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Body size limiter
//  6. Metrics
//  7. Authentication (resolves the token; route wrapper enforces it)
//  8. Rate limiter (per user/IP and endpoint, after auth so the user key wins)
//  9. CORS and security headers
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store ratelimit.Store, provider auth.Provider, cfg config.Config) {
	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to the JSON error envelope
	r.Use(middleware.Recovery())

	// 5) Global body size limit (1 MiB)
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token resolution; enforcement happens per-route in the wrapper
	r.Use(middleware.Authenticate(provider))

	// 8) Fixed-window rate limiter per user/IP and endpoint
	r.Use(middleware.RateLimit(store, middleware.KeyByUserOrIP(), middleware.RateLimitOptions{
		Limit:  int64(cfg.RateLimit.Limit),
		Window: cfg.RateLimit.Window,
	}))

	// 9) CORS posture (safe defaults: allow all if none configured)
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Retry-After"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "Retry-After"},
			AllowCredentials: false,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks stay in envelope shape even when no handler matched.
	// Method mismatches fall through to NoRoute on purpose: the error
	// vocabulary stays closed, so an unmatched method+path pair is a 404.
	r.NoRoute(func(c *gin.Context) {
		handlers.Fallback(c, http.StatusNotFound, apierr.CodeNotFound, "route not found")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Dependency injection: services ← db
	jobSvc := &services.JobService{DB: db}
	appSvc := &services.ApplicationService{DB: db}
	msgSvc := &services.MessageService{DB: db}
	dirSvc := &services.DirectoryService{DB: db}
	h := handlers.New(jobSvc, appSvc, msgSvc, dirSvc, cfg.Debug)

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Jobs
		api.POST("/jobs", h.CreateJob())
		api.GET("/jobs", h.ListJobs())
		api.GET("/jobs/:id", h.GetJob())
		api.PUT("/jobs/:id", h.UpdateJob())
		api.DELETE("/jobs/:id", h.DeleteJob())

		// Applications
		api.POST("/applications", h.CreateApplication())
		api.GET("/applications", h.ListApplications())
		api.PUT("/applications/:id/status", h.UpdateApplicationStatus())

		// Messages
		api.POST("/messages", h.CreateMessage())
		api.GET("/messages", h.ListMessages())
		api.PUT("/messages/:id/read", h.MarkMessageRead())

		// Support service directory
		api.POST("/services", h.CreateService())
		api.GET("/services", h.ListServices())
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
