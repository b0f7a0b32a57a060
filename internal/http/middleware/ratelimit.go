// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements fixed-window rate limiting backed by a pluggable
// counter store. Counters are keyed by client identity and endpoint, so one
// noisy route cannot exhaust a caller's quota everywhere.
//
// Notes:
//   - With the in-memory store the limiter is process-local. For horizontally
//     scaled deployments install the Redis-backed store to enforce global
//     limits.
//   - The limiter fails open: if the counter store errors, the request is
//     served and the failure is logged. Losing the limiter must not take the
//     API down with it.
//   - The limiter is intended for edge-level abuse control and cost
//     protection; it is not an authorization mechanism.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/ratelimit"
)

// keyFunc selects the identity used to key a rate-limit counter.
//
// Implementations should return a stable string for the duration of a request
// (e.g., "user:<id>" or "ip:<addr>").
type keyFunc func(*gin.Context) string

// KeyByUserOrIP returns a keyFunc that prefers the authenticated user
// identity and falls back to the client IP address.
//
// The resulting keys are prefixed to avoid collisions between user and IP
// namespaces (e.g., "user:abc123" vs "ip:203.0.113.7").
func KeyByUserOrIP() keyFunc {
	return func(c *gin.Context) string {
		if ac, ok := AuthFrom(c); ok && ac.UserID != "" {
			return "user:" + ac.UserID
		}
		return "ip:" + c.ClientIP()
	}
}

// RateLimitOptions configures the fixed-window limiter.
type RateLimitOptions struct {
	// Limit is the maximum number of requests per identity+endpoint per window.
	Limit int64
	// Window is the counting window duration.
	Window time.Duration
}

// RateLimit returns a Gin middleware enforcing per-identity, per-endpoint
// fixed-window limits against the given counter store.
//
// When the quota is exceeded the middleware emits:
//
//	HTTP/1.1 429 Too Many Requests
//	Retry-After: <window seconds>
//	{
//	  "success": false,
//	  "error": {
//	    "message":   "rate limit exceeded",
//	    "code":      "RATE_LIMITED",
//	    "timestamp": "..."
//	  }
//	}
//
// Store failures are logged and the request proceeds unlimited.
func RateLimit(store ratelimit.Store, keyFn keyFunc, opts RateLimitOptions) gin.HandlerFunc {
	if opts.Limit < 1 {
		opts.Limit = 1
	}
	if opts.Window <= 0 {
		opts.Window = time.Minute
	}
	return func(c *gin.Context) {
		key := keyFn(c) + "|" + c.Request.Method + " " + endpointPath(c)

		count, err := store.IncrementAndGet(c.Request.Context(), key, opts.Window)
		if err != nil {
			LoggerFrom(c).Warn().Err(err).Msg("rate limit store unavailable, failing open")
			c.Next()
			return
		}
		if count <= opts.Limit {
			c.Next()
			return
		}

		retryAfter := int(opts.Window / time.Second)
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"success": false,
			"error": gin.H{
				"message":   "rate limit exceeded",
				"code":      "RATE_LIMITED",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			},
		})
	}
}

// endpointPath prefers the route template (stable cardinality) and falls back
// to the raw URL path for unmatched requests.
func endpointPath(c *gin.Context) string {
	if p := c.FullPath(); p != "" {
		return p
	}
	return c.Request.URL.Path
}
