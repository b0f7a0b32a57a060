// Package handlers provides the HTTP handler implementations for the public
// API.
//
// This file defines the response formatter used across all endpoints: every
// route returns the same JSON envelope for success and failure, making the
// API predictable and machine-friendly.
//
// Conventions:
//   - Success: {"success": true, "data": ..., "timestamp": ...}
//   - Failure: {"success": false, "error": {"message", "code", "fields"?,
//     "details"?, "timestamp"}}
//   - Exactly one of data/error is present, and success mirrors which.
//   - error.code is a stable machine-readable token (see the apierr package).
//   - error.fields carries the per-field validation list and is always
//     client-visible; error.details is internal diagnostic text and the key
//     is omitted entirely outside debug mode, so clients checking
//     `"details" in error` see a stable shape.
//
// Example error response:
//
//	HTTP/1.1 409 Conflict
//	{
//	  "success": false,
//	  "error": {
//	    "message": "you have already applied to this job",
//	    "code": "CONFLICT",
//	    "timestamp": "2026-05-11T09:30:00Z"
//	  }
//	}
package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/http/middleware"
)

// Envelope is the uniform JSON wrapper returned by every endpoint.
type Envelope struct {
	Success bool `json:"success"`
	// Data is present exactly when Success is true.
	Data any `json:"data,omitempty"`
	// Error is present exactly when Success is false.
	Error *ErrorBody `json:"error,omitempty"`
	// Timestamp is RFC3339 UTC, set on success envelopes (error envelopes
	// carry their own).
	Timestamp string `json:"timestamp,omitempty"`
}

// ErrorBody is the error branch of the envelope.
type ErrorBody struct {
	// Message is human-readable and safe to show to users.
	Message string `json:"message"`
	// Code is the stable machine-readable token clients branch on.
	Code string `json:"code"`
	// Fields lists per-field validation failures, suitable for inline form
	// display. Present for VALIDATION_FAILED only.
	Fields []apierr.FieldError `json:"fields,omitempty"`
	// Details carries internal diagnostics; emitted only in debug mode.
	Details string `json:"details,omitempty"`
	// Timestamp is RFC3339 UTC.
	Timestamp string `json:"timestamp"`
}

// Responder renders taxonomy errors and success payloads into the envelope.
// Debug gates whether ErrorBody.Details reaches clients; server-side logs
// always get the full detail regardless.
type Responder struct {
	Debug bool
}

// OK writes a success envelope with the given HTTP status (200 for reads,
// 201 for creation).
func (r Responder) OK(c *gin.Context, status int, data any) {
	c.JSON(status, Envelope{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}

// Fail aborts the request with a failure envelope built from e. Server
// errors (>= 500) are logged with the request-scoped logger; RateLimited
// errors additionally emit a Retry-After header.
func (r Responder) Fail(c *gin.Context, e *apierr.Error) {
	body := &ErrorBody{
		Message:   e.Message,
		Code:      e.Code,
		Fields:    e.Fields,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if r.Debug && e.Details != "" {
		body.Details = e.Details
	}
	if e.RetryAfterSeconds > 0 {
		c.Header("Retry-After", strconv.Itoa(e.RetryAfterSeconds))
	}

	if e.Status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", e.Status).
			Str("code", e.Code).
			Str("detail", e.Details).
			Msg("api error")
	}

	c.AbortWithStatusJSON(e.Status, Envelope{Success: false, Error: body})
}

// Fallback writes a failure envelope for router-level conditions (unmatched
// route, wrong method) that never reach a wrapped handler. External packages
// (router setup) call this to keep even those responses in envelope shape.
func Fallback(c *gin.Context, status int, code, msg string) {
	c.AbortWithStatusJSON(status, Envelope{
		Success: false,
		Error: &ErrorBody{
			Message:   msg,
			Code:      code,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
	})
}
