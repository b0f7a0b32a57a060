// Package apierr defines the API error taxonomy: a closed set of typed error
// kinds, each carrying an HTTP status and a stable machine-readable code.
//
// Every code path that can be triggered by external input must resolve to one
// of these kinds before a response is written. Handlers and services return
// *Error values (or raw errors that Translate maps onto them); the response
// layer renders them into the uniform JSON envelope. Codes are stable tokens
// for client-side branching and are independent of message wording.
package apierr

import "net/http"

// Kind enumerates the error taxonomy. The set is closed on purpose: adding a
// kind means extending the status/code tables below, which keeps drift
// checkable in tests.
type Kind int

// Taxonomy kinds.
const (
	KindAuthRequired Kind = iota
	KindForbidden
	KindNotFound
	KindValidationFailed
	KindConflict
	KindRateLimited
	KindInternal
)

// Stable machine-readable codes, one per kind.
const (
	CodeAuthRequired     = "AUTH_REQUIRED"
	CodeForbidden        = "FORBIDDEN"
	CodeNotFound         = "NOT_FOUND"
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeConflict         = "CONFLICT"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL"
)

// FieldError is a single validation failure tied to one input field. The
// field is a dotted path into the request body or query; the message is
// suitable for inline form display.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the typed error value exchanged between the service layer and the
// HTTP response formatter.
//
// Invariants:
//   - Status is always one of 400/401/403/404/409/429/500.
//   - Code matches Kind (see the constructor for each kind).
//   - Fields is non-nil only for KindValidationFailed.
//   - Details carries internal diagnostics and is exposed to clients only in
//     debug mode; it is always available to server-side logging.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Code    string
	Fields  []FieldError
	Details string

	// RetryAfterSeconds is set for KindRateLimited and rendered as the
	// Retry-After response header.
	RetryAfterSeconds int

	cause error
}

// Error implements the error interface.
func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying cause (if any) for errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.cause }

// WithCause attaches the originating error without changing the client-facing
// message, and records its text as diagnostic detail.
func (e *Error) WithCause(err error) *Error {
	if err != nil {
		e.cause = err
		e.Details = err.Error()
	}
	return e
}

// AuthRequired reports that no authenticated session is present (401).
func AuthRequired() *Error {
	return &Error{
		Kind:    KindAuthRequired,
		Message: "authentication required",
		Status:  http.StatusUnauthorized,
		Code:    CodeAuthRequired,
	}
}

// Forbidden reports that the caller is authenticated but the role or
// ownership check failed (403). msg may be empty.
func Forbidden(msg string) *Error {
	if msg == "" {
		msg = "you do not have permission to perform this action"
	}
	return &Error{
		Kind:    KindForbidden,
		Message: msg,
		Status:  http.StatusForbidden,
		Code:    CodeForbidden,
	}
}

// NotFound reports that the referenced resource is absent or invisible under
// the caller's authorization (404). resource may be empty.
func NotFound(resource string) *Error {
	msg := "resource not found"
	if resource != "" {
		msg = resource + " not found"
	}
	return &Error{
		Kind:    KindNotFound,
		Message: msg,
		Status:  http.StatusNotFound,
		Code:    CodeNotFound,
	}
}

// ValidationFailed reports field-level validation errors (400). The field
// list may be empty for body-level failures such as malformed JSON, in which
// case msg should describe the problem.
func ValidationFailed(msg string, fields []FieldError) *Error {
	if msg == "" {
		msg = "validation failed"
	}
	return &Error{
		Kind:    KindValidationFailed,
		Message: msg,
		Status:  http.StatusBadRequest,
		Code:    CodeValidationFailed,
		Fields:  fields,
	}
}

// Conflict reports a duplicate unique key or a domain conflict such as
// "already applied" (409). msg may be empty.
func Conflict(msg string) *Error {
	if msg == "" {
		msg = "the request conflicts with existing data"
	}
	return &Error{
		Kind:    KindConflict,
		Message: msg,
		Status:  http.StatusConflict,
		Code:    CodeConflict,
	}
}

// RateLimited reports that the caller exceeded its request quota (429).
// retryAfterSeconds is surfaced via the Retry-After header.
func RateLimited(retryAfterSeconds int) *Error {
	if retryAfterSeconds < 1 {
		retryAfterSeconds = 1
	}
	return &Error{
		Kind:              KindRateLimited,
		Message:           "rate limit exceeded",
		Status:            http.StatusTooManyRequests,
		Code:              CodeRateLimited,
		RetryAfterSeconds: retryAfterSeconds,
	}
}

// Internal reports an unclassified failure (500). msg replaces the generic
// message shown to clients; internal detail belongs in WithCause, never in
// msg.
func Internal(msg string) *Error {
	if msg == "" {
		msg = "Internal server error"
	}
	return &Error{
		Kind:    KindInternal,
		Message: msg,
		Status:  http.StatusInternalServerError,
		Code:    CodeInternal,
	}
}
