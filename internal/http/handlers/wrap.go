package handlers

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/http/middleware"
	"github.com/secondchance/connect-backend/internal/schema"
)

// Input is the validated request material handed to a route core: coerced
// body fields, coerced query parameters (with declared defaults applied),
// and raw path parameters.
type Input struct {
	Body   schema.Data
	Query  schema.Data
	Params map[string]string
}

// CoreFunc is a route's business logic, invoked only after authentication,
// role checks, and validation all pass. A returned error is translated into
// the error taxonomy before rendering, so cores may return taxonomy errors,
// database errors, or anything else.
type CoreFunc func(ctx context.Context, auth domain.AuthContext, in Input) (any, error)

// RouteSpec declares a route's contract up front: which schemas validate its
// body and query string, which roles may call it, and the status for a
// successful response.
type RouteSpec struct {
	// Body, when set, is validated against the decoded JSON request body.
	Body *schema.Schema
	// Query, when set, is validated against the URL query string.
	Query *schema.Schema
	// Roles restricts the route to the listed roles. Empty means any
	// authenticated caller. Admin always passes.
	Roles []domain.Role
	// Status is the HTTP status on success; zero means 200.
	Status int
}

// handle wraps a route core with the request pipeline every endpoint shares.
// The ordering is fixed and short-circuits at the first failure:
//
//  1. authentication  -> 401 AUTH_REQUIRED
//  2. role check      -> 403 FORBIDDEN (admin bypasses)
//  3. body decode     -> 400 VALIDATION_FAILED (malformed JSON)
//  4. body validation -> 400 VALIDATION_FAILED with field list
//  5. query validation-> 400 VALIDATION_FAILED with field list
//  6. core
//  7. error translation + envelope rendering
//
// The core is never invoked when any earlier step fails.
func (h *Handlers) handle(spec RouteSpec, core CoreFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := middleware.AuthFrom(c)
		if !ok {
			h.resp.Fail(c, apierr.AuthRequired())
			return
		}

		if !roleAllowed(spec.Roles, auth.Role) {
			h.resp.Fail(c, apierr.Forbidden(""))
			return
		}

		in := Input{Params: pathParams(c)}

		if spec.Body != nil {
			var raw map[string]any
			if err := c.ShouldBindJSON(&raw); err != nil {
				h.resp.Fail(c, apierr.ValidationFailed("request body must be valid JSON", nil))
				return
			}
			res := spec.Body.Validate(raw)
			if !res.Valid() {
				h.resp.Fail(c, apierr.ValidationFailed("", toFieldErrors(res.Errors)))
				return
			}
			in.Body = res.Data
		}

		if spec.Query != nil {
			res := spec.Query.ValidateQuery(c.Request.URL.Query())
			if !res.Valid() {
				h.resp.Fail(c, apierr.ValidationFailed("", toFieldErrors(res.Errors)))
				return
			}
			in.Query = res.Data
		}

		out, err := core(c.Request.Context(), auth, in)
		if err != nil {
			h.resp.Fail(c, apierr.Translate(err))
			return
		}

		status := spec.Status
		if status == 0 {
			status = 200
		}
		h.resp.OK(c, status, out)
	}
}

func roleAllowed(allowed []domain.Role, r domain.Role) bool {
	if len(allowed) == 0 || r == domain.RoleAdmin {
		return true
	}
	for _, a := range allowed {
		if a == r {
			return true
		}
	}
	return false
}

func pathParams(c *gin.Context) map[string]string {
	if len(c.Params) == 0 {
		return nil
	}
	m := make(map[string]string, len(c.Params))
	for _, p := range c.Params {
		m[p.Key] = p.Value
	}
	return m
}

func toFieldErrors(errs []schema.FieldError) []apierr.FieldError {
	out := make([]apierr.FieldError, len(errs))
	for i, fe := range errs {
		out[i] = apierr.FieldError{Field: fe.Field, Message: fe.Message}
	}
	return out
}
