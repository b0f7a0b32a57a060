package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/http/middleware"
	"github.com/secondchance/connect-backend/internal/schema"
)

// newWrapRouter mounts a single wrapped route. When ac is non-nil the request
// runs with that identity injected ahead of the handler.
func newWrapRouter(method, path string, ac *domain.AuthContext, spec RouteSpec, core CoreFunc) *gin.Engine {
	r := gin.New()
	h := &Handlers{resp: Responder{}}
	if ac != nil {
		identity := *ac
		r.Use(func(c *gin.Context) {
			middleware.SetAuth(c, identity)
			c.Next()
		})
	}
	r.Handle(method, path, h.handle(spec, core))
	return r
}

func doJSON(r *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	body := decodeBody(t, w)
	errBody, ok := body["error"].(map[string]any)
	if !ok {
		t.Fatalf("no error branch in %s", w.Body.String())
	}
	code, _ := errBody["code"].(string)
	return code
}

var seekerAuth = domain.AuthContext{UserID: "u-seeker", Role: domain.RoleSeeker}

func TestHandle_NoAuthContext(t *testing.T) {
	invoked := false
	r := newWrapRouter(http.MethodGet, "/jobs", nil, RouteSpec{},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			invoked = true
			return nil, nil
		})

	w := doJSON(r, http.MethodGet, "/jobs", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errCode(t, w); got != apierr.CodeAuthRequired {
		t.Fatalf("code = %q", got)
	}
	if invoked {
		t.Fatal("core must never run without an auth context")
	}
}

func TestHandle_RoleDenied(t *testing.T) {
	invoked := false
	r := newWrapRouter(http.MethodPost, "/jobs", &seekerAuth,
		RouteSpec{Roles: []domain.Role{domain.RoleEmployer}},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			invoked = true
			return nil, nil
		})

	w := doJSON(r, http.MethodPost, "/jobs", "")
	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errCode(t, w); got != apierr.CodeForbidden {
		t.Fatalf("code = %q", got)
	}
	if invoked {
		t.Fatal("core must not run for a denied role")
	}
}

func TestHandle_AdminBypassesRoleCheck(t *testing.T) {
	admin := domain.AuthContext{UserID: "u-admin", Role: domain.RoleAdmin}
	r := newWrapRouter(http.MethodPost, "/jobs", &admin,
		RouteSpec{Roles: []domain.Role{domain.RoleEmployer}, Status: http.StatusCreated},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			return map[string]string{"by": auth.UserID}, nil
		})

	w := doJSON(r, http.MethodPost, "/jobs", "")
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
}

func TestHandle_MalformedJSONBody(t *testing.T) {
	invoked := false
	r := newWrapRouter(http.MethodPost, "/applications", &seekerAuth,
		RouteSpec{Body: schema.ApplicationCreate},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			invoked = true
			return nil, nil
		})

	w := doJSON(r, http.MethodPost, "/applications", "{not json")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errCode(t, w); got != apierr.CodeValidationFailed {
		t.Fatalf("code = %q", got)
	}
	if invoked {
		t.Fatal("core must not run on malformed input")
	}
}

func TestHandle_BodyValidationFailure(t *testing.T) {
	r := newWrapRouter(http.MethodPost, "/applications", &seekerAuth,
		RouteSpec{Body: schema.ApplicationCreate},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			return nil, nil
		})

	w := doJSON(r, http.MethodPost, "/applications", `{"job_id":"nope"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	errBody := decodeBody(t, w)["error"].(map[string]any)
	fields, _ := errBody["fields"].([]any)
	if len(fields) != 1 {
		t.Fatalf("fields = %v", errBody["fields"])
	}
	if f := fields[0].(map[string]any); f["field"] != "job_id" {
		t.Fatalf("field entry = %v", f)
	}
}

func TestHandle_QueryValidationFailure(t *testing.T) {
	r := newWrapRouter(http.MethodGet, "/jobs", &seekerAuth,
		RouteSpec{Query: schema.JobList},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			return nil, nil
		})

	w := doJSON(r, http.MethodGet, "/jobs?page=zero", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if got := errCode(t, w); got != apierr.CodeValidationFailed {
		t.Fatalf("code = %q", got)
	}
}

// A raw backend unique-violation surfaces as the taxonomy's Conflict code,
// never as the SQLSTATE string.
func TestHandle_TranslatesRawBackendError(t *testing.T) {
	r := newWrapRouter(http.MethodPost, "/applications", &seekerAuth,
		RouteSpec{},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			return nil, &pgconn.PgError{Code: "23505"}
		})

	w := doJSON(r, http.MethodPost, "/applications", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d", w.Code)
	}
	code := errCode(t, w)
	if code != apierr.CodeConflict {
		t.Fatalf("code = %q", code)
	}
	if code == "23505" {
		t.Fatal("raw sqlstate leaked to the client")
	}
}

func TestHandle_SuccessPath(t *testing.T) {
	var got Input
	r := newWrapRouter(http.MethodPost, "/applications", &seekerAuth,
		RouteSpec{Body: schema.ApplicationCreate, Status: http.StatusCreated},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			got = in
			return map[string]string{"id": "a1"}, nil
		})

	w := doJSON(r, http.MethodPost, "/applications",
		`{"job_id":"7b1e9bd2-5df3-4f34-9d1e-3f12aa0c6e10","cover_note":"  I am ready to work.  "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("success = %v", body["success"])
	}
	if got.Body.Str("cover_note") != "I am ready to work." {
		t.Fatalf("core did not receive trimmed input: %q", got.Body.Str("cover_note"))
	}
}

func TestHandle_PathParamsReachCore(t *testing.T) {
	r := newWrapRouter(http.MethodGet, "/jobs/:id", &seekerAuth, RouteSpec{},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			return map[string]string{"id": in.Params["id"]}, nil
		})

	w := doJSON(r, http.MethodGet, "/jobs/j-42", "")
	data := decodeBody(t, w)["data"].(map[string]any)
	if data["id"] != "j-42" {
		t.Fatalf("data = %v", data)
	}
}

// Deletes stay enveloped like every other route: a 200 with success=true,
// never a bare 204.
func TestHandle_DeleteRendersEnvelope(t *testing.T) {
	r := newWrapRouter(http.MethodDelete, "/jobs/:id", &seekerAuth,
		RouteSpec{},
		func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
			return gin.H{"deleted": in.Params["id"]}, nil
		})

	w := doJSON(r, http.MethodDelete, "/jobs/j-42", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["success"] != true {
		t.Fatalf("body = %v", body)
	}
	data := body["data"].(map[string]any)
	if data["deleted"] != "j-42" {
		t.Fatalf("data = %v", data)
	}
}
