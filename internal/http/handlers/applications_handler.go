// Job application HTTP handlers.
//
// Routes:
//   - POST /applications              (apply, seekers)
//   - GET  /applications              (list, role-scoped)
//   - PUT  /applications/{id}/status  (review, employers)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/utils"
)

// ListApplicationsResponse wraps a page of applications and pagination
// information.
type ListApplicationsResponse struct {
	Applications []domain.Application `json:"applications"`
	Pagination   utils.Pagination     `json:"pagination"`
}

// CreateApplication submits an application to an open job. Restricted to
// seekers; one application per seeker per job.
func (h *Handlers) CreateApplication() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Body:   schema.ApplicationCreate,
		Roles:  []domain.Role{domain.RoleSeeker},
		Status: http.StatusCreated,
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.appSvc.Apply(ctx, auth, in.Body)
	})
}

// ListApplications returns a paginated application list scoped by role:
// seekers see their own, employers see applications to their jobs, officers
// and admins see all.
func (h *Handlers) ListApplications() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Query: schema.ApplicationList,
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		apps, total, err := h.appSvc.List(ctx, auth, in.Query)
		if err != nil {
			return nil, err
		}
		page := in.Query.IntDefault("page", 1)
		limit := in.Query.IntDefault("limit", 10)
		return ListApplicationsResponse{
			Applications: apps,
			Pagination:   utils.NewPagination(page, limit, total),
		}, nil
	})
}

// UpdateApplicationStatus moves an application through its review flow.
// Only the employer owning the job (or an admin) may change the status.
func (h *Handlers) UpdateApplicationStatus() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Body:  schema.ApplicationStatus,
		Roles: []domain.Role{domain.RoleEmployer},
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.appSvc.UpdateStatus(ctx, auth, in.Params["id"], in.Body.Str("status"))
	})
}
