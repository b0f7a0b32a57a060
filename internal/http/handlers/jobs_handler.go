// Job posting HTTP handlers.
//
// Routes:
//   - POST   /jobs       (create, employers)
//   - GET    /jobs       (list, role-scoped)
//   - GET    /jobs/{id}  (fetch one)
//   - PUT    /jobs/{id}  (partial update, owner)
//   - DELETE /jobs/{id}  (remove, owner)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/utils"
)

// ListJobsResponse wraps a page of jobs and pagination information.
type ListJobsResponse struct {
	Jobs       []domain.Job     `json:"jobs"`
	Pagination utils.Pagination `json:"pagination"`
}

// CreateJob posts a new job. Restricted to employers.
func (h *Handlers) CreateJob() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Body:   schema.JobCreate,
		Roles:  []domain.Role{domain.RoleEmployer},
		Status: http.StatusCreated,
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.jobSvc.Create(ctx, auth, in.Body)
	})
}

// GetJob returns one job by id. Draft jobs are visible to their owner only.
func (h *Handlers) GetJob() gin.HandlerFunc {
	return h.handle(RouteSpec{}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.jobSvc.Get(ctx, auth, in.Params["id"])
	})
}

// ListJobs returns a paginated, filterable job list scoped by role:
// employers see their own postings in any status, everyone else sees open
// jobs only.
func (h *Handlers) ListJobs() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Query: schema.JobList,
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		jobs, total, err := h.jobSvc.List(ctx, auth, in.Query)
		if err != nil {
			return nil, err
		}
		page := in.Query.IntDefault("page", 1)
		limit := in.Query.IntDefault("limit", 20)
		return ListJobsResponse{
			Jobs:       jobs,
			Pagination: utils.NewPagination(page, limit, total),
		}, nil
	})
}

// UpdateJob applies a partial update to a job owned by the caller.
func (h *Handlers) UpdateJob() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Body:  schema.JobUpdate,
		Roles: []domain.Role{domain.RoleEmployer},
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.jobSvc.Update(ctx, auth, in.Params["id"], in.Body)
	})
}

// DeleteJob removes a job owned by the caller. The response stays enveloped
// like every other route, echoing the deleted id.
func (h *Handlers) DeleteJob() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Roles: []domain.Role{domain.RoleEmployer},
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		id := in.Params["id"]
		if err := h.jobSvc.Delete(ctx, auth, id); err != nil {
			return nil, err
		}
		return gin.H{"deleted": id}, nil
	})
}
