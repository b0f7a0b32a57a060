// Support service directory HTTP handlers.
//
// Routes:
//   - POST /services  (register entry, officers)
//   - GET  /services  (browse, any authenticated user)
package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/utils"
)

// ListServicesResponse wraps a page of directory entries and pagination
// information.
type ListServicesResponse struct {
	Services   []domain.SupportService `json:"services"`
	Pagination utils.Pagination        `json:"pagination"`
}

// CreateService registers a support service directory entry. Restricted to
// reentry officers.
func (h *Handlers) CreateService() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Body:   schema.ServiceCreate,
		Roles:  []domain.Role{domain.RoleOfficer},
		Status: http.StatusCreated,
	}, func(ctx context.Context, auth domain.AuthContext, in Input) (any, error) {
		return h.dirSvc.Create(ctx, auth, in.Body)
	})
}

// ListServices returns a paginated directory listing, filterable by category
// and free-text search.
func (h *Handlers) ListServices() gin.HandlerFunc {
	return h.handle(RouteSpec{
		Query: schema.ServiceList,
	}, func(ctx context.Context, _ domain.AuthContext, in Input) (any, error) {
		entries, total, err := h.dirSvc.List(ctx, in.Query)
		if err != nil {
			return nil, err
		}
		page := in.Query.IntDefault("page", 1)
		limit := in.Query.IntDefault("limit", 20)
		return ListServicesResponse{
			Services:   entries,
			Pagination: utils.NewPagination(page, limit, total),
		}, nil
	})
}
