// DirectoryService: the curated support-service directory (housing,
// counseling, legal aid, ...). Officers and admins add entries; every role
// can browse.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/repo"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/search"
	"github.com/secondchance/connect-backend/internal/utils"
)

// DirectoryService implements the use-cases around the support-service
// directory.
type DirectoryService struct {
	// DB is the database handle used for all directory operations.
	DB *gorm.DB
}

// Create adds a directory entry attributed to the authenticated curator.
// Role gating (officer/admin) happens at the route; input is validated
// against schema.ServiceCreate.
func (s *DirectoryService) Create(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.SupportService, error) {
	svc := &domain.SupportService{
		Name:        in.Str("name"),
		Category:    in.Str("category"),
		Description: in.Str("description"),
		URL:         in.Str("url"),
		CreatedBy:   auth.UserID,
	}
	return repo.CreateService(ctx, s.DB, svc)
}

// List returns a page of directory entries plus the total, optionally
// narrowed by category and keyword search.
func (s *DirectoryService) List(ctx context.Context, in schema.Data) ([]domain.SupportService, int64, error) {
	filter := repo.ServiceFilter{
		Category: in.Str("category"),
		Search:   search.LikePattern(search.NormalizeQuery(in.Str("search"))),
	}

	page := in.IntDefault("page", 1)
	limit := in.IntDefault("limit", 20)

	total, err := repo.CountServices(ctx, s.DB, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.SupportService{}, 0, nil
	}
	items, err := repo.ListServicesPage(ctx, s.DB, filter, utils.Offset(page, limit), limit)
	return items, total, err
}
