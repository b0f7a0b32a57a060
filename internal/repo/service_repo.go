// Repository functions for the SupportService directory.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/domain"
)

// ServiceFilter narrows directory listings. Search is a pre-normalized LIKE
// pattern (see the search package).
type ServiceFilter struct {
	Category string
	Search   string
}

// CreateService inserts a new directory entry.
func CreateService(ctx context.Context, db *gorm.DB, svc *domain.SupportService) (*domain.SupportService, error) {
	svc.ID = uuid.NewString()
	svc.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(svc).Error; err != nil {
		return nil, err
	}
	return svc, nil
}

// serviceQuery composes the shared WHERE clause for filtered listings.
func serviceQuery(ctx context.Context, db *gorm.DB, f ServiceFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.SupportService{})
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if f.Search != "" {
		q = q.Where(`LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\'`, f.Search, f.Search)
	}
	return q
}

// CountServices returns the total number of directory entries matching the
// filter.
func CountServices(ctx context.Context, db *gorm.DB, f ServiceFilter) (int64, error) {
	var total int64
	err := serviceQuery(ctx, db, f).Count(&total).Error
	return total, err
}

// ListServicesPage returns a paginated slice of directory entries matching
// the filter, ordered by name.
func ListServicesPage(ctx context.Context, db *gorm.DB, f ServiceFilter, offset, limit int) ([]domain.SupportService, error) {
	var out []domain.SupportService
	err := serviceQuery(ctx, db, f).
		Order("name asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
