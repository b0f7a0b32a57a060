// Repository functions for the Profile model. Account creation itself lives
// with the external identity provider; this side keeps the role/display
// record the API authorizes against.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/domain"
)

// CreateProfile inserts a profile row for an auth subject. A duplicate
// user_id violates the unique index.
func CreateProfile(ctx context.Context, db *gorm.DB, p *domain.Profile) (*domain.Profile, error) {
	p.ID = uuid.NewString()
	p.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(p).Error; err != nil {
		return nil, err
	}
	return p, nil
}

// GetProfileByUserID fetches the profile bound to an auth subject. Returns
// ErrNotFound when the subject has no profile.
func GetProfileByUserID(ctx context.Context, db *gorm.DB, userID string) (*domain.Profile, error) {
	var p domain.Profile
	if err := db.WithContext(ctx).Where("user_id = ?", userID).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}
