// Repository functions for the Application model. Same conventions as the
// job repository: thin, context-aware, raw errors propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/domain"
)

// ApplicationFilter narrows application listings. Exactly one of SeekerID /
// EmployerID is normally set (seekers see their own applications, employers
// see applications to their jobs); officers set neither and see everything.
type ApplicationFilter struct {
	SeekerID   string
	EmployerID string
	JobID      string
	Status     string
}

// CreateApplication inserts a new application row. A duplicate
// (job_id, seeker_id) pair violates the unique composite index and surfaces
// as the driver's unique-violation error.
func CreateApplication(ctx context.Context, db *gorm.DB, app *domain.Application) (*domain.Application, error) {
	app.ID = uuid.NewString()
	app.CreatedAt = time.Now().UTC()
	if app.Status == "" {
		app.Status = domain.AppStatusPending
	}
	if err := db.WithContext(ctx).Create(app).Error; err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplication fetches a single application by ID with its job preloaded
// (ownership checks need the job's employer). Returns ErrNotFound when
// missing.
func GetApplication(ctx context.Context, db *gorm.DB, id string) (*domain.Application, error) {
	var a domain.Application
	err := db.WithContext(ctx).
		Preload("Job").
		Where("id = ?", id).
		First(&a).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// applicationQuery composes the shared WHERE clause for filtered listings.
// Employer scoping joins through jobs: an employer sees applications to the
// jobs they posted.
func applicationQuery(ctx context.Context, db *gorm.DB, f ApplicationFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Application{})
	if f.SeekerID != "" {
		q = q.Where("seeker_id = ?", f.SeekerID)
	}
	if f.EmployerID != "" {
		q = q.Joins("JOIN jobs ON jobs.id = applications.job_id").
			Where("jobs.employer_id = ?", f.EmployerID)
	}
	if f.JobID != "" {
		q = q.Where("applications.job_id = ?", f.JobID)
	}
	if f.Status != "" {
		q = q.Where("applications.status = ?", f.Status)
	}
	return q
}

// CountApplications returns the total number of applications matching the
// filter.
func CountApplications(ctx context.Context, db *gorm.DB, f ApplicationFilter) (int64, error) {
	var total int64
	err := applicationQuery(ctx, db, f).Count(&total).Error
	return total, err
}

// ListApplicationsPage returns a paginated slice of applications matching
// the filter, newest first.
func ListApplicationsPage(ctx context.Context, db *gorm.DB, f ApplicationFilter, offset, limit int) ([]domain.Application, error) {
	var out []domain.Application
	err := applicationQuery(ctx, db, f).
		Order("applications.created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateApplicationStatus sets the pipeline status of an application.
// Returns ErrNotFound when no row matched.
func UpdateApplicationStatus(ctx context.Context, db *gorm.DB, id, status string) error {
	res := db.WithContext(ctx).
		Model(&domain.Application{}).
		Where("id = ?", id).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
