// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Job model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations. They
// follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition.
//
// Error semantics:
//   - When a job is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - On DB errors (constraint violations, connectivity issues, etc.),
//     the raw driver error is propagated for the error translator to map.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist. It aliases
// gorm.ErrRecordNotFound for convenience and consistency across the service
// layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// JobFilter narrows job listings. Zero values mean "no constraint". Search is
// a pre-normalized LIKE pattern (see the search package); EmployerID scopes
// the listing to one employer's postings.
type JobFilter struct {
	Status     string
	JobType    string
	Search     string
	EmployerID string
}

// CreateJob inserts a new Job row owned by employerID. The job ID is a
// randomly generated UUID, and CreatedAt is set to UTC.
func CreateJob(ctx context.Context, db *gorm.DB, job *domain.Job) (*domain.Job, error) {
	job.ID = uuid.NewString()
	job.CreatedAt = time.Now().UTC()
	if err := db.WithContext(ctx).Create(job).Error; err != nil {
		return nil, err
	}
	return job, nil
}

// GetJob fetches a single job by ID. If the record does not exist, it returns
// ErrNotFound. On other DB errors, the raw error is returned.
func GetJob(ctx context.Context, db *gorm.DB, id string) (*domain.Job, error) {
	var j domain.Job
	if err := db.WithContext(ctx).Where("id = ?", id).First(&j).Error; err != nil {
		return nil, err
	}
	return &j, nil
}

// jobQuery composes the shared WHERE clause for filtered job listings.
func jobQuery(ctx context.Context, db *gorm.DB, f JobFilter) *gorm.DB {
	q := db.WithContext(ctx).Model(&domain.Job{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.JobType != "" {
		q = q.Where("job_type = ?", f.JobType)
	}
	if f.EmployerID != "" {
		q = q.Where("employer_id = ?", f.EmployerID)
	}
	if f.Search != "" {
		// ESCAPE pins the escape character: Postgres defaults to backslash
		// but SQLite treats it as a literal without the clause.
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\' OR LOWER(location) LIKE ? ESCAPE '\'`, f.Search, f.Search)
	}
	return q
}

// CountJobs returns the total number of jobs matching the filter.
func CountJobs(ctx context.Context, db *gorm.DB, f JobFilter) (int64, error) {
	var total int64
	err := jobQuery(ctx, db, f).Count(&total).Error
	return total, err
}

// ListJobsPage returns a paginated slice of jobs matching the filter, ordered
// by creation time descending. Use CountJobs to obtain the total for
// pagination metadata.
//
// The caller is responsible for computing offset and limit.
func ListJobsPage(ctx context.Context, db *gorm.DB, f JobFilter, offset, limit int) ([]domain.Job, error) {
	var out []domain.Job
	err := jobQuery(ctx, db, f).
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateJobFields applies a partial update to a job owned by employerID.
// If no rows are affected (job missing or owned by someone else), it returns
// ErrNotFound; ownership is checked before the update by the service layer,
// so RowsAffected == 0 here means the row vanished concurrently.
func UpdateJobFields(ctx context.Context, db *gorm.DB, id string, fields map[string]any) error {
	res := db.WithContext(ctx).
		Model(&domain.Job{}).
		Where("id = ?", id).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteJob soft-deletes a job by ID. Returns ErrNotFound when no row
// matched.
func DeleteJob(ctx context.Context, db *gorm.DB, id string) error {
	res := db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Job{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
