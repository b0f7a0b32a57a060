// Package services implements the business logic for jobs, applications,
// messages, and the support-service directory. Services enforce ownership
// and role visibility rules and coordinate repository operations; predictable
// failures are returned as taxonomy errors (apierr) so the route wrapper can
// render them without per-route mapping, while unexpected DB failures
// propagate raw for the error translator.
package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/repo"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/search"
	"github.com/secondchance/connect-backend/internal/utils"
)

// JobService provides job posting operations: create, read, filtered
// listings, partial update, and delete. Ownership rules:
//   - only the posting employer (or an admin) may update or delete a job;
//   - employers list their own postings in any status;
//   - everyone else sees open postings only.
type JobService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
}

// Create inserts a new job owned by the authenticated employer. Input is
// already validated against schema.JobCreate.
func (s *JobService) Create(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.Job, error) {
	job := &domain.Job{
		EmployerID:  auth.UserID,
		Title:       in.Str("title"),
		Description: in.Str("description"),
		Location:    in.Str("location"),
		JobType:     in.Str("job_type"),
		Status:      in.Str("status"),
	}
	if min, ok := in.Int64("salary_min"); ok {
		job.SalaryMin = &min
	}
	if max, ok := in.Int64("salary_max"); ok {
		job.SalaryMax = &max
	}
	return repo.CreateJob(ctx, s.DB, job)
}

// Get fetches one job. Draft postings are visible only to their owner and
// admins; everyone else gets a 404, not a 403, so drafts stay unenumerable.
func (s *JobService) Get(ctx context.Context, auth domain.AuthContext, id string) (*domain.Job, error) {
	job, err := repo.GetJob(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if job.Status == domain.JobStatusDraft && !canManageJob(auth, job) {
		return nil, apierr.NotFound("job")
	}
	return job, nil
}

// List returns a page of jobs plus the total count. The filter comes from
// validated query data; visibility scoping per role is applied on top.
func (s *JobService) List(ctx context.Context, auth domain.AuthContext, in schema.Data) ([]domain.Job, int64, error) {
	filter := repo.JobFilter{
		Status:  in.Str("status"),
		JobType: in.Str("job_type"),
		Search:  search.LikePattern(search.NormalizeQuery(in.Str("search"))),
	}

	switch auth.Role {
	case domain.RoleEmployer:
		filter.EmployerID = auth.UserID
	case domain.RoleAdmin:
		// unscoped
	default:
		filter.Status = domain.JobStatusOpen
	}

	page := in.IntDefault("page", 1)
	limit := in.IntDefault("limit", 20)

	total, err := repo.CountJobs(ctx, s.DB, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Job{}, 0, nil
	}
	items, err := repo.ListJobsPage(ctx, s.DB, filter, utils.Offset(page, limit), limit)
	return items, total, err
}

// Update applies a partial update to a job. Input is validated against
// schema.JobUpdate; absent fields are left unchanged. The salary ordering
// invariant is re-checked against the merged row, since a partial payload
// can move one bound past the stored other.
func (s *JobService) Update(ctx context.Context, auth domain.AuthContext, id string, in schema.Data) (*domain.Job, error) {
	job, err := repo.GetJob(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if !canManageJob(auth, job) {
		return nil, apierr.Forbidden("only the posting employer can modify this job")
	}

	fields := make(map[string]any)
	for _, name := range []string{"title", "description", "location", "job_type", "status"} {
		if in.Has(name) {
			fields[name] = in.Str(name)
		}
	}

	mergedMin, mergedMax := job.SalaryMin, job.SalaryMax
	if v, ok := in.Int64("salary_min"); ok {
		fields["salary_min"] = v
		mergedMin = &v
	}
	if v, ok := in.Int64("salary_max"); ok {
		fields["salary_max"] = v
		mergedMax = &v
	}
	if mergedMin != nil && mergedMax != nil && *mergedMax < *mergedMin {
		return nil, apierr.ValidationFailed("", []apierr.FieldError{
			{Field: "salary_max", Message: "must be greater than or equal to salary_min"},
		})
	}

	if len(fields) == 0 {
		return job, nil
	}
	if err := repo.UpdateJobFields(ctx, s.DB, id, fields); err != nil {
		return nil, err
	}
	return repo.GetJob(ctx, s.DB, id)
}

// Delete soft-deletes a job owned by the caller (or any job, for admins).
func (s *JobService) Delete(ctx context.Context, auth domain.AuthContext, id string) error {
	job, err := repo.GetJob(ctx, s.DB, id)
	if err != nil {
		return err
	}
	if !canManageJob(auth, job) {
		return apierr.Forbidden("only the posting employer can delete this job")
	}
	return repo.DeleteJob(ctx, s.DB, id)
}

// canManageJob reports whether auth may mutate the given job.
func canManageJob(auth domain.AuthContext, job *domain.Job) bool {
	return auth.Role == domain.RoleAdmin || job.EmployerID == auth.UserID
}
