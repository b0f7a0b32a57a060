// ApplicationService: seekers apply to open jobs, employers move
// applications through the pipeline. The (job, seeker) pair is unique; the
// check-then-insert runs inside a transaction and the unique index backs it
// up, so a race still resolves to 409 via the error translator.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/repo"
	"github.com/secondchance/connect-backend/internal/schema"
	"github.com/secondchance/connect-backend/internal/utils"
)

// ApplicationService implements the use-cases around job applications.
type ApplicationService struct {
	// DB is the database handle used for all application operations.
	DB *gorm.DB
}

// Apply records seeker auth.UserID applying to the job named in the
// validated input.
//
// Semantics:
//   - The job must exist; otherwise 404.
//   - The job must be open; drafts and closed postings yield 409.
//   - A seeker may apply to a given job once; a repeat yields 409.
func (s *ApplicationService) Apply(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.Application, error) {
	var created *domain.Application

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		job, err := repo.GetJob(ctx, tx, in.Str("job_id"))
		if err != nil {
			if isNotFound(err) {
				return apierr.NotFound("job")
			}
			return err
		}
		if job.Status != domain.JobStatusOpen {
			return apierr.Conflict("this job is not accepting applications")
		}

		app := &domain.Application{
			JobID:     job.ID,
			SeekerID:  auth.UserID,
			CoverNote: in.Str("cover_note"),
		}
		created, err = repo.CreateApplication(ctx, tx, app)
		if err != nil {
			// TranslateError is on, so every driver surfaces unique
			// violations as this sentinel.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apierr.Conflict("you have already applied to this job")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// List returns a page of applications visible to the caller plus the total.
// Seekers see their own; employers see applications to their postings;
// officers and admins see everything (caseload view). Optional job_id and
// status filters from the validated query narrow further.
func (s *ApplicationService) List(ctx context.Context, auth domain.AuthContext, in schema.Data) ([]domain.Application, int64, error) {
	filter := repo.ApplicationFilter{
		JobID:  in.Str("job_id"),
		Status: in.Str("status"),
	}
	switch auth.Role {
	case domain.RoleSeeker:
		filter.SeekerID = auth.UserID
	case domain.RoleEmployer:
		filter.EmployerID = auth.UserID
	case domain.RoleOfficer, domain.RoleAdmin:
		// unscoped
	}

	page := in.IntDefault("page", 1)
	limit := in.IntDefault("limit", 10)

	total, err := repo.CountApplications(ctx, s.DB, filter)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.Application{}, 0, nil
	}
	items, err := repo.ListApplicationsPage(ctx, s.DB, filter, utils.Offset(page, limit), limit)
	return items, total, err
}

// UpdateStatus moves an application to a new pipeline status. Only the
// employer who posted the job (or an admin) may do so.
func (s *ApplicationService) UpdateStatus(ctx context.Context, auth domain.AuthContext, id, status string) (*domain.Application, error) {
	app, err := repo.GetApplication(ctx, s.DB, id)
	if err != nil {
		return nil, err
	}
	if auth.Role != domain.RoleAdmin && app.Job.EmployerID != auth.UserID {
		return nil, apierr.Forbidden("only the employer who posted the job can update this application")
	}
	if err := repo.UpdateApplicationStatus(ctx, s.DB, id, status); err != nil {
		return nil, err
	}
	app.Status = status
	return app, nil
}

// isNotFound detects the "no rows" sentinel across call shapes.
func isNotFound(err error) bool {
	if errors.Is(err, repo.ErrNotFound) {
		return true
	}
	return errors.Is(err, gorm.ErrRecordNotFound)
}
