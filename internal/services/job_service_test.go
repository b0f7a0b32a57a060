package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/secondchance/connect-backend/internal/apierr"
	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/schema"
)

func newServiceDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("service_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

var (
	employer = domain.AuthContext{UserID: "emp-1", Role: domain.RoleEmployer}
	seeker   = domain.AuthContext{UserID: "seeker-1", Role: domain.RoleSeeker}
	admin    = domain.AuthContext{UserID: "root", Role: domain.RoleAdmin}
)

func jobInput(status string) schema.Data {
	return schema.Data{
		"title":       "Warehouse Associate",
		"description": "Receiving, sorting, and preparing shipments for dispatch.",
		"location":    "Portland, OR",
		"job_type":    domain.JobTypeFullTime,
		"status":      status,
	}
}

func wantForbidden(t *testing.T, err error) {
	t.Helper()
	var typed *apierr.Error
	if !errors.As(err, &typed) || typed.Kind != apierr.KindForbidden {
		t.Fatalf("err = %v, want Forbidden", err)
	}
}

func TestJobService_CreateSetsOwner(t *testing.T) {
	svc := &JobService{DB: newServiceDB(t, &domain.Job{})}

	job, err := svc.Create(context.Background(), employer, jobInput(domain.JobStatusOpen))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if job.EmployerID != employer.UserID {
		t.Fatalf("employer = %q", job.EmployerID)
	}
}

func TestJobService_DraftHiddenFromOthers(t *testing.T) {
	svc := &JobService{DB: newServiceDB(t, &domain.Job{})}
	ctx := context.Background()

	draft, err := svc.Create(ctx, employer, jobInput(domain.JobStatusDraft))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Owner and admin see the draft.
	if _, err := svc.Get(ctx, employer, draft.ID); err != nil {
		t.Fatalf("owner get: %v", err)
	}
	if _, err := svc.Get(ctx, admin, draft.ID); err != nil {
		t.Fatalf("admin get: %v", err)
	}

	// Everyone else gets a 404, not a 403, so drafts stay unenumerable.
	_, err = svc.Get(ctx, seeker, draft.ID)
	var typed *apierr.Error
	if !errors.As(err, &typed) || typed.Kind != apierr.KindNotFound {
		t.Fatalf("seeker get err = %v, want NotFound", err)
	}
}

func TestJobService_ListScopedByRole(t *testing.T) {
	svc := &JobService{DB: newServiceDB(t, &domain.Job{})}
	ctx := context.Background()

	svc.Create(ctx, employer, jobInput(domain.JobStatusOpen))
	svc.Create(ctx, employer, jobInput(domain.JobStatusDraft))
	other := domain.AuthContext{UserID: "emp-2", Role: domain.RoleEmployer}
	svc.Create(ctx, other, jobInput(domain.JobStatusOpen))

	// Employers see their own postings in any status.
	mine, total, err := svc.List(ctx, employer, schema.Data{})
	if err != nil || total != 2 || len(mine) != 2 {
		t.Fatalf("employer list = %d/%d err = %v", len(mine), total, err)
	}

	// Seekers see open jobs only, across employers.
	visible, total, err := svc.List(ctx, seeker, schema.Data{})
	if err != nil || total != 2 {
		t.Fatalf("seeker list total = %d err = %v", total, err)
	}
	for _, j := range visible {
		if j.Status != domain.JobStatusOpen {
			t.Fatalf("draft leaked to seeker: %+v", j)
		}
	}

	// Admins see everything.
	_, total, err = svc.List(ctx, admin, schema.Data{})
	if err != nil || total != 3 {
		t.Fatalf("admin total = %d err = %v", total, err)
	}
}

// Search terms containing LIKE metacharacters must match literally, never
// as wildcards.
func TestJobService_SearchEscapesLikeMetacharacters(t *testing.T) {
	svc := &JobService{DB: newServiceDB(t, &domain.Job{})}
	ctx := context.Background()

	remote := jobInput(domain.JobStatusOpen)
	remote["title"] = "100% Remote Dispatcher"
	svc.Create(ctx, employer, remote)

	hundred := jobInput(domain.JobStatusOpen)
	hundred["title"] = "100 Percent Effort Crew"
	svc.Create(ctx, employer, hundred)

	items, total, err := svc.List(ctx, seeker, schema.Data{"search": "100%"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 1 || len(items) != 1 || items[0].Title != "100% Remote Dispatcher" {
		t.Fatalf("got %d items (total %d): %+v", len(items), total, items)
	}
}

func TestJobService_UpdateOwnershipAndMergedSalaryCheck(t *testing.T) {
	svc := &JobService{DB: newServiceDB(t, &domain.Job{})}
	ctx := context.Background()

	in := jobInput(domain.JobStatusOpen)
	in["salary_min"] = int64(40000)
	in["salary_max"] = int64(60000)
	job, err := svc.Create(ctx, employer, in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	// Not the owner.
	_, err = svc.Update(ctx, domain.AuthContext{UserID: "emp-2", Role: domain.RoleEmployer}, job.ID, schema.Data{"title": "Hijacked"})
	wantForbidden(t, err)

	// Lowering salary_max below the stored salary_min must fail even though
	// the partial payload is internally consistent.
	_, err = svc.Update(ctx, employer, job.ID, schema.Data{"salary_max": int64(30000)})
	var typed *apierr.Error
	if !errors.As(err, &typed) || typed.Kind != apierr.KindValidationFailed {
		t.Fatalf("err = %v, want ValidationFailed", err)
	}
	if len(typed.Fields) != 1 || typed.Fields[0].Field != "salary_max" {
		t.Fatalf("fields = %+v", typed.Fields)
	}

	// A consistent partial update goes through and leaves the rest alone.
	got, err := svc.Update(ctx, employer, job.ID, schema.Data{"title": "Senior Warehouse Associate"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Senior Warehouse Associate" || *got.SalaryMax != 60000 {
		t.Fatalf("merged row = %+v", got)
	}
}

func TestJobService_DeleteOwnership(t *testing.T) {
	svc := &JobService{DB: newServiceDB(t, &domain.Job{})}
	ctx := context.Background()

	job, _ := svc.Create(ctx, employer, jobInput(domain.JobStatusOpen))

	wantForbidden(t, svc.Delete(ctx, seeker, job.ID))

	if err := svc.Delete(ctx, employer, job.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := svc.Get(ctx, employer, job.ID); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("deleted job still visible: %v", err)
	}
}
