// Handler wiring for the public API.
//
// Each resource file (jobs, applications, messages, services) builds its
// routes from the shared wrapper in wrap.go; this file declares the service
// contracts the handlers consume and the Handlers aggregate that binds them.
package handlers

import (
	"context"

	"github.com/secondchance/connect-backend/internal/domain"
	"github.com/secondchance/connect-backend/internal/schema"
)

//
// Service contracts (context-aware)
//

// JobService defines job posting lifecycle operations consumed by HTTP
// handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type JobService interface {
	// Create posts a new job on behalf of the authenticated employer.
	Create(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.Job, error)
	// Get returns one job, applying draft visibility rules.
	Get(ctx context.Context, auth domain.AuthContext, id string) (*domain.Job, error)
	// List returns a page of jobs scoped to the caller's role, plus the total.
	List(ctx context.Context, auth domain.AuthContext, in schema.Data) ([]domain.Job, int64, error)
	// Update applies a partial update to a job owned by the caller.
	Update(ctx context.Context, auth domain.AuthContext, id string, in schema.Data) (*domain.Job, error)
	// Delete removes a job owned by the caller.
	Delete(ctx context.Context, auth domain.AuthContext, id string) error
}

// ApplicationService defines job application operations.
type ApplicationService interface {
	// Apply submits an application to an open job.
	Apply(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.Application, error)
	// List returns a page of applications visible to the caller, plus the total.
	List(ctx context.Context, auth domain.AuthContext, in schema.Data) ([]domain.Application, int64, error)
	// UpdateStatus moves an application through its review flow.
	UpdateStatus(ctx context.Context, auth domain.AuthContext, id, status string) (*domain.Application, error)
}

// MessageService defines direct messaging operations.
type MessageService interface {
	// Send delivers a message to another user.
	Send(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.Message, error)
	// List returns a page of the caller's messages, plus the total.
	List(ctx context.Context, auth domain.AuthContext, in schema.Data) ([]domain.Message, int64, error)
	// MarkRead stamps a received message as read.
	MarkRead(ctx context.Context, auth domain.AuthContext, id string) (*domain.Message, error)
}

// DirectoryService defines the support service directory operations.
type DirectoryService interface {
	// Create registers a support service entry.
	Create(ctx context.Context, auth domain.AuthContext, in schema.Data) (*domain.SupportService, error)
	// List returns a page of directory entries, plus the total.
	List(ctx context.Context, in schema.Data) ([]domain.SupportService, int64, error)
}

//
// Handler wiring
//

// Handlers groups the HTTP endpoints for jobs, applications, messages, and
// the support service directory. It depends on abstract service interfaces
// to keep transport concerns separate from business logic.
type Handlers struct {
	jobSvc JobService
	appSvc ApplicationService
	msgSvc MessageService
	dirSvc DirectoryService
	resp   Responder
}

// New constructs a Handlers instance bound to the given services. debug
// controls whether error responses include internal diagnostic details.
func New(jobSvc JobService, appSvc ApplicationService, msgSvc MessageService, dirSvc DirectoryService, debug bool) *Handlers {
	return &Handlers{
		jobSvc: jobSvc,
		appSvc: appSvc,
		msgSvc: msgSvc,
		dirSvc: dirSvc,
		resp:   Responder{Debug: debug},
	}
}
