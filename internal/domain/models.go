// Package domain defines the persistence models for the job board: profiles,
// jobs, applications, messages, and the support-service directory. These types
// are mapped with GORM and form the core data layer of the application.
package domain

import (
	"time"

	"gorm.io/gorm"
)

// Role identifies the kind of account behind a request. Roles are fixed at
// signup (or by an admin) and drive every authorization decision downstream.
type Role string

// Supported account roles.
const (
	RoleSeeker   Role = "seeker"   // job seeker re-entering the workforce
	RoleEmployer Role = "employer" // posts jobs, reviews applications
	RoleOfficer  Role = "officer"  // probation officer with caseload visibility
	RoleAdmin    Role = "admin"    // full access, passes every role check
)

// Valid reports whether r is one of the supported roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSeeker, RoleEmployer, RoleOfficer, RoleAdmin:
		return true
	}
	return false
}

// AuthContext carries the authenticated identity for one request. It is
// derived exactly once by the auth middleware and treated as read-only by
// everything downstream; route logic never mutates it.
type AuthContext struct {
	UserID string
	Role   Role
}

// Job statuses.
const (
	JobStatusDraft  = "draft"
	JobStatusOpen   = "open"
	JobStatusClosed = "closed"
)

// Job employment types.
const (
	JobTypeFullTime  = "full_time"
	JobTypePartTime  = "part_time"
	JobTypeContract  = "contract"
	JobTypeTemporary = "temporary"
)

// Application statuses.
const (
	AppStatusPending   = "pending"
	AppStatusReviewed  = "reviewed"
	AppStatusInterview = "interview"
	AppStatusHired     = "hired"
	AppStatusRejected  = "rejected"
)

// Profile represents the public-facing account record for a user. The user id
// is the subject supplied by the auth collaborator; the profile row adds the
// role and display metadata this API authorizes against.
//
// Fields:
//   - ID: stable UUID primary key (char(36)).
//   - UserID: auth subject; unique, indexed.
//   - Role: one of seeker/employer/officer/admin (enforced by DB constraint).
//   - DisplayName: name shown to other participants.
type Profile struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	UserID      string         `json:"user_id"      gorm:"type:varchar(64);not null;uniqueIndex"`
	Role        Role           `json:"role"         gorm:"type:varchar(16);not null;check:role IN ('seeker','employer','officer','admin')"`
	DisplayName string         `json:"display_name" gorm:"type:varchar(120);not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for Profile.
func (Profile) TableName() string { return "profiles" }

// Job represents a posting owned by an employer. Salary bounds are optional;
// when both are present the validation layer guarantees
// salary_max >= salary_min before the row is ever written.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - EmployerID: identifier of the posting employer; indexed for listings.
//   - Title / Description / Location: listing content.
//   - JobType: employment type (enforced by DB constraint).
//   - Status: draft, open, or closed; only open jobs accept applications.
//   - SalaryMin / SalaryMax: optional annual salary bounds in whole units.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
//   - DeletedAt: soft deletion marker (retains row for audit/history).
type Job struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	EmployerID  string         `json:"employer_id" gorm:"type:varchar(64);not null;index:idx_employer_jobs"`
	Title       string         `json:"title"       gorm:"type:varchar(120);not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	Location    string         `json:"location"    gorm:"type:varchar(120);not null"`
	JobType     string         `json:"job_type"    gorm:"type:varchar(16);not null;check:job_type IN ('full_time','part_time','contract','temporary')"`
	Status      string         `json:"status"      gorm:"type:varchar(16);not null;default:'open';check:status IN ('draft','open','closed');index"`
	SalaryMin   *int64         `json:"salary_min,omitempty"`
	SalaryMax   *int64         `json:"salary_max,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"           gorm:"index"`
}

// TableName returns the database table name for Job.
func (Job) TableName() string { return "jobs" }

// Application represents a seeker applying to a job. A seeker can apply to a
// given job at most once (enforced by unique composite index); a second
// attempt surfaces as a unique-key violation which the API reports as 409.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - JobID: foreign key to the job (unique per seeker).
//   - SeekerID: identifier of the applicant (unique per job).
//   - CoverNote: optional free-text note shown to the employer.
//   - Status: application pipeline state (enforced by DB constraint).
//   - Job: FK association, ensures cascade delete/update.
type Application struct {
	ID        string         `json:"id"         gorm:"type:char(36);primaryKey"`
	JobID     string         `json:"job_id"     gorm:"type:char(36);not null;index;uniqueIndex:ux_application_job_seeker"`
	SeekerID  string         `json:"seeker_id"  gorm:"type:varchar(64);not null;index;uniqueIndex:ux_application_job_seeker"`
	CoverNote string         `json:"cover_note" gorm:"type:text"`
	Status    string         `json:"status"     gorm:"type:varchar(16);not null;default:'pending';check:status IN ('pending','reviewed','interview','hired','rejected')"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-"          gorm:"index"`

	// Job is the posting applied to. Applications are cascade-deleted if the
	// underlying job is removed.
	Job Job `json:"-" gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Application.
func (Application) TableName() string { return "applications" }

// Message represents one direct message between two participants (for example
// a seeker and an employer, or an officer checking in on a caseload member).
// ReadAt stays nil until the recipient marks the message read.
type Message struct {
	ID          string         `json:"id"           gorm:"type:char(36);primaryKey"`
	SenderID    string         `json:"sender_id"    gorm:"type:varchar(64);not null;index:idx_msg_sender"`
	RecipientID string         `json:"recipient_id" gorm:"type:varchar(64);not null;index:idx_msg_recipient"`
	Content     string         `json:"content"      gorm:"type:text;not null"`
	ReadAt      *time.Time     `json:"read_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"            gorm:"index"`
}

// TableName returns the database table name for Message.
func (Message) TableName() string { return "messages" }

// Support-service categories.
const (
	ServiceCategoryHousing    = "housing"
	ServiceCategoryEmployment = "employment"
	ServiceCategoryCounseling = "counseling"
	ServiceCategoryLegal      = "legal"
	ServiceCategoryHealth     = "health"
	ServiceCategoryEducation  = "education"
)

// SupportService represents an entry in the reentry support-service directory
// (housing assistance, counseling, legal aid, and so on). Entries are curated
// by officers and admins.
type SupportService struct {
	ID          string         `json:"id"            gorm:"type:char(36);primaryKey"`
	Name        string         `json:"name"          gorm:"type:varchar(120);not null"`
	Category    string         `json:"category"      gorm:"type:varchar(16);not null;check:category IN ('housing','employment','counseling','legal','health','education');index"`
	Description string         `json:"description"   gorm:"type:text;not null"`
	URL         string         `json:"url,omitempty" gorm:"type:varchar(300)"`
	CreatedBy   string         `json:"created_by"    gorm:"type:varchar(64);not null"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-"             gorm:"index"`
}

// TableName returns the database table name for SupportService.
func (SupportService) TableName() string { return "support_services" }
