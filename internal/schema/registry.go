// Per-resource schema registry. All schemas are defined once at process
// start from shared rule tables; update variants derive from the create
// schemas via Partial so constraints are never hand-duplicated.
package schema

import "regexp"

// Pagination bounds shared by every list schema. Each list schema declares
// its own explicit defaults; the registry tests verify that.
const (
	PageMin  = 1
	LimitMin = 1
	LimitMax = 100
)

var httpURLPattern = regexp.MustCompile(`^https?://\S+$`)

// Enumerations accepted on the wire. These mirror the database check
// constraints in the domain package.
var (
	JobTypes          = []string{"full_time", "part_time", "contract", "temporary"}
	JobStatuses       = []string{"draft", "open", "closed"}
	AppStatuses       = []string{"pending", "reviewed", "interview", "hired", "rejected"}
	ServiceCategories = []string{"housing", "employment", "counseling", "legal", "health", "education"}
)

// salaryOrdered passes unless both bounds are present and inverted. Partial
// variants reuse it unchanged: with either bound absent there is nothing to
// compare.
func salaryOrdered(d Data) bool {
	min, okMin := d.Int64("salary_min")
	max, okMax := d.Int64("salary_max")
	if !okMin || !okMax {
		return true
	}
	return max >= min
}

// JobCreate validates the body of POST /jobs.
var JobCreate = &Schema{
	Name: "job_create",
	Fields: []Field{
		{Name: "title", Type: TypeString, Required: true, MinLen: intp(5), MaxLen: intp(120)},
		{Name: "description", Type: TypeString, Required: true, MinLen: intp(20), MaxLen: intp(5000)},
		{Name: "location", Type: TypeString, Required: true, MinLen: intp(2), MaxLen: intp(120)},
		{Name: "job_type", Type: TypeEnum, Required: true, Enum: JobTypes},
		{Name: "status", Type: TypeEnum, Enum: JobStatuses, Default: "open"},
		{Name: "salary_min", Type: TypeInt, Min: floatp(0), Max: floatp(10_000_000)},
		{Name: "salary_max", Type: TypeInt, Min: floatp(0), Max: floatp(10_000_000)},
	},
	Refinements: []Refinement{
		{
			Field:   "salary_max",
			Message: "must be greater than or equal to salary_min",
			Check:   salaryOrdered,
		},
	},
}

// JobUpdate validates the body of PUT /jobs/:id. Every field is optional;
// absent fields are left unchanged.
var JobUpdate = JobCreate.Partial()

// JobList validates the query string of GET /jobs.
var JobList = &Schema{
	Name: "job_list",
	Fields: []Field{
		{Name: "page", Type: TypeInt, Min: floatp(PageMin), Default: int64(1)},
		{Name: "limit", Type: TypeInt, Min: floatp(LimitMin), Max: floatp(LimitMax), Default: int64(20)},
		{Name: "status", Type: TypeEnum, Enum: JobStatuses},
		{Name: "job_type", Type: TypeEnum, Enum: JobTypes},
		{Name: "search", Type: TypeString, MaxLen: intp(200)},
	},
}

// ApplicationCreate validates the body of POST /applications.
var ApplicationCreate = &Schema{
	Name: "application_create",
	Fields: []Field{
		{Name: "job_id", Type: TypeUUID, Required: true},
		{Name: "cover_note", Type: TypeString, MaxLen: intp(2000)},
	},
}

// ApplicationStatus validates the body of PUT /applications/:id/status.
var ApplicationStatus = &Schema{
	Name: "application_status",
	Fields: []Field{
		{Name: "status", Type: TypeEnum, Required: true, Enum: AppStatuses},
	},
}

// ApplicationList validates the query string of GET /applications.
var ApplicationList = &Schema{
	Name: "application_list",
	Fields: []Field{
		{Name: "page", Type: TypeInt, Min: floatp(PageMin), Default: int64(1)},
		{Name: "limit", Type: TypeInt, Min: floatp(LimitMin), Max: floatp(LimitMax), Default: int64(10)},
		{Name: "job_id", Type: TypeUUID},
		{Name: "status", Type: TypeEnum, Enum: AppStatuses},
	},
}

// MessageCreate validates the body of POST /messages.
var MessageCreate = &Schema{
	Name: "message_create",
	Fields: []Field{
		{Name: "recipient_id", Type: TypeUUID, Required: true},
		{Name: "content", Type: TypeString, Required: true, MinLen: intp(1), MaxLen: intp(2000)},
	},
}

// MessageList validates the query string of GET /messages. The optional
// "with" parameter narrows the listing to one correspondent.
var MessageList = &Schema{
	Name: "message_list",
	Fields: []Field{
		{Name: "page", Type: TypeInt, Min: floatp(PageMin), Default: int64(1)},
		{Name: "limit", Type: TypeInt, Min: floatp(LimitMin), Max: floatp(LimitMax), Default: int64(10)},
		{Name: "with", Type: TypeUUID},
		{Name: "unread", Type: TypeBool},
	},
}

// ServiceCreate validates the body of POST /services.
var ServiceCreate = &Schema{
	Name: "service_create",
	Fields: []Field{
		{Name: "name", Type: TypeString, Required: true, MinLen: intp(3), MaxLen: intp(120)},
		{Name: "category", Type: TypeEnum, Required: true, Enum: ServiceCategories},
		{Name: "description", Type: TypeString, Required: true, MinLen: intp(10), MaxLen: intp(2000)},
		{Name: "url", Type: TypeString, MaxLen: intp(300), Pattern: httpURLPattern},
	},
}

// ServiceList validates the query string of GET /services.
var ServiceList = &Schema{
	Name: "service_list",
	Fields: []Field{
		{Name: "page", Type: TypeInt, Min: floatp(PageMin), Default: int64(1)},
		{Name: "limit", Type: TypeInt, Min: floatp(LimitMin), Max: floatp(LimitMax), Default: int64(20)},
		{Name: "category", Type: TypeEnum, Enum: ServiceCategories},
		{Name: "search", Type: TypeString, MaxLen: intp(200)},
	},
}

// ListSchemas enumerates every query schema in the registry; tests use it to
// enforce the explicit-pagination-defaults convention.
func ListSchemas() []*Schema {
	return []*Schema{JobList, ApplicationList, MessageList, ServiceList}
}

func intp(n int) *int           { return &n }
func floatp(f float64) *float64 { return &f }
