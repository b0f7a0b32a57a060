package schema

import (
	"net/url"
	"reflect"
	"strings"
	"testing"
)

func findErr(t *testing.T, errs []FieldError, field string) FieldError {
	t.Helper()
	for _, e := range errs {
		if e.Field == field {
			return e
		}
	}
	t.Fatalf("no error for field %q in %+v", field, errs)
	return FieldError{}
}

func validJobBody() map[string]any {
	return map[string]any{
		"title":       "Warehouse Associate",
		"description": "Receiving, sorting, and preparing shipments for dispatch.",
		"location":    "Portland, OR",
		"job_type":    "full_time",
	}
}

func TestValidate_ShortTitle(t *testing.T) {
	body := validJobBody()
	body["title"] = "Dev"

	res := JobCreate.Validate(body)
	if res.Valid() {
		t.Fatalf("expected failure, got data %+v", res.Data)
	}
	if res.Data != nil {
		t.Fatalf("failed result must carry no data, got %+v", res.Data)
	}
	e := findErr(t, res.Errors, "title")
	if !strings.Contains(e.Message, "at least 5 characters") {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestValidate_SalaryRefinementAttachesToSalaryMax(t *testing.T) {
	body := validJobBody()
	body["salary_min"] = float64(100000)
	body["salary_max"] = float64(50000)

	res := JobCreate.Validate(body)
	if res.Valid() {
		t.Fatalf("expected refinement failure")
	}
	if len(res.Errors) != 1 || res.Errors[0].Field != "salary_max" {
		t.Fatalf("expected single salary_max error, got %+v", res.Errors)
	}
}

func TestValidate_RefinementSkippedWhenFieldChecksFail(t *testing.T) {
	body := validJobBody()
	body["title"] = "Dev"
	body["salary_min"] = float64(100000)
	body["salary_max"] = float64(50000)

	res := JobCreate.Validate(body)
	for _, e := range res.Errors {
		if e.Field == "salary_max" {
			t.Fatalf("refinement ran despite field errors: %+v", res.Errors)
		}
	}
}

func TestValidate_TrimBeforeLength(t *testing.T) {
	body := validJobBody()
	body["title"] = "   Dev   " // 3 runes after trimming

	res := JobCreate.Validate(body)
	if res.Valid() {
		t.Fatal("padding must not satisfy the length bound")
	}
	findErr(t, res.Errors, "title")
}

func TestValidate_LengthCountsRunes(t *testing.T) {
	body := validJobBody()
	body["title"] = "héllo" // 5 runes, 6 bytes

	res := JobCreate.Validate(body)
	if !res.Valid() {
		t.Fatalf("5-rune title must pass a min of 5: %+v", res.Errors)
	}
	if res.Data.Str("title") != "héllo" {
		t.Fatalf("unexpected stored title %q", res.Data.Str("title"))
	}
}

func TestValidate_FirstFailingRuleWins(t *testing.T) {
	body := validJobBody()
	body["title"] = "" // fails required before min length

	res := JobCreate.Validate(body)
	errs := 0
	for _, e := range res.Errors {
		if e.Field == "title" {
			errs++
			if e.Message != "is required" {
				t.Fatalf("expected required error first, got %q", e.Message)
			}
		}
	}
	if errs != 1 {
		t.Fatalf("expected exactly one title error, got %d", errs)
	}
}

func TestValidate_MissingRequiredFields(t *testing.T) {
	res := JobCreate.Validate(map[string]any{})
	if res.Valid() {
		t.Fatal("empty body must fail")
	}
	for _, f := range []string{"title", "description", "location", "job_type"} {
		e := findErr(t, res.Errors, f)
		if e.Message != "is required" {
			t.Fatalf("field %s: unexpected message %q", f, e.Message)
		}
	}
}

func TestValidate_EnumCaseSensitive(t *testing.T) {
	body := validJobBody()
	body["job_type"] = "Full_Time"

	res := JobCreate.Validate(body)
	if res.Valid() {
		t.Fatal("enum match must be case-sensitive")
	}
	e := findErr(t, res.Errors, "job_type")
	if !strings.Contains(e.Message, "supported values") {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestValidate_DefaultApplied(t *testing.T) {
	res := JobCreate.Validate(validJobBody())
	if !res.Valid() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if res.Data.Str("status") != "open" {
		t.Fatalf("status default not applied: %+v", res.Data)
	}
}

func TestValidate_UUIDFormatOnly(t *testing.T) {
	res := ApplicationCreate.Validate(map[string]any{"job_id": "not-a-uuid"})
	e := findErr(t, res.Errors, "job_id")
	if e.Message != "must be a valid UUID" {
		t.Fatalf("unexpected message: %q", e.Message)
	}

	// Format is all that is checked; existence is the domain layer's concern.
	res = ApplicationCreate.Validate(map[string]any{"job_id": "7b1e9bd2-5df3-4f34-9d1e-3f12aa0c6e10"})
	if !res.Valid() {
		t.Fatalf("well-formed UUID rejected: %+v", res.Errors)
	}
}

func TestValidate_FractionalIntegerRejected(t *testing.T) {
	body := validJobBody()
	body["salary_min"] = 1234.5

	res := JobCreate.Validate(body)
	e := findErr(t, res.Errors, "salary_min")
	if e.Message != "must be an integer" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestValidate_WholeFloatAcceptedAsInteger(t *testing.T) {
	// JSON decoding hands numbers to the schema as float64.
	body := validJobBody()
	body["salary_min"] = float64(30000)

	res := JobCreate.Validate(body)
	if !res.Valid() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if n, ok := res.Data.Int64("salary_min"); !ok || n != 30000 {
		t.Fatalf("expected int64 30000, got %v", res.Data["salary_min"])
	}
}

func TestValidate_UnknownKeysIgnored(t *testing.T) {
	body := validJobBody()
	body["rating"] = 11

	res := JobCreate.Validate(body)
	if !res.Valid() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if res.Data.Has("rating") {
		t.Fatal("undeclared field leaked into validated data")
	}
}

func TestValidate_Idempotent(t *testing.T) {
	body := validJobBody()
	body["title"] = "Dev"

	first := JobCreate.Validate(body)
	second := JobCreate.Validate(body)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("validation is not idempotent: %+v vs %+v", first, second)
	}
}

func TestValidateQuery_CoercionAndDefaults(t *testing.T) {
	q := url.Values{}
	q.Set("page", "3")
	q.Set("status", "open")

	res := JobList.ValidateQuery(q)
	if !res.Valid() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if n, _ := res.Data.Int64("page"); n != 3 {
		t.Fatalf("page not coerced: %v", res.Data["page"])
	}
	if n, _ := res.Data.Int64("limit"); n != 20 {
		t.Fatalf("limit default not applied: %v", res.Data["limit"])
	}
}

func TestValidateQuery_BadInteger(t *testing.T) {
	q := url.Values{}
	q.Set("page", "two")

	res := JobList.ValidateQuery(q)
	e := findErr(t, res.Errors, "page")
	if e.Message != "must be an integer" {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestValidateQuery_LimitBounds(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "500")

	res := JobList.ValidateQuery(q)
	e := findErr(t, res.Errors, "limit")
	if !strings.Contains(e.Message, "at most 100") {
		t.Fatalf("unexpected message: %q", e.Message)
	}
}

func TestValidateQuery_BoolCoercion(t *testing.T) {
	q := url.Values{}
	q.Set("unread", "true")

	res := MessageList.ValidateQuery(q)
	if !res.Valid() {
		t.Fatalf("unexpected errors: %+v", res.Errors)
	}
	if b, ok := res.Data.Bool("unread"); !ok || !b {
		t.Fatalf("unread not coerced: %v", res.Data["unread"])
	}
}

func TestPartial_AllOptionalNoDefaults(t *testing.T) {
	res := JobUpdate.Validate(map[string]any{})
	if !res.Valid() {
		t.Fatalf("empty update body must pass: %+v", res.Errors)
	}
	if res.Data.Has("status") {
		t.Fatal("update schema must not fill in creation defaults")
	}
}

func TestPartial_KeepsConstraintsAndRefinements(t *testing.T) {
	res := JobUpdate.Validate(map[string]any{"title": "Dev"})
	findErr(t, res.Errors, "title")

	res = JobUpdate.Validate(map[string]any{
		"salary_min": float64(90000),
		"salary_max": float64(40000),
	})
	findErr(t, res.Errors, "salary_max")

	// One bound alone has nothing to compare against.
	res = JobUpdate.Validate(map[string]any{"salary_max": float64(40000)})
	if !res.Valid() {
		t.Fatalf("single bound must pass: %+v", res.Errors)
	}
}

func TestServiceCreate_URLPattern(t *testing.T) {
	body := map[string]any{
		"name":        "Fresh Start Housing",
		"category":    "housing",
		"description": "Transitional housing placement and support.",
		"url":         "not a url",
	}
	res := ServiceCreate.Validate(body)
	e := findErr(t, res.Errors, "url")
	if e.Message != "is not in the expected format" {
		t.Fatalf("unexpected message: %q", e.Message)
	}

	body["url"] = "https://freshstart.example.org"
	if res := ServiceCreate.Validate(body); !res.Valid() {
		t.Fatalf("valid URL rejected: %+v", res.Errors)
	}
}
