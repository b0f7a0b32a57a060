// Package schema implements the declarative validation layer for request
// bodies and query strings. A Schema is a named table of field rules plus
// optional cross-field refinements; Validate and ValidateQuery evaluate raw
// input against it and return either typed data or a field-level error list.
//
// Semantics:
//   - Strings are trimmed before length checks; length bounds are inclusive
//     and counted in runes.
//   - Each field yields at most one error: the first failing rule wins, so
//     output stays stable and low-noise.
//   - Enum membership is a case-sensitive exact match.
//   - UUID fields are checked by format only; existence is the domain
//     layer's concern and surfaces as 404, not a validation error.
//   - Refinements run only after every per-field check passed, and attach
//     their error to the most specific field named by the rule.
//   - Query validation coerces numeric and boolean strings per the declared
//     field type before applying the same checks as body validation.
//
// Validation is a pure function of its inputs: no I/O, no hidden state, and
// malformed values never panic. Decoding the raw JSON body is the route
// wrapper's job; by the time a schema runs, the input is already a map.
package schema

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
)

// Type is the declared wire type of a field.
type Type int

// Supported field types.
const (
	TypeString Type = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeEnum
	TypeUUID
)

// Field is one rule row in a schema: a name, a type, and the constraints the
// value must satisfy. Pointer constraints are nil when unset.
type Field struct {
	Name     string
	Type     Type
	Required bool

	// Default is applied when an optional field is absent. List schemas must
	// declare explicit defaults for page and limit; that convention is
	// enforced by tests, not at runtime.
	Default any

	MinLen  *int // inclusive, in runes, after trimming
	MaxLen  *int // inclusive, in runes, after trimming
	Min     *float64
	Max     *float64
	Pattern *regexp.Regexp
	Enum    []string
}

// Refinement is a cross-field predicate evaluated after all per-field checks
// pass. Check returns true when the rule is satisfied (or not applicable);
// a false result attaches Message to Field.
type Refinement struct {
	Field   string
	Message string
	Check   func(data Data) bool
}

// Schema is a named, immutable set of field rules. Schemas are defined once
// at process start and shared by reference across requests.
type Schema struct {
	Name        string
	Fields      []Field
	Refinements []Refinement
}

// FieldError is a single validation failure tied to one input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Data holds validated, coerced field values keyed by field name.
type Data map[string]any

// Str returns the string value for name, or "" when absent.
func (d Data) Str(name string) string {
	s, _ := d[name].(string)
	return s
}

// Int64 returns the integer value for name and whether it was present.
func (d Data) Int64(name string) (int64, bool) {
	n, ok := d[name].(int64)
	return n, ok
}

// IntDefault returns the integer value for name, or def when absent.
func (d Data) IntDefault(name string, def int) int {
	if n, ok := d.Int64(name); ok {
		return int(n)
	}
	return def
}

// Float64 returns the float value for name and whether it was present.
func (d Data) Float64(name string) (float64, bool) {
	f, ok := d[name].(float64)
	return f, ok
}

// Bool returns the boolean value for name and whether it was present.
func (d Data) Bool(name string) (bool, bool) {
	b, ok := d[name].(bool)
	return b, ok
}

// Has reports whether name was present (or defaulted) in the input.
func (d Data) Has(name string) bool {
	_, ok := d[name]
	return ok
}

// Result is the outcome of a validation run: either Data on success or a
// non-empty Errors list. Exactly one branch is populated.
type Result struct {
	Data   Data
	Errors []FieldError
}

// Valid reports whether the validation run produced no errors.
func (r Result) Valid() bool { return len(r.Errors) == 0 }

// Validate checks a decoded request body against the schema. Unknown keys in
// the input are ignored; only declared fields reach the output data.
func (s *Schema) Validate(in map[string]any) Result {
	data := make(Data, len(s.Fields))
	var errs []FieldError

	for i := range s.Fields {
		f := &s.Fields[i]
		raw, present := in[f.Name]
		if !present || raw == nil {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: "is required"})
				continue
			}
			if f.Default != nil {
				data[f.Name] = f.Default
			}
			continue
		}
		val, ferr := checkField(f, raw)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		data[f.Name] = val
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return s.refine(data)
}

// ValidateQuery checks URL query parameters against the schema. Values are
// coerced from their string form per the declared field type; an empty or
// missing parameter counts as absent.
func (s *Schema) ValidateQuery(q url.Values) Result {
	data := make(Data, len(s.Fields))
	var errs []FieldError

	for i := range s.Fields {
		f := &s.Fields[i]
		raw := q.Get(f.Name)
		if raw == "" {
			if f.Required {
				errs = append(errs, FieldError{Field: f.Name, Message: "is required"})
				continue
			}
			if f.Default != nil {
				data[f.Name] = f.Default
			}
			continue
		}
		coerced, ferr := coerceQueryValue(f, raw)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		val, ferr := checkField(f, coerced)
		if ferr != nil {
			errs = append(errs, *ferr)
			continue
		}
		data[f.Name] = val
	}

	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return s.refine(data)
}

// Partial derives an update-schema variant: every field becomes optional and
// defaults are dropped (an absent field means "leave unchanged", so filling
// in creation defaults would silently overwrite data). Refinements are kept;
// they are written to pass when their inputs are absent.
func (s *Schema) Partial() *Schema {
	fields := make([]Field, len(s.Fields))
	copy(fields, s.Fields)
	for i := range fields {
		fields[i].Required = false
		fields[i].Default = nil
	}
	return &Schema{
		Name:        s.Name + "_partial",
		Fields:      fields,
		Refinements: s.Refinements,
	}
}

// refine runs cross-field refinements over already-valid data.
func (s *Schema) refine(data Data) Result {
	var errs []FieldError
	for i := range s.Refinements {
		r := &s.Refinements[i]
		if !r.Check(data) {
			errs = append(errs, FieldError{Field: r.Field, Message: r.Message})
		}
	}
	if len(errs) > 0 {
		return Result{Errors: errs}
	}
	return Result{Data: data}
}

// checkField applies the rule chain for a single present value. It returns
// the coerced value on success or the first failing rule's error.
func checkField(f *Field, raw any) (any, *FieldError) {
	switch f.Type {
	case TypeString, TypeEnum, TypeUUID:
		str, ok := raw.(string)
		if !ok {
			return nil, fieldErr(f, "must be a string")
		}
		return checkString(f, str)
	case TypeInt:
		n, ok := asInt64(raw)
		if !ok {
			return nil, fieldErr(f, "must be an integer")
		}
		if f.Min != nil && float64(n) < *f.Min {
			return nil, fieldErr(f, fmt.Sprintf("must be at least %s", trimFloat(*f.Min)))
		}
		if f.Max != nil && float64(n) > *f.Max {
			return nil, fieldErr(f, fmt.Sprintf("must be at most %s", trimFloat(*f.Max)))
		}
		return n, nil
	case TypeFloat:
		v, ok := asFloat64(raw)
		if !ok {
			return nil, fieldErr(f, "must be a number")
		}
		if f.Min != nil && v < *f.Min {
			return nil, fieldErr(f, fmt.Sprintf("must be at least %s", trimFloat(*f.Min)))
		}
		if f.Max != nil && v > *f.Max {
			return nil, fieldErr(f, fmt.Sprintf("must be at most %s", trimFloat(*f.Max)))
		}
		return v, nil
	case TypeBool:
		b, ok := raw.(bool)
		if !ok {
			return nil, fieldErr(f, "must be a boolean")
		}
		return b, nil
	}
	// Unreachable with the closed Type set; treated as a failed check rather
	// than a panic to keep validation total.
	return nil, fieldErr(f, "has an unsupported type")
}

// checkString applies trim, length, pattern, enum, and UUID rules in order.
func checkString(f *Field, s string) (any, *FieldError) {
	s = strings.TrimSpace(s)

	if f.Required && s == "" {
		return nil, fieldErr(f, "is required")
	}
	if f.MinLen != nil && utf8.RuneCountInString(s) < *f.MinLen {
		return nil, fieldErr(f, fmt.Sprintf("must be at least %d characters", *f.MinLen))
	}
	if f.MaxLen != nil && utf8.RuneCountInString(s) > *f.MaxLen {
		return nil, fieldErr(f, fmt.Sprintf("must be at most %d characters", *f.MaxLen))
	}
	if f.Pattern != nil && !f.Pattern.MatchString(s) {
		return nil, fieldErr(f, "is not in the expected format")
	}

	switch f.Type {
	case TypeEnum:
		for _, allowed := range f.Enum {
			if s == allowed {
				return s, nil
			}
		}
		return nil, fieldErr(f, "must be one of the supported values")
	case TypeUUID:
		if _, err := uuid.Parse(s); err != nil {
			return nil, fieldErr(f, "must be a valid UUID")
		}
	}
	return s, nil
}

// coerceQueryValue converts the string form of a query parameter into the
// field's declared type. Strings pass through unchanged.
func coerceQueryValue(f *Field, raw string) (any, *FieldError) {
	switch f.Type {
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fieldErr(f, "must be an integer")
		}
		return n, nil
	case TypeFloat:
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fieldErr(f, "must be a number")
		}
		return v, nil
	case TypeBool:
		b, err := strconv.ParseBool(strings.TrimSpace(raw))
		if err != nil {
			return nil, fieldErr(f, "must be a boolean")
		}
		return b, nil
	}
	return raw, nil
}

// asInt64 accepts the numeric representations a decoded JSON body (or a
// default value) can produce for an integer field. JSON numbers decode as
// float64; fractional values are rejected.
func asInt64(raw any) (int64, bool) {
	switch v := raw.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}

// asFloat64 accepts the numeric representations a decoded body can produce
// for a float field.
func asFloat64(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	}
	return 0, false
}

func fieldErr(f *Field, msg string) *FieldError {
	return &FieldError{Field: f.Name, Message: msg}
}

// trimFloat renders a bound without a trailing ".000000" when it is integral.
func trimFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
