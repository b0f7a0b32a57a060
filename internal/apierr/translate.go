// Error translation from backend-specific failures onto the taxonomy.
//
// The datastore surfaces failures either as *pgconn.PgError values carrying a
// 5-character SQLSTATE code, or as GORM sentinel errors (record not found,
// duplicated key, FK violation). Translate maps the recognized set
// deterministically; everything else is downgraded to Internal with the
// original error retained as server-side detail.
package apierr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Recognized SQLSTATE codes.
const (
	sqlstateUniqueViolation     = "23505"
	sqlstateForeignKeyViolation = "23503"
	sqlstateInsufficientPrivs   = "42501" // row-level-security denial
)

// Translate maps err onto the taxonomy. It is total: any input (including
// nil, which yields an Internal error since callers should not translate
// successes) produces a well-formed *Error and never panics.
//
// Mapping:
//   - *Error: passed through unchanged.
//   - SQLSTATE 23505 (unique violation)      -> Conflict (409)
//   - SQLSTATE 23503 (foreign-key violation) -> ValidationFailed (400)
//   - SQLSTATE 42501 (RLS denial)            -> Forbidden (403)
//   - gorm.ErrRecordNotFound ("no rows")     -> NotFound (404)
//   - gorm.ErrDuplicatedKey                  -> Conflict (409)
//   - gorm.ErrForeignKeyViolated             -> ValidationFailed (400)
//   - anything else                          -> Internal (500)
//
// For unrecognized errors the client-facing message is a generic string; the
// original error text travels in Details, which the response formatter only
// exposes in debug mode.
func Translate(err error) *Error {
	if err == nil {
		return Internal("")
	}

	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case sqlstateUniqueViolation:
			return Conflict("a matching record already exists").WithCause(err)
		case sqlstateForeignKeyViolation:
			return ValidationFailed("referenced resource missing", nil).WithCause(err)
		case sqlstateInsufficientPrivs:
			return Forbidden("").WithCause(err)
		default:
			return Internal("Database operation failed").WithCause(err)
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return NotFound("").WithCause(err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return Conflict("a matching record already exists").WithCause(err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ValidationFailed("referenced resource missing", nil).WithCause(err)
	}

	return Internal("").WithCause(err)
}
