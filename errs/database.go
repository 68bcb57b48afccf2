package errs

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrDatabaseQuery      = errors.New("database query failed")
	ErrDatabaseConnection = errors.New("database connection failed")
)

var (
	ErrUniqueConstraintViolation = errors.New("unique constraint violation")
	ErrForeignKeyConstraint      = errors.New("foreign key constraint violation")
	ErrConcurrentUpdate          = errors.New("concurrent update")
)

func NewNotFound(message string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusNotFound,
		err:        withKind(message, ErrNotFound),
	}
}

// NewConcurrentUpdateError reports a write that lost a race with another
// request touching the same rows. The client can safely retry.
func NewConcurrentUpdateError(entity string) *ApiErr {
	return &ApiErr{
		StatusCode: http.StatusConflict,
		err:        withKind(capitalize(entity)+" was modified concurrently, please retry", ErrConcurrentUpdate),
	}
}

// NewDatabaseError creates a new database error with details about the operation
func NewDatabaseError(operation, entity string, cause error) *ApiErr {
	var apiErr *ApiErr
	if errors.As(cause, &apiErr) {
		return apiErr
	}

	details := fmt.Sprintf("Failed to %s %s", operation, entity)
	if cause == nil {
		return &ApiErr{
			StatusCode: http.StatusInternalServerError,
			err:        withKind(GenericMessage, ErrDatabaseQuery),
			Details:    details,
		}
	}

	errStr := cause.Error()
	switch {
	case errors.Is(cause, gorm.ErrRecordNotFound):
		return &ApiErr{
			StatusCode: http.StatusNotFound,
			err:        withKind(capitalize(entity)+" not found", ErrNotFound),
			Details:    details,
			Cause:      cause,
		}
	case IsUniqueViolation(cause):
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        withKind(capitalize(entity)+" already exists", ErrUniqueConstraintViolation),
			Details:    details,
			Cause:      cause,
		}
	case errors.Is(cause, gorm.ErrForeignKeyViolated) || strings.Contains(errStr, "foreign key constraint"):
		return &ApiErr{
			StatusCode: http.StatusBadRequest,
			err:        withKind("invalid reference in "+entity, ErrForeignKeyConstraint),
			Details:    "The referenced resource does not exist or cannot be linked",
			Cause:      cause,
		}
	case strings.Contains(errStr, "connection refused") || strings.Contains(errStr, "failed to connect"):
		return &ApiErr{
			StatusCode: http.StatusServiceUnavailable,
			err:        ErrDatabaseConnection,
			Details:    "Unable to connect to database",
			Cause:      cause,
		}
	}

	// Generic database error: the underlying message is forwarded to the client
	return &ApiErr{
		StatusCode: http.StatusInternalServerError,
		err:        withKind(errStr, ErrDatabaseQuery),
		Details:    details,
		Cause:      cause,
	}
}

// IsUniqueViolation reports whether a raw driver error is a unique key collision.
func IsUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func IsUniqueConstraintViolationError(err error) bool {
	return errors.Is(err, ErrUniqueConstraintViolation)
}

func IsConcurrentUpdateError(err error) bool {
	return errors.Is(err, ErrConcurrentUpdate)
}
