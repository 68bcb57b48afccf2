package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"
)

func TestNewDatabaseError(t *testing.T) {
	tests := []struct {
		name    string
		cause   error
		status  int
		message string
		is      error
	}{
		{"record not found", gorm.ErrRecordNotFound, http.StatusNotFound, "Project not found", ErrNotFound},
		{"wrapped not found", fmt.Errorf("lookup: %w", gorm.ErrRecordNotFound), http.StatusNotFound, "Project not found", ErrNotFound},
		{"gorm duplicated key", gorm.ErrDuplicatedKey, http.StatusBadRequest, "Project already exists", ErrUniqueConstraintViolation},
		{"sqlite unique", errors.New("UNIQUE constraint failed: projects.slug"), http.StatusBadRequest, "Project already exists", ErrUniqueConstraintViolation},
		{"postgres unique", errors.New(`ERROR: duplicate key value violates unique constraint "idx_projects_slug"`), http.StatusBadRequest, "Project already exists", ErrUniqueConstraintViolation},
		{"generic", errors.New("disk I/O error"), http.StatusInternalServerError, "disk I/O error", ErrDatabaseQuery},
		{"nil cause", nil, http.StatusInternalServerError, GenericMessage, ErrDatabaseQuery},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NewDatabaseError("find", "project", tt.cause)
			if got.StatusCode != tt.status {
				t.Errorf("status = %d, want %d", got.StatusCode, tt.status)
			}
			if got.Message() != tt.message {
				t.Errorf("message = %q, want %q", got.Message(), tt.message)
			}
			if !errors.Is(got, tt.is) {
				t.Errorf("errors.Is(%v) = false", tt.is)
			}
		})
	}
}

func TestNewDatabaseError_PassesApiErrThrough(t *testing.T) {
	original := NewBadRequestError("Tech stack with id x not found")
	got := NewDatabaseError("create", "project", fmt.Errorf("tx: %w", original))
	if got != original {
		t.Fatalf("expected the original ApiErr to be returned, got %v", got)
	}
}

func TestConstructorsKeepMessageAndKind(t *testing.T) {
	err := NewConflictError("User already exists")
	if err.StatusCode != http.StatusBadRequest {
		t.Errorf("conflict status = %d, want 400", err.StatusCode)
	}
	if err.Message() != "User already exists" || !IsConflict(err) {
		t.Errorf("unexpected conflict error %q", err.Message())
	}

	nf := NewNotFound("Project not found")
	if !IsNotFound(nf) || nf.Error() != "Project not found" {
		t.Errorf("unexpected not found error %q", nf.Error())
	}

	if StatusCode(errors.New("boom")) != http.StatusInternalServerError {
		t.Error("plain errors should map to 500")
	}
	if StatusCode(Unauthorized) != http.StatusUnauthorized {
		t.Error("Unauthorized should map to 401")
	}
}

func TestNewConcurrentUpdateError(t *testing.T) {
	err := NewConcurrentUpdateError("project")
	if err.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", err.StatusCode)
	}
	if err.Message() != "Project was modified concurrently, please retry" {
		t.Errorf("unexpected message %q", err.Message())
	}
	if !IsConcurrentUpdateError(fmt.Errorf("tx: %w", err)) || IsConflict(err) {
		t.Error("concurrent update should be its own kind")
	}
	if got := NewDatabaseError("update", "project", fmt.Errorf("tx: %w", err)); got != err {
		t.Errorf("expected the concurrent update error to pass through, got %v", got)
	}
}

func TestNewInvalidCredentialsError(t *testing.T) {
	err := NewInvalidCredentialsError()
	if err.StatusCode != http.StatusUnauthorized || !IsInvalidCredentialsError(err) {
		t.Errorf("unexpected credentials error %d %v", err.StatusCode, err)
	}
	if IsInvalidCredentialsError(Unauthorized) {
		t.Error("a bare unauthorized error is not a credentials failure")
	}
}
