package api

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/errs"
)

// requireAdmin is checked by every mutating or admin-only handler, whether or not
// the route also sits behind adminZoneMiddleware.
func requireAdmin(r *http.Request) error {
	if !auth.IsAdmin(r.Context()) {
		return errs.Unauthorized
	}
	return nil
}

func isAdmin(r *http.Request) bool {
	return auth.IsAdmin(r.Context())
}

// queryID reads a uuid from the query string. A missing value is a 400 with
// missingMsg; a malformed one cannot match any row and is reported as not found.
func queryID(r *http.Request, key, missingMsg, entity string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError(key, missingMsg)
	}
	return parseID(raw, entity)
}

func parseID(raw, entity string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewNotFound(entity + " not found")
	}
	return id, nil
}

func optionalString(s string) *string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return &s
}
