package api

import (
	"context"
	"net/http"
	"sort"
	"testing"

	"github.com/rpupo63/portfolio-backend/models"
)

func projectPayload(slug string, tags []string, techs []string) map[string]any {
	return map[string]any{
		"name":        "Portfolio",
		"description": "My site",
		"gitLink":     "https://github.com/me/portfolio",
		"slug":        slug,
		"builtAt":     "2024-05-01",
		"tags":        tags,
		"techs":       techs,
	}
}

func createTech(t *testing.T, s *testServer, name string) models.TechStack {
	t.Helper()
	rec := s.do(http.MethodPost, "/api/techstack", map[string]string{"name": name}, s.adminCookie())
	expectStatus(t, rec, http.StatusCreated)
	return decode[models.TechStack](t, rec)
}

func sortedTagNames(p models.Project) []string {
	names := p.TagNames()
	sort.Strings(names)
	return names
}

func TestProjectCRUD(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.adminCookie()
	goTech := createTech(t, s, "Go")
	pg := createTech(t, s, "Postgres")

	rec := s.do(http.MethodPost, "/api/project", projectPayload("portfolio", []string{"web", "go"}, []string{goTech.ID.String()}), admin)
	expectStatus(t, rec, http.StatusCreated)
	created := decode[models.Project](t, rec)
	if got := sortedTagNames(created); len(got) != 2 || got[0] != "go" || got[1] != "web" {
		t.Fatalf("tags = %v", got)
	}
	if len(created.Techs) != 1 || created.Techs[0].TechStackID != goTech.ID {
		t.Fatalf("techs = %+v", created.Techs)
	}

	rec = s.do(http.MethodGet, "/api/project?slug=portfolio", nil)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[models.Project](t, rec); got.ID != created.ID {
		t.Errorf("fetched %s, want %s", got.ID, created.ID)
	}

	update := projectPayload("portfolio-v2", []string{"go", "api"}, []string{goTech.ID.String(), pg.ID.String()})
	rec = s.do(http.MethodPatch, "/api/project?slug=portfolio", update, admin)
	expectStatus(t, rec, http.StatusOK)
	updated := decode[models.Project](t, rec)
	if updated.Slug != "portfolio-v2" || len(updated.Techs) != 2 {
		t.Fatalf("updated = %+v", updated)
	}
	if got := sortedTagNames(updated); len(got) != 2 || got[0] != "api" || got[1] != "go" {
		t.Fatalf("tags after update = %v", got)
	}

	// Applying the same update again changes nothing
	rec = s.do(http.MethodPatch, "/api/project?slug=portfolio-v2", update, admin)
	expectStatus(t, rec, http.StatusOK)
	again := decode[models.Project](t, rec)
	if len(again.Tags) != 2 || len(again.Techs) != 2 {
		t.Fatalf("repeat update changed associations: %+v", again)
	}

	expectError(t, s.do(http.MethodGet, "/api/project?slug=portfolio", nil), http.StatusNotFound, "Project not found")

	rec = s.do(http.MethodDelete, "/api/project?slug=portfolio-v2", nil, admin)
	expectStatus(t, rec, http.StatusOK)
	if got := decode[MessageResponse](t, rec); got.Message != "Project deleted successfully" {
		t.Errorf("message = %q", got.Message)
	}
	expectError(t, s.do(http.MethodDelete, "/api/project?slug=portfolio-v2", nil, admin), http.StatusNotFound, "Project not found")

	// Tags outlive the projects that used them
	rec = s.do(http.MethodGet, "/api/tags", nil)
	expectStatus(t, rec, http.StatusOK)
	if tags := decode[[]models.Tag](t, rec); len(tags) != 3 {
		t.Errorf("tags = %+v", tags)
	}
}

func TestProjectWritesRequireAdmin(t *testing.T) {
	s := newTestServer(t, nil)
	user := s.cookieFor(models.RoleUser)

	for _, tt := range []struct{ method, target string }{
		{http.MethodPost, "/api/project"},
		{http.MethodPatch, "/api/project?slug=x"},
		{http.MethodDelete, "/api/project?slug=x"},
	} {
		expectError(t, s.do(tt.method, tt.target, projectPayload("x", nil, nil)), http.StatusUnauthorized, "Unauthorized")
		expectError(t, s.do(tt.method, tt.target, projectPayload("x", nil, nil), user), http.StatusUnauthorized, "Unauthorized")
	}

	n, err := s.db.ProjectRepo().Count(context.Background())
	if err != nil || n != 0 {
		t.Fatalf("count = %d, %v", n, err)
	}
}

func TestProjectValidationRejectsBeforeWriting(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.adminCookie()

	rec := s.do(http.MethodPost, "/api/project", projectPayload("Not A Slug", []string{"web"}, nil), admin)
	expectError(t, rec, http.StatusBadRequest, "Slug can only contain lowercase letters, numbers, and hyphens")

	payload := projectPayload("ok-slug", nil, nil)
	delete(payload, "name")
	expectError(t, s.do(http.MethodPost, "/api/project", payload, admin), http.StatusBadRequest, "Title is required")

	rec = s.do(http.MethodPost, "/api/project", projectPayload("ok-slug", []string{"web"}, []string{"3b241101-e2bb-4255-8caf-4136c566a962"}), admin)
	expectError(t, rec, http.StatusBadRequest, "Tech stack with id 3b241101-e2bb-4255-8caf-4136c566a962 not found")

	ctx := context.Background()
	if n, _ := s.db.ProjectRepo().Count(ctx); n != 0 {
		t.Errorf("projects = %d", n)
	}
	if n, _ := s.db.TagRepo().Count(ctx); n != 0 {
		t.Errorf("tags = %d, the failed create must roll back", n)
	}
}

func TestProjectSlugConflictsAndMissingSlug(t *testing.T) {
	s := newTestServer(t, nil)
	admin := s.adminCookie()

	expectStatus(t, s.do(http.MethodPost, "/api/project", projectPayload("taken", nil, nil), admin), http.StatusCreated)
	expectError(t, s.do(http.MethodPost, "/api/project", projectPayload("taken", nil, nil), admin), http.StatusBadRequest, "Project already exists")

	expectError(t, s.do(http.MethodPatch, "/api/project", projectPayload("taken", nil, nil), admin), http.StatusBadRequest, "Slug is required")
	expectError(t, s.do(http.MethodDelete, "/api/project", nil, admin), http.StatusBadRequest, "Slug is required")
	expectError(t, s.do(http.MethodPatch, "/api/project?slug=missing", projectPayload("missing", nil, nil), admin), http.StatusNotFound, "Project not found")
}
