package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

func projectFromPayload(p validation.Project) *models.Project {
	return &models.Project{
		Name:         p.Name,
		Description:  p.Description,
		Detail:       optionalString(p.Detail),
		ThumbnailURL: p.ThumbnailURL,
		GitLink:      p.GitLink,
		ProjectLink:  optionalString(p.ProjectLink),
		YtLink:       optionalString(p.YtLink),
		Slug:         p.Slug,
		BuiltAt:      p.BuiltAt,
	}
}

func slugParam(r *http.Request) (string, error) {
	slug := strings.TrimSpace(r.URL.Query().Get("slug"))
	if slug == "" {
		return "", errs.NewMissingRequiredFieldError("slug", "Slug is required")
	}
	return slug, nil
}

// getProjects lists every project, or returns the one named by ?slug=
// @Summary Get projects
// @Description Without a slug, lists all projects with their tags and tech stacks
// @Tags Projects
// @Produce json
// @Param slug query string false "Project slug"
// @Success 200 {array} models.Project "Projects, or a single project when slug is given"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/project [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if slug := strings.TrimSpace(r.URL.Query().Get("slug")); slug != "" {
			project, err := h.projectRepo.FindBySlug(r.Context(), slug)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "project", err))
				return
			}
			h.responder.WriteJSON(w, project)
			return
		}

		projects, err := h.projectRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "projects", err))
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a project with its tags and tech stacks
// @Summary Create project
// @Description Tags are created on first use; every tech stack id must exist
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body validation.Project true "Project data"
// @Success 201 {object} models.Project "Created project"
// @Failure 400 {object} ErrorResponse "Validation failed or unknown tech stack"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/project [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.Project
		if err := h.responder.decodeBody(w, r, &payload, "project"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Create(r.Context(), projectFromPayload(payload), payload.Tags, payload.Techs)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "project", err))
			return
		}

		h.logger.Info().Str("slug", project.Slug).Msg("project created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, project)
	}
}

// updateProject replaces a project's fields and associations
// @Summary Update project
// @Tags Projects
// @Accept json
// @Produce json
// @Param slug query string true "Current project slug"
// @Param project body validation.Project true "Updated project data"
// @Success 200 {object} models.Project "Updated project"
// @Failure 400 {object} ErrorResponse "Slug is required, validation failed or unknown tech stack"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/project [patch]
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		slug, err := slugParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.Project
		if err := h.responder.decodeBody(w, r, &payload, "project"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projectRepo.Update(r.Context(), slug, projectFromPayload(payload), payload.Tags, payload.Techs)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "project", err))
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by slug
// @Summary Delete project
// @Tags Projects
// @Produce json
// @Param slug query string true "Project slug"
// @Success 200 {object} MessageResponse "Project deleted successfully"
// @Failure 400 {object} ErrorResponse "Slug is required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Project not found"
// @Router /api/project [delete]
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		slug, err := slugParam(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projectRepo.DeleteBySlug(r.Context(), slug); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "project", err))
			return
		}

		h.logger.Info().Str("slug", slug).Msg("project deleted")
		h.responder.WriteMessage(w, "Project deleted successfully")
	}
}
