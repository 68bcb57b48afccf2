package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type skillHandler struct {
	responder Responder
	logger    zerolog.Logger
	skillRepo *database.SkillRepo
}

func newSkillHandler(skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder: NewResponder(logger),
		logger:    logger,
		skillRepo: skillRepo,
	}
}

func skillFromPayload(p validation.Skill) *models.Skill {
	return &models.Skill{
		Name:     strings.TrimSpace(p.Name),
		IconURL:  p.IconURL,
		Progress: models.ParseProgress(p.Progress),
	}
}

// @Summary Get skills
// @Tags Skills
// @Produce json
// @Success 200 {array} models.Skill
// @Router /api/skill [get]
func (h skillHandler) getSkills() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skills, err := h.skillRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "skills", err))
			return
		}
		h.responder.WriteJSON(w, skills)
	}
}

// @Summary Create skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param skill body validation.Skill true "Skill"
// @Success 201 {object} models.Skill
// @Failure 400 {object} ErrorResponse "Validation failed or Skill already exists"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/skill [post]
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.Skill
		if err := h.responder.decodeBody(w, r, &payload, "skill"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		skill := skillFromPayload(payload)
		_, err := h.skillRepo.FindByName(r.Context(), skill.Name)
		switch {
		case err == nil:
			h.responder.WriteError(w, errs.NewConflictError("Skill already exists"))
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			h.responder.WriteError(w, wrapDatabaseError("find", "skill", err))
			return
		}

		if err := h.skillRepo.Create(r.Context(), skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "skill", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, skill)
	}
}

// @Summary Update skill
// @Tags Skills
// @Accept json
// @Produce json
// @Param id query string true "Skill id"
// @Param skill body validation.Skill true "Skill"
// @Success 200 {object} models.Skill
// @Failure 400 {object} ErrorResponse "Skill ID is required or validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Skill not found"
// @Router /api/skill [patch]
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := queryID(r, "id", "Skill ID is required", "Skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.Skill
		if err := h.responder.decodeBody(w, r, &payload, "skill"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		changes := skillFromPayload(payload)
		if other, err := h.skillRepo.FindByName(r.Context(), changes.Name); err == nil && other.ID != id {
			h.responder.WriteError(w, errs.NewConflictError("Skill already exists"))
			return
		}

		skill, err := h.skillRepo.Update(r.Context(), id, changes)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "skill", err))
			return
		}
		h.responder.WriteJSON(w, skill)
	}
}

// @Summary Delete skill
// @Tags Skills
// @Produce json
// @Param id query string true "Skill id"
// @Success 200 {object} MessageResponse "Skill deleted successfully"
// @Failure 400 {object} ErrorResponse "Skill ID is required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Skill not found"
// @Router /api/skill [delete]
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := queryID(r, "id", "Skill ID is required", "Skill")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.skillRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "skill", err))
			return
		}
		h.responder.WriteMessage(w, "Skill deleted successfully")
	}
}
