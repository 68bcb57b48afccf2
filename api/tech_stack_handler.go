package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const techStackExists = "Tech stack with this name already exists"

type techStackHandler struct {
	responder     Responder
	logger        zerolog.Logger
	techStackRepo *database.TechStackRepo
}

func newTechStackHandler(techStackRepo *database.TechStackRepo) techStackHandler {
	logger := log.With().Str("handlerName", "techStackHandler").Logger()

	return techStackHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		techStackRepo: techStackRepo,
	}
}

func techStackFromPayload(p validation.TechStack) *models.TechStack {
	return &models.TechStack{
		Name:     strings.TrimSpace(p.Name),
		IconURL:  p.IconURL,
		Progress: models.ParseProgress(p.Progress),
	}
}

// techStackID prefers ?id= and falls back to the id carried in the body
func techStackID(r *http.Request, bodyID string) (uuid.UUID, error) {
	raw := strings.TrimSpace(r.URL.Query().Get("id"))
	if raw == "" {
		raw = strings.TrimSpace(bodyID)
	}
	if raw == "" {
		return uuid.Nil, errs.NewMissingRequiredFieldError("id", "Id is required")
	}
	return parseID(raw, "Tech stack")
}

func (h techStackHandler) writeSaveError(w http.ResponseWriter, operation string, err error) {
	if errs.IsUniqueConstraintViolationError(errs.NewDatabaseError(operation, "tech stack", err)) {
		h.responder.WriteError(w, errs.NewConflictError(techStackExists))
		return
	}
	h.responder.WriteError(w, wrapDatabaseError(operation, "tech stack", err))
}

// getTechStacks lists every tech stack
// @Summary Get tech stacks
// @Tags TechStacks
// @Produce json
// @Success 200 {array} models.TechStack
// @Router /api/techstack [get]
func (h techStackHandler) getTechStacks() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techs, err := h.techStackRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tech stacks", err))
			return
		}
		h.responder.WriteJSON(w, techs)
	}
}

// createTechStack adds a tech stack with a unique name
// @Summary Create tech stack
// @Tags TechStacks
// @Accept json
// @Produce json
// @Param techStack body validation.TechStack true "Tech stack"
// @Success 201 {object} models.TechStack
// @Failure 400 {object} ErrorResponse "Validation failed or name taken"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/techstack [post]
func (h techStackHandler) createTechStack() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.TechStack
		if err := h.responder.decodeBody(w, r, &payload, "tech stack"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tech := techStackFromPayload(payload)
		_, err := h.techStackRepo.FindByName(r.Context(), tech.Name)
		switch {
		case err == nil:
			h.responder.WriteError(w, errs.NewConflictError(techStackExists))
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			h.responder.WriteError(w, wrapDatabaseError("find", "tech stack", err))
			return
		}

		if err := h.techStackRepo.Create(r.Context(), tech); err != nil {
			h.writeSaveError(w, "create", err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, tech)
	}
}

// updateTechStack overwrites a tech stack
// @Summary Update tech stack
// @Tags TechStacks
// @Accept json
// @Produce json
// @Param id query string false "Tech stack id, may be sent in the body instead"
// @Param techStack body validation.TechStack true "Tech stack"
// @Success 200 {object} models.TechStack
// @Failure 400 {object} ErrorResponse "Validation failed or name taken"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Tech stack not found"
// @Router /api/techstack [patch]
func (h techStackHandler) updateTechStack() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.TechStack
		if err := h.responder.decodeBody(w, r, &payload, "tech stack"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		id, err := techStackID(r, payload.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		changes := techStackFromPayload(payload)
		if other, err := h.techStackRepo.FindByName(r.Context(), changes.Name); err == nil && other.ID != id {
			h.responder.WriteError(w, errs.NewConflictError(techStackExists))
			return
		}

		tech, err := h.techStackRepo.Update(r.Context(), id, changes)
		if err != nil {
			h.writeSaveError(w, "update", err)
			return
		}
		h.responder.WriteJSON(w, tech)
	}
}

// deleteTechStack removes a tech stack and unlinks it from projects
// @Summary Delete tech stack
// @Tags TechStacks
// @Accept json
// @Produce json
// @Param id query string false "Tech stack id, may be sent in the body instead"
// @Success 200 {object} MessageResponse "Tech stack deleted successfully"
// @Failure 400 {object} ErrorResponse "Id is required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Tech stack not found"
// @Router /api/techstack [delete]
func (h techStackHandler) deleteTechStack() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var body struct {
			ID string `json:"id"`
		}
		if r.URL.Query().Get("id") == "" && r.ContentLength != 0 {
			if err := h.responder.decodeBody(w, r, &body, "tech stack"); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}
		id, err := techStackID(r, body.ID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.techStackRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "tech stack", err))
			return
		}
		h.responder.WriteMessage(w, "Tech stack deleted successfully")
	}
}
