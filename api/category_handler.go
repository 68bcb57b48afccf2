package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/validation"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder    Responder
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()
	return categoryHandler{responder: NewResponder(logger), categoryRepo: categoryRepo}
}

// @Summary Get categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Router /api/category [get]
func (h categoryHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body validation.Category true "Category"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse "Validation failed or Category already exists"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/category [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.Category
		if err := h.responder.decodeBody(w, r, &payload, "category"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category := models.Category{Name: strings.TrimSpace(payload.Name)}
		if err := h.categoryRepo.Create(r.Context(), &category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "category", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param id query string true "Category id"
// @Success 200 {object} MessageResponse "Category deleted successfully"
// @Failure 400 {object} ErrorResponse "Id is required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Category not found"
// @Router /api/category [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := queryID(r, "id", "Id is required", "Category")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.categoryRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "category", err))
			return
		}
		h.responder.WriteMessage(w, "Category deleted successfully")
	}
}
