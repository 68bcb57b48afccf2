package api

import (
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type blogHandler struct {
	responder Responder
	logger    zerolog.Logger
	blogRepo  *database.BlogRepo
}

func newBlogHandler(blogRepo *database.BlogRepo) blogHandler {
	logger := log.With().Str("handlerName", "blogHandler").Logger()

	return blogHandler{
		responder: NewResponder(logger),
		logger:    logger,
		blogRepo:  blogRepo,
	}
}

func blogFromPayload(p validation.Blog) *models.Blog {
	return &models.Blog{
		Title:        p.Title,
		Content:      p.Content,
		ThumbnailURL: p.ThumbnailURL,
		Slug:         p.Slug,
		Published:    p.Published,
	}
}

// getBlogs lists blogs, or returns the one named by ?slug=. Drafts are only visible to admins.
// @Summary Get blogs
// @Tags Blogs
// @Produce json
// @Param slug query string false "Blog slug"
// @Success 200 {array} models.Blog
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Router /api/blog [get]
func (h blogHandler) getBlogs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		publishedOnly := !isAdmin(r)

		if slug := strings.TrimSpace(r.URL.Query().Get("slug")); slug != "" {
			blog, err := h.blogRepo.FindBySlug(r.Context(), slug, publishedOnly)
			if err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find", "blog", err))
				return
			}
			h.responder.WriteJSON(w, blog)
			return
		}

		blogs, err := h.blogRepo.FindAll(r.Context(), publishedOnly)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "blogs", err))
			return
		}
		h.responder.WriteJSON(w, blogs)
	}
}

// @Summary Create blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Param blog body validation.Blog true "Blog"
// @Success 201 {object} models.Blog
// @Failure 400 {object} ErrorResponse "Validation failed or unknown category"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/blog [post]
func (h blogHandler) createBlog() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.Blog
		if err := h.responder.decodeBody(w, r, &payload, "blog"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.Create(r.Context(), blogFromPayload(payload), payload.Categories)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "blog", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, blog)
	}
}

// @Summary Update blog
// @Tags Blogs
// @Accept json
// @Produce json
// @Param slug query string true "Current blog slug"
// @Param blog body validation.Blog true "Blog"
// @Success 200 {object} models.Blog
// @Failure 400 {object} ErrorResponse "Slug is required or validation failed"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Router /api/blog [patch]
func (h blogHandler) updateBlog() http.HandlerFunc {
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

		var payload validation.Blog
		if err := h.responder.decodeBody(w, r, &payload, "blog"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		blog, err := h.blogRepo.Update(r.Context(), slug, blogFromPayload(payload), payload.Categories)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "blog", err))
			return
		}
		h.responder.WriteJSON(w, blog)
	}
}

// @Summary Delete blog
// @Tags Blogs
// @Produce json
// @Param slug query string true "Blog slug"
// @Success 200 {object} MessageResponse "Blog deleted successfully"
// @Failure 400 {object} ErrorResponse "Slug is required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Blog not found"
// @Router /api/blog [delete]
func (h blogHandler) deleteBlog() http.HandlerFunc {
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
		if err := h.blogRepo.DeleteBySlug(r.Context(), slug); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "blog", err))
			return
		}
		h.responder.WriteMessage(w, "Blog deleted successfully")
	}
}
