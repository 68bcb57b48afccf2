package api

import (
	"net/http"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()
	return tagHandler{responder: NewResponder(logger), tagRepo: tagRepo}
}

// getTags lists every tag by name
// @Summary Get tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /api/tags [get]
func (h tagHandler) getTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}
