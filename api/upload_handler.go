package api

import (
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const maxUploadSize = 10 << 20

type fileUploader interface {
	Upload(ctx context.Context, filename, contentType string, body io.Reader) (string, error)
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	uploader  fileUploader
}

// UploadResponse carries the public URL of a stored file
type UploadResponse struct {
	URL string `json:"url" example:"https://cdn.example.com/uploads/3f0c.png"`
}

func newUploadHandler(uploader fileUploader) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		uploader:  uploader,
	}
}

// sniffImage reports the detected content type, rewinding the file afterwards
func sniffImage(file multipart.File) (string, error) {
	head := make([]byte, 512)
	n, err := file.Read(head)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

// @Summary Upload image
// @Description Stores a thumbnail or icon and returns its public URL
// @Tags Uploads
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} UploadResponse
// @Failure 400 {object} ErrorResponse "File is required or not an image"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 503 {object} ErrorResponse "File storage is not configured"
// @Router /api/upload [post]
func (h uploadHandler) upload() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if h.uploader == nil {
			h.responder.WriteError(w, errs.NewUnavailableError("File storage is not configured"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
		if err := r.ParseMultipartForm(maxUploadSize); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				h.responder.WriteError(w, errs.NewMaxBodySizeExceededError(maxErr.Limit))
				return
			}
			h.responder.WriteError(w, errs.NewMalformedPayloadError("upload", err))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("file", "File is required"))
			return
		}
		defer file.Close()

		contentType, err := sniffImage(file)
		if err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("upload", err))
			return
		}
		if !strings.HasPrefix(contentType, "image/") {
			h.responder.WriteError(w, errs.NewValidationError("file", "Only image uploads are allowed"))
			return
		}

		url, err := h.uploader.Upload(r.Context(), header.Filename, contentType, file)
		if err != nil {
			h.logger.Error().Err(err).Str("filename", header.Filename).Msg("upload failed")
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Failed to store file", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, UploadResponse{URL: url})
	}
}
