package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rpupo63/portfolio-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const notifyTimeout = 15 * time.Second

type messageHandler struct {
	responder   Responder
	logger      zerolog.Logger
	messageRepo *database.MessageRepo
	notifier    services.Notifier
}

func newMessageHandler(messageRepo *database.MessageRepo, notifier services.Notifier) messageHandler {
	logger := log.With().Str("handlerName", "messageHandler").Logger()

	return messageHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		messageRepo: messageRepo,
		notifier:    notifier,
	}
}

// getMessages lists contact messages newest first
// @Summary Get messages
// @Tags Messages
// @Produce json
// @Success 200 {array} models.Message
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/message [get]
func (h messageHandler) getMessages() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		messages, err := h.messageRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "messages", err))
			return
		}
		h.responder.WriteJSON(w, messages)
	}
}

// createMessage stores a contact form submission and notifies the owner
// @Summary Send message
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body validation.Message true "Contact message"
// @Success 201 {object} models.Message
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 429 {object} ErrorResponse "Too many requests"
// @Router /api/message [post]
func (h messageHandler) createMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validation.Message
		if err := h.responder.decodeBody(w, r, &payload, "message"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message := models.Message{
			Name:    strings.TrimSpace(payload.Name),
			Email:   strings.TrimSpace(payload.Email),
			Message: payload.Message,
		}
		if err := h.messageRepo.Create(r.Context(), &message); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "message", err))
			return
		}
		contactMessagesReceived.Inc()

		h.notify(message)
		h.responder.WriteJSONStatus(w, http.StatusCreated, message)
	}
}

// notify runs detached from the request; failures are only logged
func (h messageHandler) notify(message models.Message) {
	if h.notifier == nil {
		return
	}
	n := services.ContactNotification(message.Name, message.Email, message.Message)
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), notifyTimeout)
		defer cancel()
		if err := h.notifier.Notify(ctx, n); err != nil {
			notificationFailures.Inc()
			h.logger.Warn().Err(err).Str("messageId", message.ID.String()).Msg("failed to notify owner of new message")
		}
	}()
}

// markMessage sets the read flag of a message
// @Summary Mark message read or unread
// @Tags Messages
// @Accept json
// @Produce json
// @Param id query string true "Message id"
// @Param body body validation.MessageRead true "Read flag"
// @Success 200 {object} models.Message
// @Failure 400 {object} ErrorResponse "Id is required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Router /api/message [patch]
func (h messageHandler) markMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := queryID(r, "id", "Id is required", "Message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var payload validation.MessageRead
		if err := h.responder.decodeBody(w, r, &payload, "message"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		message, err := h.messageRepo.SetRead(r.Context(), id, *payload.Read)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "message", err))
			return
		}
		h.responder.WriteJSON(w, message)
	}
}

// @Summary Delete message
// @Tags Messages
// @Produce json
// @Param id query string true "Message id"
// @Success 200 {object} MessageResponse "Message deleted successfully"
// @Failure 400 {object} ErrorResponse "Id is required"
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Failure 404 {object} ErrorResponse "Message not found"
// @Router /api/message [delete]
func (h messageHandler) deleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		id, err := queryID(r, "id", "Id is required", "Message")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := h.messageRepo.Delete(r.Context(), id); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "message", err))
			return
		}
		h.responder.WriteMessage(w, "Message deleted successfully")
	}
}
