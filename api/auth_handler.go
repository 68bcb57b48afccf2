package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/errs"
	"github.com/rpupo63/portfolio-backend/models"
	"github.com/rpupo63/portfolio-backend/validation"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type authHandler struct {
	responder     Responder
	logger        zerolog.Logger
	userRepo      *database.UserRepo
	authenticator *auth.Authenticator
	sessions      *auth.SessionManager
}

func newAuthHandler(userRepo *database.UserRepo, sessions *auth.SessionManager) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		userRepo:      userRepo,
		authenticator: auth.NewAuthenticator(userRepo),
		sessions:      sessions,
	}
}

// SessionResponse describes a signed-in user
type SessionResponse struct {
	User      auth.Identity `json:"user"`
	Token     string        `json:"token,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty"`
}

// signUp registers a new USER account
// @Summary Sign up
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body validation.SignUp true "Name, email and password"
// @Success 201 {object} models.User "Created user"
// @Failure 400 {object} ErrorResponse "Validation failed or User already exists"
// @Router /api/auth/signup [post]
func (h authHandler) signUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validation.SignUp
		if err := h.responder.decodeBody(w, r, &payload, "signup"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		payload.Normalize()
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		_, err := h.userRepo.FindByEmail(r.Context(), payload.Email)
		switch {
		case err == nil:
			h.responder.WriteError(w, errs.NewConflictError("User already exists"))
			return
		case !errors.Is(err, gorm.ErrRecordNotFound):
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		hash, err := auth.HashPassword(payload.Password)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.GenericMessage, err))
			return
		}

		user := models.User{Name: payload.Name, Email: payload.Email, Password: hash, Role: models.RoleUser}
		if err := h.userRepo.Create(r.Context(), &user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "user", err))
			return
		}

		h.logger.Info().Str("userId", user.ID.String()).Msg("user signed up")
		h.responder.WriteJSONStatus(w, http.StatusCreated, user)
	}
}

// signIn exchanges credentials for a session cookie
// @Summary Sign in
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body validation.SignIn true "Email and password"
// @Success 200 {object} SessionResponse "Signed-in user"
// @Failure 400 {object} ErrorResponse "Validation failed"
// @Failure 401 {object} ErrorResponse "Invalid email or password"
// @Router /api/auth/signin [post]
func (h authHandler) signIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload validation.SignIn
		if err := h.responder.decodeBody(w, r, &payload, "signin"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if err := validatePayload(&payload); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		identity, err := h.authenticator.Authenticate(r.Context(), payload.Email, payload.Password)
		if err != nil {
			if errors.Is(err, auth.ErrUserNotFound) || errors.Is(err, auth.ErrInvalidCredentials) {
				signInAttempts.WithLabelValues("rejected").Inc()
				h.responder.WriteError(w, errs.NewInvalidCredentialsError())
				return
			}
			signInAttempts.WithLabelValues("error").Inc()
			h.responder.WriteError(w, wrapDatabaseError("find", "user", err))
			return
		}

		token, err := h.sessions.Issue(identity)
		if err != nil {
			signInAttempts.WithLabelValues("error").Inc()
			h.responder.WriteError(w, errs.NewInternalErrorWithCause(errs.GenericMessage, err))
			return
		}
		h.sessions.SetCookie(w, token)
		signInAttempts.WithLabelValues("success").Inc()

		expiresAt := time.Now().Add(h.sessions.TTL())
		h.responder.WriteJSON(w, SessionResponse{User: identity, Token: token, ExpiresAt: &expiresAt})
	}
}

// signOut clears the session cookie
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /api/auth/signout [post]
func (h authHandler) signOut() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.sessions.ClearCookie(w)
		h.responder.WriteMessage(w, "Signed out successfully")
	}
}

// session returns the identity of the current session
// @Summary Current session
// @Tags Auth
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/auth/session [get]
func (h authHandler) session() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.FromContext(r.Context())
		if !ok {
			h.responder.WriteError(w, errs.Unauthorized)
			return
		}
		h.responder.WriteJSON(w, SessionResponse{User: identity})
	}
}
