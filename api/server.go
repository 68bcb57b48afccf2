package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/config"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rpupo63/portfolio-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Server struct {
	*http.Server
	startupTime time.Time
}

// Option customizes the router built by NewServer
type Option func(*router)

func NewServer(c map[string]string, db database.Database, opts ...Option) (Server, error) {
	// Ensure correct port is set
	port := config.GetString(c, "PORT", "8080")
	address := fmt.Sprintf("0.0.0.0:%s", port) // Bind to 0.0.0.0 for external access

	// Capture startup time
	startupTime := time.Now()

	opts = append([]Option{withConfig(c), withStartupTime(startupTime)}, opts...)
	router, err := newRouter(db, opts...)
	if err != nil {
		return Server{}, err
	}

	// Get timeout values from config with sensible defaults
	readTimeout := config.GetSeconds(c, "READ_TIMEOUT_SECONDS", 180*time.Second)
	writeTimeout := config.GetSeconds(c, "WRITE_TIMEOUT_SECONDS", 180*time.Second)
	idleTimeout := config.GetSeconds(c, "IDLE_TIMEOUT_SECONDS", 180*time.Second)

	server := &http.Server{
		Addr:         address,
		Handler:      router,
		ReadTimeout:  readTimeout,  // Timeout for reading the entire request
		WriteTimeout: writeTimeout, // Timeout for writing the response
		IdleTimeout:  idleTimeout,  // Timeout for idle connections
	}

	return Server{server, startupTime}, nil
}

type router struct {
	config      map[string]string
	startupTime time.Time
	logger      zerolog.Logger
	sessions    *auth.SessionManager
	notifier    services.Notifier
	uploader    fileUploader
}

func withConfig(c map[string]string) Option {
	return func(r *router) {
		r.config = c
	}
}

func withStartupTime(startupTime time.Time) Option {
	return func(r *router) {
		r.startupTime = startupTime
	}
}

// WithSessions replaces the session manager otherwise built from JWT_SECRET
func WithSessions(sessions *auth.SessionManager) Option {
	return func(r *router) {
		r.sessions = sessions
	}
}

// WithNotifier sets who hears about new contact messages
func WithNotifier(notifier services.Notifier) Option {
	return func(r *router) {
		r.notifier = notifier
	}
}

// WithUploader enables /api/upload. A nil uploader leaves it answering 503.
func WithUploader(uploader *services.Uploader) Option {
	return func(r *router) {
		if uploader != nil {
			r.uploader = uploader
		}
	}
}

// WithLogger sets the logger used for request logging
func WithLogger(logger zerolog.Logger) Option {
	return func(r *router) {
		r.logger = logger
	}
}

func sessionsFromConfig(c map[string]string) (*auth.SessionManager, error) {
	secret := config.GetString(c, "JWT_SECRET", "")
	if secret == "" {
		return nil, errors.New("JWT_SECRET must be set")
	}
	ttl := time.Duration(config.GetInt(c, "SESSION_TTL_HOURS", 24)) * time.Hour
	return auth.NewSessionManager(secret, ttl, config.GetBool(c, "COOKIE_SECURE", true))
}

func newRouter(db database.Database, opts ...Option) (*chi.Mux, error) {
	router := router{logger: log.Logger, startupTime: time.Now()}
	for _, opt := range opts {
		opt(&router)
	}

	if router.sessions == nil {
		sessions, err := sessionsFromConfig(router.config)
		if err != nil {
			return nil, fmt.Errorf("session manager: %w", err)
		}
		router.sessions = sessions
	}

	chiRouter := chi.NewRouter()
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.RealIP)
	chiRouter.Use(LogInternalServerErrors)
	chiRouter.Use(HTTPLoggingMiddleware(router.logger))
	chiRouter.Use(metricsMiddleware)

	// Apply CORS middleware
	acceptedOrigins := config.GetList(router.config, "ACCEPTED_ORIGINS")
	chiRouter.Use(CORSCheckMiddleware(acceptedOrigins))
	chiRouter.Use(corsMiddleware(acceptedOrigins))

	// Initialize auth middleware
	authMiddleware := newAuthMiddleware(router.sessions)
	chiRouter.Use(authMiddleware.session)
	chiRouter.Use(authMiddleware.adminZone)

	// Initialize all handlers
	handlers := initializeHandlers(db, router)

	requests := config.GetInt(router.config, "RATE_LIMIT_REQUESTS", 20)
	window := config.GetSeconds(router.config, "RATE_LIMIT_WINDOW_SECONDS", time.Minute)
	limiter := func() func(http.Handler) http.Handler {
		return rateLimitByIP(requests, window)
	}

	// Setup all route types
	setupOperationalRoutes(chiRouter, handlers)
	setupAPIRoutes(chiRouter, handlers, limiter)
	setupMyzoneRoutes(chiRouter, handlers)

	return chiRouter, nil
}

func (s Server) Start(errChannel chan<- error) {
	log.Info().Msgf("Server started on: %s", s.Addr)
	errChannel <- s.ListenAndServe()
}

func (s Server) ShutdownGracefully(timeout time.Duration) {
	log.Info().Msg("Gracefully shutting down...")

	gracefullCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := s.Shutdown(gracefullCtx); err != nil {
		log.Error().Msgf("Error shutting down the server: %v", err)
	} else {
		log.Info().Msg("HttpServer gracefully shut down")
	}
}
