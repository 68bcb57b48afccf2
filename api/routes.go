package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupOperationalRoutes exposes health and metrics endpoints
func setupOperationalRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/healthz", handlers.healthHandler.healthz())
	r.Handle("/metrics", promhttp.Handler())
}

// setupAPIRoutes sets up the JSON API. Reads are public, writes check for an
// ADMIN session inside each handler. limiter builds a fresh per-IP limiter for
// each abusable endpoint.
func setupAPIRoutes(r chi.Router, handlers *routeHandlers, limiter func() func(http.Handler) http.Handler) {
	r.Route("/api", func(r chi.Router) {
		// Auth
		r.With(limiter()).Post("/auth/signup", handlers.authHandler.signUp())
		r.With(limiter()).Post("/auth/signin", handlers.authHandler.signIn())
		r.Post("/auth/signout", handlers.authHandler.signOut())
		r.Get("/auth/session", handlers.authHandler.session())

		// Projects
		r.Get("/project", handlers.projectHandler.getProjects())
		r.Post("/project", handlers.projectHandler.createProject())
		r.Patch("/project", handlers.projectHandler.updateProject())
		r.Delete("/project", handlers.projectHandler.deleteProject())

		// Tech stacks
		r.Get("/techstack", handlers.techStackHandler.getTechStacks())
		r.Post("/techstack", handlers.techStackHandler.createTechStack())
		r.Patch("/techstack", handlers.techStackHandler.updateTechStack())
		r.Delete("/techstack", handlers.techStackHandler.deleteTechStack())

		// Skills
		r.Get("/skill", handlers.skillHandler.getSkills())
		r.Post("/skill", handlers.skillHandler.createSkill())
		r.Patch("/skill", handlers.skillHandler.updateSkill())
		r.Delete("/skill", handlers.skillHandler.deleteSkill())

		r.Get("/tags", handlers.tagHandler.getTags())

		// Contact messages
		r.Get("/message", handlers.messageHandler.getMessages())
		r.With(limiter()).Post("/message", handlers.messageHandler.createMessage())
		r.Patch("/message", handlers.messageHandler.markMessage())
		r.Delete("/message", handlers.messageHandler.deleteMessage())

		// Blogs
		r.Get("/blog", handlers.blogHandler.getBlogs())
		r.Post("/blog", handlers.blogHandler.createBlog())
		r.Patch("/blog", handlers.blogHandler.updateBlog())
		r.Delete("/blog", handlers.blogHandler.deleteBlog())

		r.Get("/category", handlers.categoryHandler.getCategories())
		r.Post("/category", handlers.categoryHandler.createCategory())
		r.Delete("/category", handlers.categoryHandler.deleteCategory())

		r.Post("/upload", handlers.uploadHandler.upload())

		r.Get("/myzone/dashboard", handlers.myzoneHandler.dashboard())
	})
}

// setupMyzoneRoutes serves the admin pages. adminZone has already turned away
// anyone without an ADMIN session.
func setupMyzoneRoutes(r chi.Router, handlers *routeHandlers) {
	r.Get("/myzone", handlers.myzoneHandler.page())
	r.Get("/myzone/*", handlers.myzoneHandler.page())
}
