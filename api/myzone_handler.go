package api

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/rpupo63/portfolio-backend/auth"
	"github.com/rpupo63/portfolio-backend/database"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var dashboardPage = template.Must(template.New("myzone").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>myzone</title>
</head>
<body>
<h1>Welcome back, {{.Name}}</h1>
<table>
<tr><th>Projects</th><td>{{.Stats.Projects}}</td></tr>
<tr><th>Skills</th><td>{{.Stats.Skills}}</td></tr>
<tr><th>Tech stacks</th><td>{{.Stats.TechStacks}}</td></tr>
<tr><th>Tags</th><td>{{.Stats.Tags}}</td></tr>
<tr><th>Blogs</th><td>{{.Stats.Blogs}}</td></tr>
<tr><th>Messages</th><td>{{.Stats.Messages}} ({{.Stats.UnreadMessages}} unread)</td></tr>
</table>
</body>
</html>
`))

type myzoneHandler struct {
	responder Responder
	logger    zerolog.Logger
	db        database.Database
}

func newMyzoneHandler(db database.Database) myzoneHandler {
	logger := log.With().Str("handlerName", "myzoneHandler").Logger()

	return myzoneHandler{
		responder: NewResponder(logger),
		logger:    logger,
		db:        db,
	}
}

// @Summary Dashboard counters
// @Tags Myzone
// @Produce json
// @Success 200 {object} database.Stats
// @Failure 401 {object} ErrorResponse "Unauthorized"
// @Router /api/myzone/dashboard [get]
func (h myzoneHandler) dashboard() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := requireAdmin(r); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		stats, err := h.db.Stats(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "dashboard", err))
			return
		}
		h.responder.WriteJSON(w, stats)
	}
}

// page renders the admin landing page. Non-admins never get here: the admin zone
// middleware has already redirected them to sign in.
func (h myzoneHandler) page() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := auth.FromContext(r.Context())
		if !ok || !identity.IsAdmin() {
			http.Redirect(w, r, signInPath, http.StatusSeeOther)
			return
		}

		stats, err := h.db.Stats(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("count", "dashboard", err))
			return
		}

		var buf bytes.Buffer
		err = dashboardPage.Execute(&buf, struct {
			Name  string
			Stats database.Stats
		}{identity.Name, stats})
		if err != nil {
			h.logger.Error().Err(err).Msg("failed to render dashboard")
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(buf.Bytes())
	}
}
