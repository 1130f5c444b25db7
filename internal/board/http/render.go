package http

import (
	"bytes"
	"embed"
	"html/template"
	"net/http"
	"net/url"

	"github.com/oakhall/clubboard/internal/board/domain"
	"github.com/oakhall/clubboard/pkg/httpx"
	"github.com/oakhall/clubboard/pkg/slogx"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"index", "sign-up", "sign-in", "join-club", "admin",
	"messages", "message-new", "error",
}

func parseTemplates() map[string]*template.Template {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		pages[name] = template.Must(template.ParseFS(
			templateFS,
			"templates/layout.html",
			"templates/"+name+".html",
		))
	}
	return pages
}

// viewData is everything a page template can see. Form carries non-sensitive
// prefill values on validation redirects; the password never appears here.
type viewData struct {
	Title      string
	User       *domain.User
	Flash      []string
	Form       url.Values
	Messages   []domain.MessageWithAuthor
	RedirectTo string
	Error      string
	Detail     string
}

// render draws a page inside the shared layout, draining any pending flash
// messages for the request's session.
func (rt *Router) render(w http.ResponseWriter, r *http.Request, status int, page string, data viewData) {
	log := slogx.FromContext(r.Context())

	rs := requestSessionFrom(r.Context())
	data.User = rs.Principal()
	if rs.HasSession() && len(data.Flash) == 0 {
		flash, err := rt.SessionService.DrainFlash(r.Context(), rs.Session)
		if err != nil {
			log.Error("failed to drain flash messages", "error", err)
		} else {
			data.Flash = flash
		}
	}

	tmpl, ok := rt.templates[page]
	if !ok {
		log.Error("unknown template", "page", page)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	// Render to a buffer first so a template failure cannot produce a
	// half-written page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		log.Error("failed to render template", "page", page, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	httpx.NoCache(w)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// renderError draws the generic error page.
func (rt *Router) renderError(w http.ResponseWriter, r *http.Request, status int, message string) {
	rt.render(w, r, status, "error", viewData{
		Title: "Error",
		Error: message,
	})
}

// internalError logs err and renders a generic 500 page. The underlying
// error text reaches the response only in dev.
func (rt *Router) internalError(w http.ResponseWriter, r *http.Request, err error) {
	slogx.FromContext(r.Context()).Error("request failed", "error", err)

	data := viewData{
		Title: "Error",
		Error: "Something went wrong.",
	}
	if rt.env == "dev" {
		data.Detail = err.Error()
	}
	rt.render(w, r, http.StatusInternalServerError, "error", data)
}
