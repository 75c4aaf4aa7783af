package http

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/yuin/goldmark"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"

	"github.com/example/hotel-console/internal/application"
	"github.com/example/hotel-console/internal/tokenstore"
)

//go:embed templates/*.html
var templateFiles embed.FS

var pageNames = []string{
	"landing.html",
	"blogs.html",
	"account_login.html",
	"account_dashboard.html",
	"my_events.html",
	"plan_event.html",
	"admin_login.html",
	"admin_dashboard.html",
	"admin_events.html",
	"admin_confirm_delete.html",
	"access_denied.html",
}

const redirectBody = "<!doctype html><html><body><p>Redirecting…</p></body></html>\n"

// pageData is the value every page template receives.
type pageData struct {
	Title     string
	Area      string
	Nav       application.PublicNav
	Menu      []application.MenuItem
	Role      tokenstore.Role
	UserName  string
	Notices   []application.Notice
	CSRFField template.HTML
	Content   any
}

func publicPage(title string, session tokenstore.Session, notices *application.Notices, content any) pageData {
	return pageData{
		Title:   title,
		Area:    "public",
		Nav:     application.PublicNavigation(session),
		Notices: notices.Items(),
		Content: content,
	}
}

func adminPage(title string, session tokenstore.Session, notices *application.Notices, content any) pageData {
	data := pageData{
		Title:   title,
		Area:    "admin",
		Notices: notices.Items(),
		Content: content,
	}
	if session.User != nil {
		data.Role = session.User.Role()
		data.UserName = session.User.DisplayName()
		data.Menu = application.AdminMenu(data.Role)
	}
	return data
}

// Renderer executes the embedded page templates inside the shared layout.
type Renderer struct {
	pages    map[string]*template.Template
	markdown goldmark.Markdown
	logger   *slog.Logger
}

// NewRenderer parses every page template. Blog content is rendered as
// Markdown with raw HTML escaped.
func NewRenderer(logger *slog.Logger) (*Renderer, error) {
	r := &Renderer{
		pages: make(map[string]*template.Template, len(pageNames)),
		markdown: goldmark.New(
			goldmark.WithRendererOptions(
				goldmarkHTML.WithHardWraps(),
			),
		),
		logger: defaultLogger(logger),
	}

	funcs := template.FuncMap{
		"markdown":   r.renderMarkdown,
		"eventTypes": func() []application.EventType { return application.EventTypes },
	}

	for _, name := range pageNames {
		tpl, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFiles, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

func (r *Renderer) renderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := r.markdown.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(buf.String())
}

// render writes page name with status. The page is executed into a buffer
// first so a template failure still produces a clean 500.
func (r *Renderer) render(w http.ResponseWriter, req *http.Request, status int, name string, data pageData) {
	tpl, ok := r.pages[name]
	if !ok {
		handlerLogger(req.Context(), r.logger, "Renderer", "render").ErrorContext(req.Context(), "unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	data.CSRFField = csrf.TemplateField(req)

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		handlerLogger(req.Context(), r.logger, "Renderer", "render").ErrorContext(req.Context(), "failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// redirect navigates immediately to target with a static placeholder body.
func redirect(w http.ResponseWriter, target string, status int) {
	w.Header().Set("Location", target)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, redirectBody)
}

// RedirectShim returns a handler that always sends the browser to target.
func RedirectShim(target string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		redirect(w, target, http.StatusFound)
	})
}
