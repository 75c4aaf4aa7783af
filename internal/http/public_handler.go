package http

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/example/hotel-console/internal/application"
)

// PublicHandler serves the public landing and journal pages.
type PublicHandler struct {
	blogs    application.BlogSource
	renderer *Renderer
	logger   *slog.Logger
}

func NewPublicHandler(blogs application.BlogSource, renderer *Renderer, logger *slog.Logger) *PublicHandler {
	return &PublicHandler{blogs: blogs, renderer: renderer, logger: defaultLogger(logger)}
}

func (h *PublicHandler) log(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	if h == nil {
		return slog.Default()
	}
	return handlerLogger(ctx, h.logger, "PublicHandler", operation, attrs...)
}

func (h *PublicHandler) Landing(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.renderer == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	session := SessionFromContext(r.Context())
	h.renderer.render(w, r, http.StatusOK, "landing.html", publicPage("Home", session, nil, nil))
}

func (h *PublicHandler) Blogs(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.renderer == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	ctx := r.Context()
	view := application.NewBlogListView(ctx, h.blogs, h.logger)
	defer view.Close()

	view.Load(ctx)
	snapshot := view.Snapshot()
	h.log(ctx, "Blogs").DebugContext(ctx, "journal rendered", "published", len(snapshot.Cards))

	session := SessionFromContext(ctx)
	h.renderer.render(w, r, http.StatusOK, "blogs.html", publicPage("Journal", session, nil, snapshot))
}
