package api

import (
	"fmt"
	"net/http"

	"github.com/okian/rootsroads/internal/domain/article"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// ArticlesHandler serves the article table.
type ArticlesHandler struct {
	articles Articles
}

// NewArticlesHandler creates a new articles handler.
func NewArticlesHandler(a Articles) *ArticlesHandler {
	return &ArticlesHandler{articles: a}
}

// HandleList handles GET /api/articles.
func (h *ArticlesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	list := h.articles.List()
	out := make([]article.Summary, 0, len(list))
	for _, a := range list {
		out = append(out, a.Summarize())
	}
	writeJSON(w, r, http.StatusOK, out)
}

// HandleGet handles GET /api/articles/{id}.
func (h *ArticlesHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_article"

	a, err := h.articles.Get(chi.URLParam(r, "id"))
	if isNotFound(err) {
		_ = render.Render(w, r, errNotFound(fmt.Errorf("%s: %w", op, err)))
		return
	}
	if err != nil {
		_ = render.Render(w, r, errInternal(err))
		return
	}
	writeJSON(w, r, http.StatusOK, a)
}
