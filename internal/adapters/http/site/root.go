// Package site serves the embedded single-page site: navigation chrome,
// loading and error overlays, and the globe, map and article views.
package site

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Register mounts the embedded site at the root of r. API routes registered
// on the same router take precedence.
func Register(_ context.Context, r chi.Router) {
	if r == nil {
		panic("router is nil")
	}
	r.Handle("/*", NewRootHandler())
}

// RootHandler serves the static assets.
type RootHandler struct {
	files http.Handler
}

// NewRootHandler creates a new root handler.
func NewRootHandler() *RootHandler {
	return &RootHandler{files: http.FileServer(FS())}
}

// ServeHTTP implements http.Handler.
func (h *RootHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache")
	h.files.ServeHTTP(w, r)
}
