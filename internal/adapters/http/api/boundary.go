package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/okian/rootsroads/internal/domain/geomap"
	"github.com/okian/rootsroads/pkg/logger"
	"github.com/okian/rootsroads/pkg/metrics"

	"github.com/go-chi/render"
)

// BoundaryHandler proxies country outlines for the map highlight.
type BoundaryHandler struct {
	service geomap.BoundaryService
	padding int
	log     logger.Logger
}

// NewBoundaryHandler creates a new boundary handler.
func NewBoundaryHandler(svc geomap.BoundaryService, padding int, log logger.Logger) *BoundaryHandler {
	return &BoundaryHandler{service: svc, padding: padding, log: log}
}

type boundaryResponse struct {
	Boundary  geomap.Boundary `json:"boundary"`
	PaddingPX int             `json:"paddingPx"`
}

// HandleBoundary handles GET /api/boundary?country=. Countries outside the
// lookup table and failed lookups both answer 204 so the map simply shows no
// overlay.
func (h *BoundaryHandler) HandleBoundary(w http.ResponseWriter, r *http.Request) {
	const op = "api.boundary"

	country := strings.TrimSpace(r.URL.Query().Get("country"))
	if country == "" {
		_ = render.Render(w, r, errBadRequest(fmt.Errorf("%s: %w: missing country", op, ErrBadRequest)))
		return
	}

	b, err := geomap.Resolve(r.Context(), h.service, country)
	if errors.Is(err, geomap.ErrUnknownCountry) {
		metrics.RecordBoundaryLookup("unknown")
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.log.Warn(r.Context(), "boundary lookup failed", logger.String("country", country), logger.Error(err))
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, r, http.StatusOK, boundaryResponse{Boundary: b, PaddingPX: h.padding})
}
