package geomap

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/okian/rootsroads/pkg/logger"
)

// ErrUnknownCountry is returned by Resolve for names outside the lookup table.
var ErrUnknownCountry = errors.New("country has no boundary mapping")

// DefaultPaddingPX is the margin kept around a highlighted country.
const DefaultPaddingPX = 20

// Bounds is a bounding box in degrees.
type Bounds struct {
	South float64 `json:"south"`
	West  float64 `json:"west"`
	North float64 `json:"north"`
	East  float64 `json:"east"`
}

// Boundary is a country outline as returned by the boundary service.
// Geometry is a GeoJSON geometry object.
type Boundary struct {
	ID       BoundaryID      `json:"id"`
	Name     string          `json:"name"`
	Bounds   Bounds          `json:"bounds"`
	Geometry json.RawMessage `json:"geometry"`
}

// BoundaryService fetches country outlines.
type BoundaryService interface {
	Lookup(ctx context.Context, id BoundaryID) (Boundary, error)
}

// Surface is the map the overlay is drawn on.
type Surface interface {
	ShowOverlay(b Boundary)
	ClearOverlay()
	FitBounds(b Bounds, paddingPX int)
}

// Resolve maps a display name to its boundary.
func Resolve(ctx context.Context, svc BoundaryService, country string) (Boundary, error) {
	const op = "geomap.resolve"

	id, ok := Lookup(country)
	if !ok {
		return Boundary{}, fmt.Errorf("%s: %w: %q", op, ErrUnknownCountry, country)
	}
	b, err := svc.Lookup(ctx, id)
	if err != nil {
		return Boundary{}, fmt.Errorf("%s: %w", op, err)
	}
	return b, nil
}

// Highlighter keeps at most one country overlay on a Surface. Every request
// clears the current overlay before fetching; when requests overlap only the
// latest one may draw.
type Highlighter struct {
	surface Surface
	service BoundaryService
	padding int
	log     logger.Logger

	mu  sync.Mutex
	gen uint64
}

// HighlighterOption configures a Highlighter.
type HighlighterOption func(*Highlighter)

// WithPadding sets the fit-bounds padding in pixels.
func WithPadding(px int) HighlighterOption {
	return func(h *Highlighter) {
		if px >= 0 {
			h.padding = px
		}
	}
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l logger.Logger) HighlighterOption {
	return func(h *Highlighter) {
		if l != nil {
			h.log = l
		}
	}
}

// NewHighlighter creates a Highlighter drawing on surface.
func NewHighlighter(surface Surface, svc BoundaryService, opts ...HighlighterOption) *Highlighter {
	h := &Highlighter{
		surface: surface,
		service: svc,
		padding: DefaultPaddingPX,
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Highlight outlines country and frames the map on it. It reports whether an
// overlay was drawn. Failures are logged and leave the map without overlay.
func (h *Highlighter) Highlight(ctx context.Context, country string) bool {
	h.mu.Lock()
	h.gen++
	gen := h.gen
	h.surface.ClearOverlay()
	h.mu.Unlock()

	b, err := Resolve(ctx, h.service, country)
	if errors.Is(err, ErrUnknownCountry) {
		h.log.Debug(ctx, "no boundary for country", logger.String("country", country))
		return false
	}
	if err != nil {
		h.log.Warn(ctx, "boundary lookup failed", logger.String("country", country), logger.Error(err))
		return false
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if gen != h.gen {
		h.log.Debug(ctx, "discarding stale boundary", logger.String("country", country))
		return false
	}
	h.surface.ShowOverlay(b)
	h.surface.FitBounds(b.Bounds, h.padding)
	return true
}

// Clear removes any overlay and invalidates requests in flight.
func (h *Highlighter) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.gen++
	h.surface.ClearOverlay()
}
