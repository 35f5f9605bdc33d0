package api

import (
	"net/http"

	"github.com/okian/rootsroads/internal/domain/geomap"
)

// MapHandler serves the map view.
type MapHandler struct {
	current currentFunc
	view    geomap.View
	padding int
}

// NewMapHandler creates a new map handler.
func NewMapHandler(current currentFunc, view geomap.View, padding int) *MapHandler {
	return &MapHandler{current: current, view: view, padding: padding}
}

type mapResponse struct {
	View             geomap.View     `json:"view"`
	HighlightPadding int             `json:"highlightPadding"`
	Markers          []geomap.Marker `json:"markers"`
}

// HandleView handles GET /api/map.
func (h *MapHandler) HandleView(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.current(w, r)
	if !ok {
		return
	}
	writeJSON(w, r, http.StatusOK, mapResponse{
		View:             h.view,
		HighlightPadding: h.padding,
		Markers:          geomap.BuildMarkers(ds),
	})
}
