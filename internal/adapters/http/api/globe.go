package api

import (
	"net/http"
	"strconv"

	"github.com/okian/rootsroads/internal/domain/globe"
)

const (
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
	// pulseSamples is the resolution of the pulse curve sent to the client.
	pulseSamples = 60
)

// GlobeHandler serves the globe scene.
type GlobeHandler struct {
	current currentFunc
	texture string
}

// NewGlobeHandler creates a new globe handler.
func NewGlobeHandler(current currentFunc, texture string) *GlobeHandler {
	return &GlobeHandler{current: current, texture: texture}
}

type pulseSpec struct {
	Min      float64   `json:"min"`
	Max      float64   `json:"max"`
	PeriodMS int64     `json:"periodMs"`
	Curve    []float64 `json:"curve"`
}

type controlSpec struct {
	DragSensitivity float64 `json:"dragSensitivity"`
	AutoRotateStep  float64 `json:"autoRotateStep"`
	MaxTilt         float64 `json:"maxTilt"`
}

// globeResponse is everything the browser renderer reads. Marker positions
// are in globe radii in the scene frame of globe.Project.
type globeResponse struct {
	Texture  string           `json:"texture"`
	Pulse    pulseSpec        `json:"pulse"`
	Controls controlSpec      `json:"controls"`
	Camera   globe.Projection `json:"camera"`
	Markers  []globe.Marker   `json:"markers"`
}

// HandleScene handles GET /api/globe?width=&height=. The viewport size sets
// the camera aspect ratio.
func (h *GlobeHandler) HandleScene(w http.ResponseWriter, r *http.Request) {
	ds, ok := h.current(w, r)
	if !ok {
		return
	}
	width := intParam(r, "width", defaultViewportWidth)
	height := intParam(r, "height", defaultViewportHeight)

	scene := globe.NewScene(ds, h.texture, width, height)
	writeJSON(w, r, http.StatusOK, globeResponse{
		Texture: scene.TextureURL,
		Pulse: pulseSpec{
			Min:      globe.PulseMin,
			Max:      globe.PulseMax,
			PeriodMS: globe.PulsePeriod.Milliseconds(),
			Curve:    globe.PulseCurve(pulseSamples),
		},
		Controls: controlSpec{
			DragSensitivity: globe.DragSensitivity,
			AutoRotateStep:  globe.AutoRotateStep,
			MaxTilt:         globe.MaxTilt,
		},
		Camera:  scene.Camera.Projection(),
		Markers: scene.Markers,
	})
}

// intParam reads a non-negative integer query parameter, falling back to def.
func intParam(r *http.Request, name string, def int) int {
	v, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || v < 0 {
		return def
	}
	return v
}
