// Package globe models the rotating 3D globe: marker placement on the
// sphere, the drag/auto-rotate interaction state, the camera and the frame
// loop. Drawing is left to a Renderer.
package globe

import (
	"math"
	"time"

	"github.com/okian/rootsroads/internal/domain/contributor"
	"github.com/okian/rootsroads/internal/domain/dataset"
)

// MarkerRadius places markers slightly above the unit sphere.
const MarkerRadius = 1.02

// Pulse bounds and period for the marker scale animation.
const (
	PulseMin    = 1.0
	PulseMax    = 1.3
	PulsePeriod = 2 * time.Second
)

// Vec3 is a point in scene space.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Project converts latitude/longitude in degrees to a point at radius r.
// The axes match an equirectangular texture wrapped on a sphere: longitude
// 0 on the equator sits on +X and the north pole on +Y.
func Project(lat, lng, r float64) Vec3 {
	phi := (90 - lat) * math.Pi / 180
	theta := (lng + 180) * math.Pi / 180
	return Vec3{
		X: -r * math.Sin(phi) * math.Cos(theta),
		Y: r * math.Cos(phi),
		Z: r * math.Sin(phi) * math.Sin(theta),
	}
}

// Marker is one geolocated contributor on the globe.
type Marker struct {
	Index       int                     `json:"index"`
	Position    Vec3                    `json:"position"`
	Contributor contributor.Contributor `json:"contributor"`
}

// BuildMarkers places one marker per geolocated contributor, in dataset order.
func BuildMarkers(ds *dataset.Dataset) []Marker {
	located := ds.Geolocated()
	markers := make([]Marker, 0, len(located))
	for _, l := range located {
		markers = append(markers, Marker{
			Index:       l.Index,
			Position:    Project(l.Contributor.Lat, l.Contributor.Lng, MarkerRadius),
			Contributor: l.Contributor,
		})
	}
	return markers
}

// PulseScale returns the marker scale after elapsed time. It starts at
// PulseMin, peaks at PulseMax halfway through each period and repeats.
func PulseScale(elapsed time.Duration) float64 {
	phase := float64(elapsed%PulsePeriod) / float64(PulsePeriod)
	amp := (PulseMax - PulseMin) / 2
	return PulseMin + amp - amp*math.Cos(2*math.Pi*phase)
}

// PulseCurve samples PulseScale at n evenly spaced points over one period,
// starting at elapsed 0. Renderers interpolate between samples.
func PulseCurve(n int) []float64 {
	if n <= 0 {
		return nil
	}
	curve := make([]float64, n)
	for i := range curve {
		curve[i] = PulseScale(PulsePeriod * time.Duration(i) / time.Duration(n))
	}
	return curve
}
