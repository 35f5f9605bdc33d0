// Package geomap holds the Map View: contributor markers with popups on a
// tile basemap and the single country-highlight overlay.
package geomap

import (
	"strings"
	"unicode/utf8"

	"github.com/okian/rootsroads/internal/domain/dataset"
)

// ExcerptLimit is the maximum number of characters kept from long answers
// shown in a popup.
const ExcerptLimit = 150

const ellipsis = "..."

// LatLng is a geographic point in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// View is the initial camera of the map.
type View struct {
	Center LatLng `json:"center"`
	Zoom   int    `json:"zoom"`
}

// DefaultView centers the map on Central Asia.
var DefaultView = View{Center: LatLng{Lat: 48, Lng: 68}, Zoom: 3} //nolint:gochecknoglobals // fixed default camera

// Popup summarizes one contributor next to their marker.
type Popup struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Institution string `json:"institution"`
	Motivation  string `json:"motivation"`
	Advice      string `json:"advice"`
}

// Marker is one geolocated contributor on the map. Index points back into the
// dataset.
type Marker struct {
	Index    int    `json:"index"`
	Position LatLng `json:"position"`
	Country  string `json:"country"`
	Popup    Popup  `json:"popup"`
}

// BuildMarkers returns one marker per geolocated contributor in dataset order.
func BuildMarkers(ds *dataset.Dataset) []Marker {
	located := ds.Geolocated()
	markers := make([]Marker, 0, len(located))
	for _, l := range located {
		c := l.Contributor
		markers = append(markers, Marker{
			Index:    l.Index,
			Position: LatLng{Lat: c.Lat, Lng: c.Lng},
			Country:  c.Country,
			Popup: Popup{
				Name:        c.Name,
				Location:    joinNonEmpty(", ", c.City, c.Country),
				Institution: c.Institution,
				Motivation:  Truncate(c.Motivation, ExcerptLimit),
				Advice:      Truncate(c.Advice, ExcerptLimit),
			},
		})
	}
	return markers
}

// Truncate shortens s to at most n characters and appends "..." when
// anything was cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:n]), " ") + ellipsis
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
