// Package dataset holds the immutable, load-once set of contributors and the
// aggregates derived from it.
package dataset

import (
	"sort"
	"strings"
	"time"

	"github.com/okian/rootsroads/internal/domain/contributor"
)

// Dataset is the ordered contributor set plus its totals. It is never
// mutated after New returns; accessors hand out copies.
type Dataset struct {
	id           string
	loadedAt     time.Time
	contributors []contributor.Contributor

	totalStories   int
	totalCountries int
	// totalStudents always equals totalStories (one story per student). It is
	// kept as its own field because clients read it separately.
	totalStudents int
}

// Option configures a Dataset at construction.
type Option func(*Dataset)

// WithID tags the dataset with the load that produced it.
func WithID(id string) Option {
	return func(d *Dataset) { d.id = id }
}

// WithLoadedAt records when the dataset was loaded.
func WithLoadedAt(t time.Time) Option {
	return func(d *Dataset) { d.loadedAt = t }
}

// New builds a Dataset from contributors in source order.
func New(contributors []contributor.Contributor, opts ...Option) *Dataset {
	d := &Dataset{
		contributors: make([]contributor.Contributor, len(contributors)),
	}
	copy(d.contributors, contributors)
	for _, opt := range opts {
		opt(d)
	}

	countries := make(map[string]struct{})
	for _, c := range d.contributors {
		if c.Country != "" {
			countries[c.Country] = struct{}{}
		}
	}
	d.totalStories = len(d.contributors)
	d.totalCountries = len(countries)
	d.totalStudents = d.totalStories
	return d
}

// ID returns the load identifier, if any.
func (d *Dataset) ID() string { return d.id }

// LoadedAt returns when the dataset was loaded.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Len returns the number of contributors.
func (d *Dataset) Len() int { return len(d.contributors) }

// Contributors returns a copy of all contributors in source order.
func (d *Dataset) Contributors() []contributor.Contributor {
	out := make([]contributor.Contributor, len(d.contributors))
	copy(out, d.contributors)
	return out
}

// At returns the contributor at index i.
func (d *Dataset) At(i int) (contributor.Contributor, bool) {
	if i < 0 || i >= len(d.contributors) {
		return contributor.Contributor{}, false
	}
	return d.contributors[i], true
}

// Located pairs a geolocated contributor with its position in the dataset.
type Located struct {
	Index       int
	Contributor contributor.Contributor
}

// Geolocated returns the contributors with both coordinates, in source order.
func (d *Dataset) Geolocated() []Located {
	out := make([]Located, 0, len(d.contributors))
	for i, c := range d.contributors {
		if c.Geolocated() {
			out = append(out, Located{Index: i, Contributor: c})
		}
	}
	return out
}

// Totals are the dashboard aggregates.
type Totals struct {
	Students  int `json:"students"`
	Countries int `json:"countries"`
	Stories   int `json:"stories"`
}

// Totals returns the aggregate counts.
func (d *Dataset) Totals() Totals {
	return Totals{
		Students:  d.totalStudents,
		Countries: d.totalCountries,
		Stories:   d.totalStories,
	}
}

// CountryCount is one row of the per-country breakdown.
type CountryCount struct {
	Country string `json:"country"`
	Count   int    `json:"count"`
}

// CountryBreakdown counts contributors per non-empty country, most common
// first and alphabetical among ties.
func (d *Dataset) CountryBreakdown() []CountryCount {
	counts := make(map[string]int)
	for _, c := range d.contributors {
		if c.Country != "" {
			counts[c.Country]++
		}
	}
	out := make([]CountryCount, 0, len(counts))
	for country, n := range counts {
		out = append(out, CountryCount{Country: country, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return strings.Compare(out[i].Country, out[j].Country) < 0
	})
	return out
}
