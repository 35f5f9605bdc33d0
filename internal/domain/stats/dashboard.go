package stats

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Counter names shown on the dashboard.
const (
	StudentsCounter  = "students"
	CountriesCounter = "countries"
	StoriesCounter   = "stories"
)

// Targets are the final values of the three dashboard counters.
type Targets struct {
	Students  int `json:"students"`
	Countries int `json:"countries"`
	Stories   int `json:"stories"`
}

// Dashboard owns the students, countries and stories counters.
type Dashboard struct {
	students  *Counter
	countries *Counter
	stories   *Counter
}

// NewDashboard creates the three counters with shared options.
func NewDashboard(opts ...Option) *Dashboard {
	return &Dashboard{
		students:  NewCounter(StudentsCounter, opts...),
		countries: NewCounter(CountriesCounter, opts...),
		stories:   NewCounter(StoriesCounter, opts...),
	}
}

// Animate runs all three counters concurrently and returns once each has
// reached its target.
func (db *Dashboard) Animate(ctx context.Context, t Targets, d Display) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, run := range []struct {
		c      *Counter
		target int
	}{
		{db.students, t.Students},
		{db.countries, t.Countries},
		{db.stories, t.Stories},
	} {
		g.Go(func() error { return run.c.Animate(ctx, run.target, d) })
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("stats.animate: %w", err)
	}
	return nil
}
