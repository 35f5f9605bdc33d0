// Package stats animates the dashboard counters from zero to their targets.
package stats

import (
	"context"
	"sync"
	"time"
)

// Animation defaults.
const (
	DefaultDuration = 2 * time.Second
	DefaultSteps    = 50
)

// Display shows the current value of a named counter. The dashboard calls
// Show concurrently for its different counters.
type Display interface {
	Show(counter string, value int)
}

// DisplayFunc adapts a function to Display.
type DisplayFunc func(counter string, value int)

// Show calls f.
func (f DisplayFunc) Show(counter string, value int) { f(counter, value) }

// Frames returns the values shown at each step: non-decreasing, starting
// above zero when target allows and ending exactly at target. A target of
// zero or less yields a single frame.
func Frames(target, steps int) []int {
	if target <= 0 {
		return []int{max(target, 0)}
	}
	if steps <= 0 {
		steps = 1
	}
	out := make([]int, steps)
	for i := 1; i <= steps; i++ {
		out[i-1] = int(int64(target) * int64(i) / int64(steps))
	}
	return out
}

// Counter animates one displayed number.
type Counter struct {
	name     string
	duration time.Duration
	steps    int

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// Option configures a Counter.
type Option func(*Counter)

// WithDuration sets the wall-clock length of an animation.
func WithDuration(d time.Duration) Option {
	return func(c *Counter) {
		if d > 0 {
			c.duration = d
		}
	}
}

// WithSteps sets the number of increments.
func WithSteps(n int) Option {
	return func(c *Counter) {
		if n > 0 {
			c.steps = n
		}
	}
}

// NewCounter creates a counter with the given display name.
func NewCounter(name string, opts ...Option) *Counter {
	c := &Counter{name: name, duration: DefaultDuration, steps: DefaultSteps}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name returns the counter's display name.
func (c *Counter) Name() string { return c.name }

// Animate shows 0 and then each frame towards target at fixed intervals,
// blocking until the final value is shown. A new call stops the run already
// in progress on this counter before starting over from 0. It returns
// ctx.Err() when cancelled early and nil otherwise; a run superseded by a
// newer call returns context.Canceled.
func (c *Counter) Animate(ctx context.Context, target int, d Display) error {
	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	defer close(done)

	c.mu.Lock()
	prevCancel, prevDone := c.cancel, c.done
	c.cancel, c.done = cancel, done
	c.mu.Unlock()

	if prevCancel != nil {
		prevCancel()
		<-prevDone
	}
	defer func() {
		cancel()
		c.mu.Lock()
		if c.done == done {
			c.cancel, c.done = nil, nil
		}
		c.mu.Unlock()
	}()

	frames := Frames(target, c.steps)
	interval := c.duration / time.Duration(len(frames))
	ticker := time.NewTicker(max(interval, time.Millisecond))
	defer ticker.Stop()

	d.Show(c.name, 0)
	for _, v := range frames {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			d.Show(c.name, v)
		}
	}
	return nil
}
