package globe

import (
	"context"
	"sync"
	"time"
)

// DefaultFrameInterval approximates a 60 Hz display refresh.
const DefaultFrameInterval = time.Second / 60

// Frame is everything a renderer needs to draw one frame.
type Frame struct {
	Seq        uint64
	Elapsed    time.Duration
	Rotation   Rotation
	Projection Projection
	PulseScale float64
}

// Renderer draws frames. Render is called from the loop goroutine, one frame
// at a time.
type Renderer interface {
	Render(f Frame)
}

// Loop schedules one frame per tick until stopped. A frame in progress always
// completes; Stop only prevents further frames from being scheduled.
type Loop struct {
	scene    *Scene
	renderer Renderer
	interval time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	done    chan struct{}
	running bool
}

// LoopOption configures a Loop.
type LoopOption func(*Loop)

// WithFrameInterval overrides the frame interval.
func WithFrameInterval(d time.Duration) LoopOption {
	return func(l *Loop) {
		if d > 0 {
			l.interval = d
		}
	}
}

// NewLoop creates a loop that renders scene with r.
func NewLoop(scene *Scene, r Renderer, opts ...LoopOption) *Loop {
	l := &Loop{scene: scene, renderer: r, interval: DefaultFrameInterval}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start begins scheduling frames. It is a no-op when already running. The
// loop also stops when ctx is cancelled.
func (l *Loop) Start(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.running {
		return
	}
	ctx, cancel := context.WithCancel(ctx)
	l.cancel = cancel
	l.done = make(chan struct{})
	l.running = true
	go l.run(ctx, l.done)
}

func (l *Loop) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	start := time.Now()
	var seq uint64
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			seq++
			elapsed := now.Sub(start)
			l.renderer.Render(Frame{
				Seq:        seq,
				Elapsed:    elapsed,
				Rotation:   l.scene.Controller.Frame(),
				Projection: l.scene.Camera.Projection(),
				PulseScale: PulseScale(elapsed),
			})
		}
	}
}

// Stop ends frame scheduling and waits for the current frame to finish.
func (l *Loop) Stop() {
	l.mu.Lock()
	if !l.running {
		l.mu.Unlock()
		return
	}
	l.cancel()
	done := l.done
	l.running = false
	l.mu.Unlock()
	<-done
}

// Running reports whether frames are being scheduled.
func (l *Loop) Running() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	select {
	case <-l.done:
		return false
	default:
		return l.running
	}
}
