package globe

import "sync"

// Camera defaults.
const (
	DefaultFOV      = 75.0 // degrees
	DefaultDistance = 2.5
	defaultAspect   = 1.0
)

// Camera is the perspective camera looking at the globe. Its aspect ratio
// follows the viewport's pixel size.
type Camera struct {
	mu       sync.Mutex
	fov      float64
	distance float64
	width    int
	height   int
	aspect   float64
}

// Projection is a snapshot of the camera parameters a renderer needs.
type Projection struct {
	FOV      float64 `json:"fov"`
	Distance float64 `json:"distance"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Aspect   float64 `json:"aspect"`
}

// NewCamera returns a camera for a viewport of width x height pixels.
func NewCamera(width, height int) *Camera {
	c := &Camera{fov: DefaultFOV, distance: DefaultDistance}
	c.Resize(width, height)
	return c
}

// Resize recomputes the aspect ratio for a new viewport size. A collapsed
// viewport (zero or negative side) keeps the previous aspect.
func (c *Camera) Resize(width, height int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.width, c.height = width, height
	if width > 0 && height > 0 {
		c.aspect = float64(width) / float64(height)
	} else if c.aspect == 0 {
		c.aspect = defaultAspect
	}
}

// Projection returns the current camera parameters.
func (c *Camera) Projection() Projection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Projection{
		FOV:      c.fov,
		Distance: c.distance,
		Width:    c.width,
		Height:   c.height,
		Aspect:   c.aspect,
	}
}
