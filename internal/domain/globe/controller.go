package globe

import (
	"math"
	"sync"
)

// State is the interaction state of the globe.
type State int

const (
	// Idle auto-rotates the globe.
	Idle State = iota
	// Dragging follows the pointer and suspends auto-rotation.
	Dragging
)

func (s State) String() string {
	if s == Dragging {
		return "dragging"
	}
	return "idle"
}

// Interaction tuning.
const (
	DragSensitivity = 0.005 // radians per pixel
	AutoRotateStep  = 0.002 // radians per frame
	// MaxTilt bounds the vertical rotation in both directions.
	MaxTilt = math.Pi / 2
)

// Rotation is the accumulated orientation in radians. X tilts (vertical
// drag), Y spins (horizontal drag and auto-rotation).
type Rotation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Controller turns pointer and touch events into globe rotation.
// PointerDown enters Dragging; a Click navigates only if the gesture it
// ends never moved the pointer.
type Controller struct {
	mu       sync.Mutex
	state    State
	lastX    float64
	lastY    float64
	moved    bool
	rotation Rotation
}

// NewController returns an Idle controller with zero rotation.
func NewController() *Controller {
	return &Controller{}
}

// State returns the current interaction state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Rotation returns the accumulated rotation.
func (c *Controller) Rotation() Rotation {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rotation
}

// PointerDown starts a gesture at (x, y).
func (c *Controller) PointerDown(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Dragging
	c.lastX, c.lastY = x, y
	c.moved = false
}

// PointerMove rotates the globe by the pointer delta while dragging.
func (c *Controller) PointerMove(x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Dragging {
		return
	}
	dx, dy := x-c.lastX, y-c.lastY
	c.lastX, c.lastY = x, y
	if dx == 0 && dy == 0 {
		return
	}
	c.moved = true
	c.rotation.Y += dx * DragSensitivity
	c.rotation.X = clamp(c.rotation.X+dy*DragSensitivity, -MaxTilt, MaxTilt)
}

// PointerUp ends the gesture.
func (c *Controller) PointerUp() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = Idle
}

// Click reports whether the click should open the map view.
func (c *Controller) Click() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	navigate := !c.moved
	c.moved = false
	return navigate
}

// Frame advances idle auto-rotation by one step and returns the rotation to draw.
func (c *Controller) Frame() Rotation {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == Idle {
		c.rotation.Y += AutoRotateStep
	}
	return c.rotation
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
