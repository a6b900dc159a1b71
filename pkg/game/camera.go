package game

// Camera pans the view, shakes it and runs fade transitions. Fades take
// fadeDurationMs of game time; pans reuse the tile mover.
type Camera struct {
	mover
	attached  bool // following the player
	shakeLeft int64

	fadeLeftMs int64
}

const (
	cameraStepMs   = 30
	fadeDurationMs = 500
	shakeUnitMs    = 100
)

// NewCamera creates a camera attached to the player.
func NewCamera() *Camera { return &Camera{attached: true} }

func (c *Camera) MoveTo(x, y int) {
	c.attached = false
	c.moveTo(x, y, cameraStepMs)
}

func (c *Camera) SetPos(x, y int) {
	c.attached = false
	c.setPos(x, y)
}

func (c *Camera) ReturnToPlayer() { c.attached = true }

// Attached reports whether the camera follows the player.
func (c *Camera) Attached() bool { return c.attached }

// Position returns the camera tile when detached.
func (c *Camera) Position() (int, int) { return c.x, c.y }

func (c *Camera) Shake(amount int) {
	if amount < 1 {
		amount = 1
	}
	c.shakeLeft = int64(amount) * shakeUnitMs
}

// Shaking reports whether a shake is still running.
func (c *Camera) Shaking() bool { return c.shakeLeft > 0 }

func (c *Camera) AtDestination() bool { return c.arrived() }

func (c *Camera) FadeIn()  { c.fadeLeftMs = fadeDurationMs }
func (c *Camera) FadeOut() { c.fadeLeftMs = fadeDurationMs }

func (c *Camera) FadeFinished() bool { return c.fadeLeftMs <= 0 }

// Update advances pans, fades and shakes.
func (c *Camera) Update(deltaMs int64) {
	c.update(deltaMs)
	if c.fadeLeftMs > 0 {
		c.fadeLeftMs -= deltaMs
	}
	if c.shakeLeft > 0 {
		c.shakeLeft -= deltaMs
	}
}

// Weather drives the ambient effect. Exactly one effect runs at a time.
type Weather struct {
	current string
}

// NewWeather creates clear weather.
func NewWeather() *Weather { return &Weather{} }

func (w *Weather) Rain()    { w.current = "rain" }
func (w *Weather) Snow()    { w.current = "snow" }
func (w *Weather) Thunder() { w.current = "thunder" }
func (w *Weather) Stop()    { w.current = "" }

// Current returns the running effect name, empty when clear.
func (w *Weather) Current() string { return w.current }
