package lanes

import "math"

// RunClock accumulates distance traveled. It only advances while running.
type RunClock struct {
	distance float64
	rate     float64
}

// NewRunClock creates a clock gaining rate distance per tick per unit of speed.
func NewRunClock(rate float64) RunClock {
	return RunClock{rate: rate}
}

// Advance adds one tick of travel at speed if the run is in StateRunning.
func (c *RunClock) Advance(state RunState, speed float64) {
	if state != StateRunning || speed <= 0 || math.IsNaN(speed) {
		return
	}
	c.distance += speed * c.rate
}

// Distance returns the raw distance traveled.
func (c RunClock) Distance() float64 {
	return c.distance
}

// Score returns the distance rounded down.
func (c RunClock) Score() int {
	return int(math.Floor(c.distance))
}

// Progress returns the completion percentage toward target, capped at 100.
func (c RunClock) Progress(target float64) int {
	if target <= 0 {
		return 100
	}
	pct := int(math.Floor(c.distance / target * 100))
	if pct > 100 {
		return 100
	}
	return pct
}

// Timer is a tick-counted countdown. The zero value is stopped.
type Timer struct {
	remaining int
}

// Start arms the timer for n ticks, restarting it if already running.
func (t *Timer) Start(n int) {
	t.remaining = n
}

// Stop disarms the timer.
func (t *Timer) Stop() {
	t.remaining = 0
}

// Active reports whether the timer is counting down.
func (t Timer) Active() bool {
	return t.remaining > 0
}

// Remaining returns the ticks left.
func (t Timer) Remaining() int {
	return t.remaining
}

// Tick counts down one tick. Returns true on the tick the timer expires.
func (t *Timer) Tick() bool {
	if t.remaining <= 0 {
		return false
	}
	t.remaining--
	return t.remaining == 0
}
