package window

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-lanes/internal/core"
)

// particle is one spark of a burst, in screen space.
type particle struct {
	x, y   float64
	vx, vy float64
	life   int
	max    int
	color  core.Color
}

// emitter owns short-lived bursts spawned by game events.
type emitter struct {
	rng   *rand.Rand
	parts []particle
}

func newEmitter(seed int64) *emitter {
	return &emitter{rng: rand.New(rand.NewSource(seed))}
}

// burst spawns n sparks at (x, y) flying outward at up to speed px/tick.
func (e *emitter) burst(x, y float64, n int, speed float64, life int, c core.Color) {
	for i := 0; i < n; i++ {
		angle := e.rng.Float64() * 2 * math.Pi
		v := speed * (0.3 + 0.7*e.rng.Float64())
		e.parts = append(e.parts, particle{
			x: x, y: y,
			vx:    math.Cos(angle) * v,
			vy:    math.Sin(angle)*v - speed*0.5,
			life:  life,
			max:   life,
			color: c,
		})
	}
}

// step advances every spark by one tick and drops dead ones.
func (e *emitter) step() {
	live := e.parts[:0]
	for _, p := range e.parts {
		p.life--
		if p.life <= 0 {
			continue
		}
		p.x += p.vx
		p.y += p.vy
		p.vy += 0.15
		live = append(live, p)
	}
	e.parts = live
}

// alpha returns the fade of p in [0, 1].
func (p particle) alpha() float64 {
	return float64(p.life) / float64(p.max)
}

func (e *emitter) len() int {
	return len(e.parts)
}
