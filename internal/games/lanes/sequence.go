package lanes

import (
	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
)

// deathSequence scripts the avatar's tumble after a fatal hit.
// It is a multi-tick sub-state; discarding it needs no cleanup.
type deathSequence struct {
	cfg   config.DeathConfig
	ticks int
}

func newDeathSequence(cfg config.DeathConfig, a *Avatar) *deathSequence {
	a.Alive = false
	a.Airborne = false
	a.VelocityY = cfg.Impulse
	return &deathSequence{cfg: cfg}
}

// Step advances one tick. Returns true once the sequence has ended.
func (d *deathSequence) Step(a *Avatar) bool {
	d.ticks++
	a.Y += a.VelocityY
	a.VelocityY -= d.cfg.Gravity
	a.Rotation += d.cfg.Tumble
	a.Opacity = core.ClampF(a.Opacity-d.cfg.Fade, 0, 1)

	return a.Opacity <= d.cfg.MinOpacity || a.Y <= d.cfg.FloorY || d.ticks >= d.cfg.MaxTicks
}

// finishSequence tracks the gate the avatar runs into after reaching the target.
type finishSequence struct {
	gateZ     float64
	threshold float64
}

func newFinishSequence(cfg config.FinishConfig) *finishSequence {
	return &finishSequence{
		gateZ:     -cfg.GateDistance,
		threshold: cfg.Threshold,
	}
}

// Step scrolls the gate toward the avatar. Returns true once it is within
// threshold of the avatar; a gate that overtakes it in one tick also counts.
func (f *finishSequence) Step(a *Avatar, speed float64) bool {
	f.gateZ += speed
	return f.gateZ > a.Z-f.threshold
}
