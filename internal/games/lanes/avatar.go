package lanes

import (
	"math"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
)

// Avatar is the player-controlled runner. It stays at Z=0; the world moves.
type Avatar struct {
	X          float64 // Lateral position, smoothed toward the target lane
	Y          float64 // Height above the floor
	Z          float64
	VelocityY  float64
	TargetY    float64 // Jump integrator target, Y is smoothed toward it
	TargetLane int
	Airborne   bool
	Alive      bool
	Rotation   float64 // Cosmetic roll while changing lanes, tumble while dying
	Opacity    float64
}

// LaneController maps lane-change intents to lateral motion.
type LaneController struct {
	lanes     []float64
	smoothing float64
	tilt      float64
}

// NewLaneController creates a controller over a validated track config.
func NewLaneController(cfg config.TrackConfig) LaneController {
	lanes := make([]float64, len(cfg.Lanes))
	copy(lanes, cfg.Lanes)
	return LaneController{
		lanes:     lanes,
		smoothing: cfg.Smoothing,
		tilt:      cfg.TiltFactor,
	}
}

// Count returns the number of lanes.
func (lc LaneController) Count() int {
	return len(lc.lanes)
}

// Center returns the index of the middle lane.
func (lc LaneController) Center() int {
	return len(lc.lanes) / 2
}

// Lanes returns a copy of the lane X coordinates.
func (lc LaneController) Lanes() []float64 {
	out := make([]float64, len(lc.lanes))
	copy(out, lc.lanes)
	return out
}

// TargetX returns the X coordinate of a lane. Out-of-range indices are clamped.
func (lc LaneController) TargetX(lane int) float64 {
	if len(lc.lanes) == 0 {
		return 0
	}
	return lc.lanes[lc.clampLane(lane)]
}

// Span returns the smallest lane X and the largest lane X.
func (lc LaneController) Span() (float64, float64) {
	if len(lc.lanes) == 0 {
		return 0, 0
	}
	lo, hi := lc.lanes[0], lc.lanes[0]
	for _, x := range lc.lanes[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// MinSpacing returns the smallest distance between adjacent lanes.
func (lc LaneController) MinSpacing() float64 {
	if len(lc.lanes) < 2 {
		return 0
	}
	spacing := math.Inf(1)
	for i := 1; i < len(lc.lanes); i++ {
		spacing = math.Min(spacing, core.AbsF(lc.lanes[i]-lc.lanes[i-1]))
	}
	return spacing
}

func (lc LaneController) clampLane(lane int) int {
	return core.Clamp(lane, 0, len(lc.lanes)-1)
}

// Place snaps the avatar onto a lane. Only used on reset.
func (lc LaneController) Place(a *Avatar, lane int) {
	a.TargetLane = lc.clampLane(lane)
	a.X = lc.TargetX(a.TargetLane)
	a.Rotation = 0
}

// RequestLaneChange moves the target lane by dir (-1 or +1).
// Returns false when the move would leave the track.
func (lc LaneController) RequestLaneChange(a *Avatar, dir int) bool {
	if dir != -1 && dir != 1 {
		return false
	}
	next := a.TargetLane + dir
	if next < 0 || next >= len(lc.lanes) {
		return false
	}
	a.TargetLane = next
	return true
}

// Guide retargets the avatar while player input is locked.
func (lc LaneController) Guide(a *Avatar, lane int) {
	a.TargetLane = lc.clampLane(lane)
}

// Tick moves the avatar a fraction of the way toward its target lane.
func (lc LaneController) Tick(a *Avatar) {
	a.TargetLane = lc.clampLane(a.TargetLane)
	target := lc.TargetX(a.TargetLane)
	if math.IsNaN(a.X) || math.IsInf(a.X, 0) {
		a.X = target
	}
	delta := target - a.X
	a.X += delta * lc.smoothing
	a.Rotation = -(target - a.X) * lc.tilt
}

// JumpController integrates vertical motion.
type JumpController struct {
	cfg config.JumpConfig
}

// NewJumpController creates a controller over a validated jump config.
func NewJumpController(cfg config.JumpConfig) JumpController {
	return JumpController{cfg: cfg}
}

// Ground returns the resting height.
func (jc JumpController) Ground() float64 {
	return jc.cfg.Ground
}

// Land puts the avatar on the ground at rest.
func (jc JumpController) Land(a *Avatar) {
	a.Y = jc.cfg.Ground
	a.TargetY = jc.cfg.Ground
	a.VelocityY = 0
	a.Airborne = false
}

// Grounded reports whether a jump may start.
func (jc JumpController) Grounded(a *Avatar) bool {
	return !a.Airborne && a.Y <= jc.cfg.Ground+jc.cfg.Epsilon
}

// RequestJump starts a jump if the avatar is grounded.
func (jc JumpController) RequestJump(a *Avatar) bool {
	if !jc.Grounded(a) {
		return false
	}
	a.TargetY = a.Y
	a.VelocityY = jc.cfg.Impulse
	a.Airborne = true
	return true
}

// Tick advances an airborne avatar. Returns true on the tick it lands.
func (jc JumpController) Tick(a *Avatar) bool {
	if !a.Airborne {
		return false
	}
	a.TargetY += a.VelocityY
	a.VelocityY -= jc.cfg.Gravity
	a.Y += (a.TargetY - a.Y) * jc.cfg.Smoothing

	if math.IsNaN(a.Y) || (a.Y <= jc.cfg.Ground+jc.cfg.Epsilon && a.VelocityY < 0) {
		jc.Land(a)
		return true
	}
	return false
}
