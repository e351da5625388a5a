package lanes

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
)

// Obstacle is a recyclable hazard on the track.
type Obstacle struct {
	Z            float64
	Lane         int
	X            float64
	Y            float64
	Width        float64 // Scale factor, 1 at base size
	Height       float64
	Phase        float64 // Weave oscillation phase
	Rotation     float64
	FallVelocity float64
	Falling      bool
	Landed       bool
	Trap         bool
}

// ObstacleField owns the obstacle pool and applies the ruleset motion.
type ObstacleField struct {
	pool   *Pool[Obstacle]
	layout layout
	lanes  LaneController
	rules  Ruleset
	cfg    config.LanesConfig
	rng    *rand.Rand
}

// NewObstacleField lays out a fresh pool for one run.
func NewObstacleField(cfg config.LanesConfig, rules Ruleset, lanes LaneController, rng *rand.Rand) *ObstacleField {
	f := &ObstacleField{
		layout: layout{cfg: cfg.Obstacles.Pool},
		lanes:  lanes,
		rules:  rules,
		cfg:    cfg,
		rng:    rng,
	}
	f.pool = NewPool(cfg.Obstacles.Pool.Size, func(i int, o *Obstacle) {
		f.spawn(o, f.layout.InitialZ(i))
	})
	return f
}

// Pool exposes the underlying entries.
func (f *ObstacleField) Pool() *Pool[Obstacle] {
	return f.pool
}

// spawn rerolls every per-entry attribute and places o at z.
func (f *ObstacleField) spawn(o *Obstacle, z float64) {
	*o = Obstacle{
		Z:      z,
		Lane:   f.rng.Intn(f.lanes.Count()),
		Width:  1,
		Height: 1,
		Y:      f.cfg.Obstacles.RestHeight,
	}
	o.X = f.lanes.TargetX(o.Lane)

	switch f.rules.Motion {
	case config.MotionWeave:
		o.Phase = f.rng.Float64() * 2 * math.Pi
	case config.MotionFalling:
		o.Y = f.cfg.Motion.FallStartHeight
	}
}

// Recycle respawns entry i far ahead.
func (f *ObstacleField) Recycle(i int) {
	f.spawn(f.pool.At(i), f.layout.RespawnZ(f.rng))
}

// Scale returns the growth factors for the given distance.
// Width grows on odd steps, height on even steps.
func (f *ObstacleField) Scale(distance float64) (float64, float64) {
	if !f.rules.Growth || f.cfg.Growth.Interval <= 0 {
		return 1, 1
	}
	steps := math.Floor(distance / f.cfg.Growth.Interval)
	w := 1 + f.cfg.Growth.WidthStep*math.Ceil(steps/2)
	h := 1 + f.cfg.Growth.HeightStep*math.Floor(steps/2)
	return math.Min(w, f.cfg.Growth.MaxScale), math.Min(h, f.cfg.Growth.MaxScale)
}

// Advance scrolls every obstacle by speed, applies motion and growth,
// then recycles entries that passed behind the avatar.
func (f *ObstacleField) Advance(speed, distance float64) {
	w, h := f.Scale(distance)
	f.pool.Each(func(i int, o *Obstacle) {
		o.Z += speed
		o.Lane = core.Clamp(o.Lane, 0, f.lanes.Count()-1)
		f.move(o)
		o.Width, o.Height = w, h
		if f.layout.Behind(o.Z) {
			f.Recycle(i)
			o.Width, o.Height = w, h
		}
	})
}

func (f *ObstacleField) move(o *Obstacle) {
	laneX := f.lanes.TargetX(o.Lane)
	switch f.rules.Motion {
	case config.MotionSpin:
		o.Rotation += f.rules.Rate
	case config.MotionWeave:
		o.Phase += f.rules.Rate
		lo, hi := f.lanes.Span()
		o.X = reflectInto(laneX+math.Sin(o.Phase)*f.rules.Amplitude, lo, hi)
		return
	case config.MotionFalling:
		if !o.Landed && o.Z >= f.cfg.Motion.FallTriggerZ {
			o.Falling = true
			o.FallVelocity = math.Min(o.FallVelocity+f.cfg.Motion.FallAccel, f.cfg.Motion.FallMaxSpeed)
			o.Y -= o.FallVelocity
			if o.Y <= f.cfg.Obstacles.RestHeight {
				o.Y = f.cfg.Obstacles.RestHeight
				o.FallVelocity = 0
				o.Falling = false
				o.Landed = true
			}
		}
	case config.MotionTrap:
		if !o.Trap && f.rng.Float64() < f.rules.TrapProbability {
			o.Trap = true
		}
	}
	o.X = laneX
}

// reflectInto folds x back off the nearer wall of [lo, hi] so outer-lane
// weavers swing inward instead of pinning at the edge.
func reflectInto(x, lo, hi float64) float64 {
	switch {
	case x > hi:
		x = 2*hi - x
	case x < lo:
		x = 2*lo - x
	}
	return core.ClampF(x, lo, hi)
}
