package lanes

import (
	"math"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

// Ruleset is the per-run description of a level, resolved once at run start
// so the tick loop dispatches on Motion instead of on level numbers.
type Ruleset struct {
	Level           int
	Name            string
	Motion          config.MotionKind
	Rate            float64 // Spin increment or weave phase increment per tick
	Amplitude       float64 // Weave lateral amplitude
	TrapProbability float64
	UnlockThreshold float64
	Speed           float64
	Target          float64
	Growth          bool
}

// NewRuleset resolves level n against cfg. Returns false if n does not exist.
func NewRuleset(cfg config.LanesConfig, n int) (Ruleset, bool) {
	lvl, ok := cfg.Level(n)
	if !ok {
		return Ruleset{}, false
	}

	rs := Ruleset{
		Level:           n,
		Name:            lvl.Name,
		Motion:          lvl.Motion,
		UnlockThreshold: lvl.UnlockThreshold,
		Speed:           cfg.Run.SpeedBase + float64(n)*cfg.Run.SpeedPerLevel,
		Target:          cfg.Run.TargetBase + float64(n-1)*cfg.Run.TargetPerLevel,
		Growth:          cfg.Growth.Enabled,
	}
	if lvl.Speed > 0 {
		rs.Speed = lvl.Speed
	}
	if lvl.Target > 0 {
		rs.Target = lvl.Target
	}

	switch rs.Motion {
	case config.MotionSpin:
		rs.Rate = cfg.Motion.SpinRate
	case config.MotionWeave:
		rs.Rate = cfg.Motion.WeaveRate
		amp := cfg.Motion.WeaveAmplitude * (1 + cfg.Motion.WeaveAmplitudePerLevel*float64(n-1))
		if limit := NewLaneController(cfg.Track).MinSpacing() / 2; limit > 0 {
			amp = math.Min(amp, limit)
		}
		rs.Amplitude = amp
	case config.MotionTrap:
		rs.TrapProbability = cfg.Trap.Probability
		if lvl.TrapProbability > 0 {
			rs.TrapProbability = lvl.TrapProbability
		}
	}
	if lvl.Rate > 0 && (rs.Motion == config.MotionSpin || rs.Motion == config.MotionWeave) {
		rs.Rate = lvl.Rate
	}

	return rs, true
}
