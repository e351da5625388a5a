package lanes

import (
	"math/rand"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

// RunSession is the bookkeeping of one run of one level.
type RunSession struct {
	Level           int
	Coins           int
	Target          float64
	BaseSpeed       float64
	Speed           float64
	State           RunState
	Paused          bool
	Finalized       bool
	PrePenaltySpeed float64
	Penalty         Timer
	Advance         Timer // Auto-advance to the next level after completion
	Tick            uint64
}

// GameSession owns all mutable state of the active run. Nothing outside the
// session holds references into it, so dropping it cancels the run.
type GameSession struct {
	Run       RunSession
	Rules     Ruleset
	Avatar    Avatar
	Clock     RunClock
	Lanes     LaneController
	Jump      JumpController
	Obstacles *ObstacleField
	Coins     *CoinField

	death  *deathSequence
	finish *finishSequence
}

// NewGameSession builds a fresh run of rules.Level.
func NewGameSession(cfg config.LanesConfig, rules Ruleset, rng *rand.Rand) *GameSession {
	s := &GameSession{
		Run: RunSession{
			Level:     rules.Level,
			Target:    rules.Target,
			BaseSpeed: rules.Speed,
			Speed:     rules.Speed,
			State:     StateRunning,
		},
		Rules: rules,
		Clock: NewRunClock(cfg.Run.DistancePerSpeed),
		Lanes: NewLaneController(cfg.Track),
		Jump:  NewJumpController(cfg.Jump),
	}
	s.Avatar = Avatar{Alive: true, Opacity: 1}
	s.Lanes.Place(&s.Avatar, cfg.Track.StartLane)
	s.Jump.Land(&s.Avatar)

	s.Obstacles = NewObstacleField(cfg, rules, s.Lanes, rng)
	s.Coins = NewCoinField(cfg.Coins, s.Lanes, rng)
	return s
}

// Dying reports whether the death sequence is in flight.
func (s *GameSession) Dying() bool {
	return s.death != nil && !s.Run.Finalized
}

// GateZ returns the finish gate depth and whether it is visible.
func (s *GameSession) GateZ() (float64, bool) {
	if s.finish == nil {
		return 0, false
	}
	return s.finish.gateZ, true
}

// applyTrapPenalty slows the run. A hit while already penalized only re-arms
// the timer so the saved speed stays the true pre-penalty value.
func (s *GameSession) applyTrapPenalty(cfg config.TrapConfig) {
	if !s.Run.Penalty.Active() {
		s.Run.PrePenaltySpeed = s.Run.Speed
	}
	s.Run.Speed = s.Run.PrePenaltySpeed * cfg.SpeedFactor
	s.Run.Penalty.Start(cfg.DurationTicks)
}

// tickPenalty restores speed when the penalty expires.
func (s *GameSession) tickPenalty() {
	if s.Run.Penalty.Tick() {
		s.Run.Speed = s.Run.PrePenaltySpeed
	}
}

// cancelPenalty drops any active penalty without restoring speed.
func (s *GameSession) cancelPenalty() {
	s.Run.Penalty.Stop()
}
