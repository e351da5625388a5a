// Package lanes implements Neon Lanes, a three-lane runner.
// The avatar dodges or jumps obstacles, collects coins, and races for a
// per-level target distance. A small fixed pool of obstacles and coins is
// recycled to fake an endless track.
package lanes

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
	"github.com/vovakirdan/neon-lanes/internal/progress"
	"github.com/vovakirdan/neon-lanes/internal/registry"
)

// GameID is the registry identifier and score key.
const GameID = "lanes"

// Game adapts the run state machine to the platform's Game interface.
type Game struct {
	machine *Machine
	runtime core.RuntimeConfig
	flash   int // Ticks left on the HUD flash after a pickup or hit
	start   int // Level started on Reset, 0 for the menu
	last    Snapshot
}

// Ensure Game implements registry.Game
var _ registry.Game = (*Game)(nil)

func init() {
	registry.Register(GameID, func(env registry.Env) registry.Game {
		return NewFromEnv(env)
	})
}

// New creates a game over a validated config and a progression ledger.
func New(cfg config.LanesConfig, prog Progression, logger *log.Logger) *Game {
	g := &Game{
		machine: NewMachine(cfg, prog, logger, 0),
		runtime: core.DefaultConfig(),
	}
	g.last = g.machine.Snapshot()
	return g
}

// NewFromEnv builds a game from registry wiring, filling in defaults for
// anything the environment leaves out.
func NewFromEnv(env registry.Env) *Game {
	logger := env.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	var cfg config.LanesConfig
	if env.Config != nil {
		cfg = *env.Config
	} else {
		cfg = config.DefaultLanesConfig()
	}
	for _, fix := range cfg.Validate() {
		logger.Warn("config repaired", "fix", fix)
	}

	var prog Progression = env.Progress
	if env.Progress == nil {
		prog = progress.NewLedger(progress.NewMemoryStore(), cfg.Cosmetics, logger)
	}
	return New(cfg, prog, logger)
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return GameID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Neon Lanes"
}

// Machine exposes the underlying state machine.
func (g *Game) Machine() *Machine {
	return g.machine
}

// SetStartLevel makes Reset start level n instead of showing the menu.
// Locked levels fall back to the menu.
func (g *Game) SetStartLevel(n int) {
	g.start = n
}

// Reset reseeds the game and returns to the level menu.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.runtime = cfg
	g.flash = 0
	g.machine.Reseed(cfg.Seed)
	g.machine.ReturnToMenu()
	if g.start > 0 {
		g.machine.SelectLevel(g.start)
	}
	g.machine.ClearEvents()
	g.last = g.machine.Snapshot()
}

// Step applies this frame's intents, then advances one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.machine.ClearEvents()
	g.apply(in)
	g.machine.Tick()

	g.last = g.machine.Snapshot()
	if g.flash > 0 {
		g.flash--
	}
	for _, ev := range g.last.Events {
		switch ev.Kind {
		case EventCoinCollected, EventTrapHit, EventHit, EventLevelUnlocked:
			g.flash = 8
		}
	}
	return core.StepResult{State: g.State()}
}

// apply maps platform actions to state machine intents. Which actions are
// honored depends on the current phase.
func (g *Game) apply(in core.InputFrame) {
	m := g.machine

	if in.Has(core.ActionSelectLevel) {
		m.SelectLevel(in.Level)
	}

	switch m.State() {
	case StateIdle:
		switch {
		case in.Has(core.ActionUp):
			m.MoveCursor(-1)
		case in.Has(core.ActionDown):
			m.MoveCursor(1)
		case in.Has(core.ActionConfirm), in.Has(core.ActionJump):
			m.ConfirmCursor()
		}
		return

	case StateRunning, StateFinishing:
		if in.Has(core.ActionResume) {
			m.Resume()
		} else if in.Has(core.ActionPause) {
			if m.Paused() {
				m.Resume()
			} else {
				m.Pause()
			}
		}
		if in.Has(core.ActionRestart) {
			m.Restart()
			return
		}
		if in.Has(core.ActionBack) {
			m.ReturnToMenu()
			return
		}
		if in.Has(core.ActionLeft) {
			m.RequestLaneChange(-1)
		}
		if in.Has(core.ActionRight) {
			m.RequestLaneChange(1)
		}
		if in.Has(core.ActionJump) {
			m.RequestJump()
		}

	case StateLevelComplete, StateGameOver:
		switch {
		case in.Has(core.ActionRestart):
			m.Restart()
		case in.Has(core.ActionBack):
			m.ReturnToMenu()
		case in.Has(core.ActionConfirm):
			s := m.Session()
			if s.Run.State == StateLevelComplete && m.SelectLevel(s.Run.Level+1) {
				return
			}
			if s.Run.Finalized {
				m.Restart()
			}
		}
	}
}

// State returns the current game state for the platform.
func (g *Game) State() core.GameState {
	m := g.machine
	st := core.GameState{
		Phase:  m.State().String(),
		InMenu: m.State() == StateIdle,
	}
	s := m.Session()
	if s == nil {
		return st
	}
	st.Score = s.Clock.Score()
	st.Coins = s.Run.Coins
	st.Level = s.Run.Level
	st.Paused = s.Run.Paused
	st.GameOver = s.Run.State == StateGameOver && s.Run.Finalized
	st.Completed = s.Run.State == StateLevelComplete && s.Run.Finalized
	return st
}

// Snapshot returns the view captured after the last Step or Reset.
func (g *Game) Snapshot() Snapshot {
	return g.last
}

// Flashing reports whether the HUD should highlight a recent event.
func (g *Game) Flashing() bool {
	return g.flash > 0
}
