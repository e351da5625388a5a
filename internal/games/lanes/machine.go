package lanes

import (
	"io"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

// RunState is the lifecycle phase of the game. Exactly one holds at a time.
type RunState int

const (
	StateIdle RunState = iota
	StateRunning
	StateFinishing
	StateLevelComplete
	StateGameOver
)

// String returns the state name.
func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinishing:
		return "finishing"
	case StateLevelComplete:
		return "levelComplete"
	case StateGameOver:
		return "gameOver"
	default:
		return "unknown"
	}
}

// Progression is the error-free view of persisted progress the machine
// reads at run start and writes at finalize.
type Progression interface {
	BestScore(level int) int
	SetBestScore(level, score int)
	UnlockedLevels() []int
	IsUnlocked(level int) bool
	UnlockLevel(level int)
	TotalCoins() int
	AddCoins(n int)
	SelectedCosmetic() string
}

// Machine owns the run lifecycle and mediates every transition.
type Machine struct {
	cfg      config.LanesConfig
	progress Progression
	logger   *log.Logger
	rng      *rand.Rand
	collide  CollisionEngine
	session  *GameSession
	events   Events
	cursor   int
	view     progressView
}

// NewMachine creates an idle machine. cfg must already be validated.
func NewMachine(cfg config.LanesConfig, progress Progression, logger *log.Logger, seed int64) *Machine {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	m := &Machine{
		cfg:      cfg,
		progress: progress,
		logger:   logger,
		rng:      rand.New(rand.NewSource(seed)),
		collide:  NewCollisionEngine(cfg.Collision),
		cursor:   1,
	}
	m.Refresh()
	return m
}

// Reseed resets the random source used by subsequent runs.
func (m *Machine) Reseed(seed int64) {
	m.rng = rand.New(rand.NewSource(seed))
}

// Config returns the configuration the machine runs with.
func (m *Machine) Config() config.LanesConfig {
	return m.cfg
}

// State returns the current lifecycle phase.
func (m *Machine) State() RunState {
	if m.session == nil {
		return StateIdle
	}
	return m.session.Run.State
}

// Session returns the active run, or nil while idle.
func (m *Machine) Session() *GameSession {
	return m.session
}

// Events returns the notifications emitted since the last ClearEvents.
func (m *Machine) Events() Events {
	return m.events
}

// ClearEvents empties the event buffer. Hosts call it once per frame.
func (m *Machine) ClearEvents() {
	m.events = m.events[:0]
}

// inputLocked reports whether avatar intents are currently ignored.
func (m *Machine) inputLocked() bool {
	s := m.session
	return s == nil || s.Run.State != StateRunning || s.Run.Paused || !s.Avatar.Alive
}

// RequestLaneChange forwards a lane-change intent to the avatar.
func (m *Machine) RequestLaneChange(dir int) bool {
	if m.inputLocked() {
		return false
	}
	return m.session.Lanes.RequestLaneChange(&m.session.Avatar, dir)
}

// RequestJump forwards a jump intent to the avatar.
func (m *Machine) RequestJump() bool {
	if m.inputLocked() {
		return false
	}
	if !m.session.Jump.RequestJump(&m.session.Avatar) {
		return false
	}
	m.events.emit(EventJumped)
	return true
}

// SelectLevel starts level n from the menu or from a finished run.
// Locked or unknown levels are ignored.
func (m *Machine) SelectLevel(n int) bool {
	switch m.State() {
	case StateIdle, StateLevelComplete:
	case StateGameOver:
		if !m.session.Run.Finalized {
			return false
		}
	default:
		return false
	}
	if n < 1 || n > m.cfg.LevelCount() || !m.view.isUnlocked(n) {
		return false
	}
	return m.startLevel(n)
}

func (m *Machine) startLevel(n int) bool {
	rules, ok := NewRuleset(m.cfg, n)
	if !ok {
		return false
	}
	m.session = NewGameSession(m.cfg, rules, m.rng)
	m.cursor = n
	m.Refresh()
	m.logger.Debug("run started", "level", n, "motion", rules.Motion, "speed", rules.Speed, "target", rules.Target)
	return true
}

// Restart begins a fresh run of the current level from any non-idle state,
// discarding in-flight sequences and timers.
func (m *Machine) Restart() bool {
	if m.session == nil {
		return false
	}
	return m.startLevel(m.session.Run.Level)
}

// ReturnToMenu discards the run from any state.
func (m *Machine) ReturnToMenu() {
	if m.session != nil {
		m.logger.Debug("returned to menu", "level", m.session.Run.Level, "state", m.session.Run.State)
	}
	m.session = nil
	m.Refresh()
}

// Pause freezes a running or finishing run.
func (m *Machine) Pause() bool {
	s := m.session
	if s == nil || s.Run.Paused {
		return false
	}
	if s.Run.State != StateRunning && s.Run.State != StateFinishing {
		return false
	}
	s.Run.Paused = true
	return true
}

// Resume unfreezes a paused run.
func (m *Machine) Resume() bool {
	s := m.session
	if s == nil || !s.Run.Paused {
		return false
	}
	s.Run.Paused = false
	return true
}

// Paused reports whether the pause overlay is up.
func (m *Machine) Paused() bool {
	return m.session != nil && m.session.Run.Paused
}

// Cursor returns the level highlighted in the idle menu.
func (m *Machine) Cursor() int {
	return m.cursor
}

// MoveCursor moves the menu highlight by delta levels.
func (m *Machine) MoveCursor(delta int) {
	if m.session != nil {
		return
	}
	m.cursor += delta
	if m.cursor < 1 {
		m.cursor = 1
	}
	if m.cursor > m.cfg.LevelCount() {
		m.cursor = m.cfg.LevelCount()
	}
}

// ConfirmCursor starts the highlighted level.
func (m *Machine) ConfirmCursor() bool {
	if m.session != nil {
		return false
	}
	return m.SelectLevel(m.cursor)
}

// Tick advances the simulation by one frame in a fixed order: avatar
// kinematics, clock, timers, pools, collisions, then transitions.
func (m *Machine) Tick() {
	s := m.session
	if s == nil || s.Run.Paused {
		return
	}
	s.Run.Tick++

	switch s.Run.State {
	case StateRunning:
		m.tickRunning(s)
	case StateFinishing:
		m.tickFinishing(s)
	case StateGameOver:
		if s.Dying() && s.death.Step(&s.Avatar) {
			m.events.emit(EventDied)
			m.finalize(s, false)
		}
	case StateLevelComplete:
		if s.Run.Advance.Tick() {
			m.startLevel(s.Run.Level + 1)
		}
	}
}

func (m *Machine) tickAvatar(s *GameSession) {
	s.Lanes.Tick(&s.Avatar)
	if s.Jump.Tick(&s.Avatar) {
		m.events.emit(EventLanded)
	}
}

func (m *Machine) tickRunning(s *GameSession) {
	m.tickAvatar(s)
	s.Clock.Advance(s.Run.State, s.Run.Speed)
	s.tickPenalty()
	s.Obstacles.Advance(s.Run.Speed, s.Clock.Distance())
	s.Coins.Advance(s.Run.Speed)

	res := m.collide.Evaluate(s.Avatar, s.Obstacles, s.Coins, true)
	if res.Fatal {
		m.events.emit(EventHit)
		m.die(s)
		return
	}
	for i := 0; i < res.TrapHits; i++ {
		m.events.emit(EventTrapHit)
		s.applyTrapPenalty(m.cfg.Trap)
	}
	m.collect(s, res.Pickups)

	if s.Clock.Distance() >= s.Run.Target {
		m.enterFinishing(s)
	}
}

func (m *Machine) tickFinishing(s *GameSession) {
	m.tickAvatar(s)
	s.Obstacles.Advance(s.Run.Speed, s.Clock.Distance())
	s.Coins.Advance(s.Run.Speed)

	res := m.collide.Evaluate(s.Avatar, s.Obstacles, s.Coins, false)
	m.collect(s, res.Pickups)

	if s.finish.Step(&s.Avatar, s.Run.Speed) {
		m.complete(s)
	}
}

func (m *Machine) collect(s *GameSession, pickups int) {
	for i := 0; i < pickups; i++ {
		s.Run.Coins++
		m.events.emit(EventCoinCollected)
	}
}

func (m *Machine) die(s *GameSession) {
	s.Run.State = StateGameOver
	s.cancelPenalty()
	s.death = newDeathSequence(m.cfg.Death, &s.Avatar)
	m.logger.Debug("run ended by collision", "level", s.Run.Level, "score", s.Clock.Score())
}

func (m *Machine) enterFinishing(s *GameSession) {
	s.Run.State = StateFinishing
	if s.Run.Penalty.Active() {
		s.cancelPenalty()
	}
	s.Run.Speed = s.Run.BaseSpeed * m.cfg.Run.FinishSpeedFactor
	s.Lanes.Guide(&s.Avatar, s.Lanes.Center())
	s.finish = newFinishSequence(m.cfg.Finish)
	m.logger.Debug("target reached", "level", s.Run.Level, "distance", s.Clock.Distance())
}

func (m *Machine) complete(s *GameSession) {
	s.Run.State = StateLevelComplete
	m.events.emitLevel(EventLevelCompleted, s.Run.Level)
	m.finalize(s, true)

	next := s.Run.Level + 1
	if m.cfg.Run.AutoAdvance && next <= m.cfg.LevelCount() && m.view.isUnlocked(next) {
		s.Run.Advance.Start(m.cfg.Run.AutoAdvanceTicks)
	}
}

// finalize records the run exactly once.
func (m *Machine) finalize(s *GameSession, completed bool) {
	if s.Run.Finalized {
		return
	}
	s.Run.Finalized = true

	level := s.Run.Level
	score := s.Clock.Score()
	if score > m.progress.BestScore(level) {
		m.progress.SetBestScore(level, score)
	}

	next := level + 1
	reached := s.Run.Target > 0 && s.Clock.Distance()/s.Run.Target >= s.Rules.UnlockThreshold
	if (completed || reached) && next <= m.cfg.LevelCount() && !m.progress.IsUnlocked(next) {
		m.progress.UnlockLevel(next)
		m.events.emitLevel(EventLevelUnlocked, next)
	}

	if s.Run.Coins > 0 {
		m.progress.AddCoins(s.Run.Coins)
	}
	m.Refresh()

	m.logger.Debug("run finalized",
		"level", level,
		"score", score,
		"coins", s.Run.Coins,
		"completed", completed,
		"progress", math.Round(s.Clock.Distance()/math.Max(s.Run.Target, 1)*100),
	)
}

// Finalize forces bookkeeping for a terminal run. Repeated calls are no-ops,
// as are calls while the death sequence is still playing.
func (m *Machine) Finalize() {
	s := m.session
	if s == nil || s.Dying() {
		return
	}
	switch s.Run.State {
	case StateGameOver:
		m.finalize(s, false)
	case StateLevelComplete:
		m.finalize(s, true)
	}
}
