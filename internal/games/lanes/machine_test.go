package lanes

import (
	"math"
	"testing"

	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/progress"
)

func testConfig() config.LanesConfig {
	cfg := config.DefaultLanesConfig()
	cfg.Validate()
	return cfg
}

func newTestMachine(t *testing.T, cfg config.LanesConfig) (*Machine, *progress.Ledger) {
	t.Helper()
	ledger := progress.NewLedger(progress.NewMemoryStore(), cfg.Cosmetics, nil)
	return NewMachine(cfg, ledger, nil, 42), ledger
}

// clearTrack parks every obstacle and coin far ahead so nothing collides.
func clearTrack(s *GameSession) {
	s.Obstacles.Pool().Each(func(_ int, o *Obstacle) { o.Z = -10000 })
	s.Coins.Pool().Each(func(_ int, c *Coin) { c.Z = -10000 })
}

// placeObstacle puts obstacle 0 where it will meet the avatar after the next advance.
func placeObstacle(s *GameSession, trap bool) {
	clearTrack(s)
	o := s.Obstacles.Pool().At(0)
	o.Z = -s.Run.Speed
	o.Lane = s.Avatar.TargetLane
	o.X = s.Lanes.TargetX(o.Lane)
	o.Y = 0.5
	o.Trap = trap
}

func mustStart(t *testing.T, m *Machine, level int) *GameSession {
	t.Helper()
	if !m.SelectLevel(level) {
		t.Fatalf("SelectLevel(%d) failed", level)
	}
	if m.State() != StateRunning {
		t.Fatalf("State() = %v, expected running", m.State())
	}
	return m.Session()
}

func TestScenarioAReachingTargetStartsFinish(t *testing.T) {
	m, ledger := newTestMachine(t, testConfig())
	s := mustStart(t, m, 1)

	if math.Abs(s.Run.Speed-1.05) > 1e-9 {
		t.Fatalf("level 1 speed = %v, expected 1.05", s.Run.Speed)
	}
	if s.Run.Target != 1000 {
		t.Fatalf("level 1 target = %v, expected 1000", s.Run.Target)
	}

	reached := false
	for i := 0; i < 10000; i++ {
		clearTrack(s)
		m.Tick()
		if s.Clock.Distance() >= s.Run.Target {
			reached = true
			break
		}
		if m.State() != StateRunning {
			t.Fatalf("State() = %v before target, expected running", m.State())
		}
	}
	if !reached {
		t.Fatal("target never reached")
	}
	if m.State() != StateFinishing {
		t.Fatalf("State() = %v after reaching target, expected finishing", m.State())
	}
	if s.Run.Speed != s.Run.BaseSpeed*0.5 {
		t.Errorf("finishing speed = %v, expected %v", s.Run.Speed, s.Run.BaseSpeed*0.5)
	}
	if s.Avatar.TargetLane != s.Lanes.Center() {
		t.Errorf("finishing TargetLane = %d, expected centre", s.Avatar.TargetLane)
	}
	if m.RequestLaneChange(-1) || m.RequestJump() {
		t.Error("input should be locked while finishing")
	}

	frozen := s.Clock.Distance()
	for i := 0; i < 1000 && m.State() == StateFinishing; i++ {
		m.Tick()
		if s.Clock.Distance() != frozen {
			t.Fatalf("distance moved while finishing: %v -> %v", frozen, s.Clock.Distance())
		}
	}
	if m.State() != StateLevelComplete {
		t.Fatalf("State() = %v, expected levelComplete", m.State())
	}
	if !m.Events().Has(EventLevelCompleted) {
		t.Error("EventLevelCompleted not emitted")
	}
	if !m.Events().Has(EventLevelUnlocked) {
		t.Error("EventLevelUnlocked not emitted")
	}
	if !ledger.IsUnlocked(2) {
		t.Error("level 2 should be unlocked after completion")
	}
	if got := ledger.BestScore(1); got != int(math.Floor(frozen)) {
		t.Errorf("BestScore(1) = %d, expected %d", got, int(math.Floor(frozen)))
	}

	// Auto-advance starts level 2 once its timer runs out
	for i := 0; i < 180; i++ {
		m.Tick()
	}
	if m.State() != StateRunning || m.Session().Run.Level != 2 {
		t.Errorf("after auto-advance: state=%v level=%d, expected running level 2", m.State(), m.Session().Run.Level)
	}
}

func TestScenarioBLaneChange(t *testing.T) {
	m, _ := newTestMachine(t, testConfig())
	s := mustStart(t, m, 1)

	if s.Avatar.TargetLane != 1 {
		t.Fatalf("start lane = %d, expected 1", s.Avatar.TargetLane)
	}
	if !m.RequestLaneChange(-1) {
		t.Fatal("RequestLaneChange(-1) failed")
	}
	if s.Avatar.TargetLane != 0 {
		t.Fatalf("TargetLane = %d, expected 0", s.Avatar.TargetLane)
	}

	// At smoothing 0.18 the gap shrinks by 0.82 per tick; about 20 ticks
	// bring it within 1% of the lane.
	target := s.Lanes.TargetX(0)
	for i := 0; i < 24; i++ {
		clearTrack(s)
		m.Tick()
	}
	if gap := math.Abs(s.Avatar.X - target); gap > 0.01*math.Abs(target) {
		t.Errorf("lane gap after 24 ticks = %v, expected within 1%% of %v", gap, target)
	}
}

func TestScenarioCDeathUpdatesBestScore(t *testing.T) {
	tests := []struct {
		name       string
		distance   float64
		best       int
		wantBest   int
		wantUnlock bool
	}{
		{name: "beats stored best", distance: 500, best: 300, wantBest: 500},
		{name: "keeps higher best", distance: 200, best: 300, wantBest: 300},
		{name: "unlocks past threshold", distance: 750, best: 0, wantBest: 750, wantUnlock: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, ledger := newTestMachine(t, testConfig())
			ledger.SetBestScore(1, tc.best)
			s := mustStart(t, m, 1)

			s.Clock.distance = tc.distance
			s.Run.Coins = 7
			placeObstacle(s, false)
			m.Tick()

			if m.State() != StateGameOver {
				t.Fatalf("State() = %v, expected gameOver", m.State())
			}
			if !m.Events().Has(EventHit) {
				t.Error("EventHit not emitted")
			}
			if s.Avatar.Alive {
				t.Error("avatar should be dead")
			}
			if s.Run.Finalized {
				t.Fatal("run finalized before the death sequence ended")
			}
			if m.RequestJump() || m.RequestLaneChange(1) {
				t.Error("input should be locked during the death sequence")
			}
			if m.Resume() || m.Pause() {
				t.Error("pause and resume should be ignored in gameOver")
			}

			ticks := 0
			for !s.Run.Finalized && ticks < 200 {
				m.Tick()
				ticks++
			}
			if !s.Run.Finalized {
				t.Fatal("death sequence never finished")
			}
			if ticks > testConfig().Death.MaxTicks {
				t.Errorf("death sequence took %d ticks, expected at most %d", ticks, testConfig().Death.MaxTicks)
			}
			if !m.Events().Has(EventDied) {
				t.Error("EventDied not emitted")
			}
			if got := ledger.BestScore(1); got != tc.wantBest {
				t.Errorf("BestScore(1) = %d, expected %d", got, tc.wantBest)
			}
			if got := ledger.IsUnlocked(2); got != tc.wantUnlock {
				t.Errorf("IsUnlocked(2) = %v, expected %v", got, tc.wantUnlock)
			}

			// Repeated finalize must not bank coins twice
			m.Finalize()
			m.Finalize()
			for i := 0; i < 10; i++ {
				m.Tick()
			}
			if got := ledger.TotalCoins(); got != 7 {
				t.Errorf("TotalCoins() = %d, expected 7", got)
			}
		})
	}
}

func trapConfig() config.LanesConfig {
	cfg := testConfig()
	cfg.Levels[0].Motion = config.MotionTrap
	cfg.Trap.Probability = 0
	return cfg
}

func TestScenarioDTrapPenaltyRestoresSpeed(t *testing.T) {
	cfg := trapConfig()
	m, _ := newTestMachine(t, cfg)
	s := mustStart(t, m, 1)

	pre := s.Run.Speed
	placeObstacle(s, true)
	m.Tick()

	if !m.Events().Has(EventTrapHit) {
		t.Fatal("EventTrapHit not emitted")
	}
	if m.State() != StateRunning || !s.Avatar.Alive {
		t.Fatalf("trap hit should not end the run: state=%v alive=%v", m.State(), s.Avatar.Alive)
	}
	if s.Run.Speed != pre*cfg.Trap.SpeedFactor {
		t.Errorf("penalized speed = %v, expected %v", s.Run.Speed, pre*cfg.Trap.SpeedFactor)
	}
	if s.Run.Speed < pre*config.MinTrapSpeedFactor {
		t.Errorf("penalized speed = %v below floor", s.Run.Speed)
	}

	ticks := 0
	for s.Run.Penalty.Active() && ticks < 1000 {
		clearTrack(s)
		m.Tick()
		ticks++
	}
	if ticks != cfg.Trap.DurationTicks {
		t.Errorf("penalty lasted %d ticks, expected %d", ticks, cfg.Trap.DurationTicks)
	}
	if s.Run.Speed != pre {
		t.Errorf("restored speed = %v, expected exactly %v", s.Run.Speed, pre)
	}
}

func TestTrapRehitKeepsPrePenaltySpeed(t *testing.T) {
	cfg := trapConfig()
	m, _ := newTestMachine(t, cfg)
	s := mustStart(t, m, 1)

	pre := s.Run.Speed
	placeObstacle(s, true)
	m.Tick()
	for i := 0; i < 30; i++ {
		clearTrack(s)
		m.Tick()
	}

	placeObstacle(s, true)
	m.Tick()
	if m.Events().Count(EventTrapHit) != 2 {
		t.Fatalf("trap hits = %d, expected 2", m.Events().Count(EventTrapHit))
	}
	if s.Run.Speed != pre*cfg.Trap.SpeedFactor {
		t.Errorf("speed after second hit = %v, expected %v", s.Run.Speed, pre*cfg.Trap.SpeedFactor)
	}
	if s.Run.Penalty.Remaining() != cfg.Trap.DurationTicks {
		t.Errorf("penalty remaining = %d, expected re-armed %d", s.Run.Penalty.Remaining(), cfg.Trap.DurationTicks)
	}

	for s.Run.Penalty.Active() {
		clearTrack(s)
		m.Tick()
	}
	if s.Run.Speed != pre {
		t.Errorf("restored speed = %v, expected %v", s.Run.Speed, pre)
	}
}

func TestInvalidTransitionsIgnored(t *testing.T) {
	m, _ := newTestMachine(t, testConfig())

	if m.Pause() || m.Resume() || m.Restart() {
		t.Error("pause, resume and restart should be ignored while idle")
	}
	if m.RequestJump() || m.RequestLaneChange(1) {
		t.Error("intents should be ignored while idle")
	}
	for _, n := range []int{0, 2, 11, -3} {
		if m.SelectLevel(n) {
			t.Errorf("SelectLevel(%d) should be ignored", n)
		}
	}
	if m.State() != StateIdle {
		t.Fatalf("State() = %v, expected idle", m.State())
	}

	s := mustStart(t, m, 1)
	if m.SelectLevel(1) {
		t.Error("SelectLevel() while running should be ignored")
	}
	if m.Resume() {
		t.Error("Resume() while not paused should be ignored")
	}
	if !m.Pause() {
		t.Fatal("Pause() while running should succeed")
	}
	if m.Pause() {
		t.Error("second Pause() should be ignored")
	}
	if m.State() != StateRunning {
		t.Errorf("pause changed the state to %v", m.State())
	}
	if !m.Resume() {
		t.Error("Resume() while paused should succeed")
	}

	placeObstacle(s, false)
	m.Tick()
	if m.State() != StateGameOver {
		t.Fatalf("State() = %v, expected gameOver", m.State())
	}
	if m.Resume() {
		t.Error("Resume() during gameOver should be ignored")
	}
	if m.SelectLevel(1) {
		t.Error("SelectLevel() during the death sequence should be ignored")
	}
	if m.State() != StateGameOver {
		t.Errorf("State() = %v, expected gameOver", m.State())
	}
}

func TestStateExclusivity(t *testing.T) {
	m, _ := newTestMachine(t, testConfig())
	m.SelectLevel(1)

	// Random play: whatever happens, the machine's view stays consistent.
	for i := 0; i < 5000; i++ {
		switch i % 37 {
		case 0:
			m.RequestJump()
		case 5:
			m.RequestLaneChange(-1)
		case 11:
			m.RequestLaneChange(1)
		case 20:
			m.Pause()
		case 23:
			m.Resume()
		}
		if m.State() == StateIdle || (m.State() == StateGameOver && m.Session().Run.Finalized) {
			m.ReturnToMenu()
			m.SelectLevel(1)
		}
		m.Tick()

		st := m.State()
		s := m.Session()
		if (s == nil) != (st == StateIdle) {
			t.Fatalf("tick %d: session presence disagrees with state %v", i, st)
		}
		if s == nil {
			continue
		}
		if s.Run.Paused && st != StateRunning && st != StateFinishing {
			t.Fatalf("tick %d: paused in state %v", i, st)
		}
		if s.Run.Finalized && st != StateGameOver && st != StateLevelComplete {
			t.Fatalf("tick %d: finalized in state %v", i, st)
		}
		if s.Avatar.Alive && s.Avatar.Y < s.Jump.Ground() {
			t.Fatalf("tick %d: alive avatar below ground, Y = %v", i, s.Avatar.Y)
		}
		if s.Avatar.TargetLane < 0 || s.Avatar.TargetLane >= s.Lanes.Count() {
			t.Fatalf("tick %d: target lane %d out of range", i, s.Avatar.TargetLane)
		}
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	m, _ := newTestMachine(t, testConfig())
	s := mustStart(t, m, 1)
	m.Tick()

	m.Pause()
	before := m.Snapshot()
	for i := 0; i < 50; i++ {
		m.Tick()
	}
	after := m.Snapshot()

	if before.Score != after.Score || before.Tick != after.Tick {
		t.Errorf("paused run advanced: score %d -> %d, tick %d -> %d", before.Score, after.Score, before.Tick, after.Tick)
	}
	for i := range before.Obstacles {
		if before.Obstacles[i].Z != after.Obstacles[i].Z {
			t.Fatalf("obstacle %d moved while paused", i)
		}
	}

	m.Resume()
	distance := s.Clock.Distance()
	m.Tick()
	if s.Clock.Distance() <= distance {
		t.Error("distance should advance after resume")
	}
}

func TestPausedTimersDoNotRun(t *testing.T) {
	m, _ := newTestMachine(t, trapConfig())
	s := mustStart(t, m, 1)
	placeObstacle(s, true)
	m.Tick()

	remaining := s.Run.Penalty.Remaining()
	m.Pause()
	for i := 0; i < 500; i++ {
		m.Tick()
	}
	if s.Run.Penalty.Remaining() != remaining {
		t.Errorf("penalty ticked while paused: %d -> %d", remaining, s.Run.Penalty.Remaining())
	}
}

func TestRestartCancelsPendingTimers(t *testing.T) {
	m, _ := newTestMachine(t, trapConfig())
	s := mustStart(t, m, 1)
	base := s.Run.BaseSpeed
	placeObstacle(s, true)
	m.Tick()
	if !s.Run.Penalty.Active() {
		t.Fatal("penalty should be active")
	}

	if !m.Restart() {
		t.Fatal("Restart() failed")
	}
	fresh := m.Session()
	if fresh == s {
		t.Fatal("Restart() should build a new session")
	}
	if fresh.Run.Penalty.Active() || fresh.Run.Speed != base {
		t.Errorf("restart kept penalty: active=%v speed=%v", fresh.Run.Penalty.Active(), fresh.Run.Speed)
	}
	if fresh.Clock.Distance() != 0 || fresh.Run.Coins != 0 {
		t.Error("restart should reset distance and coins")
	}

	// The old session's expiry must never touch the new run
	for i := 0; i < 200; i++ {
		clearTrack(fresh)
		m.Tick()
	}
	if fresh.Run.Speed != base {
		t.Errorf("speed = %v after restart, expected %v", fresh.Run.Speed, base)
	}
}

func TestReturnToMenuCancelsAutoAdvance(t *testing.T) {
	m, _ := newTestMachine(t, testConfig())
	s := mustStart(t, m, 1)
	s.Clock.distance = 999.9
	for i := 0; i < 1000 && m.State() != StateLevelComplete; i++ {
		clearTrack(s)
		m.Tick()
	}
	if m.State() != StateLevelComplete || !s.Run.Advance.Active() {
		t.Fatalf("expected pending auto-advance, state=%v", m.State())
	}

	m.ReturnToMenu()
	for i := 0; i < 500; i++ {
		m.Tick()
	}
	if m.State() != StateIdle {
		t.Errorf("State() = %v, expected idle", m.State())
	}
}

func TestReturnToMenuDuringDeath(t *testing.T) {
	m, ledger := newTestMachine(t, testConfig())
	s := mustStart(t, m, 1)
	s.Run.Coins = 3
	placeObstacle(s, false)
	m.Tick()

	m.ReturnToMenu()
	for i := 0; i < 200; i++ {
		m.Tick()
	}
	if m.State() != StateIdle {
		t.Fatalf("State() = %v, expected idle", m.State())
	}
	if ledger.TotalCoins() != 0 {
		t.Errorf("discarded run banked %d coins", ledger.TotalCoins())
	}
}

func TestCoinPickupDuringRun(t *testing.T) {
	m, ledger := newTestMachine(t, testConfig())
	ledger.AddCoins(10)
	s := mustStart(t, m, 1)

	clearTrack(s)
	c := s.Coins.Pool().At(0)
	c.Z = -s.Run.Speed
	c.Lane = s.Avatar.TargetLane
	m.Tick()

	if s.Run.Coins != 1 {
		t.Fatalf("run coins = %d, expected 1", s.Run.Coins)
	}
	if !m.Events().Has(EventCoinCollected) {
		t.Error("EventCoinCollected not emitted")
	}
	if c := s.Coins.Pool().At(0); c.Z > -s.Run.Speed {
		t.Errorf("collected coin Z = %v, expected recycled ahead", c.Z)
	}
	if snap := m.Snapshot(); snap.TotalCoins != 11 {
		t.Errorf("Snapshot().TotalCoins = %d, expected 11", snap.TotalCoins)
	}
	if ledger.TotalCoins() != 10 {
		t.Errorf("coins banked before finalize: %d", ledger.TotalCoins())
	}
}

func TestMenuCursor(t *testing.T) {
	m, ledger := newTestMachine(t, testConfig())

	m.MoveCursor(-1)
	if m.Cursor() != 1 {
		t.Errorf("Cursor() = %d, expected 1", m.Cursor())
	}
	m.MoveCursor(1)
	if m.ConfirmCursor() {
		t.Error("ConfirmCursor() on a locked level should be ignored")
	}

	// Progress written behind the machine shows up after Refresh
	ledger.UnlockLevel(2)
	if m.ConfirmCursor() {
		t.Fatal("ConfirmCursor() should use the cached unlock state until Refresh")
	}
	m.Refresh()
	if !m.ConfirmCursor() {
		t.Fatal("ConfirmCursor() on an unlocked level should start it")
	}
	if m.Session().Run.Level != 2 {
		t.Errorf("level = %d, expected 2", m.Session().Run.Level)
	}

	m.ReturnToMenu()
	m.MoveCursor(100)
	if m.Cursor() != 10 {
		t.Errorf("Cursor() = %d, expected 10", m.Cursor())
	}

	snap := m.Snapshot()
	if len(snap.Menu) != 10 || !snap.Menu[1].Unlocked || snap.Menu[2].Unlocked {
		t.Errorf("menu = %+v, expected levels 1-2 unlocked", snap.Menu)
	}
}

func TestRunClock(t *testing.T) {
	c := NewRunClock(0.5)
	c.Advance(StateFinishing, 2)
	c.Advance(StateGameOver, 2)
	if c.Distance() != 0 {
		t.Errorf("Distance() = %v outside running, expected 0", c.Distance())
	}
	c.Advance(StateRunning, 2)
	c.Advance(StateRunning, -5)
	if c.Distance() != 1 {
		t.Errorf("Distance() = %v, expected 1", c.Distance())
	}
	if c.Progress(4) != 25 {
		t.Errorf("Progress(4) = %d, expected 25", c.Progress(4))
	}
	if c.Progress(0.5) != 100 {
		t.Errorf("Progress(0.5) = %d, expected capped 100", c.Progress(0.5))
	}
}

func TestTimer(t *testing.T) {
	var tm Timer
	if tm.Tick() || tm.Active() {
		t.Error("zero Timer should be stopped")
	}
	tm.Start(2)
	if tm.Tick() {
		t.Error("Timer fired early")
	}
	if !tm.Tick() {
		t.Error("Timer should fire on its last tick")
	}
	if tm.Active() || tm.Tick() {
		t.Error("Timer should stop after firing")
	}
}
