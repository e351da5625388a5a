package lanes

import (
	"testing"

	"github.com/vovakirdan/neon-lanes/internal/core"
	"github.com/vovakirdan/neon-lanes/internal/progress"
)

// countingStore counts backend reads.
type countingStore struct {
	*progress.MemoryStore
	reads int
}

func (s *countingStore) BestScore(level int) (int, error) {
	s.reads++
	return s.MemoryStore.BestScore(level)
}

func (s *countingStore) UnlockedLevels() ([]int, error) {
	s.reads++
	return s.MemoryStore.UnlockedLevels()
}

func (s *countingStore) TotalCoins() (int, error) {
	s.reads++
	return s.MemoryStore.TotalCoins()
}

func (s *countingStore) OwnedCosmetics() ([]string, error) {
	s.reads++
	return s.MemoryStore.OwnedCosmetics()
}

func (s *countingStore) SelectedCosmetic() (string, error) {
	s.reads++
	return s.MemoryStore.SelectedCosmetic()
}

func TestTicksDoNotReadStore(t *testing.T) {
	cfg := testConfig()
	store := &countingStore{MemoryStore: progress.NewMemoryStore()}
	g := New(cfg, progress.NewLedger(store, cfg.Cosmetics, nil), nil)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 3})

	idle := core.NewInputFrame()
	store.reads = 0
	for i := 0; i < 60; i++ {
		g.Step(idle)
	}
	if store.reads != 0 {
		t.Errorf("idle menu: %d store reads over 60 ticks, expected 0", store.reads)
	}

	in := core.NewInputFrame()
	in.SelectLevel(1)
	g.Step(in)
	clearTrack(g.Machine().Session())

	store.reads = 0
	for i := 0; i < 60; i++ {
		g.Step(idle)
	}
	if st := g.Machine().State(); st != StateRunning {
		t.Fatalf("State() = %v, expected running", st)
	}
	if store.reads != 0 {
		t.Errorf("running: %d store reads over 60 ticks, expected 0", store.reads)
	}
}

func TestViewRefreshedAtRunEnd(t *testing.T) {
	m, ledger := newTestMachine(t, testConfig())
	s := mustStart(t, m, 1)
	s.Clock.distance = 420
	s.Run.Coins = 5
	placeObstacle(s, false)
	m.Tick()
	for i := 0; i < 200 && !s.Run.Finalized; i++ {
		m.Tick()
	}
	if !s.Run.Finalized {
		t.Fatal("run never finalized")
	}

	snap := m.Snapshot()
	if snap.TotalCoins != 5 || ledger.TotalCoins() != 5 {
		t.Errorf("TotalCoins = %d (ledger %d), expected 5", snap.TotalCoins, ledger.TotalCoins())
	}
	if snap.BestScore != 420 {
		t.Errorf("BestScore = %d, expected 420", snap.BestScore)
	}

	m.ReturnToMenu()
	if got := m.Snapshot().Menu[0].Best; got != 420 {
		t.Errorf("menu best = %d, expected 420", got)
	}
}
