package lanes

import (
	"github.com/vovakirdan/neon-lanes/internal/config"
)

// Snapshot is the per-tick view handed to renderers. It holds copies only,
// so a frontend may keep it across ticks.
type Snapshot struct {
	Tick       uint64
	State      RunState
	Paused     bool
	Finalized  bool
	Level      int
	LevelName  string
	Motion     config.MotionKind
	Avatar     Avatar
	Lanes      []float64
	Obstacles  []Obstacle
	Coins      []Coin
	GateZ      float64
	GateActive bool

	Score      int
	RunCoins   int
	TotalCoins int // Banked coins plus the ones collected this run
	BestScore  int
	Progress   int // Percent of the target distance, capped at 100
	Speed      float64
	Penalized  bool
	NextLevel  int // Level the auto-advance timer will start, 0 if none
	AdvanceIn  int // Ticks until auto-advance

	Cosmetic config.Cosmetic
	Events   []Event
	Menu     []MenuEntry
	Cursor   int
}

// MenuEntry describes one level in the idle menu.
type MenuEntry struct {
	Level    int
	Name     string
	Motion   config.MotionKind
	Unlocked bool
	Best     int
}

// Snapshot captures the current state.
func (m *Machine) Snapshot() Snapshot {
	snap := Snapshot{
		State:      m.State(),
		Cosmetic:   m.view.cosmetic,
		TotalCoins: m.view.coins,
		Cursor:     m.cursor,
		Events:     append([]Event(nil), m.events...),
	}

	s := m.session
	if s == nil {
		snap.Menu = m.menu()
		if lanes := m.cfg.Track.Lanes; len(lanes) > 0 {
			snap.Lanes = append([]float64(nil), lanes...)
		}
		return snap
	}

	snap.Tick = s.Run.Tick
	snap.Paused = s.Run.Paused
	snap.Finalized = s.Run.Finalized
	snap.Level = s.Run.Level
	snap.LevelName = s.Rules.Name
	snap.Motion = s.Rules.Motion
	snap.Avatar = s.Avatar
	snap.Lanes = s.Lanes.Lanes()
	snap.Obstacles = s.Obstacles.Pool().Copy()
	snap.Coins = s.Coins.Pool().Copy()
	snap.GateZ, snap.GateActive = s.GateZ()
	snap.Score = s.Clock.Score()
	snap.RunCoins = s.Run.Coins
	snap.BestScore = m.view.bestScore(s.Run.Level)
	snap.Progress = s.Clock.Progress(s.Run.Target)
	snap.Speed = s.Run.Speed
	snap.Penalized = s.Run.Penalty.Active()

	// Coins are banked at finalize; until then the HUD adds them on top.
	if !s.Run.Finalized {
		snap.TotalCoins += s.Run.Coins
	}
	if s.Run.Advance.Active() {
		snap.NextLevel = s.Run.Level + 1
		snap.AdvanceIn = s.Run.Advance.Remaining()
	}
	return snap
}

func (m *Machine) menu() []MenuEntry {
	entries := make([]MenuEntry, 0, m.cfg.LevelCount())
	for i, lvl := range m.cfg.Levels {
		n := i + 1
		entries = append(entries, MenuEntry{
			Level:    n,
			Name:     lvl.Name,
			Motion:   lvl.Motion,
			Unlocked: m.view.isUnlocked(n),
			Best:     m.view.bestScore(n),
		})
	}
	return entries
}
