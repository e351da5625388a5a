package lanes

import (
	"slices"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

// progressView is the machine's copy of persisted progress. Snapshots and
// menu checks read it so a tick never touches the store.
type progressView struct {
	best     []int // Indexed by level-1
	unlocked []bool
	coins    int
	cosmetic config.Cosmetic
}

func (v progressView) bestScore(level int) int {
	if level < 1 || level > len(v.best) {
		return 0
	}
	return v.best[level-1]
}

func (v progressView) isUnlocked(level int) bool {
	if level < 1 || level > len(v.unlocked) {
		return false
	}
	return v.unlocked[level-1]
}

// Refresh reloads the progress view from the store. The machine calls it
// at construction, run start, run end and on return to the menu; hosts call
// it after changing progress behind the machine's back (shop, admin tools).
func (m *Machine) Refresh() {
	n := m.cfg.LevelCount()
	v := progressView{
		best:     make([]int, n),
		unlocked: make([]bool, n),
		coins:    m.progress.TotalCoins(),
	}
	unlocked := m.progress.UnlockedLevels()
	for i := range n {
		v.best[i] = m.progress.BestScore(i + 1)
		v.unlocked[i] = i == 0 || slices.Contains(unlocked, i+1)
	}

	if c, ok := m.cfg.Cosmetic(m.progress.SelectedCosmetic()); ok {
		v.cosmetic = c
	} else {
		v.cosmetic, _ = m.cfg.Cosmetic(config.DefaultCosmeticID)
	}
	m.view = v
}
