package progress

import (
	"errors"
	"io"
	"slices"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

// Ledger wraps a Store so gameplay never sees persistence errors. Failed
// reads fall back to fresh-profile defaults and failed writes are logged.
type Ledger struct {
	store   Store
	catalog []config.Cosmetic
	logger  *log.Logger
}

// NewLedger creates a ledger over store with the cosmetic catalog.
func NewLedger(store Store, catalog []config.Cosmetic, logger *log.Logger) *Ledger {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Ledger{
		store:   store,
		catalog: slices.Clone(catalog),
		logger:  logger,
	}
}

// Store returns the wrapped backend.
func (l *Ledger) Store() Store {
	return l.store
}

func (l *Ledger) warn(op string, err error, kv ...any) {
	l.logger.Warn("progress store failed", append([]any{"op", op, "err", err}, kv...)...)
}

// BestScore returns the stored best for level, or 0.
func (l *Ledger) BestScore(level int) int {
	score, err := l.store.BestScore(level)
	if err != nil {
		l.warn("best score", err, "level", level)
		return 0
	}
	return max(score, 0)
}

// SetBestScore records a new best for level.
func (l *Ledger) SetBestScore(level, score int) {
	if err := l.store.SetBestScore(level, score); err != nil {
		l.warn("set best score", err, "level", level, "score", score)
	}
}

// UnlockedLevels returns the sorted unlocked set. Level 1 is always included.
func (l *Ledger) UnlockedLevels() []int {
	levels, err := l.store.UnlockedLevels()
	if err != nil {
		l.warn("unlocked levels", err)
		levels = nil
	}
	if !slices.Contains(levels, 1) {
		levels = append(levels, 1)
	}
	sort.Ints(levels)
	return slices.Compact(levels)
}

// IsUnlocked reports whether level may be played.
func (l *Ledger) IsUnlocked(level int) bool {
	if level == 1 {
		return true
	}
	return slices.Contains(l.UnlockedLevels(), level)
}

// UnlockLevel adds level to the unlocked set.
func (l *Ledger) UnlockLevel(level int) {
	if err := l.store.UnlockLevel(level); err != nil {
		l.warn("unlock level", err, "level", level)
	}
}

// TotalCoins returns the banked coins, or 0.
func (l *Ledger) TotalCoins() int {
	coins, err := l.store.TotalCoins()
	if err != nil {
		l.warn("total coins", err)
		return 0
	}
	return max(coins, 0)
}

// AddCoins banks n coins.
func (l *Ledger) AddCoins(n int) {
	if n == 0 {
		return
	}
	if err := l.store.AddCoins(n); err != nil {
		l.warn("add coins", err, "coins", n)
	}
}

// OwnedCosmetics returns owned ids. The default cosmetic is always owned.
func (l *Ledger) OwnedCosmetics() []string {
	owned, err := l.store.OwnedCosmetics()
	if err != nil {
		l.warn("owned cosmetics", err)
		owned = nil
	}
	if !slices.Contains(owned, config.DefaultCosmeticID) {
		owned = append(owned, config.DefaultCosmeticID)
	}
	sort.Strings(owned)
	return slices.Compact(owned)
}

// Owns reports whether id is owned.
func (l *Ledger) Owns(id string) bool {
	return slices.Contains(l.OwnedCosmetics(), id)
}

// SelectedCosmetic returns the selected id, falling back to the default
// when the stored selection is unreadable or no longer owned.
func (l *Ledger) SelectedCosmetic() string {
	id, err := l.store.SelectedCosmetic()
	if err != nil {
		l.warn("selected cosmetic", err)
		return config.DefaultCosmeticID
	}
	if id == "" || !l.Owns(id) {
		return config.DefaultCosmeticID
	}
	return id
}

// Catalog returns the purchasable cosmetics.
func (l *Ledger) Catalog() []config.Cosmetic {
	return slices.Clone(l.catalog)
}

func (l *Ledger) lookup(id string) (config.Cosmetic, bool) {
	for _, c := range l.catalog {
		if c.ID == id {
			return c, true
		}
	}
	return config.Cosmetic{}, false
}

// Purchase buys a catalog cosmetic with banked coins. Buying an owned item
// is a no-op. Insufficient funds fail with ErrInsufficientCoins.
func (l *Ledger) Purchase(id string) error {
	item, ok := l.lookup(id)
	if !ok {
		return ErrUnknownCosmetic
	}
	if l.Owns(id) {
		return nil
	}
	if item.Cost > l.TotalCoins() {
		return ErrInsufficientCoins
	}
	if err := l.store.PurchaseCosmetic(id, item.Cost); err != nil {
		if !errors.Is(err, ErrInsufficientCoins) {
			l.warn("purchase cosmetic", err, "id", id)
		}
		return err
	}
	l.logger.Info("cosmetic purchased", "id", id, "cost", item.Cost)
	return nil
}

// Select makes an owned cosmetic the active skin.
func (l *Ledger) Select(id string) error {
	if _, ok := l.lookup(id); !ok {
		return ErrUnknownCosmetic
	}
	if !l.Owns(id) {
		return ErrNotOwned
	}
	if err := l.store.SelectCosmetic(id); err != nil {
		l.warn("select cosmetic", err, "id", id)
		return err
	}
	return nil
}

// Snapshot reads the whole progression through the fault-tolerant getters.
func (l *Ledger) Snapshot(levelCount int) Record {
	rec := Record{
		BestScores: make(map[int]int),
		Unlocked:   l.UnlockedLevels(),
		TotalCoins: l.TotalCoins(),
		Selected:   l.SelectedCosmetic(),
		Owned:      l.OwnedCosmetics(),
	}
	for lvl := 1; lvl <= levelCount; lvl++ {
		if best := l.BestScore(lvl); best > 0 {
			rec.BestScores[lvl] = best
		}
	}
	return rec
}
