// Package progress persists per-profile progression: best scores, unlocked
// levels, banked coins and owned cosmetics.
package progress

import (
	"errors"
	"slices"
	"sort"
	"sync"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

var (
	// ErrUnknownCosmetic is returned for ids missing from the catalog.
	ErrUnknownCosmetic = errors.New("progress: unknown cosmetic")
	// ErrNotOwned is returned when selecting a cosmetic that was never bought.
	ErrNotOwned = errors.New("progress: cosmetic not owned")
	// ErrInsufficientCoins is returned when a purchase costs more than the bank.
	ErrInsufficientCoins = errors.New("progress: insufficient coins")
)

// Record is the full progression of one profile.
type Record struct {
	BestScores map[int]int `yaml:"best_scores"`
	Unlocked   []int       `yaml:"unlocked"`
	TotalCoins int         `yaml:"total_coins"`
	Selected   string      `yaml:"selected"`
	Owned      []string    `yaml:"owned"`
}

// DefaultRecord returns the progression of a fresh profile.
func DefaultRecord() Record {
	return Record{
		BestScores: make(map[int]int),
		Unlocked:   []int{1},
		Selected:   config.DefaultCosmeticID,
		Owned:      []string{config.DefaultCosmeticID},
	}
}

// Normalize fills missing fields and sorts sets so records compare stably.
func (r *Record) Normalize() {
	if r.BestScores == nil {
		r.BestScores = make(map[int]int)
	}
	if !slices.Contains(r.Unlocked, 1) {
		r.Unlocked = append(r.Unlocked, 1)
	}
	sort.Ints(r.Unlocked)
	r.Unlocked = slices.Compact(r.Unlocked)

	if !slices.Contains(r.Owned, config.DefaultCosmeticID) {
		r.Owned = append(r.Owned, config.DefaultCosmeticID)
	}
	sort.Strings(r.Owned)
	r.Owned = slices.Compact(r.Owned)

	if r.Selected == "" || !slices.Contains(r.Owned, r.Selected) {
		r.Selected = config.DefaultCosmeticID
	}
	if r.TotalCoins < 0 {
		r.TotalCoins = 0
	}
}

// Store is the persistence contract. Implementations return errors;
// gameplay code goes through Ledger, which never fails.
type Store interface {
	BestScore(level int) (int, error)
	SetBestScore(level, score int) error
	UnlockedLevels() ([]int, error)
	UnlockLevel(level int) error
	TotalCoins() (int, error)
	AddCoins(n int) error
	OwnedCosmetics() ([]string, error)
	// PurchaseCosmetic charges cost and marks id owned. Owned ids are not
	// charged again. Fails with ErrInsufficientCoins without side effects.
	PurchaseCosmetic(id string, cost int) error
	// SelectCosmetic fails with ErrNotOwned for cosmetics not owned.
	SelectCosmetic(id string) error
	SelectedCosmetic() (string, error)
}

// MemoryStore keeps a Record in memory. Safe for concurrent use.
type MemoryStore struct {
	mu  sync.Mutex
	rec Record
}

// NewMemoryStore creates a store holding a fresh profile.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rec: DefaultRecord()}
}

// NewMemoryStoreFrom creates a store seeded with rec.
func NewMemoryStoreFrom(rec Record) *MemoryStore {
	rec.Normalize()
	return &MemoryStore{rec: rec}
}

// Record returns a copy of the stored progression.
func (s *MemoryStore) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneRecord(s.rec)
}

func (s *MemoryStore) BestScore(level int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.BestScores[level], nil
}

func (s *MemoryStore) SetBestScore(level, score int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.BestScores[level] = score
	return nil
}

func (s *MemoryStore) UnlockedLevels() ([]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rec.Unlocked), nil
}

func (s *MemoryStore) UnlockLevel(level int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.Unlocked = append(s.rec.Unlocked, level)
	s.rec.Normalize()
	return nil
}

func (s *MemoryStore) TotalCoins() (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.TotalCoins, nil
}

func (s *MemoryStore) AddCoins(n int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rec.TotalCoins += n
	return nil
}

func (s *MemoryStore) OwnedCosmetics() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.rec.Owned), nil
}

func (s *MemoryStore) PurchaseCosmetic(id string, cost int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Purchase(&s.rec, id, cost)
}

func (s *MemoryStore) SelectCosmetic(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Select(&s.rec, id)
}

func (s *MemoryStore) SelectedCosmetic() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rec.Selected, nil
}

// Purchase applies a cosmetic purchase to rec. Backends that load and save
// whole records share it.
func Purchase(rec *Record, id string, cost int) error {
	if slices.Contains(rec.Owned, id) {
		return nil
	}
	if cost > rec.TotalCoins {
		return ErrInsufficientCoins
	}
	rec.TotalCoins -= cost
	rec.Owned = append(rec.Owned, id)
	rec.Normalize()
	return nil
}

// Select applies a cosmetic selection to rec.
func Select(rec *Record, id string) error {
	if !slices.Contains(rec.Owned, id) {
		return ErrNotOwned
	}
	rec.Selected = id
	return nil
}

func cloneRecord(r Record) Record {
	out := r
	out.BestScores = make(map[int]int, len(r.BestScores))
	for k, v := range r.BestScores {
		out.BestScores[k] = v
	}
	out.Unlocked = slices.Clone(r.Unlocked)
	out.Owned = slices.Clone(r.Owned)
	return out
}
