package storage

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/neon-lanes/internal/progress"
)

const kvObject = "progress"

// KVStore keeps each profile's progression as one YAML record in the
// platform data directory. It suits single-player installs without sqlite.
type KVStore struct {
	mu      sync.Mutex
	manager *gdata.Manager
	profile string
}

// Ensure KVStore implements progress.Store
var _ progress.Store = (*KVStore)(nil)

// OpenKV opens the data directory of appName and binds it to profile.
func OpenKV(appName, profile string) (*KVStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open data directory: %w", err)
	}
	return &KVStore{manager: m, profile: profileName(profile)}, nil
}

func (s *KVStore) load() (progress.Record, error) {
	rec := progress.DefaultRecord()
	if !s.manager.ObjectPropExists(kvObject, s.profile) {
		return rec, nil
	}
	data, err := s.manager.LoadObjectProp(kvObject, s.profile)
	if err != nil {
		return rec, fmt.Errorf("storage: cannot load profile %s: %w", s.profile, err)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return progress.DefaultRecord(), fmt.Errorf("storage: cannot decode profile %s: %w", s.profile, err)
	}
	rec.Normalize()
	return rec, nil
}

func (s *KVStore) save(rec progress.Record) error {
	rec.Normalize()
	data, err := yaml.Marshal(rec)
	if err != nil {
		return fmt.Errorf("storage: cannot encode profile %s: %w", s.profile, err)
	}
	if err := s.manager.SaveObjectProp(kvObject, s.profile, data); err != nil {
		return fmt.Errorf("storage: cannot save profile %s: %w", s.profile, err)
	}
	return nil
}

// update loads the record, applies fn and saves it when fn succeeds.
func (s *KVStore) update(fn func(rec *progress.Record) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(&rec); err != nil {
		return err
	}
	return s.save(rec)
}

func (s *KVStore) read() (progress.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

// Record returns the whole stored progression.
func (s *KVStore) Record() (progress.Record, error) {
	return s.read()
}

func (s *KVStore) BestScore(level int) (int, error) {
	rec, err := s.read()
	return rec.BestScores[level], err
}

func (s *KVStore) SetBestScore(level, score int) error {
	return s.update(func(rec *progress.Record) error {
		rec.BestScores[level] = score
		return nil
	})
}

func (s *KVStore) UnlockedLevels() ([]int, error) {
	rec, err := s.read()
	return rec.Unlocked, err
}

func (s *KVStore) UnlockLevel(level int) error {
	return s.update(func(rec *progress.Record) error {
		rec.Unlocked = append(rec.Unlocked, level)
		return nil
	})
}

func (s *KVStore) TotalCoins() (int, error) {
	rec, err := s.read()
	return rec.TotalCoins, err
}

func (s *KVStore) AddCoins(n int) error {
	return s.update(func(rec *progress.Record) error {
		rec.TotalCoins += n
		return nil
	})
}

func (s *KVStore) OwnedCosmetics() ([]string, error) {
	rec, err := s.read()
	return rec.Owned, err
}

func (s *KVStore) PurchaseCosmetic(id string, cost int) error {
	return s.update(func(rec *progress.Record) error {
		return progress.Purchase(rec, id, cost)
	})
}

func (s *KVStore) SelectCosmetic(id string) error {
	return s.update(func(rec *progress.Record) error {
		return progress.Select(rec, id)
	})
}

func (s *KVStore) SelectedCosmetic() (string, error) {
	rec, err := s.read()
	return rec.Selected, err
}
