package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestEmbeddedMatchesDefaults(t *testing.T) {
	cfg, err := parseLanes(defaultLanesYAML)
	if err != nil {
		t.Fatalf("parseLanes(embedded) error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultLanesConfig()) {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultLanesConfig())
	}
}

func TestDefaultsNeedNoRepair(t *testing.T) {
	cfg := DefaultLanesConfig()
	if fixes := cfg.Validate(); len(fixes) != 0 {
		t.Errorf("Validate() on defaults = %v, expected no fixes", fixes)
	}
}

func TestLoadLanesCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lanes.yaml")
	data := []byte("run:\n  target_base: 250\ntrack:\n  smoothing: 0.5\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadLanes(path)
	if err != nil {
		t.Fatalf("LoadLanes() error = %v", err)
	}
	if cfg.Run.TargetBase != 250 {
		t.Errorf("Run.TargetBase = %v, expected 250", cfg.Run.TargetBase)
	}
	if cfg.Track.Smoothing != 0.5 {
		t.Errorf("Track.Smoothing = %v, expected 0.5", cfg.Track.Smoothing)
	}
	// Keys absent from the file keep their defaults
	if cfg.Run.SpeedBase != 0.7 {
		t.Errorf("Run.SpeedBase = %v, expected 0.7", cfg.Run.SpeedBase)
	}
	if cfg.LevelCount() != 10 {
		t.Errorf("LevelCount() = %d, expected 10", cfg.LevelCount())
	}
}

func TestLoadLanesErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := LoadLanes(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("LoadLanes(missing) should fail")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("track: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadLanes(bad)
	if err == nil {
		t.Error("LoadLanes(bad) should fail")
	}
	if cfg.Run.TargetBase != 1000 {
		t.Errorf("LoadLanes(bad) should return defaults, got target %v", cfg.Run.TargetBase)
	}
}

func TestValidateRepairs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*LanesConfig)
		check  func(LanesConfig) bool
	}{
		{
			name:   "smoothing outside unit interval",
			mutate: func(c *LanesConfig) { c.Track.Smoothing = 1.5 },
			check:  func(c LanesConfig) bool { return c.Track.Smoothing == 0.18 },
		},
		{
			name:   "start lane out of range",
			mutate: func(c *LanesConfig) { c.Track.StartLane = 7 },
			check:  func(c LanesConfig) bool { return c.Track.StartLane == 1 },
		},
		{
			name:   "trap factor below floor",
			mutate: func(c *LanesConfig) { c.Trap.SpeedFactor = 0.2 },
			check:  func(c LanesConfig) bool { return c.Trap.SpeedFactor == MinTrapSpeedFactor },
		},
		{
			name:   "recycle range reaches behind threshold",
			mutate: func(c *LanesConfig) { c.Obstacles.Pool.RecycleMaxZ = 20 },
			check:  func(c LanesConfig) bool { return c.Obstacles.Pool.RecycleMaxZ < c.Obstacles.Pool.BehindZ },
		},
		{
			name:   "inverted recycle range",
			mutate: func(c *LanesConfig) { c.Coins.Pool.RecycleMinZ, c.Coins.Pool.RecycleMaxZ = -50, -200 },
			check:  func(c LanesConfig) bool { return c.Coins.Pool.RecycleMinZ == -200 && c.Coins.Pool.RecycleMaxZ == -50 },
		},
		{
			name:   "unknown motion",
			mutate: func(c *LanesConfig) { c.Levels[2].Motion = "wobble" },
			check:  func(c LanesConfig) bool { return c.Levels[2].Motion == MotionNone },
		},
		{
			name:   "missing default cosmetic",
			mutate: func(c *LanesConfig) { c.Cosmetics = c.Cosmetics[1:] },
			check: func(c LanesConfig) bool {
				_, ok := c.Cosmetic(DefaultCosmeticID)
				return ok
			},
		},
		{
			name:   "no levels",
			mutate: func(c *LanesConfig) { c.Levels = nil },
			check:  func(c LanesConfig) bool { return c.LevelCount() == 10 },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultLanesConfig()
			tc.mutate(&cfg)
			fixes := cfg.Validate()
			if len(fixes) == 0 {
				t.Error("Validate() reported no fixes")
			}
			if !tc.check(cfg) {
				t.Errorf("Validate() did not repair config: %+v", fixes)
			}
		})
	}
}

func TestApplyLanesPreset(t *testing.T) {
	cfg := DefaultLanesConfig()
	ApplyLanesPreset(&cfg, DifficultyFixed)
	if cfg.Growth.Enabled {
		t.Error("fixed preset should disable growth")
	}

	cfg = DefaultLanesConfig()
	ApplyLanesPreset(&cfg, DifficultyHard)
	if cfg.Run.SpeedPerLevel <= DefaultLanesConfig().Run.SpeedPerLevel {
		t.Errorf("hard preset SpeedPerLevel = %v, expected faster than default", cfg.Run.SpeedPerLevel)
	}
	if cfg.Levels[0].UnlockThreshold <= 0.7 {
		t.Errorf("hard preset threshold = %v, expected above 0.7", cfg.Levels[0].UnlockThreshold)
	}

	cfg = DefaultLanesConfig()
	ApplyLanesPreset(&cfg, DifficultyNormal)
	if !reflect.DeepEqual(cfg, DefaultLanesConfig()) {
		t.Error("normal preset should leave defaults unchanged")
	}
}

func TestParsePreset(t *testing.T) {
	tests := map[string]DifficultyPreset{
		"easy":    DifficultyEasy,
		"hard":    DifficultyHard,
		"fixed":   DifficultyFixed,
		"normal":  DifficultyNormal,
		"unknown": DifficultyNormal,
		"":        DifficultyNormal,
	}
	for in, expected := range tests {
		if got := ParsePreset(in); got != expected {
			t.Errorf("ParsePreset(%q) = %v, expected %v", in, got, expected)
		}
	}
}
