package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const lanesConfigFile = "lanes.yaml"

// LoadLanes loads the lane runner configuration.
// Search order: customPath -> ~/.arcade/configs/lanes.yaml -> ./configs/lanes.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a partial file only overrides
// the keys it names. The result is not validated; call Validate before use.
func LoadLanes(customPath string) (LanesConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultLanesConfig(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parseLanes(data)
		if err != nil {
			return DefaultLanesConfig(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(lanesConfigFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parseLanes(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", lanesConfigFile)); err == nil {
		if cfg, err := parseLanes(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parseLanes(defaultLanesYAML)
	if err != nil {
		return DefaultLanesConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func parseLanes(data []byte) (LanesConfig, error) {
	cfg := DefaultLanesConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ApplyLanesPreset modifies the config based on a difficulty preset.
func ApplyLanesPreset(cfg *LanesConfig, preset DifficultyPreset) {
	if IsFixedPreset(preset) {
		cfg.Growth.Enabled = false
		return
	}
	cfg.Growth.Enabled = true

	// Adjust gameplay based on difficulty
	switch preset {
	case DifficultyEasy:
		cfg.Run.SpeedPerLevel = 0.25
		cfg.Growth.WidthStep = 0.05
		cfg.Growth.HeightStep = 0.05
		scaleThresholds(cfg, -0.1)
	case DifficultyHard:
		cfg.Run.SpeedPerLevel = 0.45
		cfg.Trap.Probability *= 2
		cfg.Growth.Interval = 200
		scaleThresholds(cfg, 0.1)
	}
}

func scaleThresholds(cfg *LanesConfig, delta float64) {
	for i := range cfg.Levels {
		cfg.Levels[i].UnlockThreshold = clampF(cfg.Levels[i].UnlockThreshold+delta, 0.1, 1.0)
	}
}
