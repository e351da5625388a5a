// Package config provides YAML-based configuration loading and difficulty
// presets for the lane runner.
package config

// MotionKind selects how obstacles move during a run.
type MotionKind string

const (
	MotionNone    MotionKind = "none"
	MotionSpin    MotionKind = "spin"
	MotionWeave   MotionKind = "weave"
	MotionFalling MotionKind = "falling"
	MotionTrap    MotionKind = "trap"
)

// Valid reports whether k is a known motion kind.
func (k MotionKind) Valid() bool {
	switch k {
	case MotionNone, MotionSpin, MotionWeave, MotionFalling, MotionTrap:
		return true
	}
	return false
}

// LanesConfig contains all tunables for the lane runner.
type LanesConfig struct {
	Track     TrackConfig     `yaml:"track"`
	Jump      JumpConfig      `yaml:"jump"`
	Run       RunConfig       `yaml:"run"`
	Collision CollisionConfig `yaml:"collision"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	Coins     CoinConfig      `yaml:"coins"`
	Growth    GrowthConfig    `yaml:"growth"`
	Motion    MotionConfig    `yaml:"motion"`
	Trap      TrapConfig      `yaml:"trap"`
	Death     DeathConfig     `yaml:"death"`
	Finish    FinishConfig    `yaml:"finish"`
	Levels    []LevelConfig   `yaml:"levels"`
	Cosmetics []Cosmetic      `yaml:"cosmetics"`
}

// TrackConfig defines the lane layout and lateral smoothing.
type TrackConfig struct {
	Lanes      []float64 `yaml:"lanes"`
	StartLane  int       `yaml:"start_lane"`
	Smoothing  float64   `yaml:"smoothing"`   // must lie in (0, 1)
	TiltFactor float64   `yaml:"tilt_factor"` // cosmetic roll per unit of lateral delta
}

// JumpConfig defines vertical kinematics shared by all levels.
type JumpConfig struct {
	Ground    float64 `yaml:"ground"`
	Epsilon   float64 `yaml:"epsilon"`
	Impulse   float64 `yaml:"impulse"`
	Gravity   float64 `yaml:"gravity"`
	Smoothing float64 `yaml:"smoothing"`
}

// RunConfig defines speed and target distance formulas.
type RunConfig struct {
	SpeedBase         float64 `yaml:"speed_base"`
	SpeedPerLevel     float64 `yaml:"speed_per_level"`
	DistancePerSpeed  float64 `yaml:"distance_per_speed"` // distance gained per tick per unit of speed
	TargetBase        float64 `yaml:"target_base"`
	TargetPerLevel    float64 `yaml:"target_per_level"`
	FinishSpeedFactor float64 `yaml:"finish_speed_factor"`
	AutoAdvance       bool    `yaml:"auto_advance"`
	AutoAdvanceTicks  int     `yaml:"auto_advance_ticks"`
}

// CollisionConfig defines per-axis hit thresholds.
// All comparisons are strict.
type CollisionConfig struct {
	ObstacleLateral float64 `yaml:"obstacle_lateral"`
	ObstacleDepth   float64 `yaml:"obstacle_depth"`
	HitCeiling      float64 `yaml:"hit_ceiling"`
	FallHitCeiling  float64 `yaml:"fall_hit_ceiling"`
	CoinLateral     float64 `yaml:"coin_lateral"`
	CoinDepth       float64 `yaml:"coin_depth"`
	CoinVertical    float64 `yaml:"coin_vertical"`
}

// PoolConfig defines the layout and recycle window of a fixed pool.
type PoolConfig struct {
	Size        int     `yaml:"size"`
	FirstZ      float64 `yaml:"first_z"`
	Spacing     float64 `yaml:"spacing"`
	RecycleMinZ float64 `yaml:"recycle_min_z"`
	RecycleMaxZ float64 `yaml:"recycle_max_z"`
	BehindZ     float64 `yaml:"behind_z"`
}

// ObstacleConfig defines the obstacle pool.
type ObstacleConfig struct {
	Pool       PoolConfig `yaml:"pool"`
	RestHeight float64    `yaml:"rest_height"`
}

// CoinConfig defines the coin pool and bobbing.
type CoinConfig struct {
	Pool         PoolConfig `yaml:"pool"`
	BaseHeight   float64    `yaml:"base_height"`
	BobAmplitude float64    `yaml:"bob_amplitude"`
	BobFrequency float64    `yaml:"bob_frequency"`
}

// GrowthConfig defines how obstacles grow with distance.
type GrowthConfig struct {
	Enabled    bool    `yaml:"enabled"`
	Interval   float64 `yaml:"interval"`
	WidthStep  float64 `yaml:"width_step"`
	HeightStep float64 `yaml:"height_step"`
	MaxScale   float64 `yaml:"max_scale"`
}

// MotionConfig defines the default rates of each motion kind.
type MotionConfig struct {
	SpinRate               float64 `yaml:"spin_rate"`
	WeaveRate              float64 `yaml:"weave_rate"`
	WeaveAmplitude         float64 `yaml:"weave_amplitude"`
	WeaveAmplitudePerLevel float64 `yaml:"weave_amplitude_per_level"`
	FallStartHeight        float64 `yaml:"fall_start_height"`
	FallTriggerZ           float64 `yaml:"fall_trigger_z"`
	FallAccel              float64 `yaml:"fall_accel"`
	FallMaxSpeed           float64 `yaml:"fall_max_speed"`
}

// TrapConfig defines the trap variant and its speed penalty.
type TrapConfig struct {
	Probability   float64 `yaml:"probability"`
	SpeedFactor   float64 `yaml:"speed_factor"` // never below MinTrapSpeedFactor
	DurationTicks int     `yaml:"duration_ticks"`
}

// DeathConfig defines the scripted death sequence.
type DeathConfig struct {
	Impulse    float64 `yaml:"impulse"`
	Gravity    float64 `yaml:"gravity"`
	Tumble     float64 `yaml:"tumble"`
	Fade       float64 `yaml:"fade"`
	MinOpacity float64 `yaml:"min_opacity"`
	FloorY     float64 `yaml:"floor_y"`
	MaxTicks   int     `yaml:"max_ticks"`
}

// FinishConfig defines the finish gate approach.
type FinishConfig struct {
	GateDistance float64 `yaml:"gate_distance"`
	Threshold    float64 `yaml:"threshold"`
}

// LevelConfig describes a single level. Zero overrides fall back to the
// run formulas and motion defaults.
type LevelConfig struct {
	Name            string     `yaml:"name"`
	Motion          MotionKind `yaml:"motion"`
	UnlockThreshold float64    `yaml:"unlock_threshold"`
	Speed           float64    `yaml:"speed,omitempty"`
	Target          float64    `yaml:"target,omitempty"`
	Rate            float64    `yaml:"rate,omitempty"`
	TrapProbability float64    `yaml:"trap_probability,omitempty"`
}

// Cosmetic is a purchasable avatar skin.
type Cosmetic struct {
	ID    string `yaml:"id"`
	Name  string `yaml:"name"`
	Cost  int    `yaml:"cost"`
	Color string `yaml:"color"`
	Face  string `yaml:"face"`
}

// LevelCount returns the number of configured levels.
func (c LanesConfig) LevelCount() int {
	return len(c.Levels)
}

// Level returns the configuration of level n (1-based).
func (c LanesConfig) Level(n int) (LevelConfig, bool) {
	if n < 1 || n > len(c.Levels) {
		return LevelConfig{}, false
	}
	return c.Levels[n-1], true
}

// Cosmetic looks up a catalog entry by id.
func (c LanesConfig) Cosmetic(id string) (Cosmetic, bool) {
	for _, item := range c.Cosmetics {
		if item.ID == id {
			return item, true
		}
	}
	return Cosmetic{}, false
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// IsFixedPreset returns true if the preset disables obstacle growth.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ParsePreset converts a flag value to a preset. Unknown values map to normal.
func ParsePreset(name string) DifficultyPreset {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyHard, DifficultyFixed:
		return DifficultyPreset(name)
	}
	return DifficultyNormal
}
