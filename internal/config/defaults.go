package config

import (
	_ "embed"
)

//go:embed defaults/lanes.yaml
var defaultLanesYAML []byte

// DefaultCosmeticID is always owned and selected on a fresh profile.
const DefaultCosmeticID = "neon"

// MinTrapSpeedFactor is the lowest fraction of pre-penalty speed a trap may leave.
const MinTrapSpeedFactor = 0.6

// DefaultLanesConfig returns the default lane runner configuration.
func DefaultLanesConfig() LanesConfig {
	return LanesConfig{
		Track: TrackConfig{
			Lanes:      []float64{-2, 0, 2},
			StartLane:  1,
			Smoothing:  0.18,
			TiltFactor: 0.25,
		},
		Jump: JumpConfig{
			Ground:    1.0,
			Epsilon:   0.01,
			Impulse:   0.7,
			Gravity:   0.06,
			Smoothing: 0.15,
		},
		Run: RunConfig{
			SpeedBase:         0.7,
			SpeedPerLevel:     0.35,
			DistancePerSpeed:  0.5,
			TargetBase:        1000,
			TargetPerLevel:    500,
			FinishSpeedFactor: 0.5,
			AutoAdvance:       true,
			AutoAdvanceTicks:  180,
		},
		Collision: CollisionConfig{
			ObstacleLateral: 0.8,
			ObstacleDepth:   0.8,
			HitCeiling:      1.2,
			FallHitCeiling:  1.5,
			CoinLateral:     0.9,
			CoinDepth:       0.9,
			CoinVertical:    1.2,
		},
		Obstacles: ObstacleConfig{
			Pool: PoolConfig{
				Size:        8,
				FirstZ:      -20,
				Spacing:     30,
				RecycleMinZ: -380,
				RecycleMaxZ: -120,
				BehindZ:     10,
			},
			RestHeight: 0.5,
		},
		Coins: CoinConfig{
			Pool: PoolConfig{
				Size:        10,
				FirstZ:      -10,
				Spacing:     15,
				RecycleMinZ: -300,
				RecycleMaxZ: -100,
				BehindZ:     10,
			},
			BaseHeight:   1.0,
			BobAmplitude: 0.2,
			BobFrequency: 0.3,
		},
		Growth: GrowthConfig{
			Enabled:    true,
			Interval:   300,
			WidthStep:  0.1,
			HeightStep: 0.1,
			MaxScale:   2.0,
		},
		Motion: MotionConfig{
			SpinRate:               0.08,
			WeaveRate:              0.05,
			WeaveAmplitude:         0.5,
			WeaveAmplitudePerLevel: 0.1,
			FallStartHeight:        6,
			FallTriggerZ:           -40,
			FallAccel:              0.01,
			FallMaxSpeed:           0.3,
		},
		Trap: TrapConfig{
			Probability:   0.002,
			SpeedFactor:   0.6,
			DurationTicks: 120,
		},
		Death: DeathConfig{
			Impulse:    0.35,
			Gravity:    0.03,
			Tumble:     0.2,
			Fade:       0.025,
			MinOpacity: 0.05,
			FloorY:     -3,
			MaxTicks:   90,
		},
		Finish: FinishConfig{
			GateDistance: 40,
			Threshold:    1.0,
		},
		Levels: DefaultLevels(),
		Cosmetics: []Cosmetic{
			{ID: DefaultCosmeticID, Name: "Neon", Cost: 0, Color: "cyan", Face: ":)"},
			{ID: "ember", Name: "Ember", Cost: 50, Color: "orange", Face: ":D"},
			{ID: "venom", Name: "Venom", Cost: 120, Color: "bright_green", Face: ">:)"},
			{ID: "ghost", Name: "Ghost", Cost: 250, Color: "bright_white", Face: "o_o"},
			{ID: "royal", Name: "Royal", Cost: 400, Color: "bright_magenta", Face: "^_^"},
		},
	}
}

// DefaultLevels returns the built-in level list.
func DefaultLevels() []LevelConfig {
	return []LevelConfig{
		{Name: "Warmup", Motion: MotionNone, UnlockThreshold: 0.7},
		{Name: "Spinners", Motion: MotionSpin, UnlockThreshold: 0.7},
		{Name: "Weave", Motion: MotionWeave, UnlockThreshold: 0.7},
		{Name: "Skyfall", Motion: MotionFalling, UnlockThreshold: 0.7},
		{Name: "Snares", Motion: MotionTrap, UnlockThreshold: 0.7},
		{Name: "Cyclone", Motion: MotionSpin, UnlockThreshold: 0.75},
		{Name: "Slalom", Motion: MotionWeave, UnlockThreshold: 0.75},
		{Name: "Meteor", Motion: MotionFalling, UnlockThreshold: 0.75},
		{Name: "Minefield", Motion: MotionTrap, UnlockThreshold: 0.8, TrapProbability: 0.004},
		{Name: "Overdrive", Motion: MotionWeave, UnlockThreshold: 0.8},
	}
}
