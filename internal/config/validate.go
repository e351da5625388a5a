package config

import (
	"fmt"
	"math"
)

// Validate repairs out-of-range tunables in place and reports each repair.
// A validated config can never make the tick loop diverge or panic.
func (c *LanesConfig) Validate() []string {
	var fixes []string
	def := DefaultLanesConfig()
	fix := func(format string, args ...any) {
		fixes = append(fixes, fmt.Sprintf(format, args...))
	}

	if len(c.Track.Lanes) == 0 {
		c.Track.Lanes = def.Track.Lanes
		fix("track.lanes empty, using %v", def.Track.Lanes)
	}
	if c.Track.StartLane < 0 || c.Track.StartLane >= len(c.Track.Lanes) {
		c.Track.StartLane = len(c.Track.Lanes) / 2
		fix("track.start_lane out of range, using %d", c.Track.StartLane)
	}
	if !openUnit(c.Track.Smoothing) {
		c.Track.Smoothing = def.Track.Smoothing
		fix("track.smoothing must be in (0,1), using %v", def.Track.Smoothing)
	}

	if !openUnit(c.Jump.Smoothing) {
		c.Jump.Smoothing = def.Jump.Smoothing
		fix("jump.smoothing must be in (0,1), using %v", def.Jump.Smoothing)
	}
	if !positive(c.Jump.Impulse) || !positive(c.Jump.Gravity) {
		c.Jump.Impulse, c.Jump.Gravity = def.Jump.Impulse, def.Jump.Gravity
		fix("jump.impulse and jump.gravity must be positive, using defaults")
	}
	if c.Jump.Ground < 0 || math.IsNaN(c.Jump.Ground) {
		c.Jump.Ground = def.Jump.Ground
		fix("jump.ground must be non-negative, using %v", def.Jump.Ground)
	}
	if !positive(c.Jump.Epsilon) {
		c.Jump.Epsilon = def.Jump.Epsilon
		fix("jump.epsilon must be positive, using %v", def.Jump.Epsilon)
	}

	if !positive(c.Run.SpeedBase) || c.Run.SpeedPerLevel < 0 {
		c.Run.SpeedBase, c.Run.SpeedPerLevel = def.Run.SpeedBase, def.Run.SpeedPerLevel
		fix("run speed formula invalid, using defaults")
	}
	if !positive(c.Run.DistancePerSpeed) {
		c.Run.DistancePerSpeed = def.Run.DistancePerSpeed
		fix("run.distance_per_speed must be positive, using %v", def.Run.DistancePerSpeed)
	}
	if !positive(c.Run.TargetBase) || c.Run.TargetPerLevel < 0 {
		c.Run.TargetBase, c.Run.TargetPerLevel = def.Run.TargetBase, def.Run.TargetPerLevel
		fix("run target formula invalid, using defaults")
	}
	if !positive(c.Run.FinishSpeedFactor) || c.Run.FinishSpeedFactor > 1 {
		c.Run.FinishSpeedFactor = def.Run.FinishSpeedFactor
		fix("run.finish_speed_factor must be in (0,1], using %v", def.Run.FinishSpeedFactor)
	}
	if c.Run.AutoAdvanceTicks <= 0 {
		c.Run.AutoAdvanceTicks = def.Run.AutoAdvanceTicks
		fix("run.auto_advance_ticks must be positive, using %d", def.Run.AutoAdvanceTicks)
	}

	if !positive(c.Collision.ObstacleLateral) || !positive(c.Collision.ObstacleDepth) ||
		!positive(c.Collision.HitCeiling) || !positive(c.Collision.FallHitCeiling) {
		c.Collision.ObstacleLateral = def.Collision.ObstacleLateral
		c.Collision.ObstacleDepth = def.Collision.ObstacleDepth
		c.Collision.HitCeiling = def.Collision.HitCeiling
		c.Collision.FallHitCeiling = def.Collision.FallHitCeiling
		fix("collision obstacle thresholds must be positive, using defaults")
	}
	if !positive(c.Collision.CoinLateral) || !positive(c.Collision.CoinDepth) || !positive(c.Collision.CoinVertical) {
		c.Collision.CoinLateral = def.Collision.CoinLateral
		c.Collision.CoinDepth = def.Collision.CoinDepth
		c.Collision.CoinVertical = def.Collision.CoinVertical
		fix("collision coin thresholds must be positive, using defaults")
	}

	fixes = append(fixes, validatePool("obstacles.pool", &c.Obstacles.Pool, def.Obstacles.Pool)...)
	fixes = append(fixes, validatePool("coins.pool", &c.Coins.Pool, def.Coins.Pool)...)

	if c.Growth.Enabled && !positive(c.Growth.Interval) {
		c.Growth.Interval = def.Growth.Interval
		fix("growth.interval must be positive, using %v", def.Growth.Interval)
	}
	if c.Growth.MaxScale < 1 || math.IsNaN(c.Growth.MaxScale) {
		c.Growth.MaxScale = 1
		fix("growth.max_scale below 1, using 1")
	}
	if c.Growth.WidthStep < 0 || c.Growth.HeightStep < 0 {
		c.Growth.WidthStep, c.Growth.HeightStep = def.Growth.WidthStep, def.Growth.HeightStep
		fix("growth steps must be non-negative, using defaults")
	}

	if c.Motion.FallAccel <= 0 || c.Motion.FallMaxSpeed <= 0 {
		c.Motion.FallAccel, c.Motion.FallMaxSpeed = def.Motion.FallAccel, def.Motion.FallMaxSpeed
		fix("motion fall rates must be positive, using defaults")
	}
	if c.Motion.FallStartHeight < c.Obstacles.RestHeight {
		c.Motion.FallStartHeight = c.Obstacles.RestHeight
		fix("motion.fall_start_height below rest height, using %v", c.Obstacles.RestHeight)
	}

	if c.Trap.Probability < 0 || c.Trap.Probability > 1 {
		c.Trap.Probability = clampF(c.Trap.Probability, 0, 1)
		fix("trap.probability clamped to %v", c.Trap.Probability)
	}
	if c.Trap.SpeedFactor < MinTrapSpeedFactor || c.Trap.SpeedFactor > 1 || math.IsNaN(c.Trap.SpeedFactor) {
		c.Trap.SpeedFactor = clampF(c.Trap.SpeedFactor, MinTrapSpeedFactor, 1)
		fix("trap.speed_factor clamped to %v", c.Trap.SpeedFactor)
	}
	if c.Trap.DurationTicks <= 0 {
		c.Trap.DurationTicks = def.Trap.DurationTicks
		fix("trap.duration_ticks must be positive, using %d", def.Trap.DurationTicks)
	}

	if c.Death.MaxTicks <= 0 {
		c.Death.MaxTicks = def.Death.MaxTicks
		fix("death.max_ticks must be positive, using %d", def.Death.MaxTicks)
	}
	if !positive(c.Finish.GateDistance) || !positive(c.Finish.Threshold) {
		c.Finish = def.Finish
		fix("finish gate must have positive distance and threshold, using defaults")
	}

	if len(c.Levels) == 0 {
		c.Levels = DefaultLevels()
		fix("levels empty, using built-in levels")
	}
	for i := range c.Levels {
		lvl := &c.Levels[i]
		if !lvl.Motion.Valid() {
			fix("levels[%d].motion %q unknown, using %s", i, lvl.Motion, MotionNone)
			lvl.Motion = MotionNone
		}
		if !positive(lvl.UnlockThreshold) || lvl.UnlockThreshold > 1 {
			fix("levels[%d].unlock_threshold must be in (0,1], using 0.7", i)
			lvl.UnlockThreshold = 0.7
		}
		if lvl.Speed < 0 || lvl.Target < 0 || lvl.Rate < 0 || lvl.TrapProbability < 0 || lvl.TrapProbability > 1 {
			fix("levels[%d] overrides out of range, cleared", i)
			lvl.Speed, lvl.Target, lvl.Rate, lvl.TrapProbability = 0, 0, 0, 0
		}
		if lvl.Name == "" {
			lvl.Name = fmt.Sprintf("Level %d", i+1)
		}
	}

	if _, ok := c.Cosmetic(DefaultCosmeticID); !ok {
		c.Cosmetics = append([]Cosmetic{def.Cosmetics[0]}, c.Cosmetics...)
		fix("cosmetics missing %q, added", DefaultCosmeticID)
	}
	for i := range c.Cosmetics {
		if c.Cosmetics[i].Cost < 0 {
			c.Cosmetics[i].Cost = 0
			fix("cosmetics[%d].cost negative, using 0", i)
		}
	}

	return fixes
}

func validatePool(name string, p *PoolConfig, def PoolConfig) []string {
	var fixes []string
	if p.Size <= 0 {
		p.Size = def.Size
		fixes = append(fixes, fmt.Sprintf("%s.size must be positive, using %d", name, def.Size))
	}
	if p.RecycleMinZ > p.RecycleMaxZ {
		p.RecycleMinZ, p.RecycleMaxZ = p.RecycleMaxZ, p.RecycleMinZ
		fixes = append(fixes, fmt.Sprintf("%s recycle range inverted, swapped", name))
	}
	// Recycled entries must land strictly ahead of the behind threshold.
	if p.RecycleMaxZ >= p.BehindZ {
		p.RecycleMinZ, p.RecycleMaxZ, p.BehindZ = def.RecycleMinZ, def.RecycleMaxZ, def.BehindZ
		fixes = append(fixes, fmt.Sprintf("%s recycle range reaches behind_z, using defaults", name))
	}
	if p.FirstZ >= p.BehindZ {
		p.FirstZ = def.FirstZ
		fixes = append(fixes, fmt.Sprintf("%s.first_z behind threshold, using %v", name, def.FirstZ))
	}
	if p.Spacing < 0 {
		p.Spacing = def.Spacing
		fixes = append(fixes, fmt.Sprintf("%s.spacing negative, using %v", name, def.Spacing))
	}
	return fixes
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

func openUnit(v float64) bool {
	return v > 0 && v < 1
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	if math.IsNaN(val) {
		return min
	}
	return math.Max(min, math.Min(max, val))
}
