package lanes

import (
	"github.com/vovakirdan/neon-lanes/internal/config"
	"github.com/vovakirdan/neon-lanes/internal/core"
)

// CollisionEngine runs per-axis proximity tests between the avatar and
// pool members.
type CollisionEngine struct {
	cfg config.CollisionConfig
}

// NewCollisionEngine creates an engine with the given thresholds.
func NewCollisionEngine(cfg config.CollisionConfig) CollisionEngine {
	return CollisionEngine{cfg: cfg}
}

// CollisionResult summarizes one tick of collision checks.
type CollisionResult struct {
	Fatal    bool
	TrapHits int
	Pickups  int
}

// ObstacleHit reports whether o hits a. Width and height growth widen the
// lateral threshold and raise the ceiling. When falling is set the obstacle
// itself must also be low enough to matter.
func (ce CollisionEngine) ObstacleHit(a Avatar, o Obstacle, falling bool) bool {
	lateral := ce.cfg.ObstacleLateral + (o.Width-1)/2
	ceiling := ce.cfg.HitCeiling + (o.Height - 1)
	if core.AbsF(a.X-o.X) >= lateral {
		return false
	}
	if core.AbsF(a.Z-o.Z) >= ce.cfg.ObstacleDepth {
		return false
	}
	if a.Y >= ceiling {
		return false
	}
	if falling && o.Y >= ce.cfg.FallHitCeiling {
		return false
	}
	return true
}

// CoinPickup reports whether a is close enough to collect c.
func (ce CollisionEngine) CoinPickup(a Avatar, c Coin) bool {
	return core.AbsF(a.X-c.X) < ce.cfg.CoinLateral &&
		core.AbsF(a.Z-c.Z) < ce.cfg.CoinDepth &&
		core.AbsF(a.Y-c.Y) < ce.cfg.CoinVertical
}

// Evaluate checks obstacles first (when checkObstacles is set), then coins.
// Trap obstacles and collected coins are recycled immediately. A fatal hit
// stops all further checks for the tick.
func (ce CollisionEngine) Evaluate(a Avatar, obstacles *ObstacleField, coins *CoinField, checkObstacles bool) CollisionResult {
	var res CollisionResult

	if checkObstacles {
		falling := obstacles.rules.Motion == config.MotionFalling
		for i := 0; i < obstacles.pool.Len(); i++ {
			o := obstacles.pool.At(i)
			if !ce.ObstacleHit(a, *o, falling) {
				continue
			}
			if o.Trap {
				res.TrapHits++
				obstacles.Recycle(i)
				continue
			}
			res.Fatal = true
			return res
		}
	}

	for i := 0; i < coins.pool.Len(); i++ {
		if ce.CoinPickup(a, *coins.pool.At(i)) {
			res.Pickups++
			coins.Recycle(i)
		}
	}
	return res
}
