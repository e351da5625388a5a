package lanes

import (
	"testing"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

const eps = 1e-6

func TestObstacleHitBoundaries(t *testing.T) {
	ce := NewCollisionEngine(config.DefaultLanesConfig().Collision)
	base := Avatar{X: 0, Y: 1, Z: 0, Alive: true}
	rest := Obstacle{X: 0, Y: 0.5, Z: 0, Width: 1, Height: 1}

	tests := []struct {
		name     string
		avatar   func(a *Avatar)
		obstacle func(o *Obstacle)
		falling  bool
		expected bool
	}{
		{name: "overlap", expected: true},
		{name: "lateral inside", obstacle: func(o *Obstacle) { o.X = 0.8 - eps }, expected: true},
		{name: "lateral at threshold", obstacle: func(o *Obstacle) { o.X = 0.8 }, expected: false},
		{name: "lateral outside", obstacle: func(o *Obstacle) { o.X = -0.8 - eps }, expected: false},
		{name: "depth inside", obstacle: func(o *Obstacle) { o.Z = -0.8 + eps }, expected: true},
		{name: "depth at threshold", obstacle: func(o *Obstacle) { o.Z = 0.8 }, expected: false},
		{name: "depth outside", obstacle: func(o *Obstacle) { o.Z = -0.8 - eps }, expected: false},
		{name: "below ceiling", avatar: func(a *Avatar) { a.Y = 1.2 - eps }, expected: true},
		{name: "at ceiling", avatar: func(a *Avatar) { a.Y = 1.2 }, expected: false},
		{name: "above ceiling", avatar: func(a *Avatar) { a.Y = 1.2 + eps }, expected: false},
		{name: "grown width", obstacle: func(o *Obstacle) { o.Width = 1.4; o.X = 0.95 }, expected: true},
		{name: "grown height", obstacle: func(o *Obstacle) { o.Height = 1.5 }, avatar: func(a *Avatar) { a.Y = 1.6 }, expected: true},
		{name: "falling low", obstacle: func(o *Obstacle) { o.Y = 1.5 - eps }, falling: true, expected: true},
		{name: "falling at ceiling", obstacle: func(o *Obstacle) { o.Y = 1.5 }, falling: true, expected: false},
		{name: "falling high", obstacle: func(o *Obstacle) { o.Y = 4 }, falling: true, expected: false},
		{name: "high obstacle ignored without falling rules", obstacle: func(o *Obstacle) { o.Y = 4 }, expected: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a, o := base, rest
			if tc.avatar != nil {
				tc.avatar(&a)
			}
			if tc.obstacle != nil {
				tc.obstacle(&o)
			}
			if got := ce.ObstacleHit(a, o, tc.falling); got != tc.expected {
				t.Errorf("ObstacleHit() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestCoinPickupBoundaries(t *testing.T) {
	ce := NewCollisionEngine(config.DefaultLanesConfig().Collision)
	a := Avatar{X: 0, Y: 1, Z: 0}

	tests := []struct {
		name     string
		coin     Coin
		expected bool
	}{
		{"centred", Coin{X: 0, Y: 1, Z: 0}, true},
		{"lateral inside", Coin{X: 0.9 - eps, Y: 1, Z: 0}, true},
		{"lateral at threshold", Coin{X: 0.9, Y: 1, Z: 0}, false},
		{"depth inside", Coin{X: 0, Y: 1, Z: -0.9 + eps}, true},
		{"depth outside", Coin{X: 0, Y: 1, Z: -0.9 - eps}, false},
		{"vertical inside", Coin{X: 0, Y: 2.2 - eps, Z: 0}, true},
		{"vertical at threshold", Coin{X: 0, Y: 2.2, Z: 0}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := ce.CoinPickup(a, tc.coin); got != tc.expected {
				t.Errorf("CoinPickup() = %v, expected %v", got, tc.expected)
			}
		})
	}
}
