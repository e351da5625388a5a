package lanes

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

// Coin is a recyclable pickup. Collecting one recycles it.
type Coin struct {
	Z    float64
	Lane int
	X    float64
	Y    float64
}

// CoinField owns the coin pool.
type CoinField struct {
	pool   *Pool[Coin]
	layout layout
	lanes  LaneController
	cfg    config.CoinConfig
	rng    *rand.Rand
}

// NewCoinField lays out a fresh pool for one run.
func NewCoinField(cfg config.CoinConfig, lanes LaneController, rng *rand.Rand) *CoinField {
	f := &CoinField{
		layout: layout{cfg: cfg.Pool},
		lanes:  lanes,
		cfg:    cfg,
		rng:    rng,
	}
	f.pool = NewPool(cfg.Pool.Size, func(i int, c *Coin) {
		f.spawn(c, f.layout.InitialZ(i))
	})
	return f
}

// Pool exposes the underlying entries.
func (f *CoinField) Pool() *Pool[Coin] {
	return f.pool
}

func (f *CoinField) spawn(c *Coin, z float64) {
	c.Z = z
	c.Lane = f.rng.Intn(f.lanes.Count())
	c.X = f.lanes.TargetX(c.Lane)
	c.Y = f.bob(z)
}

func (f *CoinField) bob(z float64) float64 {
	return f.cfg.BaseHeight + math.Sin(z*f.cfg.BobFrequency)*f.cfg.BobAmplitude
}

// Recycle respawns entry i far ahead.
func (f *CoinField) Recycle(i int) {
	f.spawn(f.pool.At(i), f.layout.RespawnZ(f.rng))
}

// Advance scrolls every coin by speed and recycles those behind the avatar.
func (f *CoinField) Advance(speed float64) {
	f.pool.Each(func(i int, c *Coin) {
		c.Z += speed
		c.X = f.lanes.TargetX(c.Lane)
		c.Y = f.bob(c.Z)
		if f.layout.Behind(c.Z) {
			f.Recycle(i)
		}
	})
}
