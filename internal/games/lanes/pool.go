package lanes

import (
	"math/rand"

	"github.com/vovakirdan/neon-lanes/internal/config"
)

// Pool is a fixed-capacity array of recyclable entries.
// Entries are never appended or removed after construction.
type Pool[T any] struct {
	items []T
}

// NewPool allocates size entries and lets init lay each one out.
func NewPool[T any](size int, init func(i int, item *T)) *Pool[T] {
	p := &Pool[T]{items: make([]T, size)}
	if init != nil {
		for i := range p.items {
			init(i, &p.items[i])
		}
	}
	return p
}

// Len returns the pool capacity.
func (p *Pool[T]) Len() int {
	return len(p.items)
}

// At returns a pointer to entry i for in-place mutation.
func (p *Pool[T]) At(i int) *T {
	return &p.items[i]
}

// Each calls fn for every entry in index order.
func (p *Pool[T]) Each(fn func(i int, item *T)) {
	for i := range p.items {
		fn(i, &p.items[i])
	}
}

// Copy returns a snapshot of all entries.
func (p *Pool[T]) Copy() []T {
	out := make([]T, len(p.items))
	copy(out, p.items)
	return out
}

// layout places pool entries along the track and respawns them ahead.
type layout struct {
	cfg config.PoolConfig
}

// InitialZ returns the starting depth of entry i.
func (l layout) InitialZ(i int) float64 {
	return l.cfg.FirstZ - float64(i)*l.cfg.Spacing
}

// Behind reports whether z has passed the recycle threshold.
func (l layout) Behind(z float64) bool {
	return z > l.cfg.BehindZ
}

// RespawnZ returns a depth in [RecycleMinZ, RecycleMaxZ).
func (l layout) RespawnZ(rng *rand.Rand) float64 {
	return l.cfg.RecycleMinZ + rng.Float64()*(l.cfg.RecycleMaxZ-l.cfg.RecycleMinZ)
}
