package window

import (
	"image/color"

	"github.com/vovakirdan/neon-lanes/internal/core"
)

const (
	perspectiveK = 14.0  // Depth at which the track is drawn at half scale
	farDepth     = 160.0 // Deepest Z drawn
	horizonFrac  = 0.28
	groundFrac   = 0.86
	laneFrac     = 0.16 // Lane spacing at Z=0 as a fraction of width per world unit
	unitFrac     = 0.07 // Height of one world unit at Z=0 as a fraction of height
)

// projection maps track coordinates to window pixels.
type projection struct {
	w, h    float64
	horizon float64
	ground  float64
}

func newProjection(w, h int) projection {
	return projection{
		w:       float64(w),
		h:       float64(h),
		horizon: float64(h) * horizonFrac,
		ground:  float64(h) * groundFrac,
	}
}

// scale returns the perspective factor at depth behind the avatar plane.
func (p projection) scale(z float64) float64 {
	depth := -z
	if depth < 0 {
		depth = 0
	}
	return perspectiveK / (perspectiveK + depth)
}

// visible reports whether z is within the drawn range.
func (p projection) visible(z float64) bool {
	return z <= 2 && -z <= farDepth
}

// point projects x (lateral), y (height above ground level 0) and z to pixels.
func (p projection) point(x, y, z float64) (float32, float32) {
	s := p.scale(z)
	sx := p.w/2 + x*p.w*laneFrac*s
	floor := p.horizon + (p.ground-p.horizon)*s
	sy := floor - y*p.h*unitFrac*s
	return float32(sx), float32(sy)
}

// size projects a world length at depth z to pixels, horizontally and vertically.
func (p projection) size(wu, hu, z float64) (float32, float32) {
	s := p.scale(z)
	return float32(wu * p.w * laneFrac * s), float32(hu * p.h * unitFrac * s)
}

// rgba converts a palette color to premultiplied RGBA with alpha a.
func rgba(c core.Color, a float64) color.RGBA {
	r, g, b := c.RGB()
	alpha := core.ClampF(a, 0, 1)
	return color.RGBA{
		R: uint8(float64(r) * alpha),
		G: uint8(float64(g) * alpha),
		B: uint8(float64(b) * alpha),
		A: uint8(255 * alpha),
	}
}
