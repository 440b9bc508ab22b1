package flappy

import "github.com/vovakirdan/tui-flappy/internal/config"

// Ground is two copies of the ground strip scrolled side by side. Whenever
// one copy leaves the screen on the left it is moved behind the other, so
// the strip appears endless.
type Ground struct {
	X1, X2 float64
	width  float64
	speed  float64
}

// NewGround creates a ground with the first segment at the left screen edge.
func NewGround(cfg config.GroundConfig) *Ground {
	return &Ground{
		X1:    0,
		X2:    cfg.SegmentWidth,
		width: cfg.SegmentWidth,
		speed: cfg.Speed,
	}
}

// Advance scrolls both segments left and wraps whichever one is fully off-screen.
func (g *Ground) Advance() {
	g.X1 -= g.speed
	g.X2 -= g.speed

	if g.X1+g.width < 0 {
		g.X1 = g.X2 + g.width
	}
	if g.X2+g.width < 0 {
		g.X2 = g.X1 + g.width
	}
}

// Width returns the width of one segment.
func (g *Ground) Width() float64 {
	return g.width
}
