package flappy

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Obstacle is a pipe pair with a single passable gap.
type Obstacle struct {
	X         float64 // Left edge
	GapCenter int     // Y where the gap opens (bottom of the top piece)
	Top       int     // Y of the top piece's upper edge
	Bottom    int     // Y of the bottom piece's upper edge
	Passed    bool    // Set once the actor is past the left edge

	cfg     config.ObstacleConfig
	sprites *Sprites
}

// NewObstacle creates an obstacle at x with a fresh random gap.
func NewObstacle(x float64, rng *rand.Rand, cfg config.ObstacleConfig, sprites *Sprites) *Obstacle {
	o := &Obstacle{cfg: cfg, sprites: sprites}
	o.Reset(x, rng)
	return o
}

// Reset re-initializes the obstacle at x, drawing a new gap center
// uniformly from [GapCenterMin, GapCenterMax).
func (o *Obstacle) Reset(x float64, rng *rand.Rand) {
	o.X = x
	o.GapCenter = o.cfg.GapCenterMin + rng.Intn(o.cfg.GapCenterMax-o.cfg.GapCenterMin)
	o.Top = o.GapCenter - o.sprites.PipeTop.Height()
	o.Bottom = o.GapCenter + o.cfg.Gap
	o.Passed = false
}

// Advance scrolls the obstacle left by one tick.
func (o *Obstacle) Advance() {
	o.X -= o.cfg.Speed
}

// CollidesWith tests the actor's current mask against both pipe pieces.
// Either piece touching an opaque actor pixel is a hit.
func (o *Obstacle) CollidesWith(a *Actor) bool {
	mask := a.Mask()
	dx := roundPixel(o.X) - roundPixel(a.X())
	ay := roundPixel(a.Y())

	topHit := mask.Overlaps(o.sprites.PipeTop, dx, o.Top-ay)
	bottomHit := mask.Overlaps(o.sprites.PipeBottom, dx, o.Bottom-ay)
	return topHit || bottomHit
}

// Offscreen reports whether the obstacle has fully left the screen to the left.
func (o *Obstacle) Offscreen() bool {
	return o.X+float64(o.sprites.PipeTop.Width()) < 0
}

// MarkPassedIfBehind flags the obstacle as passed the first time its left
// edge is behind actorX. Returns true only on that tick.
func (o *Obstacle) MarkPassedIfBehind(actorX float64) bool {
	if o.Passed || o.X >= actorX {
		return false
	}
	o.Passed = true
	return true
}

// roundPixel snaps a world coordinate to a pixel, rounding halves to even.
func roundPixel(v float64) int {
	return int(math.RoundToEven(v))
}
