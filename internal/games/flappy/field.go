package flappy

import (
	"math/rand"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// FieldResult reports what happened to the obstacles during one tick.
type FieldResult struct {
	Collided bool // Any obstacle touched the actor
	Scored   int  // Obstacles passed for the first time
}

// ObstacleField handles spawning, movement, scoring and removal of obstacles.
type ObstacleField struct {
	obstacles []*Obstacle // Spawn order, oldest first
	spare     []*Obstacle // Removed obstacles kept for reuse
	rng       *rand.Rand
	cfg       config.ObstacleConfig
	sprites   *Sprites
}

// NewObstacleField creates a field holding a single obstacle at FirstX.
func NewObstacleField(seed int64, cfg config.ObstacleConfig, sprites *Sprites) *ObstacleField {
	f := &ObstacleField{
		obstacles: make([]*Obstacle, 0, 4),
		rng:       rand.New(rand.NewSource(seed)),
		cfg:       cfg,
		sprites:   sprites,
	}
	f.spawn(cfg.FirstX)
	return f
}

// Advance moves every obstacle, then collects collisions, passes and
// removals. No obstacle is skipped after a collision: all of them are
// moved and cleaned up every tick. Each pass scores one point and spawns
// one new obstacle at SpawnX.
func (f *ObstacleField) Advance(a *Actor) FieldResult {
	var res FieldResult

	kept := f.obstacles[:0]
	for _, o := range f.obstacles {
		o.Advance()

		if o.CollidesWith(a) {
			res.Collided = true
		}
		if o.MarkPassedIfBehind(a.X()) {
			res.Scored++
		}

		if o.Offscreen() {
			f.spare = append(f.spare, o)
			continue
		}
		kept = append(kept, o)
	}
	f.obstacles = kept

	for i := 0; i < res.Scored; i++ {
		f.spawn(f.cfg.SpawnX)
	}

	return res
}

// spawn appends an obstacle at x, recycling a removed one when possible.
func (f *ObstacleField) spawn(x float64) {
	if n := len(f.spare); n > 0 {
		o := f.spare[n-1]
		f.spare = f.spare[:n-1]
		o.Reset(x, f.rng)
		f.obstacles = append(f.obstacles, o)
		return
	}
	f.obstacles = append(f.obstacles, NewObstacle(x, f.rng, f.cfg, f.sprites))
}

// Len returns the number of live obstacles.
func (f *ObstacleField) Len() int {
	return len(f.obstacles)
}

// Obstacles returns read-only views of the live obstacles in spawn order.
func (f *ObstacleField) Obstacles() []ObstacleView {
	out := make([]ObstacleView, len(f.obstacles))
	for i, o := range f.obstacles {
		out[i] = o.View()
	}
	return out
}
