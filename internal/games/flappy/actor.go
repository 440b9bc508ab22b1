package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Actor is the player-controlled bird: vertical physics, tilt and wing pose.
// X never changes after construction.
type Actor struct {
	cfg   config.ActorConfig
	masks [3]*core.Mask

	x, y      float64
	velocity  float64 // Negative = up
	tickCount int     // Ticks since the last impulse
	refY      float64 // Y at the last impulse
	tilt      float64 // Degrees, in [MinTilt, MaxTilt]

	frame      Frame
	frameCount int // Ticks into the current wing cycle
}

// NewActor creates an actor at the configured start position.
func NewActor(cfg config.ActorConfig, sprites *Sprites) *Actor {
	return &Actor{
		cfg:   cfg,
		masks: sprites.Actor,
		x:     cfg.StartX,
		y:     cfg.StartY,
		refY:  cfg.StartY,
		frame: FrameWingUp,
	}
}

// Displacement is the vertical move for the given tick count since an
// impulse: d = v*t + g*t²/2, capped at the terminal displacement, with the
// ascent bias subtracted while the result is negative.
func Displacement(velocity float64, ticks int, cfg config.ActorConfig) float64 {
	t := float64(ticks)
	d := velocity*t + 0.5*cfg.Gravity*t*t

	if d >= cfg.TerminalDisplacement {
		d = cfg.TerminalDisplacement
	}
	if d < 0 {
		d -= cfg.AscentBias
	}
	return d
}

// Impulse launches the actor upward and restarts the arc from the current height.
func (a *Actor) Impulse() {
	a.velocity = a.cfg.ImpulseVelocity
	a.tickCount = 0
	a.refY = a.y
}

// Advance moves the actor by one tick and updates its tilt.
// Returns the displacement applied.
func (a *Actor) Advance() float64 {
	a.tickCount++
	d := Displacement(a.velocity, a.tickCount, a.cfg)
	a.y += d

	// Rising, or still close to the impulse height: nose up at once.
	// Otherwise the nose drops at a fixed rate.
	if d < 0 || a.y < a.refY+a.cfg.ApexBand {
		if a.tilt < a.cfg.MaxTilt {
			a.tilt = a.cfg.MaxTilt
		}
	} else if a.tilt > a.cfg.MinTilt {
		a.tilt = math.Max(a.tilt-a.cfg.TiltRate, a.cfg.MinTilt)
	}

	return d
}

// Animate advances the wing cycle F0 -> F1 -> F2 -> F1 -> F0, holding each
// pose for AnimationTicks. In a steep dive the wing is frozen at F1.
func (a *Actor) Animate() {
	n := a.cfg.AnimationTicks
	a.frameCount++

	switch {
	case a.frameCount <= n:
		a.frame = FrameWingUp
	case a.frameCount <= 2*n:
		a.frame = FrameWingMid
	case a.frameCount <= 3*n:
		a.frame = FrameWingDown
	case a.frameCount <= 4*n:
		a.frame = FrameWingMid
	case a.frameCount == 4*n+1:
		a.frame = FrameWingUp
		a.frameCount = 0
	}

	if a.tilt <= a.cfg.DiveTilt {
		a.frame = FrameWingMid
		a.frameCount = 2 * n
	}
}

// Mask returns the collision mask of the current wing pose.
func (a *Actor) Mask() *core.Mask {
	return a.masks[a.frame]
}

// LowerBound is the Y used for the floor check. The bottom FloorMargin rows
// of the sprite may sink into the ground before the session ends.
func (a *Actor) LowerBound() float64 {
	return a.y + float64(a.masks[FrameWingUp].Height()-a.cfg.FloorMargin)
}

// X returns the fixed horizontal position.
func (a *Actor) X() float64 { return a.x }

// Y returns the vertical position of the sprite's top edge.
func (a *Actor) Y() float64 { return a.y }

// Velocity returns the velocity set by the last impulse.
func (a *Actor) Velocity() float64 { return a.velocity }

// Tilt returns the current tilt in degrees.
func (a *Actor) Tilt() float64 { return a.tilt }

// Frame returns the current wing pose.
func (a *Actor) Frame() Frame { return a.frame }
