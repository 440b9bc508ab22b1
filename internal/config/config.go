// Package config provides YAML-based tuning for the flappy simulation.
// Every physics and layout constant lives here so each component receives
// plain values at construction instead of sharing globals.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains all configuration for the game.
type FlappyConfig struct {
	World     WorldConfig    `yaml:"world"`
	Timing    TimingConfig   `yaml:"timing"`
	Actor     ActorConfig    `yaml:"actor"`
	Obstacles ObstacleConfig `yaml:"obstacles"`
	Ground    GroundConfig   `yaml:"ground"`
}

// WorldConfig defines the playfield in world pixels.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Floor  int `yaml:"floor"` // Y of the ground line
}

// TimingConfig defines frame pacing. Physics is per tick, so these only
// change real-time speed.
type TimingConfig struct {
	TickRate    int `yaml:"tick_rate"`     // Target ticks per second
	TickDelayMS int `yaml:"tick_delay_ms"` // Extra fixed delay added to every tick
}

// ActorConfig defines the player-controlled actor.
type ActorConfig struct {
	StartX               float64 `yaml:"start_x"`
	StartY               float64 `yaml:"start_y"`
	ImpulseVelocity      float64 `yaml:"impulse_velocity"`      // Velocity set by an impulse (negative = up)
	Gravity              float64 `yaml:"gravity"`               // Acceleration coefficient in d = v*t + g*t²/2
	TerminalDisplacement float64 `yaml:"terminal_displacement"` // Max fall per tick
	AscentBias           float64 `yaml:"ascent_bias"`           // Extra lift applied while ascending
	MaxTilt              float64 `yaml:"max_tilt"`
	MinTilt              float64 `yaml:"min_tilt"`
	TiltRate             float64 `yaml:"tilt_rate"` // Degrees lost per falling tick
	DiveTilt             float64 `yaml:"dive_tilt"` // At or below this the wing freezes
	ApexBand             float64 `yaml:"apex_band"` // Distance below the impulse height still tilted up
	AnimationTicks       int     `yaml:"animation_ticks"`
	FloorMargin          int     `yaml:"floor_margin"` // Sprite rows allowed to sink below the floor
	SpriteScale          int     `yaml:"sprite_scale"`
}

// ObstacleConfig defines pipe geometry, spawning and movement.
type ObstacleConfig struct {
	Speed        float64 `yaml:"speed"`
	Gap          int     `yaml:"gap"`
	GapCenterMin int     `yaml:"gap_center_min"` // Inclusive
	GapCenterMax int     `yaml:"gap_center_max"` // Exclusive
	FirstX       float64 `yaml:"first_x"`
	SpawnX       float64 `yaml:"spawn_x"`
	Width        int     `yaml:"width"`
	Height       int     `yaml:"height"`
	CapHeight    int     `yaml:"cap_height"`
	CapOverhang  int     `yaml:"cap_overhang"` // How far the cap sticks out past the body on each side
}

// GroundConfig defines the scrolling ground strip.
type GroundConfig struct {
	Speed        float64 `yaml:"speed"`
	SegmentWidth float64 `yaml:"segment_width"`
}

// Validate reports configuration values the simulation cannot run with.
func (c FlappyConfig) Validate() error {
	var errs []error

	if c.World.Width <= 0 || c.World.Height <= 0 {
		errs = append(errs, fmt.Errorf("world size must be positive, got %dx%d", c.World.Width, c.World.Height))
	}
	if c.World.Floor <= 0 || c.World.Floor > c.World.Height {
		errs = append(errs, fmt.Errorf("floor %d must be inside the world height %d", c.World.Floor, c.World.Height))
	}
	if c.Timing.TickRate <= 0 {
		errs = append(errs, fmt.Errorf("tick rate must be positive, got %d", c.Timing.TickRate))
	}
	if c.Timing.TickDelayMS < 0 {
		errs = append(errs, fmt.Errorf("tick delay must not be negative, got %d", c.Timing.TickDelayMS))
	}
	if c.Actor.MinTilt >= c.Actor.MaxTilt {
		errs = append(errs, fmt.Errorf("min tilt %.1f must be below max tilt %.1f", c.Actor.MinTilt, c.Actor.MaxTilt))
	}
	if c.Actor.AnimationTicks <= 0 {
		errs = append(errs, fmt.Errorf("animation ticks must be positive, got %d", c.Actor.AnimationTicks))
	}
	if c.Actor.SpriteScale <= 0 {
		errs = append(errs, fmt.Errorf("sprite scale must be positive, got %d", c.Actor.SpriteScale))
	}
	if c.Obstacles.GapCenterMin >= c.Obstacles.GapCenterMax {
		errs = append(errs, fmt.Errorf("gap center range [%d, %d) is empty", c.Obstacles.GapCenterMin, c.Obstacles.GapCenterMax))
	}
	if c.Obstacles.Gap <= 0 {
		errs = append(errs, fmt.Errorf("gap must be positive, got %d", c.Obstacles.Gap))
	}
	if c.Obstacles.Width <= 0 || c.Obstacles.Height <= 0 {
		errs = append(errs, fmt.Errorf("obstacle size must be positive, got %dx%d", c.Obstacles.Width, c.Obstacles.Height))
	}
	if c.Obstacles.CapHeight < 0 || c.Obstacles.CapHeight > c.Obstacles.Height {
		errs = append(errs, fmt.Errorf("cap height %d must fit in obstacle height %d", c.Obstacles.CapHeight, c.Obstacles.Height))
	}
	if c.Obstacles.CapOverhang < 0 || 2*c.Obstacles.CapOverhang >= c.Obstacles.Width {
		errs = append(errs, fmt.Errorf("cap overhang %d leaves no body in width %d", c.Obstacles.CapOverhang, c.Obstacles.Width))
	}
	if c.Ground.SegmentWidth <= 0 {
		errs = append(errs, fmt.Errorf("ground segment width must be positive, got %.1f", c.Ground.SegmentWidth))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: invalid: %w", errors.Join(errs...))
	}
	return nil
}
