package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the default configuration.
// Mirrors defaults/flappy.yaml and is used if the embedded YAML cannot be parsed.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		World: WorldConfig{
			Width:  600,
			Height: 800,
			Floor:  730,
		},
		Timing: TimingConfig{
			TickRate:    60,
			TickDelayMS: 30,
		},
		Actor: ActorConfig{
			StartX:               230,
			StartY:               350,
			ImpulseVelocity:      -10.5,
			Gravity:              3,
			TerminalDisplacement: 16,
			AscentBias:           2,
			MaxTilt:              25,
			MinTilt:              -90,
			TiltRate:             20,
			DiveTilt:             -80,
			ApexBand:             50,
			AnimationTicks:       5,
			FloorMargin:          10,
			SpriteScale:          4,
		},
		Obstacles: ObstacleConfig{
			Speed:        5,
			Gap:          200,
			GapCenterMin: 50,
			GapCenterMax: 450,
			FirstX:       700,
			SpawnX:       600,
			Width:        104,
			Height:       640,
			CapHeight:    48,
			CapOverhang:  4,
		},
		Ground: GroundConfig{
			Speed:        5,
			SegmentWidth: 672,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
