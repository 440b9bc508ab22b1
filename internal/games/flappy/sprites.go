package flappy

import (
	"fmt"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Frame is one of the actor's three wing poses.
type Frame int

const (
	FrameWingUp   Frame = iota // F0
	FrameWingMid               // F1
	FrameWingDown              // F2
)

// String returns a short name for the frame.
func (f Frame) String() string {
	switch f {
	case FrameWingUp:
		return "F0"
	case FrameWingMid:
		return "F1"
	case FrameWingDown:
		return "F2"
	default:
		return "F?"
	}
}

// Actor art, 17x12 cells; '#' is opaque. The body is shared and only the
// wing rows differ between frames, so near-misses around the rounded
// outline depend on the pose.
var actorArt = [3][]string{
	FrameWingUp: {
		".##..######......",
		"#############....",
		"..############...",
		".##############..",
		".###############.",
		"#################",
		"#################",
		".###############.",
		".##############..",
		"..############...",
		"...##########....",
		".....######......",
	},
	FrameWingMid: {
		".....######......",
		"...##########....",
		"..############...",
		".##############..",
		"################.",
		"#################",
		"#################",
		"################.",
		".##############..",
		"..############...",
		"...##########....",
		".....######......",
	},
	FrameWingDown: {
		".....######......",
		"...##########....",
		"..############...",
		".##############..",
		".###############.",
		"#################",
		"#################",
		".###############.",
		".##############..",
		"..############...",
		"#############....",
		".##..######......",
	},
}

// Sprites holds the collision masks shared by every entity of a session.
type Sprites struct {
	Actor      [3]*core.Mask
	PipeTop    *core.Mask // Cap at the bottom, hangs from above the gap
	PipeBottom *core.Mask // Cap at the top, rises from below the gap
}

// NewSprites builds the masks for the given configuration.
func NewSprites(cfg config.FlappyConfig) (*Sprites, error) {
	s := &Sprites{}

	for f, art := range actorArt {
		m, err := core.NewMaskFromArt(art, cfg.Actor.SpriteScale)
		if err != nil {
			return nil, fmt.Errorf("actor frame %s: %w", Frame(f), err)
		}
		s.Actor[f] = m
	}

	s.PipeBottom = pipeMask(cfg.Obstacles)
	s.PipeTop = s.PipeBottom.FlipVertical()
	return s, nil
}

// MustSprites is NewSprites for configurations already validated.
func MustSprites(cfg config.FlappyConfig) *Sprites {
	s, err := NewSprites(cfg)
	if err != nil {
		panic(err)
	}
	return s
}

// pipeMask draws an upright pipe: a full-width cap on top of a narrower body.
func pipeMask(cfg config.ObstacleConfig) *core.Mask {
	m := core.NewMask(cfg.Width, cfg.Height)
	m.FillRect(core.NewRect(0, 0, cfg.Width, cfg.CapHeight))
	m.FillRect(core.NewRect(cfg.CapOverhang, cfg.CapHeight, cfg.Width-2*cfg.CapOverhang, cfg.Height-cfg.CapHeight))
	return m
}
