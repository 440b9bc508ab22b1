// Package flappy implements a Flappy Bird-style game.
// The player flaps a bird through gaps between scrolling pipe pairs; the
// run ends when the bird hits the ground. Collisions are pixel-accurate
// against per-frame sprite masks in a fixed 600x800 world, and the world
// is scaled onto whatever terminal size the host provides.
package flappy

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game adapts a sequence of sessions to the platform's game loop: Reset
// starts a fresh session, Step and Render drive the current one.
type Game struct {
	cfg      config.FlappyConfig
	sprites  *Sprites
	renderer *Renderer
	logger   *log.Logger

	session   *Session
	highScore int
	seed      int64 // Seed of the first session
	current   int64 // Seed of the current session
	resets    int64
}

// New creates a game for a validated configuration. A nil logger discards output.
func New(cfg config.FlappyConfig, logger *log.Logger) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sprites, err := NewSprites(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	g := &Game{
		cfg:      cfg,
		sprites:  sprites,
		renderer: NewRenderer(cfg, sprites),
		logger:   logger,
	}
	g.session = NewSession(cfg, sprites, 0, logger)
	return g, nil
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset starts a new session. Every reset after the first uses the next
// seed, so consecutive runs see different pipes.
func (g *Game) Reset(rt core.RuntimeConfig) {
	if g.resets == 0 {
		g.seed = rt.Seed
	}
	g.current = g.seed + g.resets
	g.resets++

	g.session = NewSession(g.cfg, g.sprites, g.current, g.logger)
	g.session.SetHighScore(g.highScore)
}

// SetHighScore sets the best score shown by this and later sessions.
func (g *Game) SetHighScore(score int) {
	g.highScore = score
	g.session.SetHighScore(score)
}

// Step advances the current session by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	return g.session.Step(in)
}

// Render draws the current session to the screen.
func (g *Game) Render(dst *core.Screen) {
	g.renderer.Render(g.session.Snapshot(), dst)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return g.session.State()
}

// Finish commits the ended session's score and remembers the new best.
func (g *Game) Finish(store ScoreStore) (Summary, error) {
	sum, err := g.session.Finish(store)
	if err != nil {
		return sum, err
	}
	if sum.HighScore > g.highScore {
		g.highScore = sum.HighScore
	}
	return sum, nil
}

// Seed returns the seed of the current session.
func (g *Game) Seed() int64 {
	return g.current
}

// Session returns the session currently being played.
func (g *Game) Session() *Session {
	return g.session
}

// Config returns the configuration the game was built with.
func (g *Game) Config() config.FlappyConfig {
	return g.cfg
}
