package flappy

import (
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g, err := New(config.DefaultFlappyConfig(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return g
}

func TestGameDeterminism(t *testing.T) {
	// Test that given the same seed and inputs, the game produces identical results
	cfg := core.RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     12345,
	}

	// Flap every 13 ticks to stay airborne
	inputSequence := make([]core.InputFrame, 400)
	for i := range inputSequence {
		inputSequence[i] = core.NewInputFrame()
		if i%13 == 0 {
			inputSequence[i].Set(core.ActionJump)
		}
	}

	run := func() (core.GameState, uint64) {
		g := newTestGame(t)
		g.Reset(cfg)
		var state core.GameState
		for _, in := range inputSequence {
			state = g.Step(in).State
			if state.GameOver {
				break
			}
		}
		return state, g.Session().Ticks()
	}

	state1, ticks1 := run()
	state2, ticks2 := run()

	if state1.Score != state2.Score {
		t.Errorf("Determinism failed: scores differ. Run1=%d, Run2=%d", state1.Score, state2.Score)
	}
	if ticks1 != ticks2 {
		t.Errorf("Determinism failed: tick counts differ. Run1=%d, Run2=%d", ticks1, ticks2)
	}
}

func TestGameReset(t *testing.T) {
	g := newTestGame(t)
	g.Reset(core.DefaultConfig())

	// Play a few ticks
	for i := 0; i < 50; i++ {
		in := core.NewInputFrame()
		if i%10 == 0 {
			in.Set(core.ActionJump)
		}
		g.Step(in)
	}

	g.Reset(core.DefaultConfig())

	state := g.State()
	if state.Score != 0 || state.GameOver || state.Paused {
		t.Errorf("state after reset = %+v, want a fresh game", state)
	}
	if g.Session().Phase() != PhaseNotStarted {
		t.Errorf("phase after reset = %s, want not_started", g.Session().Phase())
	}
}

func TestGameOverAndFinish(t *testing.T) {
	g := newTestGame(t)
	g.Reset(core.DefaultConfig())
	g.SetHighScore(0)

	g.Step(jump())
	for i := 0; i < 500 && !g.State().GameOver; i++ {
		g.Step(core.NewInputFrame())
	}
	if !g.State().GameOver {
		t.Fatal("game should end once the actor hits the ground")
	}

	store := &memStore{best: 9}
	sum, err := g.Finish(store)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.NewRecord || sum.HighScore != 9 {
		t.Errorf("summary = %+v, want high score 9 and no record", sum)
	}

	g.Reset(core.DefaultConfig())
	if got := g.Session().Snapshot().HighScore; got != 9 {
		t.Errorf("next session shows high score %d, want 9", got)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	g.Reset(core.DefaultConfig())
	g.Step(jump())

	screen := core.NewScreen(80, 24)
	g.Render(screen)

	found := false
	for y := 0; y < screen.Height(); y++ {
		for x := 0; x < screen.Width(); x++ {
			if screen.Get(x, y) == ActorChar {
				found = true
			}
		}
	}
	if !found {
		t.Errorf("actor not drawn:\n%s", screen.String())
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Actor.MinTilt = cfg.Actor.MaxTilt

	if _, err := New(cfg, nil); err == nil {
		t.Error("expected an error for an inverted tilt range")
	}
}
