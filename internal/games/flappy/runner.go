package flappy

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Event is a host input relevant to the simulation.
type Event int

const (
	EventNone    Event = iota
	EventImpulse       // Flap
	EventQuit          // Close the session without persisting
)

// InputSource yields the events that arrived since the last poll.
type InputSource interface {
	Poll() []Event
}

// Presenter receives a snapshot after every tick.
type Presenter interface {
	Present(Snapshot)
}

// Pacer blocks until the next tick is due.
type Pacer interface {
	Wait(ctx context.Context) error
}

// SimulationResult is what a finished session reports to its host.
type SimulationResult struct {
	FinalScore int
	HighScore  int
	NewRecord  bool
	Quit       bool
	Ticks      uint64
	ReadErr    error // Non-nil when the stored best could not be read at start
}

// Runner drives sessions against a host's input, presentation and storage.
type Runner struct {
	cfg     config.FlappyConfig
	sprites *Sprites
	seed    int64
	started int

	Input     InputSource
	Presenter Presenter
	Store     ScoreStore
	Pacer     Pacer
	Logger    *log.Logger

	// AutoStart begins each session with gravity on instead of waiting for
	// the first impulse.
	AutoStart bool
	// MaxTicks stops a session as quit after this many ticks. Zero means no limit.
	MaxTicks uint64
}

// NewRunner creates a runner. Input, Presenter, Store and Pacer may be left
// nil: no input, no output, no persistence and no waiting respectively.
func NewRunner(cfg config.FlappyConfig, seed int64) (*Runner, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	sprites, err := NewSprites(cfg)
	if err != nil {
		return nil, err
	}
	return &Runner{cfg: cfg, sprites: sprites, seed: seed}, nil
}

// Sprites returns the masks shared by every session of this runner.
func (r *Runner) Sprites() *Sprites {
	return r.sprites
}

// StartSession plays one session from NotStarted until it ends or is quit.
// Context cancellation is treated as a quit. Commit errors are returned
// together with the filled-in result.
func (r *Runner) StartSession(ctx context.Context) (SimulationResult, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	seed := r.seed + int64(r.started)
	r.started++

	session := NewSession(r.cfg, r.sprites, seed, logger)

	var res SimulationResult
	if r.Store != nil {
		best, err := r.Store.Read()
		if err != nil {
			logger.Warn("high score unavailable, showing 0", "err", err)
			res.ReadErr = err
			best = 0
		}
		session.SetHighScore(best)
		res.HighScore = best
	}
	if r.AutoStart {
		session.Start()
	}
	logger.Debug("session started", "seed", seed)

	for session.Phase() != PhaseEnded && !session.State().Quit {
		in := r.poll()
		if ctx.Err() != nil {
			in.Set(core.ActionQuit)
		}
		session.Step(in)

		if r.Presenter != nil && session.Phase() != PhaseEnded {
			r.Presenter.Present(session.Snapshot())
		}

		if r.MaxTicks > 0 && session.Ticks() >= r.MaxTicks && session.Phase() != PhaseEnded {
			session.Quit()
			break
		}

		if r.Pacer != nil && session.Phase() != PhaseEnded && !session.State().Quit {
			if err := r.Pacer.Wait(ctx); err != nil {
				session.Quit()
			}
		}
	}

	res.FinalScore = session.Score()
	res.Ticks = session.Ticks()

	sum, err := session.Finish(r.Store)
	res.Quit = sum.Quit
	res.NewRecord = sum.NewRecord
	if !sum.Quit {
		res.HighScore = sum.HighScore
	}
	if r.Presenter != nil && !sum.Quit {
		r.Presenter.Present(session.Snapshot())
	}
	if err != nil {
		return res, fmt.Errorf("flappy: finish session: %w", err)
	}
	return res, nil
}

// poll translates pending events into an input frame.
func (r *Runner) poll() core.InputFrame {
	in := core.NewInputFrame()
	if r.Input == nil {
		return in
	}
	for _, ev := range r.Input.Poll() {
		switch ev {
		case EventImpulse:
			in.Set(core.ActionJump)
		case EventQuit:
			in.Set(core.ActionQuit)
		}
	}
	return in
}

// FramePacer paces ticks at a fixed rate plus a constant delay.
type FramePacer struct {
	ticker *time.Ticker
	delay  time.Duration
}

// NewFramePacer creates a pacer from the timing configuration.
func NewFramePacer(cfg config.TimingConfig) *FramePacer {
	return &FramePacer{
		ticker: time.NewTicker(time.Second / time.Duration(cfg.TickRate)),
		delay:  time.Duration(cfg.TickDelayMS) * time.Millisecond,
	}
}

// Wait sleeps the fixed delay and then waits for the next tick.
func (p *FramePacer) Wait(ctx context.Context) error {
	if p.delay > 0 {
		timer := time.NewTimer(p.delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-p.ticker.C:
		return nil
	}
}

// Stop releases the ticker.
func (p *FramePacer) Stop() {
	p.ticker.Stop()
}

// ScriptedInput replays impulses at fixed tick numbers. Tick numbers are
// counted by polls, starting at 0.
type ScriptedInput struct {
	impulses map[int]bool
	quitAt   int
	polls    int
}

// NewScriptedInput creates an input source that flaps on the given polls.
// A negative quitAt never quits.
func NewScriptedInput(impulseTicks []int, quitAt int) *ScriptedInput {
	s := &ScriptedInput{impulses: make(map[int]bool, len(impulseTicks)), quitAt: quitAt}
	for _, t := range impulseTicks {
		s.impulses[t] = true
	}
	return s
}

// NewPeriodicInput flaps every `every` polls starting at poll 0, until limit.
func NewPeriodicInput(every, limit int) *ScriptedInput {
	var ticks []int
	if every > 0 {
		for t := 0; t < limit; t += every {
			ticks = append(ticks, t)
		}
	}
	return NewScriptedInput(ticks, -1)
}

// Poll implements InputSource.
func (s *ScriptedInput) Poll() []Event {
	n := s.polls
	s.polls++

	var events []Event
	if s.impulses[n] {
		events = append(events, EventImpulse)
	}
	if s.quitAt >= 0 && n >= s.quitAt {
		events = append(events, EventQuit)
	}
	return events
}
