package flappy

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// ErrNotEnded is returned by Finish before the session reached PhaseEnded.
var ErrNotEnded = errors.New("flappy: session has not ended")

// ScoreStore persists the best score across sessions.
type ScoreStore interface {
	// Read returns the stored best score.
	Read() (int, error)
	// CommitIfHigher stores score if it beats the stored value and reports
	// whether it did.
	CommitIfHigher(score int) (bool, error)
}

// Summary is the terminal report of a session.
type Summary struct {
	Score     int
	HighScore int  // Best score after the commit
	NewRecord bool // Score replaced the stored best
	Quit      bool // Session was abandoned; nothing was persisted
}

// Session is one play-through: it owns the actor, obstacles and ground and
// moves them through NotStarted -> Running -> Lost -> Ended.
type Session struct {
	cfg    config.FlappyConfig
	actor  *Actor
	field  *ObstacleField
	ground *Ground
	logger *log.Logger

	phase     Phase
	paused    bool
	quit      bool
	score     int
	highScore int
	tick      uint64

	finished bool
	summary  Summary
}

// NewSession creates a session with the actor at its start position and one
// obstacle waiting off-screen. A nil logger discards output.
func NewSession(cfg config.FlappyConfig, sprites *Sprites, seed int64, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Session{
		cfg:    cfg,
		actor:  NewActor(cfg.Actor, sprites),
		field:  NewObstacleField(seed, cfg.Obstacles, sprites),
		ground: NewGround(cfg.Ground),
		logger: logger,
		phase:  PhaseNotStarted,
	}
}

// Step consumes one input frame and advances the simulation by one tick.
// Only jump, pause and quit are meaningful; other actions are ignored.
func (s *Session) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionQuit) {
		s.Quit()
	}
	if s.quit || s.phase == PhaseEnded {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionPause) && s.phase != PhaseNotStarted {
		s.paused = !s.paused
	}
	if s.paused {
		return core.StepResult{State: s.State()}
	}

	if in.Has(core.ActionJump) {
		s.Impulse()
	}
	s.Tick()

	return core.StepResult{State: s.State()}
}

// Impulse flaps the actor. The first impulse also starts the session.
// Impulses after a collision are ignored.
func (s *Session) Impulse() {
	switch s.phase {
	case PhaseNotStarted:
		s.setPhase(PhaseRunning)
		s.actor.Impulse()
	case PhaseRunning:
		s.actor.Impulse()
	}
}

// Start switches gravity on without an impulse.
func (s *Session) Start() {
	if s.phase == PhaseNotStarted {
		s.setPhase(PhaseRunning)
	}
}

// Quit abandons the session from any phase. A quit session is never persisted.
func (s *Session) Quit() {
	if !s.quit {
		s.logger.Debug("session quit", "phase", s.phase, "tick", s.tick, "score", s.score)
	}
	s.quit = true
}

// Tick advances one simulation step: actor, then ground, then obstacles.
// After a collision the ground and obstacles freeze while the actor keeps
// falling; reaching the floor ends the session in any phase.
func (s *Session) Tick() {
	if s.quit || s.phase == PhaseEnded {
		return
	}
	s.tick++

	started := s.phase != PhaseNotStarted
	if started {
		s.actor.Advance()
	}

	if s.phase != PhaseLost {
		s.ground.Advance()
		if started {
			res := s.field.Advance(s.actor)
			s.score += res.Scored
			if res.Scored > 0 {
				s.logger.Debug("obstacle passed", "score", s.score, "tick", s.tick)
			}
			if res.Collided {
				s.setPhase(PhaseLost)
			}
		}
	}

	if s.actor.LowerBound() >= float64(s.cfg.World.Floor) {
		s.setPhase(PhaseEnded)
		return
	}

	s.actor.Animate()
}

// Finish commits the final score once the session has ended and returns
// the summary. Quit sessions return immediately without touching the
// store; repeated calls return the first summary. A nil store skips
// persistence.
func (s *Session) Finish(store ScoreStore) (Summary, error) {
	if s.quit {
		return Summary{Score: s.score, HighScore: s.highScore, Quit: true}, nil
	}
	if s.phase != PhaseEnded {
		return Summary{}, ErrNotEnded
	}
	if s.finished {
		return s.summary, nil
	}

	sum := Summary{Score: s.score, HighScore: max(s.highScore, s.score)}
	if store != nil {
		newRecord, err := store.CommitIfHigher(s.score)
		if err != nil {
			return sum, fmt.Errorf("flappy: commit score %d: %w", s.score, err)
		}
		sum.NewRecord = newRecord
		if !newRecord {
			if best, err := store.Read(); err != nil {
				s.logger.Warn("high score unavailable after commit, keeping session best", "err", err)
			} else {
				sum.HighScore = best
			}
		}
	}

	s.finished = true
	s.summary = sum
	s.logger.Info("session ended", "score", sum.Score, "high_score", sum.HighScore, "new_record", sum.NewRecord, "ticks", s.tick)
	return sum, nil
}

// SetHighScore sets the best score shown while playing.
func (s *Session) SetHighScore(score int) {
	s.highScore = score
}

// State returns the platform-facing game state.
func (s *Session) State() core.GameState {
	return core.GameState{
		Score:    s.score,
		GameOver: s.phase == PhaseEnded,
		Paused:   s.paused,
		Quit:     s.quit,
	}
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase { return s.phase }

// Score returns the number of obstacles passed.
func (s *Session) Score() int { return s.score }

// Ticks returns the number of simulated ticks.
func (s *Session) Ticks() uint64 { return s.tick }

// Actor exposes the actor for presentation and tests.
func (s *Session) Actor() *Actor { return s.actor }

func (s *Session) setPhase(p Phase) {
	if p == s.phase {
		return
	}
	s.logger.Debug("phase changed", "from", s.phase, "to", p, "tick", s.tick, "score", s.score)
	s.phase = p
}
