package flappy

// Phase is the session's position in its lifecycle.
type Phase int

const (
	PhaseNotStarted Phase = iota // Waiting for the first impulse, no gravity
	PhaseRunning                 // Normal play
	PhaseLost                    // Hit an obstacle, actor still falling
	PhaseEnded                   // Actor reached the floor
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseNotStarted:
		return "not_started"
	case PhaseRunning:
		return "running"
	case PhaseLost:
		return "lost"
	case PhaseEnded:
		return "ended"
	default:
		return "unknown"
	}
}

// ActorView is the presentation-facing pose of the actor.
type ActorView struct {
	X, Y  float64
	Tilt  float64
	Frame Frame
}

// ObstacleView is the presentation-facing state of one obstacle.
type ObstacleView struct {
	X         float64
	GapCenter int
	Top       int
	Bottom    int
	Passed    bool
}

// View returns a value copy of the obstacle's public state.
func (o *Obstacle) View() ObstacleView {
	return ObstacleView{
		X:         o.X,
		GapCenter: o.GapCenter,
		Top:       o.Top,
		Bottom:    o.Bottom,
		Passed:    o.Passed,
	}
}

// GroundView holds the two segment offsets.
type GroundView struct {
	X1, X2 float64
}

// Snapshot captures everything a presenter needs for one tick. It is built
// from copies, so presenters cannot reach back into the simulation.
type Snapshot struct {
	Tick      uint64
	Phase     Phase
	Paused    bool
	Quit      bool
	Score     int
	HighScore int  // As read from the record at session start
	NewRecord bool // Set once the final score has been committed as a record
	Actor     ActorView
	Obstacles []ObstacleView
	Ground    GroundView
}

// Snapshot returns the current session state for presentation and tests.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:      s.tick,
		Phase:     s.phase,
		Paused:    s.paused,
		Quit:      s.quit,
		Score:     s.score,
		HighScore: s.highScore,
		NewRecord: s.summary.NewRecord,
		Actor: ActorView{
			X:     s.actor.X(),
			Y:     s.actor.Y(),
			Tilt:  s.actor.Tilt(),
			Frame: s.actor.Frame(),
		},
		Obstacles: s.field.Obstacles(),
		Ground:    GroundView{X1: s.ground.X1, X2: s.ground.X2},
	}
}
