package flappy

import (
	"bytes"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// memStore is an in-memory ScoreStore.
type memStore struct {
	best    int
	readErr error
	// lateErr fails reads once a commit has been made.
	lateErr error
	reads   int
	commits int
}

func (m *memStore) Read() (int, error) {
	m.reads++
	if m.readErr != nil {
		return 0, m.readErr
	}
	if m.lateErr != nil && m.commits > 0 {
		return 0, m.lateErr
	}
	return m.best, nil
}

func (m *memStore) CommitIfHigher(score int) (bool, error) {
	m.commits++
	if m.readErr != nil {
		return false, m.readErr
	}
	if score > m.best {
		m.best = score
		return true, nil
	}
	return false, nil
}

func newTestSession(seed int64) *Session {
	cfg := config.DefaultFlappyConfig()
	return NewSession(cfg, MustSprites(cfg), seed, nil)
}

func jump() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionJump)
	return in
}

// runToEnd ticks until the session ends, failing after limit ticks.
func runToEnd(t *testing.T, s *Session, limit int) {
	t.Helper()
	for i := 0; i < limit; i++ {
		if s.Phase() == PhaseEnded {
			return
		}
		s.Tick()
	}
	if s.Phase() != PhaseEnded {
		t.Fatalf("session still %s after %d ticks", s.Phase(), limit)
	}
}

func TestSessionNotStartedHasNoGravity(t *testing.T) {
	s := newTestSession(1)

	for i := 0; i < 20; i++ {
		s.Tick()
	}

	snap := s.Snapshot()
	if snap.Phase != PhaseNotStarted {
		t.Fatalf("phase = %s, want not_started", snap.Phase)
	}
	if snap.Actor.Y != 350 {
		t.Errorf("actor moved before start: y = %v", snap.Actor.Y)
	}
	if snap.Obstacles[0].X != 700 {
		t.Errorf("obstacles moved before start: x = %v", snap.Obstacles[0].X)
	}
	if snap.Ground.X1 != -100 {
		t.Errorf("ground should scroll before start: X1 = %v, want -100", snap.Ground.X1)
	}
}

func TestSessionFirstImpulseStarts(t *testing.T) {
	s := newTestSession(1)

	s.Step(jump())

	if s.Phase() != PhaseRunning {
		t.Fatalf("phase = %s, want running", s.Phase())
	}
	if got := s.Actor().Y(); got != 339 {
		t.Errorf("y after first impulse tick = %v, want 339", got)
	}
	if got := s.Actor().Tilt(); got != 25 {
		t.Errorf("tilt after first impulse tick = %v, want 25", got)
	}
}

func TestSessionWithoutImpulseEndsAtZero(t *testing.T) {
	s := newTestSession(1)
	s.Start()

	runToEnd(t, s, 200)

	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}

	store := &memStore{best: 3}
	sum, err := s.Finish(store)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.NewRecord {
		t.Error("score 0 should not beat 3")
	}
	if sum.HighScore != 3 || store.best != 3 {
		t.Errorf("high score = %d (stored %d), want 3", sum.HighScore, store.best)
	}
}

// alignFirstObstacle puts the initial obstacle's gap around the path of an
// actor flapping every 13 ticks.
func alignFirstObstacle(s *Session) *Obstacle {
	o := s.field.obstacles[0]
	o.GapCenter = 210
	o.Top = 210 - 640
	o.Bottom = 410
	return o
}

func TestSessionScoresOnFirstTickBehindActor(t *testing.T) {
	s := newTestSession(1)
	o := alignFirstObstacle(s)

	for step := 0; step < 200; step++ {
		in := core.NewInputFrame()
		if step%13 == 0 {
			in.Set(core.ActionJump)
		}
		s.Step(in)

		if s.Phase() != PhaseRunning {
			t.Fatalf("step %d: phase = %s, want running (y=%v, obstacle x=%v)", step, s.Phase(), s.Actor().Y(), o.X)
		}
		if o.X >= 230 {
			if s.Score() != 0 {
				t.Fatalf("step %d: scored at x=%v", step, o.X)
			}
			continue
		}

		if o.X != 225 {
			t.Fatalf("first tick behind the actor should be x=225, got %v", o.X)
		}
		if s.Score() != 1 {
			t.Fatalf("score = %d, want 1", s.Score())
		}
		if got := len(s.Snapshot().Obstacles); got != 2 {
			t.Errorf("obstacles after pass = %d, want 2", got)
		}
		return
	}
	t.Fatal("obstacle never passed the actor")
}

func TestSessionNewRecord(t *testing.T) {
	s := newTestSession(1)
	alignFirstObstacle(s)

	for step := 0; s.Score() == 0 && step < 200; step++ {
		in := core.NewInputFrame()
		if step%13 == 0 {
			in.Set(core.ActionJump)
		}
		s.Step(in)
	}
	runToEnd(t, s, 500)

	store := &memStore{best: 0}
	sum, err := s.Finish(store)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !sum.NewRecord || sum.HighScore != s.Score() {
		t.Errorf("summary = %+v, want a new record of %d", sum, s.Score())
	}
	if !s.Snapshot().NewRecord {
		t.Error("snapshot should report the new record")
	}

	again, err := s.Finish(store)
	if err != nil || again != sum {
		t.Errorf("second Finish = %+v, %v; want %+v", again, err, sum)
	}
	if store.commits != 1 {
		t.Errorf("commits = %d, want 1", store.commits)
	}
}

func TestSessionLostFreezesWorld(t *testing.T) {
	s := newTestSession(1)
	o := s.field.obstacles[0]
	o.X = 235
	o.GapCenter = 100
	o.Top = 100 - 640
	o.Bottom = 300

	s.Start()
	s.Tick()

	if s.Phase() != PhaseLost {
		t.Fatalf("phase = %s, want lost", s.Phase())
	}
	frozen := s.Snapshot()

	s.Impulse()
	s.Tick()
	s.Tick()

	snap := s.Snapshot()
	if snap.Ground != frozen.Ground {
		t.Errorf("ground moved after collision: %+v -> %+v", frozen.Ground, snap.Ground)
	}
	if snap.Obstacles[0].X != frozen.Obstacles[0].X {
		t.Errorf("obstacle moved after collision: %v -> %v", frozen.Obstacles[0].X, snap.Obstacles[0].X)
	}
	if snap.Actor.Y <= frozen.Actor.Y {
		t.Errorf("actor should keep falling: %v -> %v", frozen.Actor.Y, snap.Actor.Y)
	}
	if s.Actor().Velocity() != 0 {
		t.Errorf("impulse applied after collision: velocity = %v", s.Actor().Velocity())
	}

	runToEnd(t, s, 200)
	if s.Score() != 0 {
		t.Errorf("score = %d, want 0", s.Score())
	}
}

func TestSessionEndedIgnoresInput(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	runToEnd(t, s, 200)

	before := s.Snapshot()
	s.Step(jump())
	s.Tick()

	if !reflect.DeepEqual(before, s.Snapshot()) {
		t.Error("ended session changed after more input")
	}
	if !s.State().GameOver {
		t.Error("state should report game over")
	}
}

func TestSessionQuitSkipsPersistence(t *testing.T) {
	s := newTestSession(1)
	s.Step(jump())
	s.Step(core.NewInputFrame())

	quit := core.NewInputFrame()
	quit.Set(core.ActionQuit)
	s.Step(quit)

	store := &memStore{best: 0}
	sum, err := s.Finish(store)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if !sum.Quit {
		t.Error("summary should report quit")
	}
	if store.commits != 0 || store.reads != 0 {
		t.Errorf("quit session touched the store: %d reads, %d commits", store.reads, store.commits)
	}

	ticks := s.Ticks()
	s.Step(jump())
	if s.Ticks() != ticks {
		t.Error("quit session kept ticking")
	}
}

func TestSessionFinishBeforeEnd(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	s.Tick()

	if _, err := s.Finish(&memStore{}); !errors.Is(err, ErrNotEnded) {
		t.Errorf("Finish error = %v, want ErrNotEnded", err)
	}
}

func TestSessionFinishCommitError(t *testing.T) {
	s := newTestSession(1)
	s.Start()
	runToEnd(t, s, 200)

	errDisk := errors.New("disk on fire")
	_, err := s.Finish(&memStore{readErr: errDisk})
	if !errors.Is(err, errDisk) {
		t.Errorf("Finish error = %v, want wrapped %v", err, errDisk)
	}
}

func TestSessionFinishReadAfterCommitFails(t *testing.T) {
	var buf bytes.Buffer
	cfg := config.DefaultFlappyConfig()
	s := NewSession(cfg, MustSprites(cfg), 1, log.New(&buf))
	s.SetHighScore(5)
	s.Start()
	runToEnd(t, s, 200)

	store := &memStore{best: 5, lateErr: errors.New("record vanished")}
	sum, err := s.Finish(store)
	if err != nil {
		t.Fatalf("Finish: %v", err)
	}
	if sum.NewRecord {
		t.Error("score 0 should not be a new record")
	}
	if sum.HighScore != 5 {
		t.Errorf("high score = %d, want the session's 5", sum.HighScore)
	}
	if out := buf.String(); !strings.Contains(out, "high score unavailable after commit") || !strings.Contains(out, "record vanished") {
		t.Errorf("failed read not logged, got %q", out)
	}
}

func TestSessionPause(t *testing.T) {
	s := newTestSession(1)
	s.Step(jump())

	pause := core.NewInputFrame()
	pause.Set(core.ActionPause)
	s.Step(pause)

	paused := s.Snapshot()
	if !paused.Paused {
		t.Fatal("session should be paused")
	}
	s.Step(core.NewInputFrame())
	if s.Snapshot().Tick != paused.Tick {
		t.Error("paused session kept ticking")
	}

	s.Step(pause)
	if s.Snapshot().Paused {
		t.Error("second pause should resume")
	}
}

func TestSessionDeterminism(t *testing.T) {
	play := func() []Snapshot {
		s := newTestSession(12345)
		var snaps []Snapshot
		for step := 0; step < 400 && s.Phase() != PhaseEnded; step++ {
			in := core.NewInputFrame()
			if step%14 == 0 {
				in.Set(core.ActionJump)
			}
			s.Step(in)
			snaps = append(snaps, s.Snapshot())
		}
		return snaps
	}

	a, b := play(), play()
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed and inputs produced different runs")
	}
}
