package flappy

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// recorder is a Presenter that keeps every snapshot.
type recorder struct {
	snaps []Snapshot
}

func (r *recorder) Present(s Snapshot) {
	r.snaps = append(r.snaps, s)
}

func (r *recorder) last() Snapshot {
	return r.snaps[len(r.snaps)-1]
}

func newTestRunner(t *testing.T, seed int64) *Runner {
	t.Helper()
	r, err := NewRunner(config.DefaultFlappyConfig(), seed)
	if err != nil {
		t.Fatalf("NewRunner: %v", err)
	}
	return r
}

func TestRunnerNoImpulseSession(t *testing.T) {
	r := newTestRunner(t, 1)
	store := &memStore{best: 3}
	rec := &recorder{}
	r.Store = store
	r.Presenter = rec
	r.AutoStart = true

	res, err := r.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if res.FinalScore != 0 || res.Quit || res.NewRecord {
		t.Errorf("result = %+v, want score 0, not quit, no record", res)
	}
	if res.HighScore != 3 {
		t.Errorf("high score = %d, want 3", res.HighScore)
	}
	if res.Ticks == 0 || uint64(len(rec.snaps)) != res.Ticks {
		t.Errorf("presented %d snapshots for %d ticks", len(rec.snaps), res.Ticks)
	}
	if rec.last().Phase != PhaseEnded {
		t.Errorf("last snapshot phase = %s, want ended", rec.last().Phase)
	}
	if rec.snaps[0].HighScore != 3 {
		t.Errorf("displayed high score = %d, want 3", rec.snaps[0].HighScore)
	}
	if store.commits != 1 {
		t.Errorf("commits = %d, want 1", store.commits)
	}
}

func TestRunnerReadErrorFallsBackToZero(t *testing.T) {
	errBroken := errors.New("broken record")

	r := newTestRunner(t, 1)
	rec := &recorder{}
	r.Store = &memStore{readErr: errBroken}
	r.Presenter = rec
	r.AutoStart = true

	res, err := r.StartSession(context.Background())

	if !errors.Is(res.ReadErr, errBroken) {
		t.Errorf("ReadErr = %v, want %v", res.ReadErr, errBroken)
	}
	if rec.snaps[0].HighScore != 0 {
		t.Errorf("displayed high score = %d, want 0", rec.snaps[0].HighScore)
	}
	if !errors.Is(err, errBroken) {
		t.Errorf("commit error = %v, want %v", err, errBroken)
	}
	if res.Ticks == 0 {
		t.Error("result should be filled in alongside the commit error")
	}
}

func TestRunnerQuitEvent(t *testing.T) {
	r := newTestRunner(t, 1)
	store := &memStore{}
	rec := &recorder{}
	r.Store = store
	r.Presenter = rec
	r.Input = NewScriptedInput([]int{0}, 5)

	res, err := r.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}

	if !res.Quit {
		t.Error("result should report quit")
	}
	if res.Ticks != 5 {
		t.Errorf("ticks = %d, want 5", res.Ticks)
	}
	if store.commits != 0 {
		t.Errorf("quit session committed %d times", store.commits)
	}
	if !rec.last().Quit {
		t.Error("last snapshot should be the quit state")
	}
}

func TestRunnerContextCancelIsQuit(t *testing.T) {
	r := newTestRunner(t, 1)
	store := &memStore{}
	r.Store = store

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := r.StartSession(ctx)
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !res.Quit || res.Ticks != 0 {
		t.Errorf("result = %+v, want an immediate quit", res)
	}
	if store.commits != 0 {
		t.Error("cancelled session should not commit")
	}
}

func TestRunnerMaxTicks(t *testing.T) {
	r := newTestRunner(t, 1)
	r.MaxTicks = 30

	res, err := r.StartSession(context.Background())
	if err != nil {
		t.Fatalf("StartSession: %v", err)
	}
	if !res.Quit || res.Ticks != 30 {
		t.Errorf("result = %+v, want quit after 30 ticks", res)
	}
}

func TestRunnerSeedAdvancesPerSession(t *testing.T) {
	firstGap := func(r *Runner) int {
		rec := &recorder{}
		r.Presenter = rec
		r.AutoStart = true
		if _, err := r.StartSession(context.Background()); err != nil {
			t.Fatalf("StartSession: %v", err)
		}
		return rec.snaps[0].Obstacles[0].GapCenter
	}

	a := newTestRunner(t, 10)
	firstGap(a)
	second := firstGap(a)

	b := newTestRunner(t, 11)
	if got := firstGap(b); got != second {
		t.Errorf("second session of seed 10 has gap %d, first session of seed 11 has %d", second, got)
	}
}

func TestRunnerRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Obstacles.GapCenterMax = cfg.Obstacles.GapCenterMin

	if _, err := NewRunner(cfg, 1); err == nil {
		t.Error("expected an error for an empty gap range")
	}
}

func TestPeriodicInput(t *testing.T) {
	in := NewPeriodicInput(3, 7)

	var got []int
	for poll := 0; poll < 10; poll++ {
		if events := in.Poll(); len(events) > 0 {
			if events[0] != EventImpulse {
				t.Fatalf("poll %d: got event %v", poll, events[0])
			}
			got = append(got, poll)
		}
	}

	want := []int{0, 3, 6}
	if len(got) != len(want) {
		t.Fatalf("impulses at %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("impulses at %v, want %v", got, want)
		}
	}
}

func TestScreenPresenterWritesEveryNth(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	var buf bytes.Buffer
	p := NewScreenPresenter(NewRenderer(cfg, MustSprites(cfg)), &buf, 40, 12, 10)

	s := newTestSession(1)
	s.Start()
	for i := 0; i < 21; i++ {
		s.Tick()
		p.Present(s.Snapshot())
	}

	if got := strings.Count(buf.String(), "tick "); got != 2 {
		t.Errorf("wrote %d frames, want 2 (ticks 10 and 20)", got)
	}
	if !strings.Contains(buf.String(), "phase running") {
		t.Error("frame header should include the phase")
	}
}
