package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func sendMenu(t *testing.T, m MenuModel, msg tea.Msg) (MenuModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	mm, ok := next.(MenuModel)
	if !ok {
		t.Fatalf("Update returned %T, want MenuModel", next)
	}
	return mm, cmd
}

func TestMenuShowsHighScore(t *testing.T) {
	m := NewMenuModel(&fakeRecord{best: 7}, core.DefaultConfig())
	if !strings.Contains(m.View(), "High Score: 7") {
		t.Errorf("menu view lacks the high score:\n%s", m.View())
	}

	m = NewMenuModel(&fakeRecord{readErr: errors.New("missing")}, core.DefaultConfig())
	if !strings.Contains(m.View(), "High Score: ?") {
		t.Errorf("menu view should mark an unreadable record:\n%s", m.View())
	}
}

func TestMenuSelection(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		want     MenuChoice
		quitting bool
	}{
		{"play", []string{"enter"}, MenuChoicePlay, false},
		{"scores", []string{"down", "enter"}, MenuChoiceScores, false},
		{"quit item", []string{"down", "down", "enter"}, MenuChoiceNone, true},
		{"cursor stops at bottom", []string{"down", "down", "down", "up", "enter"}, MenuChoiceScores, false},
		{"cursor stops at top", []string{"up", "enter"}, MenuChoicePlay, false},
		{"q key", []string{"q"}, MenuChoiceNone, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := NewMenuModel(nil, core.DefaultConfig())
			var cmd tea.Cmd
			for _, k := range tc.keys {
				m, cmd = sendMenu(t, m, keyMsg(k))
			}

			if cmd == nil {
				t.Error("last key returned no command")
			}
			if m.IsQuitting() != tc.quitting {
				t.Errorf("IsQuitting = %v, want %v", m.IsQuitting(), tc.quitting)
			}
			got := MenuChoiceNone
			if sel := m.Selected(); sel != nil {
				got = sel.Choice
			}
			if got != tc.want {
				t.Errorf("selected = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMenuResize(t *testing.T) {
	m := NewMenuModel(nil, core.DefaultConfig())
	m, _ = sendMenu(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if cfg := m.Config(); cfg.ScreenW != 100 || cfg.ScreenH != 30 {
		t.Errorf("config after resize = %dx%d, want 100x30", cfg.ScreenW, cfg.ScreenH)
	}
}

func TestScoreboardToggleView(t *testing.T) {
	history := openTestHistory(t)
	for _, score := range []int{3, 9, 5} {
		if _, err := history.SaveRun(storage.Run{Player: "p", Score: score}); err != nil {
			t.Fatalf("SaveRun: %v", err)
		}
	}

	m := NewScoreboardModel(history, 100, 30)
	if m.CurrentView() != ViewTop {
		t.Fatalf("initial view = %v, want Top", m.CurrentView())
	}
	if runs := m.Runs(); len(runs) != 3 || runs[0].Score != 9 {
		t.Fatalf("top runs = %+v", runs)
	}

	next, _ := m.Update(keyMsg("tab"))
	m = next.(ScoreboardModel)
	if m.CurrentView() != ViewRecent {
		t.Fatalf("view after tab = %v, want Recent", m.CurrentView())
	}
	if runs := m.Runs(); len(runs) != 3 || runs[0].Score != 5 {
		t.Errorf("recent runs = %+v", runs)
	}

	if !strings.Contains(m.View(), "Stats") {
		t.Error("wide scoreboard lacks the stats sidebar")
	}
}

func TestScoreboardBackAndQuit(t *testing.T) {
	m := NewScoreboardModel(nil, 60, 20)
	if !strings.Contains(m.View(), "No runs recorded yet") {
		t.Errorf("empty scoreboard view:\n%s", m.View())
	}

	next, cmd := m.Update(keyMsg("b"))
	back := next.(ScoreboardModel)
	if !back.IsGoingBack() || back.IsQuitting() || cmd == nil {
		t.Error("b should go back")
	}

	next, _ = m.Update(keyMsg("q"))
	if quit := next.(ScoreboardModel); !quit.IsQuitting() || quit.IsGoingBack() {
		t.Error("q should quit")
	}
}

func sendSession(t *testing.T, m SessionModel, msg tea.Msg) (SessionModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	sm, ok := next.(SessionModel)
	if !ok {
		t.Fatalf("Update returned %T, want SessionModel", next)
	}
	return sm, cmd
}

func TestSessionModelFlow(t *testing.T) {
	record := &fakeRecord{best: 4}
	history := openTestHistory(t)
	cfg := core.DefaultConfig()
	cfg.Seed = 1

	m := NewSessionModel(config.DefaultFlappyConfig(), cfg, PlayOptions{
		Record:  record,
		History: history,
		Player:  "alice",
	})

	// Menu -> game
	m, cmd := sendSession(t, m, keyMsg("enter"))
	if m.screen != screenGame || cmd == nil {
		t.Fatalf("screen = %v after Play, want game with a tick command", m.screen)
	}

	// Pause, then back to the menu without closing the connection
	m, _ = sendSession(t, m, keyMsg(" "))
	m, _ = sendSession(t, m, TickMsg{})
	m, _ = sendSession(t, m, keyMsg("p"))
	m, _ = sendSession(t, m, TickMsg{})
	m, cmd = sendSession(t, m, keyMsg("b"))
	if m.screen != screenMenu {
		t.Fatalf("screen = %v after back, want menu", m.screen)
	}
	if cmd != nil {
		t.Error("going back must not quit the program")
	}
	if record.commits != 0 {
		t.Error("abandoned game was committed")
	}

	// Menu -> scores -> menu
	m, _ = sendSession(t, m, keyMsg("down"))
	m, _ = sendSession(t, m, keyMsg("enter"))
	if m.screen != screenScores {
		t.Fatalf("screen = %v after Scores, want scores", m.screen)
	}
	m, cmd = sendSession(t, m, keyMsg("b"))
	if m.screen != screenMenu || cmd != nil {
		t.Fatalf("screen = %v after leaving scores, want menu", m.screen)
	}

	// Quit from the menu
	m, cmd = sendSession(t, m, keyMsg("q"))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q on the menu should close the session")
	}
	if m.View() != "" {
		t.Error("closing session still renders")
	}
}
