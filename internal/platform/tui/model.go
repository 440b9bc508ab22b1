package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// PlayOptions wires a game model to its persistence and logging.
type PlayOptions struct {
	Record  flappy.ScoreStore // Best score; nil disables it
	History *storage.History  // Run log; nil disables it
	Player  string            // Name stored with each run
	Logger  *log.Logger       // nil discards
}

// GameModel is the Bubble Tea model for playing flappy.
type GameModel struct {
	game       *flappy.Game
	screen     *core.Screen
	opts       PlayOptions
	config     core.RuntimeConfig
	timing     config.TimingConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	help       help.Model
	finished   bool  // Score has been committed for the current game over
	statusLine string
	quitting   bool
	backToMenu bool
}

// NewGameModel creates a game model. The session is started by Init.
func NewGameModel(game *flappy.Game, cfg core.RuntimeConfig, opts PlayOptions) GameModel {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	h := help.New()
	h.Width = cfg.ScreenW

	m := GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH)),
		opts:       opts,
		config:     cfg,
		timing:     game.Config().Timing,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		help:       h,
	}
	return m
}

// playHeight leaves one row for the help bar.
func playHeight(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Init initializes the model and starts the first session.
func (m GameModel) Init() tea.Cmd {
	// Game is a pointer, so the reset survives the value receiver
	m.startSession()
	return tickCmd(m.timing)
}

// startSession resets the game and loads the best score for display.
func (m *GameModel) startSession() {
	m.game.Reset(m.config)

	best := 0
	if m.opts.Record != nil {
		var err error
		best, err = m.opts.Record.Read()
		if err != nil {
			m.opts.Logger.Warn("high score unavailable, showing 0", "err", err)
			best = 0
		}
	}
	m.game.SetHighScore(best)
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		// The world is scaled to the screen, so a resize keeps the session
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, playHeight(msg.Height))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keyMapper.Keys().Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	if m.keyMapper.MapKeyToFrame(msg, &m.inputFrame) {
		// Abandoned sessions are never persisted
		m.game.Session().Quit()
		m.opts.Logger.Debug("player quit", "score", m.game.State().Score)
		m.quitting = true
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) && (m.gameState.GameOver || m.gameState.Paused) {
		m.backToMenu = true
		return m, tea.Quit
	}

	// Space also restarts once the game is over
	if m.gameState.GameOver && m.inputFrame.Has(core.ActionJump) {
		m.inputFrame.Set(core.ActionRestart)
	}

	return m, nil
}

// handleTick processes simulation ticks.
func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu || m.quitting {
		return m, nil
	}

	// Check for restart
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver && m.finished {
		m.startSession()
		m.gameState = m.game.State()
		m.finished = false
		m.statusLine = ""
		m.inputFrame.Clear()
		return m, tickCmd(m.timing)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.finished {
		m.finish()
	}

	// Clear input for next frame
	m.inputFrame.Clear()

	return m, tickCmd(m.timing)
}

// finish commits the ended session once: the record first, then the run log.
func (m *GameModel) finish() {
	m.finished = true

	sum, err := m.game.Finish(m.opts.Record)
	if err != nil {
		m.opts.Logger.Error("could not save high score", "err", err)
		m.statusLine = "high score not saved"
	}

	if m.opts.History != nil {
		run := storage.Run{
			Player:    m.opts.Player,
			Score:     sum.Score,
			Ticks:     m.game.Session().Ticks(),
			Seed:      m.game.Seed(),
			NewRecord: sum.NewRecord,
		}
		if _, err := m.opts.History.SaveRun(run); err != nil {
			m.opts.Logger.Error("could not log run", "err", err)
			m.statusLine = "run not logged"
		}
	}
}

// saveScreenshot saves the current screen to a file.
func (m *GameModel) saveScreenshot() {
	m.game.Render(m.screen)

	dir := filepath.Join(os.Getenv("HOME"), ".flappy", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.opts.Logger.Warn("screenshot failed", "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.opts.Logger.Warn("screenshot failed", "err", err)
		return
	}
	m.statusLine = "saved " + path
}

// View renders the current state to a string for display.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	out := RenderScreen(m.screen)

	if m.config.ScreenH > 1 {
		bar := m.help.View(m.keyMapper.Keys())
		if m.statusLine != "" {
			bar = m.statusLine + "  " + bar
		}
		out += "\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(bar)
	}
	return out
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to menu.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// Run plays flappy in the terminal until the player quits or goes back.
// It reports whether the player asked for the menu.
func Run(game *flappy.Game, cfg core.RuntimeConfig, opts PlayOptions) (backToMenu bool, err error) {
	model := NewGameModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(GameModel)
	if !ok {
		return false, nil
	}
	return m.BackToMenu(), nil
}
