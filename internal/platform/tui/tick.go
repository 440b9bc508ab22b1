// Package tui provides the Bubble Tea integration for flappy.
// It handles the terminal UI loop, input mapping, and session orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickInterval is the frame period plus the fixed per-tick delay.
func tickInterval(timing config.TimingConfig) time.Duration {
	rate := timing.TickRate
	if rate <= 0 {
		rate = 60
	}
	return time.Second/time.Duration(rate) + time.Duration(timing.TickDelayMS)*time.Millisecond
}

// tickCmd returns a Bubble Tea command that sends the next tick message.
func tickCmd(timing config.TimingConfig) tea.Cmd {
	return tea.Tick(tickInterval(timing), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
