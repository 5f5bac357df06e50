// Package tui provides the Bubble Tea monitor for a running experiment. It
// polls the Runner's telemetry and turns key presses into commands on the
// shared region.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a telemetry poll.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(pollRate int) tea.Cmd {
	if pollRate <= 0 {
		pollRate = 30
	}
	interval := time.Second / time.Duration(pollRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
