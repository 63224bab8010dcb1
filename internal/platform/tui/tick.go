// Package tui hosts the arcade in a terminal: a Bubble Tea model that drives
// the session clock, maps keys and mouse into the input aggregator and draws
// the scene as a character grid. The same model serves local play and SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per host frame.
type FrameMsg time.Time

// frameCmd schedules the next frame after interval.
func frameCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
