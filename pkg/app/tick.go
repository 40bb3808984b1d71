package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickCmd schedules a TickEvent after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickEvent{Time: t}
	})
}
