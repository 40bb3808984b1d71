package app

import tea "github.com/charmbracelet/bubbletea"

// Widget is one dashboard panel. Widgets receive every broadcast message
// through Update and focused key presses through HandleKey; both may return
// a command for side effects (backend calls, reconnects).
type Widget interface {
	// ID is the stable identifier used for focus tracking.
	ID() string

	// Title is the text shown in the panel border.
	Title() string

	// Update processes a broadcast message.
	Update(msg tea.Msg) tea.Cmd

	// HandleKey processes a key press while this widget has focus.
	HandleKey(key tea.KeyMsg) tea.Cmd

	// View renders the panel interior at the given dimensions.
	View(width, height int) string

	// MinSize reports the smallest useful interior size.
	MinSize() (int, int)
}
