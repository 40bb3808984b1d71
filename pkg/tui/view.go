package tui

import (
	"strings"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// NewView returns the renderer the app model delegates to. The bottom line
// is the status bar, or the search bar while search mode is active; the
// rest of the terminal is the widget grid, the expanded widget, or the help
// screen.
func NewView(th theme.Theme) func(app.AppModel) string {
	return func(m app.AppModel) string {
		width, height := m.Width(), m.Height()
		if width <= 0 || height <= 1 {
			return ""
		}
		contentH := height - 1

		var content string
		switch {
		case m.HelpVisible():
			content = renderHelp(width, contentH, th)
		case m.ExpandedWidgetID() != "":
			content = renderExpanded(m.Widget(m.ExpandedWidgetID()), width, contentH, th)
		default:
			var widgets []app.Widget
			for _, id := range m.WidgetOrder() {
				widgets = append(widgets, m.Widget(id))
			}
			cells := Grid(widgets, width, contentH, m.FocusedWidgetID())
			content = renderGrid(cells, width, contentH, th)
		}

		var bottom string
		if m.Searching() {
			bottom = renderSearchBar(m.SearchQuery(), width, th)
		} else {
			bottom = renderStatusBar(m.StatusText(), width, th)
		}

		return padFrame(content, contentH) + "\n" + bottom
	}
}

// padFrame guarantees the content block spans exactly height lines.
func padFrame(content string, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
