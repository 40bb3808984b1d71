package tui

import (
	"strings"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// renderGrid composites all cells into one width x height frame.
func renderGrid(cells []Cell, width, height int, th theme.Theme) string {
	if len(cells) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	buf := newBuffer(width, height)
	for _, cell := range cells {
		borderColor := th.Border
		titleColor := th.Title
		if cell.Focused {
			borderColor = th.BorderFocus
			titleColor = th.BorderFocus
		}

		innerW := cell.W - 2
		innerH := cell.H - 2
		if innerW < 1 {
			innerW = 1
		}
		if innerH < 1 {
			innerH = 1
		}

		box := components.Box{
			Title:       cell.Widget.Title(),
			BorderColor: borderColor,
			TitleColor:  titleColor,
		}
		blit(buf, box.Render(cell.Widget.View(innerW, innerH), cell.W, cell.H), cell.X, cell.Y)
	}
	return bufferString(buf)
}

// renderExpanded draws one widget over the whole area.
func renderExpanded(w app.Widget, width, height int, th theme.Theme) string {
	if w == nil || width <= 0 || height <= 0 {
		return ""
	}
	innerW := width - 2
	innerH := height - 2
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}
	box := components.Box{
		Title:       w.Title(),
		BorderColor: th.BorderFocus,
		TitleColor:  th.BorderFocus,
	}
	return box.Render(w.View(innerW, innerH), width, height)
}

// renderStatusBar draws the bottom key-hint line, prefixed with any
// transient status message.
func renderStatusBar(msg string, width int, th theme.Theme) string {
	hints := "Tab:focus  Enter:expand  /:search  ?:help  q:quit"
	if msg != "" {
		hints = msg + "  |  " + hints
	}
	if width <= 0 {
		return ""
	}
	line := components.PadRight(components.Truncate(hints, width), width)
	if fg := components.Fg(th.Dim); fg != "" {
		return fg + line + components.Reset
	}
	return line
}

// renderSearchBar replaces the status bar while search mode is active.
func renderSearchBar(query string, width int, th theme.Theme) string {
	if width <= 0 {
		return ""
	}
	line := components.PadRight(components.Truncate("/"+query+"_", width), width)
	if fg := components.Fg(th.SearchHighlight); fg != "" {
		return fg + line + components.Reset
	}
	return line
}

// renderHelp draws the key reference shown by '?'.
func renderHelp(width, height int, th theme.Theme) string {
	rows := []string{
		"Tab / Shift+Tab   cycle widget focus",
		"Enter             expand focused widget",
		"Esc               collapse / clear search",
		"/                 search the consciousness stream",
		"r                 reconnect the event stream",
		"p                 pause or resume learning",
		"q, Ctrl+C         quit",
	}
	content := strings.Join(rows, "\n")
	box := components.Box{
		Title:       "Keys",
		TitleAlign:  components.AlignCenter,
		BorderColor: th.Accent,
		TitleColor:  th.Accent,
	}
	return box.Render(content, width, height)
}

// Rune-grid compositing. Rendered boxes are blitted by row so panels can
// overlap the otherwise blank frame.

func newBuffer(width, height int) [][]rune {
	buf := make([][]rune, height)
	for y := range buf {
		row := make([]rune, width)
		for x := range row {
			row[x] = ' '
		}
		buf[y] = row
	}
	return buf
}

func blit(buf [][]rune, rendered string, x, y int) {
	for dy, line := range strings.Split(rendered, "\n") {
		ry := y + dy
		if ry < 0 || ry >= len(buf) {
			continue
		}
		rx := x
		for _, ch := range line {
			if rx >= len(buf[ry]) {
				break
			}
			if rx >= 0 {
				buf[ry][rx] = ch
			}
			rx++
		}
	}
}

func bufferString(buf [][]rune) string {
	lines := make([]string, len(buf))
	for i, row := range buf {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
