// Package tui turns the app model into terminal frames: a two-column grid
// of bordered widget panels, a fullscreen mode for the expanded widget,
// and a status or search bar on the bottom line.
package tui

import "github.com/godelos/godel-pulse/pkg/app"

// Cell is one widget's rectangle in the composed frame.
type Cell struct {
	Widget  app.Widget
	X, Y    int
	W, H    int
	Focused bool
}

// narrowCutoff is the terminal width below which the grid collapses to a
// single column.
const narrowCutoff = 70

// Grid computes cell rectangles for the given widgets inside a width by
// height area. The grid uses two columns on wide terminals and one on
// narrow ones; the last row and column absorb rounding remainders.
func Grid(widgets []app.Widget, width, height int, focusedID string) []Cell {
	if len(widgets) == 0 || width <= 0 || height <= 0 {
		return nil
	}

	cols := 2
	if width < narrowCutoff || len(widgets) == 1 {
		cols = 1
	}
	rows := (len(widgets) + cols - 1) / cols

	baseW := width / cols
	baseH := height / rows
	if baseH < 3 {
		baseH = 3
	}

	cells := make([]Cell, 0, len(widgets))
	for i, w := range widgets {
		row := i / cols
		col := i % cols

		x := col * baseW
		y := row * baseH
		cw := baseW
		ch := baseH
		if col == cols-1 {
			cw = width - x
		}
		// The last occupied row absorbs leftover height.
		if row == rows-1 && y+ch < height {
			ch = height - y
		}

		cells = append(cells, Cell{
			Widget:  w,
			X:       x,
			Y:       y,
			W:       cw,
			H:       ch,
			Focused: w.ID() == focusedID,
		})
	}
	return cells
}
