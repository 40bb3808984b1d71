// Package widgets holds the dashboard panels. Each widget implements the
// app.Widget interface, keeps its own copy of the data it renders, and
// updates it from the broadcast messages the root model fans out.
package widgets

import (
	"strings"

	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// fitLines clips and pads lines into exactly width x height cells.
func fitLines(lines []string, width, height int) string {
	if len(lines) > height {
		lines = lines[:height]
	}
	out := make([]string, 0, height)
	for _, line := range lines {
		out = append(out, components.Truncate(line, width))
	}
	for len(out) < height {
		out = append(out, "")
	}
	return strings.Join(out, "\n")
}

// centerMessage renders a single dim message centered in the area.
func centerMessage(msg string, width, height int, th theme.Theme) string {
	lines := make([]string, height)
	mid := height / 2
	if mid >= height {
		mid = height - 1
	}
	if mid >= 0 {
		lines[mid] = components.Center(theme.NewStyles(th).Dim.Render(msg), width)
	}
	return strings.Join(lines, "\n")
}
