package components

import (
	"fmt"
	"math"
	"strings"
)

// Horizontal eighth blocks give 8 fill levels per cell.
var gaugeBlocks = [9]rune{' ', '▏', '▎', '▍', '▌', '▋', '▊', '▉', '█'}

// Gauge renders a horizontal bar with sub-cell precision.
type Gauge struct {
	Width       int    // bar width in cells
	ShowPercent bool   // append a rounded percent label
	Filled      string // hex color for the filled portion
	Empty       string // hex color for the empty portion
}

// GaugeRow is one labeled entry in a stacked gauge render.
type GaugeRow struct {
	Label string
	Value float64 // ratio in [0, 1]
}

// Render draws the bar for the given fill ratio. Ratios outside [0, 1] are
// clamped.
func (g Gauge) Render(ratio float64) string {
	width := g.Width
	if width <= 0 {
		width = 20
	}
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	units := int(math.Round(ratio * float64(width*8)))
	full := units / 8
	partial := units % 8
	empty := width - full
	if partial > 0 {
		empty--
	}

	fgFill := Fg(g.Filled)
	fgEmpty := Fg(g.Empty)

	var b strings.Builder
	if full > 0 {
		b.WriteString(fgFill)
		b.WriteString(strings.Repeat(string(gaugeBlocks[8]), full))
		b.WriteString(Reset)
	}
	if partial > 0 {
		b.WriteString(fgFill)
		b.WriteRune(gaugeBlocks[partial])
		b.WriteString(Reset)
	}
	if empty > 0 {
		b.WriteString(fgEmpty)
		b.WriteString(strings.Repeat("░", empty))
		b.WriteString(Reset)
	}
	if g.ShowPercent {
		fmt.Fprintf(&b, " %d%%", int(math.Round(ratio*100)))
	}
	return b.String()
}

// RenderRows draws one gauge per row with labels padded to a common width.
func (g Gauge) RenderRows(rows []GaugeRow) string {
	if len(rows) == 0 {
		return ""
	}
	labelW := 0
	for _, r := range rows {
		if w := VisibleWidth(r.Label); w > labelW {
			labelW = w
		}
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		lines = append(lines, PadRight(r.Label, labelW+1)+g.Render(r.Value))
	}
	return strings.Join(lines, "\n")
}
