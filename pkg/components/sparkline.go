package components

import (
	"fmt"
	"math"
	"strings"
)

// Vertical eighth blocks, lowest to highest.
var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Sparkline renders a series of samples as a single-row block chart.
type Sparkline struct {
	Width      int      // cells to display; older samples fall off the left
	Color      string   // hex color for the chart
	MinY       *float64 // fixed lower bound, nil auto-scales
	MaxY       *float64 // fixed upper bound, nil auto-scales
	ShowMinMax bool     // flank the chart with min/max labels
}

// Render draws the last Width samples of data.
func (s Sparkline) Render(data []float64) string {
	if len(data) == 0 {
		return ""
	}
	width := s.Width
	if width <= 0 {
		width = 20
	}
	points := data
	if len(points) > width {
		points = points[len(points)-width:]
	}

	lo, hi := autoRange(points)
	if s.MinY != nil {
		lo = *s.MinY
	}
	if s.MaxY != nil {
		hi = *s.MaxY
	}

	var chart strings.Builder
	for _, v := range points {
		chart.WriteRune(blockFor(v, lo, hi))
	}

	body := chart.String()
	if fg := Fg(s.Color); fg != "" {
		body = fg + body + Reset
	}
	if s.ShowMinMax {
		return fmt.Sprintf("%s %s %s", formatSample(lo), body, formatSample(hi))
	}
	return body
}

func blockFor(v, lo, hi float64) rune {
	if hi <= lo {
		return sparkBlocks[0]
	}
	t := (v - lo) / (hi - lo)
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	idx := int(t * 7.999)
	return sparkBlocks[idx]
}

func autoRange(points []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range points {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func formatSample(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e6 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
