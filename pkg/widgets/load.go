package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// loadHistoryMax bounds the sparkline rolling buffer.
const loadHistoryMax = 60

// LoadWidget shows backend processing load: the current gauge, queue
// depth, active process count, and a load history sparkline.
type LoadWidget struct {
	th     theme.Theme
	styles theme.Styles

	load    *godel.ProcessingLoad
	history []float64
}

// NewLoadWidget creates the processing load panel.
func NewLoadWidget(th theme.Theme) *LoadWidget {
	return &LoadWidget{th: th, styles: theme.NewStyles(th)}
}

func (w *LoadWidget) ID() string          { return "load" }
func (w *LoadWidget) Title() string       { return "Processing Load" }
func (w *LoadWidget) MinSize() (int, int) { return 26, 4 }

func (w *LoadWidget) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(app.StateRefreshMsg)
	if !ok || m.Snapshot.Load == nil {
		return nil
	}
	w.load = m.Snapshot.Load
	w.history = append(w.history, w.load.Load)
	if len(w.history) > loadHistoryMax {
		w.history = w.history[len(w.history)-loadHistoryMax:]
	}
	return nil
}

func (w *LoadWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

func (w *LoadWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.load == nil {
		return centerMessage("no load data", width, height, w.th)
	}

	filled, empty := theme.GaugeColors(w.load.Load, w.th)
	gauge := components.Gauge{
		Width:       width - 10,
		ShowPercent: true,
		Filled:      filled,
		Empty:       empty,
	}

	lines := []string{
		"load " + gauge.Render(w.load.Load),
		fmt.Sprintf("queue %d   active %d", w.load.QueueDepth, w.load.ActiveProcesses),
	}

	if len(w.history) > 1 && height > 2 {
		lo, hi := 0.0, 1.0
		spark := components.Sparkline{
			Width: width - 2,
			Color: w.th.SparkLine,
			MinY:  &lo,
			MaxY:  &hi,
		}
		lines = append(lines, spark.Render(w.history))
	}

	return fitLines(lines, width, height)
}

var _ app.Widget = (*LoadWidget)(nil)
