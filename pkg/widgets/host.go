package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/collectors/sysmetrics"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// hostHistoryMax bounds the CPU sparkline buffer.
const hostHistoryMax = 60

// HostWidget shows metrics of the machine running the dashboard: CPU and
// memory gauges, load averages, and a CPU history sparkline.
type HostWidget struct {
	th     theme.Theme
	styles theme.Styles

	metrics    *sysmetrics.Metrics
	cpuHistory []float64
}

// NewHostWidget creates the host metrics panel.
func NewHostWidget(th theme.Theme) *HostWidget {
	return &HostWidget{th: th, styles: theme.NewStyles(th)}
}

func (w *HostWidget) ID() string          { return "host" }
func (w *HostWidget) Title() string       { return "Host" }
func (w *HostWidget) MinSize() (int, int) { return 25, 4 }

func (w *HostWidget) Update(msg tea.Msg) tea.Cmd {
	m, ok := msg.(app.DataUpdateEvent)
	if !ok || m.Source != sysmetrics.SourceName || m.Err != nil {
		return nil
	}
	metrics, ok := m.Data.(sysmetrics.Metrics)
	if !ok {
		return nil
	}
	w.metrics = &metrics
	w.cpuHistory = append(w.cpuHistory, metrics.CPU.Total)
	if len(w.cpuHistory) > hostHistoryMax {
		w.cpuHistory = w.cpuHistory[len(w.cpuHistory)-hostHistoryMax:]
	}
	return nil
}

func (w *HostWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

func (w *HostWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.metrics == nil {
		return centerMessage("no host data", width, height, w.th)
	}
	m := w.metrics

	barW := width - 10
	if barW < 4 {
		barW = 4
	}
	cpuFill, cpuEmpty := theme.GaugeColors(m.CPU.Total/100, w.th)
	memFill, memEmpty := theme.GaugeColors(m.Memory.UsedPercent/100, w.th)

	lines := []string{
		"cpu " + components.Gauge{Width: barW, ShowPercent: true, Filled: cpuFill, Empty: cpuEmpty}.Render(m.CPU.Total / 100),
		"mem " + components.Gauge{Width: barW, ShowPercent: true, Filled: memFill, Empty: memEmpty}.Render(m.Memory.UsedPercent / 100),
		fmt.Sprintf("load %.2f %.2f %.2f", m.Load.Load1, m.Load.Load5, m.Load.Load15),
	}

	if len(w.cpuHistory) > 1 && height > 3 {
		lo, hi := 0.0, 100.0
		spark := components.Sparkline{Width: width - 2, Color: w.th.SparkLine, MinY: &lo, MaxY: &hi}
		lines = append(lines, spark.Render(w.cpuHistory))
	}

	return fitLines(lines, width, height)
}

var _ app.Widget = (*HostWidget)(nil)
