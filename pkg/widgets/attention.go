package widgets

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// AttentionWidget shows what the backend is attending to, one salience
// gauge per focus item, highest salience first.
type AttentionWidget struct {
	th     theme.Theme
	styles theme.Styles

	attention *godel.Attention
}

// NewAttentionWidget creates the attention panel.
func NewAttentionWidget(th theme.Theme) *AttentionWidget {
	return &AttentionWidget{th: th, styles: theme.NewStyles(th)}
}

func (w *AttentionWidget) ID() string          { return "attention" }
func (w *AttentionWidget) Title() string       { return "Attention" }
func (w *AttentionWidget) MinSize() (int, int) { return 28, 4 }

func (w *AttentionWidget) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(app.StateRefreshMsg); ok {
		if m.Snapshot.Attention != nil {
			w.attention = m.Snapshot.Attention
		}
	}
	return nil
}

func (w *AttentionWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

func (w *AttentionWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.attention == nil || len(w.attention.Focus) == 0 {
		return centerMessage("no focus data", width, height, w.th)
	}

	items := make([]godel.FocusItem, len(w.attention.Focus))
	copy(items, w.attention.Focus)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Salience > items[j].Salience
	})
	if len(items) > height {
		items = items[:height]
	}

	labelW := 0
	for _, it := range items {
		if l := components.VisibleWidth(it.Item); l > labelW {
			labelW = l
		}
	}
	maxLabel := width / 3
	if labelW > maxLabel {
		labelW = maxLabel
	}

	barW := width - labelW - 6
	if barW < 4 {
		barW = 4
	}
	gauge := components.Gauge{
		Width:       barW,
		ShowPercent: true,
		Filled:      w.th.GaugeFilled,
		Empty:       w.th.GaugeEmpty,
	}

	var lines []string
	for _, it := range items {
		label := components.PadRight(components.TruncateTail(it.Item, labelW, "…"), labelW+1)
		lines = append(lines, label+gauge.Render(it.Salience))
	}
	return fitLines(lines, width, height)
}

var _ app.Widget = (*AttentionWidget)(nil)
