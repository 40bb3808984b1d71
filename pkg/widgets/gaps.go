package widgets

import (
	"sort"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// GapsWidget lists detected knowledge gaps, highest priority first, with
// the backend's confidence rendered as a whole percent.
type GapsWidget struct {
	th     theme.Theme
	styles theme.Styles

	gaps []godel.KnowledgeGap
}

// NewGapsWidget creates the knowledge gaps panel.
func NewGapsWidget(th theme.Theme) *GapsWidget {
	return &GapsWidget{th: th, styles: theme.NewStyles(th)}
}

func (w *GapsWidget) ID() string          { return "gaps" }
func (w *GapsWidget) Title() string       { return "Knowledge Gaps" }
func (w *GapsWidget) MinSize() (int, int) { return 30, 4 }

func (w *GapsWidget) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(app.StateRefreshMsg); ok {
		if m.Snapshot.Gaps != nil {
			w.gaps = m.Snapshot.Gaps
		}
	}
	return nil
}

func (w *GapsWidget) HandleKey(tea.KeyMsg) tea.Cmd { return nil }

// TopGap returns the highest-priority gap, used to seed manual
// acquisition triggers.
func (w *GapsWidget) TopGap() *godel.KnowledgeGap {
	ordered := w.ordered()
	if len(ordered) == 0 {
		return nil
	}
	return &ordered[0]
}

func (w *GapsWidget) ordered() []godel.KnowledgeGap {
	out := make([]godel.KnowledgeGap, len(w.gaps))
	copy(out, w.gaps)
	sort.SliceStable(out, func(i, j int) bool {
		return priorityRank(out[i].Priority) < priorityRank(out[j].Priority)
	})
	return out
}

func priorityRank(p godel.GapPriority) int {
	switch p {
	case godel.PriorityHigh:
		return 0
	case godel.PriorityMedium:
		return 1
	default:
		return 2
	}
}

func (w *GapsWidget) priorityStyle(p godel.GapPriority) string {
	switch p {
	case godel.PriorityHigh:
		return w.styles.PriorityHigh.Render("HIGH")
	case godel.PriorityMedium:
		return w.styles.PriorityMedium.Render("MED ")
	default:
		return w.styles.PriorityLow.Render("LOW ")
	}
}

func (w *GapsWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if len(w.gaps) == 0 {
		return centerMessage("no gaps detected", width, height, w.th)
	}

	ordered := w.ordered()
	if len(ordered) > height {
		ordered = ordered[:height]
	}

	var lines []string
	for _, g := range ordered {
		pct := components.PadLeft(g.ConfidencePercent(), 4)
		line := w.priorityStyle(g.Priority) + " " + pct + "  " + g.Concept
		if g.Context != "" {
			line += w.styles.Dim.Render(" (" + g.Context + ")")
		}
		lines = append(lines, components.TruncateTail(line, width, "…"))
	}
	return fitLines(lines, width, height)
}

var _ app.Widget = (*GapsWidget)(nil)
