package widgets

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/state"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// StreamFeedWidget renders the consciousness stream: newest events at the
// bottom, filterable by event type, granularity, and the global search
// query. Filtering never mutates the event window it was given.
type StreamFeedWidget struct {
	th     theme.Theme
	styles theme.Styles

	events []godel.StreamEvent
	filter state.EventFilter

	// typeIdx/granIdx index the cycle lists; 0 means no filter.
	typeIdx int
	granIdx int

	scroll int // lines scrolled up from the tail
}

// NewStreamFeedWidget creates the feed panel.
func NewStreamFeedWidget(th theme.Theme) *StreamFeedWidget {
	return &StreamFeedWidget{th: th, styles: theme.NewStyles(th)}
}

func (w *StreamFeedWidget) ID() string          { return "stream" }
func (w *StreamFeedWidget) Title() string       { return "Consciousness Stream" }
func (w *StreamFeedWidget) MinSize() (int, int) { return 30, 5 }

func (w *StreamFeedWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case app.StateRefreshMsg:
		w.events = msg.Events
	case app.SearchMsg:
		w.filter.Search = msg.Query
	}
	return nil
}

// HandleKey cycles filters and scrolls. 't' advances the type filter, 'g'
// the granularity filter, 'c' clears both, 'j'/'k' scroll.
func (w *StreamFeedWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	switch key.String() {
	case "t":
		w.typeIdx = (w.typeIdx + 1) % (len(godel.EventTypes) + 1)
		w.applyCycle()
	case "g":
		w.granIdx = (w.granIdx + 1) % (len(godel.Granularities) + 1)
		w.applyCycle()
	case "c":
		w.typeIdx, w.granIdx = 0, 0
		w.applyCycle()
	case "j", "down":
		if w.scroll > 0 {
			w.scroll--
		}
	case "k", "up":
		w.scroll++
	case "G":
		w.scroll = 0
	}
	return nil
}

func (w *StreamFeedWidget) applyCycle() {
	w.filter.Types = nil
	if w.typeIdx > 0 {
		w.filter.Types = map[godel.EventType]bool{godel.EventTypes[w.typeIdx-1]: true}
	}
	w.filter.Granularities = nil
	if w.granIdx > 0 {
		w.filter.Granularities = map[godel.Granularity]bool{godel.Granularities[w.granIdx-1]: true}
	}
}

// Filter exposes the active filter for tests.
func (w *StreamFeedWidget) Filter() state.EventFilter { return w.filter }

func (w *StreamFeedWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	visible := state.FilterEvents(w.events, w.filter)

	header := w.headerLine()
	bodyH := height - 1
	if bodyH < 1 {
		bodyH = 1
	}

	if len(visible) == 0 {
		lines := append([]string{header}, centerMessageLines("no events", width, bodyH, w.styles)...)
		return fitLines(lines, width, height)
	}

	// Tail window with scrollback.
	end := len(visible) - w.scroll
	if end < 1 {
		end = 1
	}
	if end > len(visible) {
		end = len(visible)
	}
	start := end - bodyH
	if start < 0 {
		start = 0
	}

	lines := []string{header}
	for _, ev := range visible[start:end] {
		lines = append(lines, w.eventLine(ev, width))
	}
	return fitLines(lines, width, height)
}

func (w *StreamFeedWidget) headerLine() string {
	typeLabel := "all"
	if w.typeIdx > 0 {
		typeLabel = string(godel.EventTypes[w.typeIdx-1])
	}
	granLabel := "all"
	if w.granIdx > 0 {
		granLabel = string(godel.Granularities[w.granIdx-1])
	}
	header := fmt.Sprintf("type:%s  gran:%s", typeLabel, granLabel)
	if w.filter.Search != "" {
		header += "  search:" + w.filter.Search
	}
	return w.styles.Dim.Render(header)
}

func (w *StreamFeedWidget) eventLine(ev godel.StreamEvent, width int) string {
	ts := ev.Timestamp.Format("15:04:05")
	tag := w.styles.Accent.Render("[" + string(ev.Type) + "]")
	line := fmt.Sprintf("%s %s %s", ts, tag, ev.Content)
	return components.TruncateTail(line, width, "…")
}

// centerMessageLines renders a dim message centered across a line block.
func centerMessageLines(msg string, width, height int, styles theme.Styles) []string {
	if height < 1 {
		height = 1
	}
	lines := make([]string, height)
	lines[height/2] = components.Center(styles.Dim.Render(msg), width)
	return lines
}

var _ app.Widget = (*StreamFeedWidget)(nil)
