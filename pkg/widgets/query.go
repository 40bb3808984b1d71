package widgets

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// QueryResultMsg delivers the backend's answer to a submitted query.
type QueryResultMsg struct {
	Response *godel.QueryResponse
	Err      error
}

// QueryWidget submits natural-language queries to the backend and shows
// the latest answer with its confidence.
type QueryWidget struct {
	client *godel.Client
	th     theme.Theme
	styles theme.Styles

	input   textinput.Model
	spin    spinner.Model
	waiting bool

	result *godel.QueryResponse
	errMsg string
}

// NewQueryWidget creates the query panel.
func NewQueryWidget(client *godel.Client, th theme.Theme) *QueryWidget {
	ti := textinput.New()
	ti.Placeholder = "ask the backend"
	ti.CharLimit = 256
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(th.Accent))

	return &QueryWidget{
		client: client,
		th:     th,
		styles: theme.NewStyles(th),
		input:  ti,
		spin:   sp,
	}
}

func (w *QueryWidget) ID() string          { return "query" }
func (w *QueryWidget) Title() string       { return "Query" }
func (w *QueryWidget) MinSize() (int, int) { return 30, 4 }

func (w *QueryWidget) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case QueryResultMsg:
		w.waiting = false
		if msg.Err != nil {
			w.errMsg = msg.Err.Error()
			w.result = nil
		} else {
			w.errMsg = ""
			w.result = msg.Response
		}
	case spinner.TickMsg:
		if w.waiting {
			var cmd tea.Cmd
			w.spin, cmd = w.spin.Update(msg)
			return cmd
		}
	}
	return nil
}

// HandleKey feeds the text input; Enter submits the current query.
func (w *QueryWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	if key.Type == tea.KeyEnter {
		query := w.input.Value()
		if query == "" || w.waiting || w.client == nil {
			return nil
		}
		w.waiting = true
		w.input.Reset()
		client := w.client
		return tea.Batch(w.spin.Tick, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			resp, err := client.SubmitQuery(ctx, query)
			return QueryResultMsg{Response: resp, Err: err}
		})
	}

	var cmd tea.Cmd
	w.input, cmd = w.input.Update(key)
	return cmd
}

func (w *QueryWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	lines := []string{w.input.View()}

	switch {
	case w.waiting:
		lines = append(lines, w.spin.View()+" thinking")
	case w.errMsg != "":
		lines = append(lines, w.styles.StatusError.Render(
			components.TruncateTail(w.errMsg, width, "…")))
	case w.result != nil:
		for _, l := range components.Wrap(w.result.Response, width) {
			lines = append(lines, l)
		}
		if w.result.Confidence > 0 {
			lines = append(lines, w.styles.Dim.Render(
				fmt.Sprintf("confidence %d%%", int(w.result.Confidence*100+0.5))))
		}
	}

	return fitLines(lines, width, height)
}

var _ app.Widget = (*QueryWidget)(nil)
