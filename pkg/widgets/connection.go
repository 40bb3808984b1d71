package widgets

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/stream"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// ConnectionWidget shows the event stream state and offers manual
// reconnection on 'r'.
type ConnectionWidget struct {
	client *stream.Client
	th     theme.Theme
	styles theme.Styles

	state stream.ConnectionState
	stats stream.Stats
}

// NewConnectionWidget creates the connection panel. client may be nil in
// tests; 'r' is then a no-op.
func NewConnectionWidget(client *stream.Client, th theme.Theme) *ConnectionWidget {
	return &ConnectionWidget{client: client, th: th, styles: theme.NewStyles(th)}
}

func (w *ConnectionWidget) ID() string          { return "connection" }
func (w *ConnectionWidget) Title() string       { return "Connection" }
func (w *ConnectionWidget) MinSize() (int, int) { return 24, 4 }

func (w *ConnectionWidget) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(app.StreamStateMsg); ok {
		w.state = m.State
		w.stats = m.Stats
	}
	return nil
}

// HandleKey reconnects on 'r'. Manual reconnection resets the retry
// counter, so it works even after automatic recovery gave up.
func (w *ConnectionWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	if key.String() != "r" || w.client == nil {
		return nil
	}
	client := w.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := client.Reconnect(ctx); err != nil {
			return app.StatusMsg{Text: "reconnect failed: " + err.Error()}
		}
		return app.StatusMsg{Text: "reconnected"}
	}
}

func (w *ConnectionWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	stateLine := w.styles.StatusStyle(w.state.String()).Render("● " + w.state.String())
	lines := []string{stateLine}

	if w.state == stream.StateReconnecting {
		lines = append(lines, fmt.Sprintf("attempt %d", w.stats.Attempts))
	}
	lines = append(lines, fmt.Sprintf("frames %d", w.stats.Frames))
	if w.stats.DroppedSends > 0 {
		lines = append(lines, w.styles.StatusWarn.Render(
			fmt.Sprintf("dropped sends %d", w.stats.DroppedSends)))
	}
	if w.stats.LastError != "" {
		lines = append(lines, w.styles.StatusError.Render(
			components.TruncateTail(w.stats.LastError, width, "…")))
	}
	lines = append(lines, w.styles.Dim.Render("r: reconnect"))

	return fitLines(lines, width, height)
}

var _ app.Widget = (*ConnectionWidget)(nil)
