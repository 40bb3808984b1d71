package widgets

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/godelos/godel-pulse/pkg/app"
	"github.com/godelos/godel-pulse/pkg/components"
	"github.com/godelos/godel-pulse/pkg/godel"
	"github.com/godelos/godel-pulse/pkg/theme"
)

// LearningWidget monitors autonomous learning: the enabled flag, active
// acquisition plans with progress bars, and the recent plan history.
// 'p' pauses or resumes learning; 'a' triggers acquisition for the
// highest-priority gap.
type LearningWidget struct {
	client *godel.Client
	th     theme.Theme
	styles theme.Styles

	learning *godel.Learning
	gaps     *GapsWidget // source for manual acquisition targets
	history  []godel.AcquisitionPlan
}

// NewLearningWidget creates the learning panel. gaps may be nil; 'a' is
// then a no-op.
func NewLearningWidget(client *godel.Client, gaps *GapsWidget, th theme.Theme) *LearningWidget {
	return &LearningWidget{client: client, gaps: gaps, th: th, styles: theme.NewStyles(th)}
}

func (w *LearningWidget) ID() string          { return "learning" }
func (w *LearningWidget) Title() string       { return "Learning" }
func (w *LearningWidget) MinSize() (int, int) { return 30, 4 }

func (w *LearningWidget) Update(msg tea.Msg) tea.Cmd {
	if m, ok := msg.(app.StateRefreshMsg); ok {
		if m.Snapshot.Learning != nil {
			w.learning = m.Snapshot.Learning
		}
		w.history = m.History
	}
	return nil
}

func (w *LearningWidget) HandleKey(key tea.KeyMsg) tea.Cmd {
	if w.client == nil {
		return nil
	}
	switch key.String() {
	case "p":
		client := w.client
		pausing := w.learning == nil || w.learning.Enabled
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			var err error
			if pausing {
				err = client.PauseLearning(ctx)
			} else {
				err = client.ResumeLearning(ctx)
			}
			if err != nil {
				return app.StatusMsg{Text: "learning toggle failed: " + err.Error()}
			}
			if pausing {
				return app.StatusMsg{Text: "learning paused"}
			}
			return app.StatusMsg{Text: "learning resumed"}
		}

	case "a":
		if w.gaps == nil {
			return nil
		}
		top := w.gaps.TopGap()
		if top == nil {
			return nil
		}
		client := w.client
		concept := top.Concept
		return func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := client.TriggerAcquisition(ctx, concept, ""); err != nil {
				return app.StatusMsg{Text: "acquisition trigger failed: " + err.Error()}
			}
			return app.StatusMsg{Text: "acquisition queued: " + concept}
		}
	}
	return nil
}

func (w *LearningWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	if w.learning == nil {
		return centerMessage("no learning data", width, height, w.th)
	}

	status := w.styles.StatusOK.Render("enabled")
	if !w.learning.Enabled {
		status = w.styles.StatusWarn.Render("paused")
	}
	lines := []string{"learning " + status + w.styles.Dim.Render("  p:pause/resume a:acquire")}

	barW := width - 28
	if barW < 6 {
		barW = 6
	}
	gauge := components.Gauge{
		Width:       barW,
		ShowPercent: true,
		Filled:      w.th.GaugeFilled,
		Empty:       w.th.GaugeEmpty,
	}

	for _, p := range w.learning.Plans {
		label := components.PadRight(components.TruncateTail(p.TargetConcept, 18, "…"), 19)
		lines = append(lines, label+gauge.Render(p.Progress))
	}
	if len(w.learning.Plans) == 0 {
		lines = append(lines, w.styles.Dim.Render("no active plans"))
	}

	if len(w.history) > 0 && len(lines) < height {
		done, failed := 0, 0
		for _, p := range w.history {
			if p.Status == godel.PlanFailed {
				failed++
			} else {
				done++
			}
		}
		lines = append(lines, w.styles.Dim.Render(
			fmt.Sprintf("history: %d completed, %d failed", done, failed)))
	}

	return fitLines(lines, width, height)
}

var _ app.Widget = (*LearningWidget)(nil)
