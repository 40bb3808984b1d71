package app

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// PlaceholderWidget renders its title and the dimensions it was given. It
// exists for layout and navigation tests.
type PlaceholderWidget struct {
	id    string
	title string
}

// NewPlaceholder creates a placeholder widget.
func NewPlaceholder(id, title string) *PlaceholderWidget {
	return &PlaceholderWidget{id: id, title: title}
}

func (w *PlaceholderWidget) ID() string    { return w.id }
func (w *PlaceholderWidget) Title() string { return w.title }

func (w *PlaceholderWidget) Update(tea.Msg) tea.Cmd        { return nil }
func (w *PlaceholderWidget) HandleKey(tea.KeyMsg) tea.Cmd  { return nil }
func (w *PlaceholderWidget) MinSize() (int, int)           { return 10, 3 }

func (w *PlaceholderWidget) View(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	lines := make([]string, 0, height)
	top := (height - 2) / 2
	if top < 0 {
		top = 0
	}
	for i := 0; i < top; i++ {
		lines = append(lines, "")
	}
	lines = append(lines, w.title)
	if height > 1 {
		lines = append(lines, fmt.Sprintf("%dx%d", width, height))
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	return strings.Join(lines[:height], "\n")
}

var _ Widget = (*PlaceholderWidget)(nil)
