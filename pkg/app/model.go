package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Config tunes the root model.
type Config struct {
	TickInterval time.Duration // UI refresh period
	Bridge       *Bridge       // may be nil (no external producers)
}

// DefaultConfig returns the standard model configuration.
func DefaultConfig() Config {
	return Config{TickInterval: time.Second}
}

// AppModel is the bubbletea root. It owns focus, expansion, search mode,
// and broadcast of messages to widgets; rendering is delegated to the view
// function set by the tui package.
type AppModel struct {
	cfg Config

	widgets     map[string]Widget
	widgetOrder []string

	focusedWidget  string
	expandedWidget string

	width  int
	height int

	layoutDirty bool

	searching   bool
	searchQuery string

	helpVisible bool

	statusText  string
	statusUntil time.Time

	viewFn func(AppModel) string

	quitting bool
}

// NewAppModel builds the root model. Widget order fixes the Tab cycle.
func NewAppModel(cfg Config, widgets ...Widget) AppModel {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = time.Second
	}
	m := AppModel{
		cfg:         cfg,
		widgets:     make(map[string]Widget, len(widgets)),
		layoutDirty: true,
	}
	for _, w := range widgets {
		m.widgets[w.ID()] = w
		m.widgetOrder = append(m.widgetOrder, w.ID())
	}
	if len(m.widgetOrder) > 0 {
		m.focusedWidget = m.widgetOrder[0]
	}
	return m
}

// SetViewFn installs the renderer. The tui package calls this so app does
// not depend on layout code.
func (m *AppModel) SetViewFn(fn func(AppModel) string) {
	m.viewFn = fn
}

func (m AppModel) Width() int              { return m.width }
func (m AppModel) Height() int             { return m.height }
func (m AppModel) LayoutDirty() bool       { return m.layoutDirty }
func (m AppModel) FocusedWidgetID() string { return m.focusedWidget }
func (m AppModel) ExpandedWidgetID() string {
	return m.expandedWidget
}
func (m AppModel) Searching() bool       { return m.searching }
func (m AppModel) SearchQuery() string   { return m.searchQuery }
func (m AppModel) WidgetOrder() []string { return m.widgetOrder }
func (m AppModel) HelpVisible() bool     { return m.helpVisible }
func (m AppModel) Quitting() bool        { return m.quitting }

// Widget returns the widget registered under id, or nil.
func (m AppModel) Widget(id string) Widget { return m.widgets[id] }

// StatusText returns the transient status message, or empty once expired.
func (m AppModel) StatusText() string {
	if m.statusText != "" && time.Now().After(m.statusUntil) {
		return ""
	}
	return m.statusText
}

// Init starts the refresh ticker and, when a bridge is wired, the wait for
// external messages.
func (m AppModel) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd(m.cfg.TickInterval)}
	if m.cfg.Bridge != nil {
		cmds = append(cmds, m.cfg.Bridge.WaitCmd())
	}
	return tea.Batch(cmds...)
}

// Update is the single message dispatcher.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutDirty = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickEvent:
		cmds := []tea.Cmd{TickCmd(m.cfg.TickInterval)}
		if cmd := m.broadcast(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case StatusMsg:
		m.statusText = msg.Text
		m.statusUntil = time.Now().Add(5 * time.Second)
		return m, m.rearm(nil)

	case StateRefreshMsg, StreamStateMsg, DataUpdateEvent:
		return m, m.rearm(m.broadcast(msg))
	}

	return m, m.rearm(m.broadcast(msg))
}

// rearm batches the bridge wait onto cmd so external messages keep flowing.
func (m AppModel) rearm(cmd tea.Cmd) tea.Cmd {
	if m.cfg.Bridge == nil {
		return cmd
	}
	if cmd == nil {
		return m.cfg.Bridge.WaitCmd()
	}
	return tea.Batch(cmd, m.cfg.Bridge.WaitCmd())
}

func (m AppModel) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		return m.handleSearchKey(key)
	}

	switch key.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "tab":
		m.CycleFocusForward()
		return m, nil

	case "shift+tab":
		m.CycleFocusBackward()
		return m, nil

	case "enter":
		m.ToggleExpand()
		m.layoutDirty = true
		return m, nil

	case "esc":
		if m.expandedWidget != "" {
			m.expandedWidget = ""
			m.layoutDirty = true
			return m, nil
		}
		if m.searchQuery != "" {
			m.searchQuery = ""
			return m, m.rearm(m.broadcast(SearchMsg{}))
		}
		return m, nil

	case "/":
		m.searching = true
		return m, nil

	case "?":
		m.helpVisible = !m.helpVisible
		return m, nil
	}

	// Unclaimed keys go to the focused widget.
	if w := m.widgets[m.focusedWidget]; w != nil {
		return m, m.rearm(w.HandleKey(key))
	}
	return m, nil
}

func (m AppModel) handleSearchKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.Type {
	case tea.KeyEsc:
		m.searching = false
		m.searchQuery = ""
		return m, m.rearm(m.broadcast(SearchMsg{}))

	case tea.KeyEnter:
		m.searching = false
		return m, nil

	case tea.KeyBackspace:
		if r := []rune(m.searchQuery); len(r) > 0 {
			m.searchQuery = string(r[:len(r)-1])
		}
		return m, m.rearm(m.broadcast(SearchMsg{Query: m.searchQuery}))

	case tea.KeyRunes:
		m.searchQuery += string(key.Runes)
		return m, m.rearm(m.broadcast(SearchMsg{Query: m.searchQuery}))

	case tea.KeySpace:
		// Space arrives as its own key type with the rune attached;
		// append exactly one.
		m.searchQuery += " "
		return m, m.rearm(m.broadcast(SearchMsg{Query: m.searchQuery}))
	}
	return m, nil
}

// broadcast delivers msg to every widget and batches their commands.
func (m AppModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for _, id := range m.widgetOrder {
		if cmd := m.widgets[id].Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

// View delegates to the installed renderer.
func (m AppModel) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	if m.viewFn == nil {
		return ""
	}
	return m.viewFn(m)
}
