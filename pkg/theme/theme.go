// Package theme defines color palettes for the dashboard and a registry of
// built-in and user-loaded themes. Palettes use #RRGGBB hex strings; Adapt
// downsamples a palette for terminals without true-color support, based on
// the termenv-detected profile.
package theme

import (
	"sort"
	"strings"
	"sync"
)

// Theme is a complete dashboard palette.
type Theme struct {
	Name string

	Background string
	Foreground string
	Dim        string
	Accent     string

	Border      string
	BorderFocus string
	Title       string

	StatusOK      string
	StatusWarn    string
	StatusError   string
	StatusUnknown string

	GaugeFilled string
	GaugeEmpty  string
	GaugeWarn   string
	GaugeCrit   string

	SparkLine string
	SparkDim  string

	// Knowledge gap priority markers.
	PriorityHigh   string
	PriorityMedium string
	PriorityLow    string

	SearchHighlight string
	HelpKey         string
	HelpDesc        string
}

var (
	mu       sync.RWMutex
	registry = map[string]Theme{}
)

func init() {
	registerBuiltins()
}

// Get returns a named theme, falling back to the default when not found.
func Get(name string) Theme {
	mu.RLock()
	defer mu.RUnlock()
	if t, ok := registry[strings.ToLower(name)]; ok {
		return t
	}
	return registry["default"]
}

// Names lists available theme names sorted alphabetically.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register adds a theme under its lowercase name, replacing any existing
// theme with that name.
func Register(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	registry[strings.ToLower(t.Name)] = t
}
