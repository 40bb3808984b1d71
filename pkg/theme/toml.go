package theme

import (
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"
)

// tomlTheme is the TOML-serializable form of a Theme, grouped into tables.
type tomlTheme struct {
	Name     string       `toml:"name"`
	Base     tomlBase     `toml:"base"`
	Widget   tomlWidget   `toml:"widget"`
	Status   tomlStatus   `toml:"status"`
	Gauge    tomlGauge    `toml:"gauge"`
	Spark    tomlSpark    `toml:"spark"`
	Priority tomlPriority `toml:"priority"`
	Special  tomlSpecial  `toml:"special"`
}

type tomlBase struct {
	Background string `toml:"background"`
	Foreground string `toml:"foreground"`
	Dim        string `toml:"dim"`
	Accent     string `toml:"accent"`
}

type tomlWidget struct {
	Border      string `toml:"border"`
	BorderFocus string `toml:"border_focus"`
	Title       string `toml:"title"`
}

type tomlStatus struct {
	OK      string `toml:"ok"`
	Warn    string `toml:"warn"`
	Error   string `toml:"error"`
	Unknown string `toml:"unknown"`
}

type tomlGauge struct {
	Filled string `toml:"filled"`
	Empty  string `toml:"empty"`
	Warn   string `toml:"warn"`
	Crit   string `toml:"crit"`
}

type tomlSpark struct {
	Line string `toml:"line"`
	Dim  string `toml:"dim"`
}

type tomlPriority struct {
	High   string `toml:"high"`
	Medium string `toml:"medium"`
	Low    string `toml:"low"`
}

type tomlSpecial struct {
	SearchHighlight string `toml:"search_highlight"`
	HelpKey         string `toml:"help_key"`
	HelpDesc        string `toml:"help_desc"`
}

var hexColorRe = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// LoadTOML parses a theme from TOML bytes and validates it.
func LoadTOML(data []byte) (Theme, error) {
	var tt tomlTheme
	if err := toml.Unmarshal(data, &tt); err != nil {
		return Theme{}, fmt.Errorf("theme: parse TOML: %w", err)
	}

	t := Theme{
		Name:       tt.Name,
		Background: tt.Base.Background,
		Foreground: tt.Base.Foreground,
		Dim:        tt.Base.Dim,
		Accent:     tt.Base.Accent,

		Border:      tt.Widget.Border,
		BorderFocus: tt.Widget.BorderFocus,
		Title:       tt.Widget.Title,

		StatusOK:      tt.Status.OK,
		StatusWarn:    tt.Status.Warn,
		StatusError:   tt.Status.Error,
		StatusUnknown: tt.Status.Unknown,

		GaugeFilled: tt.Gauge.Filled,
		GaugeEmpty:  tt.Gauge.Empty,
		GaugeWarn:   tt.Gauge.Warn,
		GaugeCrit:   tt.Gauge.Crit,

		SparkLine: tt.Spark.Line,
		SparkDim:  tt.Spark.Dim,

		PriorityHigh:   tt.Priority.High,
		PriorityMedium: tt.Priority.Medium,
		PriorityLow:    tt.Priority.Low,

		SearchHighlight: tt.Special.SearchHighlight,
		HelpKey:         tt.Special.HelpKey,
		HelpDesc:        tt.Special.HelpDesc,
	}

	if err := validate(t); err != nil {
		return Theme{}, err
	}
	return t, nil
}

// LoadFile reads and registers a theme from a TOML file on disk.
func LoadFile(path string) (Theme, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Theme{}, fmt.Errorf("theme: read %s: %w", path, err)
	}
	t, err := LoadTOML(data)
	if err != nil {
		return Theme{}, err
	}
	Register(t)
	return t, nil
}

// validate requires a name and well-formed hex for every color field.
func validate(t Theme) error {
	if t.Name == "" {
		return fmt.Errorf("theme: missing required field %q", "name")
	}
	colors := map[string]string{
		"background":       t.Background,
		"foreground":       t.Foreground,
		"dim":              t.Dim,
		"accent":           t.Accent,
		"border":           t.Border,
		"border_focus":     t.BorderFocus,
		"title":            t.Title,
		"status.ok":        t.StatusOK,
		"status.warn":      t.StatusWarn,
		"status.error":     t.StatusError,
		"status.unknown":   t.StatusUnknown,
		"gauge.filled":     t.GaugeFilled,
		"gauge.empty":      t.GaugeEmpty,
		"gauge.warn":       t.GaugeWarn,
		"gauge.crit":       t.GaugeCrit,
		"spark.line":       t.SparkLine,
		"spark.dim":        t.SparkDim,
		"priority.high":    t.PriorityHigh,
		"priority.medium":  t.PriorityMedium,
		"priority.low":     t.PriorityLow,
		"search_highlight": t.SearchHighlight,
		"help_key":         t.HelpKey,
		"help_desc":        t.HelpDesc,
	}
	for field, value := range colors {
		if value == "" {
			return fmt.Errorf("theme: missing required field %q", field)
		}
		if !hexColorRe.MatchString(value) {
			return fmt.Errorf("theme: invalid hex color %q for %q (want #RRGGBB)", value, field)
		}
	}
	return nil
}
