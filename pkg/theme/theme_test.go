package theme

import (
	"strconv"
	"strings"
	"testing"

	"github.com/muesli/termenv"
)

func TestGetKnownTheme(t *testing.T) {
	th := Get("nord")
	if th.Name != "nord" {
		t.Errorf("Get(nord).Name = %q", th.Name)
	}
}

func TestGetUnknownFallsBackToDefault(t *testing.T) {
	th := Get("no-such-theme")
	if th.Name != "default" {
		t.Errorf("fallback theme = %q, want default", th.Name)
	}
}

func TestGetCaseInsensitive(t *testing.T) {
	if Get("NORD").Name != "nord" {
		t.Error("lookup should be case-insensitive")
	}
}

func TestNamesSortedAndComplete(t *testing.T) {
	names := Names()
	if len(names) < 3 {
		t.Fatalf("Names() = %v, want at least 3 builtins", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Errorf("Names() not sorted: %q > %q", names[i-1], names[i])
		}
	}
}

func TestBuiltinsValidate(t *testing.T) {
	for _, name := range Names() {
		if err := validate(Get(name)); err != nil {
			t.Errorf("builtin %q invalid: %v", name, err)
		}
	}
}

func TestLoadTOMLRoundTrip(t *testing.T) {
	src := `
name = "custom"

[base]
background = "#101010"
foreground = "#e0e0e0"
dim = "#707070"
accent = "#ff00aa"

[widget]
border = "#2a2a2a"
border_focus = "#ff00aa"
title = "#ffffff"

[status]
ok = "#00ff00"
warn = "#ffff00"
error = "#ff0000"
unknown = "#888888"

[gauge]
filled = "#00ff00"
empty = "#2a2a2a"
warn = "#ffff00"
crit = "#ff0000"

[spark]
line = "#ff00aa"
dim = "#2a2a2a"

[priority]
high = "#ff0000"
medium = "#ffff00"
low = "#888888"

[special]
search_highlight = "#ffff00"
help_key = "#ff00aa"
help_desc = "#707070"
`
	th, err := LoadTOML([]byte(src))
	if err != nil {
		t.Fatalf("LoadTOML: %v", err)
	}
	if th.Name != "custom" {
		t.Errorf("Name = %q", th.Name)
	}
	if th.Accent != "#ff00aa" {
		t.Errorf("Accent = %q", th.Accent)
	}
	if th.PriorityHigh != "#ff0000" {
		t.Errorf("PriorityHigh = %q", th.PriorityHigh)
	}
}

func TestLoadTOMLRejectsBadColor(t *testing.T) {
	src := `
name = "bad"
[base]
background = "not-a-color"
`
	if _, err := LoadTOML([]byte(src)); err == nil {
		t.Error("expected error for malformed palette")
	}
}

func TestLoadTOMLRejectsMissingName(t *testing.T) {
	if _, err := LoadTOML([]byte(`[base]`)); err == nil {
		t.Error("expected error for missing name")
	}
}

func TestGaugeColors(t *testing.T) {
	th := Get("default")
	tests := []struct {
		ratio float64
		want  string
	}{
		{0.1, th.GaugeFilled},
		{0.69, th.GaugeFilled},
		{0.7, th.GaugeWarn},
		{0.89, th.GaugeWarn},
		{0.9, th.GaugeCrit},
		{1.0, th.GaugeCrit},
	}
	for _, tt := range tests {
		filled, empty := GaugeColors(tt.ratio, th)
		if filled != tt.want {
			t.Errorf("GaugeColors(%v) filled = %q, want %q", tt.ratio, filled, tt.want)
		}
		if empty != th.GaugeEmpty {
			t.Errorf("GaugeColors(%v) empty = %q", tt.ratio, empty)
		}
	}
}

func TestStatusStyleMapping(t *testing.T) {
	s := NewStyles(Get("default"))
	if s.StatusStyle("connected").GetForeground() != s.StatusOK.GetForeground() {
		t.Error("connected should map to OK")
	}
	if s.StatusStyle("reconnecting").GetForeground() != s.StatusWarn.GetForeground() {
		t.Error("reconnecting should map to warn")
	}
	if s.StatusStyle("disconnected").GetForeground() != s.StatusError.GetForeground() {
		t.Error("disconnected should map to error")
	}
	if s.StatusStyle("???").GetForeground() != s.StatusUnknown.GetForeground() {
		t.Error("unrecognized status should map to unknown")
	}
}

func TestAdaptKeepsTrueColor(t *testing.T) {
	th := Get("default")
	got := Adapt(th, termenv.TrueColor)
	if got != th {
		t.Error("truecolor profile should leave the palette untouched")
	}
}

func TestAdaptDowngradesToIndexed(t *testing.T) {
	th := Adapt(Get("default"), termenv.ANSI256)

	for name, c := range map[string]string{
		"Accent":      th.Accent,
		"StatusOK":    th.StatusOK,
		"GaugeFilled": th.GaugeFilled,
		"Title":       th.Title,
	} {
		if strings.HasPrefix(c, "#") {
			t.Errorf("%s = %q, hex should have been downsampled", name, c)
			continue
		}
		n, err := strconv.Atoi(c)
		if err != nil || n < 0 || n > 255 {
			t.Errorf("%s = %q, want a palette index in 0..255", name, c)
		}
	}
}

func TestAdaptStripsColorForAscii(t *testing.T) {
	th := Adapt(Get("default"), termenv.Ascii)
	if th.Accent != "" || th.StatusError != "" {
		t.Errorf("ascii profile should strip colors, got accent %q error %q", th.Accent, th.StatusError)
	}
}
