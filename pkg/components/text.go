package components

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// VisibleWidth returns the width of s in terminal cells, ignoring ANSI
// escape sequences and counting wide runes as two cells.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// Truncate cuts s to at most width visible cells, preserving escape
// sequences before the cut.
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, "")
}

// TruncateTail cuts s to at most width visible cells and appends tail when
// a cut occurs. The tail counts toward width.
func TruncateTail(s string, width int, tail string) string {
	if width <= 0 {
		return ""
	}
	return ansi.Truncate(s, width, tail)
}

// PadRight extends s with spaces to exactly width visible cells. Strings
// already at or past width are returned unchanged.
func PadRight(s string, width int) string {
	if v := VisibleWidth(s); v < width {
		return s + strings.Repeat(" ", width-v)
	}
	return s
}

// PadLeft extends s with leading spaces to exactly width visible cells.
func PadLeft(s string, width int) string {
	if v := VisibleWidth(s); v < width {
		return strings.Repeat(" ", width-v) + s
	}
	return s
}

// Center pads s on both sides to width cells, extra space going right.
func Center(s string, width int) string {
	v := VisibleWidth(s)
	if v >= width {
		return s
	}
	left := (width - v) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-v-left)
}

// Wrap word-wraps s at width cells and returns the resulting lines.
func Wrap(s string, width int) []string {
	if width <= 0 {
		return []string{s}
	}
	return strings.Split(ansi.Wrap(s, width, ""), "\n")
}
