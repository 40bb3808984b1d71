package components

import (
	"fmt"
	"strconv"
	"strings"
)

// Fg returns a foreground escape for a color string: 24-bit for "#RRGGBB",
// 256-color for a bare index like "93". Malformed input yields an empty
// string so unstyled output stays clean.
func Fg(color string) string {
	if n, ok := parseIndex(color); ok {
		return fmt.Sprintf("\x1b[38;5;%dm", n)
	}
	r, g, b, ok := parseHex(color)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[38;2;%d;%d;%dm", r, g, b)
}

// Bg returns a background escape for a color string, with the same forms
// as Fg.
func Bg(color string) string {
	if n, ok := parseIndex(color); ok {
		return fmt.Sprintf("\x1b[48;5;%dm", n)
	}
	r, g, b, ok := parseHex(color)
	if !ok {
		return ""
	}
	return fmt.Sprintf("\x1b[48;2;%d;%d;%dm", r, g, b)
}

// Reset clears all active styling.
const Reset = "\x1b[0m"

func parseHex(hex string) (r, g, b uint8, ok bool) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	rv, err1 := strconv.ParseUint(hex[0:2], 16, 8)
	gv, err2 := strconv.ParseUint(hex[2:4], 16, 8)
	bv, err3 := strconv.ParseUint(hex[4:6], 16, 8)
	if err1 != nil || err2 != nil || err3 != nil {
		return 0, 0, 0, false
	}
	return uint8(rv), uint8(gv), uint8(bv), true
}

// parseIndex accepts a decimal xterm-256 palette index, the form the theme
// adapter emits for non-truecolor terminals.
func parseIndex(color string) (int, bool) {
	if color == "" || strings.HasPrefix(color, "#") {
		return 0, false
	}
	n, err := strconv.Atoi(color)
	if err != nil || n < 0 || n > 255 {
		return 0, false
	}
	return n, true
}
