// Package components provides the low-level rendering primitives the
// dashboard widgets share: ANSI-aware text measurement, horizontal gauges
// with eighth-block precision, sparklines, and titled boxes.
package components

// Align controls horizontal placement of text within a region.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)
