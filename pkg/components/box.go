package components

import (
	"strings"
)

// Box draws a rounded border around content with the title embedded in the
// top edge. Content lines are clipped and padded to the interior width.
type Box struct {
	Title       string
	TitleAlign  Align
	BorderColor string // hex color for the frame
	TitleColor  string // hex color for the title text
}

// Render frames content into a width x height cell block, border included.
// Widths below 4 or heights below 2 return an empty string.
func (b Box) Render(content string, width, height int) string {
	if width < 4 || height < 2 {
		return ""
	}
	inner := width - 2

	fg := Fg(b.BorderColor)
	reset := ""
	if fg != "" {
		reset = Reset
	}

	var out strings.Builder
	out.WriteString(b.topEdge(inner, fg, reset))
	out.WriteByte('\n')

	lines := strings.Split(content, "\n")
	for row := 0; row < height-2; row++ {
		var line string
		if row < len(lines) {
			line = lines[row]
		}
		line = Truncate(line, inner)
		line = PadRight(line, inner)
		out.WriteString(fg + "│" + reset + line + fg + "│" + reset)
		out.WriteByte('\n')
	}

	out.WriteString(fg + "╰" + strings.Repeat("─", inner) + "╯" + reset)
	return out.String()
}

func (b Box) topEdge(inner int, fg, reset string) string {
	if b.Title == "" {
		return fg + "╭" + strings.Repeat("─", inner) + "╮" + reset
	}

	title := " " + b.Title + " "
	maxTitle := inner - 2
	if maxTitle < 1 {
		maxTitle = 1
	}
	title = TruncateTail(title, maxTitle, "… ")
	tw := VisibleWidth(title)

	var left int
	switch b.TitleAlign {
	case AlignCenter:
		left = (inner - tw) / 2
	case AlignRight:
		left = inner - tw - 1
	default:
		left = 1
	}
	if left < 0 {
		left = 0
	}
	right := inner - tw - left
	if right < 0 {
		right = 0
	}

	styled := title
	if tc := Fg(b.TitleColor); tc != "" {
		styled = tc + title + reset + fg
	}
	return fg + "╭" + strings.Repeat("─", left) + styled + strings.Repeat("─", right) + "╮" + reset
}
