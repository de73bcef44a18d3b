package views

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay renders a popup centered on top of a greyed-out copy of mainContent
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, height, width int, popupStyle lipgloss.Style) string {
	styledPopup := popupStyle.Render(popupContent)

	modalW := lipgloss.Width(styledPopup)
	modalH := lipgloss.Height(styledPopup)
	x := (width - modalW) / 2
	if x < 0 {
		x = 0
	}
	y := (height - modalH) / 2
	if y < 0 {
		y = 0
	}

	base := strings.Split(ansiRE.ReplaceAllString(mainContent, ""), "\n")
	for len(base) < y+modalH {
		base = append(base, "")
	}

	grey := lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	modal := strings.Split(styledPopup, "\n")

	out := make([]string, len(base))
	for i, line := range base {
		if i < y || i >= y+len(modal) {
			out[i] = grey.Render(line)
			continue
		}
		left, right := cutCells(line, x, modalW)
		out[i] = grey.Render(left) + modal[i-y] + grey.Render(right)
	}
	return strings.Join(out, "\n")
}

// ANSI escape sequence regex to strip styles/colors
var ansiRE = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// stripANSI strips ANSI color/style codes
func stripANSI(s string) string {
	return ansiRE.ReplaceAllString(s, "")
}

// cutCells splits a plain line around a span of n cells starting at cell x,
// padding the left side when the line is shorter than x
func cutCells(line string, x, n int) (string, string) {
	var left, right strings.Builder
	pos := 0
	for _, ch := range line {
		w := lipgloss.Width(string(ch))
		switch {
		case pos+w <= x:
			left.WriteRune(ch)
		case pos >= x+n:
			right.WriteRune(ch)
		}
		pos += w
	}
	if lw := lipgloss.Width(left.String()); lw < x {
		left.WriteString(strings.Repeat(" ", x-lw))
	}
	return left.String(), right.String()
}
