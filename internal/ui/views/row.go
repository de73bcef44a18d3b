package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"dlpick/internal/domain"
)

// Column widths; the path column takes whatever is left
const (
	nameWidth    = 28
	deviceWidth  = 16
	statusWidth  = 10
	minPathWidth = 12
)

// Row is one file in the list. It renders its item and reports toggles upward;
// it never changes the item itself.
type Row struct {
	Item    domain.Item
	Focused bool
}

// Disabled reports whether the checkbox accepts input
func (r Row) Disabled() bool {
	return r.Item.Scheduled()
}

// Toggle returns the identity to hand to the controller, or false when the row is disabled
func (r Row) Toggle() (domain.Identity, bool) {
	if r.Disabled() {
		return domain.Identity{}, false
	}
	return r.Item.ID(), true
}

// RowRenderer handles rendering of file rows
type RowRenderer struct {
	styles   *Styles
	showPath bool
}

// NewRowRenderer creates a new row renderer
func NewRowRenderer(styles *Styles, showPath bool) *RowRenderer {
	return &RowRenderer{
		styles:   styles,
		showPath: showPath,
	}
}

// Render renders a row to fit width
func (r *RowRenderer) Render(row Row, width int) string {
	item := row.Item

	base := lipgloss.NewStyle()
	if item.Checked {
		base = r.styles.SelectionBg
	}

	cursor := "  "
	if row.Focused {
		cursor = "> "
	}

	nameStyle := base
	if row.Focused {
		nameStyle = nameStyle.Inherit(r.styles.Cursor)
	}

	statusStyle := base.Foreground(lipgloss.Color(GetStatusColor(item.Status)))

	var parts []string
	parts = append(parts, r.styles.Cursor.Render(cursor))
	parts = append(parts, base.Render(CheckboxGlyph(item.Checked, false)+" "))
	parts = append(parts, nameStyle.Render(fit(item.Name, nameWidth)))
	parts = append(parts, base.Render(" "+fit(item.Device, deviceWidth)))
	if r.showPath {
		parts = append(parts, base.Render(" "+fit(item.Path, r.pathWidth(width))))
	}
	parts = append(parts, statusStyle.Render(" "+fit(item.Status, statusWidth)))

	line := strings.Join(parts, "")
	if row.Disabled() {
		// Keep the checkbox state readable but make it obvious input is ignored
		return r.styles.Disabled.Render(stripANSI(line))
	}
	return line
}

// RenderColumns renders the column header line aligned with Render
func (r *RowRenderer) RenderColumns(width int) string {
	var b strings.Builder
	b.WriteString("      ") // cursor + checkbox
	b.WriteString(fit("Name", nameWidth))
	b.WriteString(" " + fit("Device", deviceWidth))
	if r.showPath {
		b.WriteString(" " + fit("Path", r.pathWidth(width)))
	}
	b.WriteString(" " + fit("Status", statusWidth))
	return r.styles.Header.Render(b.String())
}

func (r *RowRenderer) pathWidth(width int) int {
	if width <= 0 {
		width = 80 // Default terminal width
	}
	fixed := 6 + nameWidth + 1 + deviceWidth + 1 + 1 + statusWidth
	if w := width - fixed; w > minPathWidth {
		return w
	}
	return minPathWidth
}

// fit truncates or pads s to exactly width cells
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if w := lipgloss.Width(s); w <= width {
		return s + strings.Repeat(" ", width-w)
	}

	var b strings.Builder
	used := 0
	for _, ch := range s {
		cw := lipgloss.Width(string(ch))
		if used+cw > width-1 {
			break
		}
		b.WriteRune(ch)
		used += cw
	}
	b.WriteString("…")
	used++
	return b.String() + strings.Repeat(" ", width-used)
}
