package views

import (
	"fmt"

	"dlpick/internal/domain"
)

// Checkbox glyphs
const (
	GlyphChecked       = "[x]"
	GlyphUnchecked     = "[ ]"
	GlyphIndeterminate = "[-]"
)

// CheckboxGlyph maps checkbox flags to a glyph; indeterminate wins over checked
func CheckboxGlyph(checked, indeterminate bool) string {
	switch {
	case indeterminate:
		return GlyphIndeterminate
	case checked:
		return GlyphChecked
	default:
		return GlyphUnchecked
	}
}

// ControlGlyph renders the bulk control from its flags only
func ControlGlyph(flags domain.ControlFlags) string {
	return CheckboxGlyph(flags.Checked, flags.Indeterminate)
}

// CountText is the selection counter shown next to the bulk control
func CountText(selected int) string {
	if selected > 0 {
		return fmt.Sprintf("Selected %d", selected)
	}
	return "None Selected"
}

// HeaderRenderer renders the bulk control line and the column headers
type HeaderRenderer struct {
	styles *Styles
	rows   *RowRenderer
}

// NewHeaderRenderer creates a new header renderer
func NewHeaderRenderer(styles *Styles, rows *RowRenderer) *HeaderRenderer {
	return &HeaderRenderer{styles: styles, rows: rows}
}

// Render renders the bulk control, the counter and the column headers
func (h *HeaderRenderer) Render(flags domain.ControlFlags, selected, width int) string {
	control := "  " + ControlGlyph(flags) + " " + h.styles.Count.Render(CountText(selected))
	return control + "\n" + h.rows.RenderColumns(width)
}
