package input

import (
	"dlpick/internal/selection"
	"dlpick/internal/ui/logic"
)

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Controller *selection.Controller
	Navigator  *logic.Navigator
}

// CurrentIndex returns the focused row
func (c *ModelContext) CurrentIndex() int {
	return c.Navigator.Cursor()
}

// TotalItems returns the number of rows
func (c *ModelContext) TotalItems() int {
	return c.Controller.Len()
}

// HasSelection returns true if any items are checked
func (c *ModelContext) HasSelection() bool {
	return c.Controller.HasSelection()
}

// SelectedCount returns the number of checked items
func (c *ModelContext) SelectedCount() int {
	return c.Controller.SelectedCount()
}

// CurrentDisabled reports whether the focused row ignores toggles
func (c *ModelContext) CurrentDisabled() bool {
	item, ok := c.Controller.Item(c.CurrentIndex())
	return !ok || item.Scheduled()
}

// ControlChecked returns the bulk control's checked flag
func (c *ModelContext) ControlChecked() bool {
	return c.Controller.Control().Checked
}
