package selection

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"dlpick/internal/domain"
	"dlpick/internal/transfer"
)

var (
	// ErrNoSelection is returned by Submit when no eligible item is checked
	ErrNoSelection = errors.New("no files selected")

	// ErrDuplicateIdentity is returned by Ingest when two items share a name and device
	ErrDuplicateIdentity = errors.New("duplicate item identity")
)

// Validation failure reasons
const (
	ReasonMissing = "missing"
	ReasonControl = "control character in"
)

// ValidationError reports an upstream item with a missing or malformed field
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("item %d: %s %s", e.Index, e.Reason, e.Field)
}

// Option configures a Controller
type Option func(*Controller)

// AllowDuplicates keeps items sharing an identity instead of rejecting the list.
// Toggling such an identity flips every matching item.
func AllowDuplicates() Option {
	return func(c *Controller) {
		c.allowDuplicates = true
	}
}

// Controller owns the item list, the checked flags and the derived
// select-all state. It is not safe for concurrent use; every call is
// expected to come from the UI event loop.
type Controller struct {
	items  []domain.Item
	index  map[domain.Identity][]int
	loaded bool

	aggregate domain.AggregateState
	control   domain.ControlFlags
	onChange  func(domain.AggregateState, domain.ControlFlags)

	allowDuplicates bool
}

// NewController creates an empty, not yet loaded controller
func NewController(opts ...Option) *Controller {
	c := &Controller{
		index:     make(map[domain.Identity][]int),
		aggregate: domain.AggregateEmpty,
		control:   RenderAggregateControl(domain.AggregateEmpty),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnAggregateChange registers fn to run whenever the aggregate state changes
func (c *Controller) OnAggregateChange(fn func(domain.AggregateState, domain.ControlFlags)) {
	c.onChange = fn
}

// Ingest replaces the whole item list. Every item starts unchecked.
// The list is validated first; on error the previous list is kept.
func (c *Controller) Ingest(items []domain.Item) error {
	next := make([]domain.Item, len(items))
	index := make(map[domain.Identity][]int, len(items))

	for i, item := range items {
		if err := validate(i, item); err != nil {
			return fmt.Errorf("invalid file list: %w", err)
		}
		id := item.ID()
		if prev, ok := index[id]; ok && !c.allowDuplicates {
			return fmt.Errorf("invalid file list: %w: %s at items %d and %d", ErrDuplicateIdentity, id, prev[0], i)
		}
		item.Checked = false
		next[i] = item
		index[id] = append(index[id], i)
	}

	c.items = next
	c.index = index
	c.loaded = true
	c.recompute()
	return nil
}

// validate rejects blank fields, and control characters that would make a
// "<path>\n<device>" descriptor ambiguous
func validate(i int, item domain.Item) error {
	fields := []struct{ name, value string }{
		{"name", item.Name},
		{"device", item.Device},
		{"path", item.Path},
		{"status", item.Status},
	}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return &ValidationError{Index: i, Field: f.name, Reason: ReasonMissing}
		}
		if strings.IndexFunc(f.value, unicode.IsControl) >= 0 {
			return &ValidationError{Index: i, Field: f.name, Reason: ReasonControl}
		}
	}
	return nil
}

// SameList reports whether items match the working list field by field
// (name, device, path, status) and in the same order. Checked flags are ignored.
func (c *Controller) SameList(items []domain.Item) bool {
	if !c.loaded || len(items) != len(c.items) {
		return false
	}
	for i, item := range items {
		cur := c.items[i]
		if cur.Name != item.Name || cur.Device != item.Device ||
			cur.Path != item.Path || cur.Status != item.Status {
			return false
		}
	}
	return true
}

// Toggle flips the checked flag of every item with the given identity.
// It reports whether anything matched; an unknown identity is a no-op.
func (c *Controller) Toggle(id domain.Identity) bool {
	indices, ok := c.index[id]
	if !ok {
		return false
	}
	for _, i := range indices {
		c.items[i].Checked = !c.items[i].Checked
	}
	c.recompute()
	return true
}

// SelectAll checks every eligible item; other items keep their flag
func (c *Controller) SelectAll() {
	c.setEligible(true)
}

// DeselectAll unchecks every eligible item; other items keep their flag
func (c *Controller) DeselectAll() {
	c.setEligible(false)
}

// SetAllChecked is the select-all control handler
func (c *Controller) SetAllChecked(on bool) {
	if on {
		c.SelectAll()
	} else {
		c.DeselectAll()
	}
}

func (c *Controller) setEligible(checked bool) {
	for i := range c.items {
		if c.items[i].Eligible() {
			c.items[i].Checked = checked
		}
	}
	c.recompute()
}

// recompute derives the aggregate state and syncs the control flags
// only when that state changed
func (c *Controller) recompute() {
	state := ComputeAggregate(c.items)
	if state == c.aggregate {
		return
	}
	c.aggregate = state
	c.control = RenderAggregateControl(state)
	if c.onChange != nil {
		c.onChange(c.aggregate, c.control)
	}
}

// Submit hands the selected items to sink as one batch of descriptors.
// With nothing selected it returns ErrNoSelection and sink is not called.
func (c *Controller) Submit(sink transfer.Sink) (transfer.Batch, error) {
	descriptors := c.Descriptors()
	if len(descriptors) == 0 {
		return transfer.Batch{}, ErrNoSelection
	}

	batch := transfer.NewBatch(descriptors)
	if sink != nil {
		if err := sink.Send(batch); err != nil {
			return batch, fmt.Errorf("failed to hand off batch: %w", err)
		}
	}
	return batch, nil
}

// Descriptors returns the transfer descriptors of the selected items in list order
func (c *Controller) Descriptors() []string {
	selected := c.Selected()
	out := make([]string, 0, len(selected))
	for _, item := range selected {
		out = append(out, transfer.Descriptor(item.Path, item.Device))
	}
	return out
}

// Items returns a copy of the working list
func (c *Controller) Items() []domain.Item {
	out := make([]domain.Item, len(c.items))
	copy(out, c.items)
	return out
}

// Item returns the item at position i
func (c *Controller) Item(i int) (domain.Item, bool) {
	if i < 0 || i >= len(c.items) {
		return domain.Item{}, false
	}
	return c.items[i], true
}

// Lookup returns the first item with the given identity
func (c *Controller) Lookup(id domain.Identity) (domain.Item, bool) {
	indices, ok := c.index[id]
	if !ok {
		return domain.Item{}, false
	}
	return c.items[indices[0]], true
}

// Eligible returns the items that may be selected
func (c *Controller) Eligible() []domain.Item {
	var out []domain.Item
	for _, item := range c.items {
		if item.Eligible() {
			out = append(out, item)
		}
	}
	return out
}

// Selected returns the eligible items that are checked
func (c *Controller) Selected() []domain.Item {
	var out []domain.Item
	for _, item := range c.items {
		if item.Eligible() && item.Checked {
			out = append(out, item)
		}
	}
	return out
}

// SelectedCount returns the number of selected items
func (c *Controller) SelectedCount() int {
	return len(c.Selected())
}

// HasSelection returns true if anything is selected
func (c *Controller) HasSelection() bool {
	return c.aggregate != domain.AggregateEmpty
}

// Aggregate returns the cached aggregate state
func (c *Controller) Aggregate() domain.AggregateState {
	return c.aggregate
}

// Control returns the select-all control's visual flags
func (c *Controller) Control() domain.ControlFlags {
	return c.control
}

// Loaded reports whether a list was ever ingested
func (c *Controller) Loaded() bool {
	return c.loaded
}

// Len returns the number of items
func (c *Controller) Len() int {
	return len(c.items)
}
