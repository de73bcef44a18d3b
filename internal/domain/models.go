package domain

// Status values reported by the upstream file source
const (
	StatusAvailable = "available"
	StatusScheduled = "scheduled"
)

// Identity is the composite key of an item
type Identity struct {
	Name   string
	Device string
}

// String renders the identity as name@device
func (id Identity) String() string {
	return id.Name + "@" + id.Device
}

// Item represents one remote file available for selection
type Item struct {
	Name    string
	Device  string
	Path    string
	Status  string // "available", "scheduled" or another domain status
	Checked bool   // owned by the selection controller
}

// ID returns the item's composite identity
func (i Item) ID() Identity {
	return Identity{Name: i.Name, Device: i.Device}
}

// Eligible reports whether the item may be selected
func (i Item) Eligible() bool {
	return i.Status == StatusAvailable
}

// Scheduled reports whether the item is already queued for transfer
func (i Item) Scheduled() bool {
	return i.Status == StatusScheduled
}

// AggregateState is the derived state of the select-all control
type AggregateState int

const (
	AggregateEmpty AggregateState = iota
	AggregateChecked
	AggregateIndeterminate
)

func (s AggregateState) String() string {
	switch s {
	case AggregateChecked:
		return "CHECKED"
	case AggregateIndeterminate:
		return "INDETERMINATE"
	default:
		return "EMPTY"
	}
}

// ControlFlags are the two visual flags of the select-all checkbox
type ControlFlags struct {
	Checked       bool
	Indeterminate bool
}
