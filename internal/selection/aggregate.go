package selection

import "dlpick/internal/domain"

// ComputeAggregate derives the select-all state from items alone.
// Only eligible items count: EMPTY when none of them is checked,
// CHECKED when all of them are, INDETERMINATE otherwise.
func ComputeAggregate(items []domain.Item) domain.AggregateState {
	eligible, selected := 0, 0
	for _, item := range items {
		if !item.Eligible() {
			continue
		}
		eligible++
		if item.Checked {
			selected++
		}
	}

	switch {
	case selected == 0:
		return domain.AggregateEmpty
	case selected == eligible:
		return domain.AggregateChecked
	default:
		return domain.AggregateIndeterminate
	}
}

// RenderAggregateControl maps the aggregate state to the control's visual flags
func RenderAggregateControl(state domain.AggregateState) domain.ControlFlags {
	switch state {
	case domain.AggregateChecked:
		return domain.ControlFlags{Checked: true, Indeterminate: false}
	case domain.AggregateIndeterminate:
		return domain.ControlFlags{Checked: false, Indeterminate: true}
	default:
		return domain.ControlFlags{Checked: false, Indeterminate: false}
	}
}
