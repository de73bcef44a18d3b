package ui

import (
	"time"

	"dlpick/internal/eventbus"
	"dlpick/internal/transfer"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// tickMsg is sent on a timer for the loading spinner
type tickMsg time.Time

// reloadTickMsg triggers the periodic reload
type reloadTickMsg time.Time

// clearStatusMsg clears the status line if it still shows message seq
type clearStatusMsg struct {
	seq int
}

// previewPagerMsg contains the result of showing a batch in the pager
type previewPagerMsg struct {
	batch transfer.Batch
	err   error
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
