package domain

import "time"

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventItemsLoaded      EventType = "ItemsLoaded"
	EventLoadRequested    EventType = "LoadRequested"
	EventSelectionChanged EventType = "SelectionChanged"
	EventTransferQueued   EventType = "TransferQueued"
	EventError            EventType = "Error"
	EventConfigSaved      EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ItemsLoadedEvent is emitted when a source delivers a new file list
type ItemsLoadedEvent struct {
	Source string
	Items  []Item
}

func (e ItemsLoadedEvent) Type() EventType { return EventItemsLoaded }

// LoadRequestedEvent is emitted when a reload of the file list is requested
type LoadRequestedEvent struct {
	Source string
}

func (e LoadRequestedEvent) Type() EventType { return EventLoadRequested }

// SelectionChangedEvent is emitted when the aggregate selection state changes
type SelectionChangedEvent struct {
	State    AggregateState
	Selected int
	Eligible int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// TransferQueuedEvent is emitted when a batch is handed to the transfer sink
type TransferQueuedEvent struct {
	BatchID     string
	Descriptors []string
	QueuedAt    time.Time
}

func (e TransferQueuedEvent) Type() EventType { return EventTransferQueued }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigSavedEvent is emitted after the configuration is written
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
