package state

import (
	"dlpick/internal/transfer"
	"dlpick/internal/ui/views"
)

// AppState contains the UI state that is not owned by the selection controller
type AppState struct {
	// Source data
	SourceName string // where the list came from
	Loading    bool   // a load has been requested and not answered yet
	// PeriodicLoad marks the pending load as started by the refresh timer;
	// an unchanged answer then keeps the current selection
	PeriodicLoad bool

	// Status bar
	StatusMessage string
	StatusKind    views.StatusKind
	StatusSeq     int // bumped on every message so stale clears are ignored

	// Preview popup (used when the pager cannot take the terminal)
	ShowPreview  bool
	PreviewTitle string

	// Last batch handed to the sink
	LastBatch *transfer.Batch
}

// NewAppState creates a new application state
func NewAppState() *AppState {
	return &AppState{}
}

// SetStatus replaces the status message and returns its sequence number
func (s *AppState) SetStatus(msg string, kind views.StatusKind) int {
	s.StatusSeq++
	s.StatusMessage = msg
	s.StatusKind = kind
	return s.StatusSeq
}

// ClearStatus clears the status message if it is still message seq
func (s *AppState) ClearStatus(seq int) {
	if seq == s.StatusSeq {
		s.StatusMessage = ""
		s.StatusKind = views.StatusInfo
	}
}

// OpenPreview shows the preview popup under title
func (s *AppState) OpenPreview(title string) {
	s.ShowPreview = true
	s.PreviewTitle = title
}

// ClosePreview hides the preview popup
func (s *AppState) ClosePreview() {
	s.ShowPreview = false
	s.PreviewTitle = ""
}

// RecordBatch remembers the last submitted batch
func (s *AppState) RecordBatch(b transfer.Batch) {
	s.LastBatch = &b
}
