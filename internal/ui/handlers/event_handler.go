package handlers

import (
	"errors"
	"fmt"

	"dlpick/internal/domain"
	"dlpick/internal/eventbus"
	"dlpick/internal/logging"
	"dlpick/internal/selection"
	"dlpick/internal/ui/logic"
	"dlpick/internal/ui/state"
	"dlpick/internal/ui/views"
)

// EventHandler applies domain events forwarded from the bus to UI state.
// It runs on the bubbletea Update goroutine.
type EventHandler struct {
	state      *state.AppState
	controller *selection.Controller
	navigator  *logic.Navigator
	log        *logging.Logger
}

// NewEventHandler creates a new event handler
func NewEventHandler(appState *state.AppState, ctrl *selection.Controller, nav *logic.Navigator, log *logging.Logger) *EventHandler {
	if log == nil {
		log = logging.Nop()
	}
	return &EventHandler{
		state:      appState,
		controller: ctrl,
		navigator:  nav,
		log:        log.With("ui"),
	}
}

// HandleEvent processes a domain event and returns the status sequence to
// clear later, or 0 when the status line was not touched
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) int {
	switch e := event.(type) {
	case domain.ItemsLoadedEvent:
		periodic := h.state.PeriodicLoad
		h.state.Loading = false
		h.state.PeriodicLoad = false
		if e.Source != "" {
			h.state.SourceName = e.Source
		}
		if periodic && h.controller.SameList(e.Items) {
			h.log.Debug().Int("files", len(e.Items)).Msg("periodic reload unchanged, keeping selection")
			return 0
		}
		if err := h.controller.Ingest(e.Items); err != nil {
			h.log.Error().Err(err).Str("source", e.Source).Msg("rejected file list")
			return h.state.SetStatus(ingestMessage(err), views.StatusError)
		}
		h.navigator.Reset()
		h.navigator.SetTotal(h.controller.Len())
		h.log.Info().Int("files", h.controller.Len()).Int("eligible", len(h.controller.Eligible())).Msg("file list ingested")
		return h.state.SetStatus(fmt.Sprintf("Loaded %d files", h.controller.Len()), views.StatusSuccess)

	case domain.ErrorEvent:
		h.state.Loading = false
		h.state.PeriodicLoad = false
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		return h.state.SetStatus(fmt.Sprintf("Error: %s", msg), views.StatusError)

	case domain.ConfigSavedEvent:
		return h.state.SetStatus(fmt.Sprintf("Config saved to %s", e.Path), views.StatusInfo)
	}
	return 0
}

func ingestMessage(err error) string {
	var verr *selection.ValidationError
	switch {
	case errors.As(err, &verr) && verr.Reason == selection.ReasonControl:
		return fmt.Sprintf("Invalid file list: file %d has a control character in its %s", verr.Index+1, verr.Field)
	case errors.As(err, &verr):
		return fmt.Sprintf("Invalid file list: file %d has no %s", verr.Index+1, verr.Field)
	case errors.Is(err, selection.ErrDuplicateIdentity):
		return "Invalid file list: duplicate file on the same device"
	default:
		return fmt.Sprintf("Invalid file list: %v", err)
	}
}
