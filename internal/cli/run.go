package cli

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dlpick/internal/config"
	"dlpick/internal/domain"
	"dlpick/internal/eventbus"
	"dlpick/internal/loader"
	"dlpick/internal/logging"
	"dlpick/internal/selection"
	"dlpick/internal/transfer"
	"dlpick/internal/ui"
)

// uiEvents are forwarded from the bus to the running program
var uiEvents = []eventbus.EventType{
	eventbus.EventItemsLoaded,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

// loggedEvents are written to the log file as they are published
var loggedEvents = []eventbus.EventType{
	eventbus.EventItemsLoaded,
	eventbus.EventLoadRequested,
	eventbus.EventSelectionChanged,
	eventbus.EventTransferQueued,
	eventbus.EventError,
	eventbus.EventConfigSaved,
}

// runInteractive starts the terminal UI
func runInteractive(ctx context.Context, cfg *config.Config, configSvc config.ConfigService, log *logging.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	src, err := newSource(cfg, log)
	if err != nil {
		return err
	}

	log.Info().
		Str("source", src.Name()).
		Str("config", configSvc.Path()).
		Str("spool", cfg.Transfer.SpoolDir).
		Msg("starting")

	bus := eventbus.New(log)
	defer bus.Close()

	subscribeEventLog(bus, log)

	loaderSvc := loader.NewLoaderService(bus, src, log)
	defer loaderSvc.StopLoad()

	recorder := transfer.NewRecorder()
	uiModel := ui.NewModel(bus, cfg, newController(cfg), withSpool(cfg, recorder), log)
	uiModel.SetSourceName(src.Name())

	programOpts := []tea.ProgramOption{tea.WithContext(ctx)}
	if cfg.UI.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	p := tea.NewProgram(uiModel, programOpts...)
	uiModel.SetProgram(p)

	// Set up event forwarding to UI
	eventChan := make(chan eventbus.DomainEvent, 100)
	for _, t := range uiEvents {
		unsubscribe := bus.Subscribe(t, func(e eventbus.DomainEvent) {
			select {
			case eventChan <- e:
			default:
				log.Warn().Str("event", string(e.Type())).Msg("event channel full, dropping event")
			}
		})
		defer unsubscribe()
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			select {
			case event := <-eventChan:
				p.Send(ui.EventMsg{Event: event})
			case <-done:
				return
			}
		}
	}()

	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) && !errors.Is(err, tea.ErrInterrupted) {
		log.Error().Err(err).Msg("program exited with error")
		return fmt.Errorf("error running program: %w", err)
	}

	log.Info().Int("batches", len(recorder.Batches())).Msg("exited")
	return nil
}

// runPrint loads the list once, checks every eligible file, and writes the batch
func runPrint(cmd *cobra.Command, cfg *config.Config, log *logging.Logger) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	src, err := newSource(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, loader.DefaultTimeout)
	defer cancel()

	items, err := src.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", src.Name(), err)
	}

	ctrl := newController(cfg)
	if err := ctrl.Ingest(items); err != nil {
		return err
	}
	ctrl.SelectAll()

	batch, err := ctrl.Submit(withSpool(cfg, transfer.NewWriterSink(cmd.OutOrStdout())))
	if errors.Is(err, selection.ErrNoSelection) {
		return fmt.Errorf("%s: %w", src.Name(), err)
	}
	if err != nil {
		return err
	}

	log.Debug().Str("batch", batch.ID).Int("files", batch.Len()).Msg("batch printed")
	return nil
}

// subscribeEventLog writes every bus event to the log
func subscribeEventLog(bus eventbus.EventBus, log *logging.Logger) {
	log = log.With("events")
	for _, t := range loggedEvents {
		bus.Subscribe(t, func(e eventbus.DomainEvent) {
			ev := log.Debug().Str("event", string(e.Type()))
			switch event := e.(type) {
			case domain.ItemsLoadedEvent:
				ev = ev.Int("files", len(event.Items))
			case domain.SelectionChangedEvent:
				ev = ev.Str("state", event.State.String()).Int("selected", event.Selected)
			case domain.TransferQueuedEvent:
				ev = ev.Str("batch", event.BatchID).Int("files", len(event.Descriptors))
			case domain.ErrorEvent:
				ev = ev.Str("message", event.Message).AnErr("error", event.Err)
			}
			ev.Send()
		})
	}
}
