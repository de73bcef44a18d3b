package loader

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dlpick/internal/domain"
	"dlpick/internal/eventbus"
	"dlpick/internal/logging"
	"dlpick/internal/source"
)

// ErrLoadInProgress is returned when a load is requested while one is running
var ErrLoadInProgress = errors.New("load already in progress")

// DefaultTimeout bounds a single load
const DefaultTimeout = 30 * time.Second

// LoaderService fetches the file list from a source and publishes the result
type LoaderService interface {
	StartLoad(ctx context.Context) error
	StopLoad()
}

// loaderService is the concrete implementation
type loaderService struct {
	bus        eventbus.EventBus
	src        source.Source
	log        *logging.Logger
	timeout    time.Duration
	mu         sync.Mutex
	isLoading  bool
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewLoaderService creates a loader that answers LoadRequested events
func NewLoaderService(bus eventbus.EventBus, src source.Source, log *logging.Logger) LoaderService {
	if log == nil {
		log = logging.Nop()
	}
	ls := &loaderService{
		bus:     bus,
		src:     src,
		log:     log.With("loader"),
		timeout: DefaultTimeout,
	}

	// Subscribe to load requests
	bus.Subscribe(eventbus.EventLoadRequested, func(e eventbus.DomainEvent) {
		if _, ok := e.(domain.LoadRequestedEvent); ok {
			if err := ls.StartLoad(context.Background()); err != nil {
				ls.log.Debug().Err(err).Msg("load request ignored")
			}
		}
	})

	return ls
}

// StartLoad starts loading in the background; the outcome is published on the bus
func (ls *loaderService) StartLoad(ctx context.Context) error {
	ls.mu.Lock()
	if ls.isLoading {
		ls.mu.Unlock()
		return ErrLoadInProgress
	}
	ls.isLoading = true

	loadCtx, cancel := context.WithTimeout(ctx, ls.timeout)
	ls.cancelFunc = cancel
	ls.mu.Unlock()

	ls.wg.Add(1)
	go func() {
		defer ls.wg.Done()
		defer func() {
			cancel()
			ls.mu.Lock()
			ls.isLoading = false
			ls.cancelFunc = nil
			ls.mu.Unlock()
		}()

		start := time.Now()
		items, err := ls.src.Load(loadCtx)
		if err != nil {
			ls.log.Error().Err(err).Str("source", ls.src.Name()).Msg("load failed")
			ls.bus.Publish(domain.ErrorEvent{
				Message: fmt.Sprintf("Failed to load %s", ls.src.Name()),
				Err:     err,
			})
			return
		}

		ls.log.Info().
			Str("source", ls.src.Name()).
			Int("files", len(items)).
			Dur("took", time.Since(start)).
			Msg("file list loaded")
		ls.bus.Publish(domain.ItemsLoadedEvent{Source: ls.src.Name(), Items: items})
	}()

	return nil
}

// StopLoad cancels any running load and waits for it to finish
func (ls *loaderService) StopLoad() {
	ls.mu.Lock()
	if ls.cancelFunc != nil {
		ls.cancelFunc()
	}
	ls.mu.Unlock()

	ls.wg.Wait()
}
