package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dlpick/internal/domain"
)

func TestPublishDeliversToSubscribers(t *testing.T) {
	b := New(nil)
	defer b.Close()

	got := make(chan DomainEvent, 4)
	b.Subscribe(EventItemsLoaded, func(e DomainEvent) { got <- e })
	b.Subscribe(EventError, func(e DomainEvent) { t.Errorf("unexpected event %s", e.Type()) })

	b.Publish(domain.ItemsLoadedEvent{Source: "demo"})

	select {
	case e := <-got:
		loaded, ok := e.(domain.ItemsLoadedEvent)
		require.True(t, ok)
		assert.Equal(t, "demo", loaded.Source)
	case <-time.After(time.Second):
		t.Fatal("event was not delivered")
	}
}

func TestEventsArriveInOrder(t *testing.T) {
	b := New(nil)
	defer b.Close()

	var mu sync.Mutex
	var seen []string
	done := make(chan struct{})
	b.Subscribe(EventLoadRequested, func(e DomainEvent) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, e.(domain.LoadRequestedEvent).Source)
		if len(seen) == 3 {
			close(done)
		}
	})

	for _, s := range []string{"a", "b", "c"} {
		b.Publish(domain.LoadRequestedEvent{Source: s})
	}

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("events were not delivered")
	}
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestUnsubscribe(t *testing.T) {
	b := New(nil)
	defer b.Close()

	removed := make(chan struct{}, 1)
	kept := make(chan struct{}, 1)
	unsubscribe := b.Subscribe(EventConfigSaved, func(DomainEvent) { removed <- struct{}{} })
	b.Subscribe(EventConfigSaved, func(DomainEvent) { kept <- struct{}{} })
	unsubscribe()

	b.Publish(domain.ConfigSavedEvent{Path: "x"})

	select {
	case <-kept:
	case <-time.After(time.Second):
		t.Fatal("remaining handler was not called")
	}
	select {
	case <-removed:
		t.Fatal("unsubscribed handler was called")
	default:
	}
}

func TestHandlerPanicDoesNotStopDispatch(t *testing.T) {
	b := New(nil)
	defer b.Close()

	ok := make(chan struct{}, 1)
	b.Subscribe(EventError, func(DomainEvent) { panic("boom") })
	b.Subscribe(EventError, func(DomainEvent) { ok <- struct{}{} })

	b.Publish(domain.ErrorEvent{Message: "x"})

	select {
	case <-ok:
	case <-time.After(time.Second):
		t.Fatal("dispatcher stopped after panic")
	}
}

func TestPublishAfterCloseIsDropped(t *testing.T) {
	b := New(nil)
	b.Close()
	b.Close()

	assert.NotPanics(t, func() {
		b.Publish(domain.ErrorEvent{Message: "late"})
	})
}
