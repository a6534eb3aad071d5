package event

import (
	"io"
	"sync/atomic"
	"testing"

	"sitecraft/local-app/src/pkg/log"
)

func TestPublishReachesSubscribers(t *testing.T) {
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	defer logger.Close()
	em := NewEventManager(logger)

	var hits atomic.Int32
	em.Subscribe(ElementsChanged, func(e Event) {
		if e.Data.(string) == "page-1" {
			hits.Add(1)
		}
	})
	em.Subscribe(ElementsChanged, func(Event) { hits.Add(1) })
	em.Subscribe(SelectionChanged, func(Event) { hits.Add(100) })

	em.Publish(Event{Type: ElementsChanged, Data: "page-1"})
	em.Wait()

	if got := hits.Load(); got != 2 {
		t.Errorf("hits = %d, want 2", got)
	}
}

func TestPublishRecoversPanics(t *testing.T) {
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	defer logger.Close()
	em := NewEventManager(logger)

	var after atomic.Bool
	em.Subscribe(PageSaved, func(Event) { panic("handler failure") })
	em.Subscribe(PageSaved, func(Event) { after.Store(true) })

	em.Publish(Event{Type: PageSaved})
	em.Wait()

	if !after.Load() {
		t.Error("second handler did not run")
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	logger := log.NewWriterLogger(io.Discard, log.LevelError)
	defer logger.Close()
	em := NewEventManager(logger)

	var first, second atomic.Int32
	id := em.Subscribe(PageSelected, func(Event) { first.Add(1) })
	em.Subscribe(PageSelected, func(Event) { second.Add(1) })

	em.Publish(Event{Type: PageSelected})
	em.Wait()
	em.Unsubscribe(PageSelected, id)
	em.Unsubscribe(PageSelected, id)
	em.Publish(Event{Type: PageSelected})
	em.Wait()

	if first.Load() != 1 || second.Load() != 2 {
		t.Errorf("first=%d second=%d, want 1 and 2", first.Load(), second.Load())
	}
}

func TestEventTypeString(t *testing.T) {
	if ClipboardChanged.String() != "clipboard_changed" {
		t.Errorf("String() = %q", ClipboardChanged.String())
	}
	if EventType(999).String() != "unknown" {
		t.Error("unknown type should stringify as unknown")
	}
}
