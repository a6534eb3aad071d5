// Package event handles triggering of operations without direct dependency
package event

import (
	"context"
	"sync"

	"sitecraft/local-app/src/pkg/log"
)

// EventType represents the type of event
type EventType int

const (
	ElementsChanged EventType = iota
	SelectionChanged
	HistoryChanged
	ClipboardChanged
	ProjectAdded
	ProjectDeleted
	PageAdded
	PageSaved
	PageDeleted
	PageSelected
	PagePublished
)

var eventNames = map[EventType]string{
	ElementsChanged:  "elements_changed",
	SelectionChanged: "selection_changed",
	HistoryChanged:   "history_changed",
	ClipboardChanged: "clipboard_changed",
	ProjectAdded:     "project_added",
	ProjectDeleted:   "project_deleted",
	PageAdded:        "page_added",
	PageSaved:        "page_saved",
	PageDeleted:      "page_deleted",
	PageSelected:     "page_selected",
	PagePublished:    "page_published",
}

func (t EventType) String() string {
	if name, ok := eventNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event represents an event with its type and associated data
type Event struct {
	Type EventType
	Data interface{}
}

// EventHandler is a function type for event handlers
type EventHandler func(Event)

// Subscription identifies a handler registered with Subscribe
type Subscription uint64

type subscriber struct {
	id      Subscription
	handler EventHandler
}

// EventManager manages event subscriptions and publications
type EventManager struct {
	subscribers map[EventType][]subscriber
	nextID      Subscription
	mu          sync.RWMutex
	inflight    sync.WaitGroup
	logger      *log.Logger
}

// NewEventManager creates a new EventManager instance
func NewEventManager(logger *log.Logger) *EventManager {
	return &EventManager{
		subscribers: make(map[EventType][]subscriber),
		logger:      logger,
	}
}

// Subscribe adds a new event handler for a specific event type
func (em *EventManager) Subscribe(eventType EventType, handler EventHandler) Subscription {
	em.mu.Lock()
	defer em.mu.Unlock()
	em.nextID++
	em.subscribers[eventType] = append(em.subscribers[eventType], subscriber{id: em.nextID, handler: handler})
	return em.nextID
}

// Unsubscribe removes a handler. Handlers already started by Publish still run.
func (em *EventManager) Unsubscribe(eventType EventType, id Subscription) {
	em.mu.Lock()
	defer em.mu.Unlock()
	subs := em.subscribers[eventType]
	for i, sub := range subs {
		if sub.id == id {
			em.subscribers[eventType] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish sends an event to all subscribed handlers, each on its own goroutine
func (em *EventManager) Publish(event Event) {
	em.mu.RLock()
	defer em.mu.RUnlock()
	for _, sub := range em.subscribers[event.Type] {
		em.inflight.Add(1)
		go func(h EventHandler) {
			defer em.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					em.logger.Error(context.Background(), "Panic in event handler", log.Fields{
						"event": event.Type.String(),
						"panic": r,
					})
				}
			}()
			h(event)
		}(sub.handler)
	}
}

// Wait blocks until every handler started by Publish has returned
func (em *EventManager) Wait() {
	em.inflight.Wait()
}
