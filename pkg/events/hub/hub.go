// Package hub provides the observer registry backing the live notification
// channel. The hub owns the set of currently-connected observers and fans
// every memory operation event out to all of them, regardless of key.
//
// Registration lifecycle is tied to connection open/close by the transport
// layer: the WebSocket handler registers a connection when it opens and
// unregisters it when its read loop exits.
package hub

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/mnemo-ai/mnemo/pkg/events"
)

// Observer is one live connection registered to receive events.
type Observer interface {
	// Ready reports whether the observer can currently accept an event.
	// Observers that are not ready are skipped, not queued for.
	Ready() bool

	// Send delivers one event to the observer.
	Send(event events.Event) error
}

// Hub is the observer registry. It implements events.Publisher so the
// mutation service can broadcast through it directly.
type Hub struct {
	logger *zap.Logger

	mu        sync.RWMutex
	observers map[Observer]struct{}
}

// New creates an empty hub.
func New(logger *zap.Logger) *Hub {
	return &Hub{
		logger:    logger,
		observers: make(map[Observer]struct{}),
	}
}

// Register adds an observer to the registry.
func (h *Hub) Register(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.observers[o] = struct{}{}

	h.logger.Debug("observer registered", zap.Int("observers", len(h.observers)))
}

// Unregister removes an observer. Unknown observers are ignored.
func (h *Hub) Unregister(o Observer) {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.observers, o)

	h.logger.Debug("observer unregistered", zap.Int("observers", len(h.observers)))
}

// Len returns the number of registered observers.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.observers)
}

// Broadcast delivers the event to every ready observer. Send failures are
// dropped silently; a failing connection is reaped by its own read loop.
func (h *Hub) Broadcast(event events.Event) {
	h.mu.RLock()
	observers := make([]Observer, 0, len(h.observers))
	for o := range h.observers {
		observers = append(observers, o)
	}
	h.mu.RUnlock()

	for _, o := range observers {
		if !o.Ready() {
			continue
		}

		if err := o.Send(event); err != nil {
			h.logger.Debug("observer send failed",
				zap.String("operation", string(event.Operation)),
				zap.Error(err),
			)
		}
	}
}

// Publish implements events.Publisher. Fan-out is best-effort and never
// returns an error.
func (h *Hub) Publish(_ context.Context, event events.Event) error {
	h.Broadcast(event)
	return nil
}

// Close drops all registered observers. Closing the underlying connections
// is the transport layer's job.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.observers = make(map[Observer]struct{})

	return nil
}
