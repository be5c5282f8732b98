// Package eventbus provides an in-process publish/subscribe bus for
// domain events. Handlers run asynchronously; a publisher never blocks
// on or observes handler failures.
package eventbus

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
	"github.com/jobscout-dev/jobscout/internal/core/ports/driven"
)

// Ensure Bus implements the interface.
var _ driven.EventBus = (*Bus)(nil)

// Bus dispatches each published event to every handler subscribed to
// its kind, one goroutine per handler. Close waits for in-flight
// handlers to return.
type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]driven.EventHandler
	wg       sync.WaitGroup
	closed   bool
	logger   *zap.Logger
}

// New creates an event bus.
func New(logger *zap.Logger) *Bus {
	return &Bus{
		handlers: make(map[string][]driven.EventHandler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event kind. Subscriptions are
// expected to happen during wiring, before the first Publish.
func (b *Bus) Subscribe(kind string, handler driven.EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[kind] = append(b.handlers[kind], handler)
}

// Publish dispatches the event to all handlers of its kind and returns
// immediately. A panicking handler is recovered and logged; it never
// takes down the process or other handlers.
func (b *Bus) Publish(ctx context.Context, evt domain.Event) {
	b.mu.RLock()
	if b.closed {
		b.mu.RUnlock()
		return
	}
	handlers := b.handlers[evt.Kind()]
	b.wg.Add(len(handlers))
	b.mu.RUnlock()

	for _, handler := range handlers {
		go func(h driven.EventHandler) {
			defer b.wg.Done()
			defer func() {
				if r := recover(); r != nil {
					b.logger.Error("event handler panicked",
						zap.String("kind", evt.Kind()),
						zap.Any("panic", r))
				}
			}()
			h(ctx, evt)
		}(handler)
	}
}

// Close stops accepting events and waits for in-flight handlers.
func (b *Bus) Close() error {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wg.Wait()
	return nil
}
