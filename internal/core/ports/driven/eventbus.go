package driven

import (
	"context"

	"github.com/jobscout-dev/jobscout/internal/core/domain"
)

// EventHandler processes one published event. Handlers must be
// idempotent and safe to run concurrently for different users.
type EventHandler func(ctx context.Context, evt domain.Event)

// EventBus is the in-process publish/subscribe mechanism decoupling
// "something changed" from "re-score everything affected".
//
// Dispatch is fire-and-forget: the publisher never blocks on handler
// completion, and a failing handler must not crash the publisher or
// other handlers. A distributed deployment would replace this with a
// durable queue without changing subscriber contracts.
type EventBus interface {
	// Publish delivers the event asynchronously to all subscribers of
	// its kind.
	Publish(ctx context.Context, evt domain.Event)

	// Subscribe registers a handler for an event kind.
	Subscribe(kind string, handler EventHandler)

	// Close waits for in-flight handlers to finish.
	Close() error
}
