// Package ports defines the EventBus interface for event-driven communication.
// The event bus replaces callbacks and enables loose coupling between components.
package ports

import (
	"tunedeck/internal/domain"
)

// EventBus is the interface for publishing and subscribing to events.
// The playback engine publishes its state transitions here and the services
// both publish and consume; the presentation layer only consumes.
//
// Thread-safety: implementations must be thread-safe as events may be
// published and subscribed from multiple goroutines simultaneously.
//
// Example usage:
//
//	// In a service: publish an event
//	bus.Publish(domain.NewTrackStartedEvent(song))
//
//	// In a consumer: subscribe to events
//	subID := bus.Subscribe(domain.EventTrackStarted, func(event domain.Event) {
//	    e := event.(domain.TrackStartedEvent)
//	    _ = e
//	})
//
//	// Later: unsubscribe
//	bus.Unsubscribe(subID)
type EventBus interface {
	// Publish delivers an event to all subscribers of that event type.
	// Handlers should process events quickly or dispatch to a background
	// goroutine if long processing is needed.
	Publish(event domain.Event)

	// Subscribe registers a handler for events of the specified type.
	// The same handler can be registered multiple times; each registration
	// gets its own SubscriptionID.
	Subscribe(eventType domain.EventType, handler domain.EventHandler) domain.SubscriptionID

	// Unsubscribe removes a previously registered handler.
	// Unknown or already-removed IDs are a no-op.
	Unsubscribe(id domain.SubscriptionID)

	// Close shuts down the event bus and clears all subscriptions.
	Close() error
}
