package eventbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck/internal/domain"
)

func TestPublishReachesSubscriber(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	var received []domain.Event
	bus.Subscribe(domain.EventMediaEnded, func(event domain.Event) {
		received = append(received, event)
	})

	bus.Publish(domain.NewMediaEndedEvent())
	require.Len(t, received, 1)
	assert.Equal(t, domain.EventMediaEnded, received[0].Type())
}

func TestPublishSkipsOtherTypes(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	var calls int
	bus.Subscribe(domain.EventMediaEnded, func(domain.Event) { calls++ })

	bus.Publish(domain.NewPlayingChangedEvent(true))
	assert.Zero(t, calls)
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	var calls int
	id := bus.Subscribe(domain.EventMediaEnded, func(domain.Event) { calls++ })

	bus.Publish(domain.NewMediaEndedEvent())
	bus.Unsubscribe(id)
	bus.Publish(domain.NewMediaEndedEvent())

	assert.Equal(t, 1, calls)
}

func TestPanickingHandlerDoesNotStopOthers(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	var calls int
	bus.Subscribe(domain.EventMediaEnded, func(domain.Event) { panic("boom") })
	bus.Subscribe(domain.EventMediaEnded, func(domain.Event) { calls++ })

	assert.NotPanics(t, func() {
		bus.Publish(domain.NewMediaEndedEvent())
	})
	assert.Equal(t, 1, calls)
}

func TestNestedPublishFromHandler(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	var chained int
	bus.Subscribe(domain.EventMediaEnded, func(domain.Event) {
		bus.Publish(domain.NewPlayingChangedEvent(false))
	})
	bus.Subscribe(domain.EventPlayingChanged, func(domain.Event) { chained++ })

	bus.Publish(domain.NewMediaEndedEvent())
	assert.Equal(t, 1, chained)
}

func TestCloseTwice(t *testing.T) {
	bus := NewSyncEventBus()
	require.NoError(t, bus.Close())
	assert.Error(t, bus.Close())
}

func TestSubscriberCount(t *testing.T) {
	bus := NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	assert.Zero(t, bus.SubscriberCount())
	id := bus.Subscribe(domain.EventMediaEnded, func(domain.Event) {})
	assert.Equal(t, 1, bus.SubscriberCount())
	bus.Unsubscribe(id)
	assert.Zero(t, bus.SubscriberCount())
}
