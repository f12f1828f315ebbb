// Package domain defines events for the event-driven architecture.
// The playback engine and the services publish discrete events instead of
// invoking each other through nested callbacks.
package domain

import (
	"time"
)

// Event is the base interface for all events in the system.
// All events must implement this interface to be published via the event bus.
type Event interface {
	// Type returns the event type identifier
	Type() EventType

	// Timestamp returns when the event occurred
	Timestamp() time.Time
}

// EventType is a string identifier for different event types.
type EventType string

// Event type constants define all possible events in the system.
const (
	// Engine events (published by the playback engine adapter)
	EventMediaEnded     EventType = "media.ended"
	EventPlayingChanged EventType = "media.playing_changed"

	// Playback events (published by the player service)
	EventTrackStarted  EventType = "track.started"
	EventTrackProgress EventType = "track.progress"

	// Library events
	EventLibraryUpdated   EventType = "library.updated"
	EventPlaylistsUpdated EventType = "playlists.updated"

	// Catalog search events
	EventSearchStarted   EventType = "search.started"
	EventSearchCompleted EventType = "search.completed"
)

// EventHandler is a function that handles events.
type EventHandler func(event Event)

// SubscriptionID uniquely identifies an event subscription.
type SubscriptionID string

// baseEvent provides common event functionality.
// All concrete events embed this struct.
type baseEvent struct {
	timestamp time.Time
}

// Timestamp returns when the event occurred.
func (e baseEvent) Timestamp() time.Time {
	return e.timestamp
}

// newBaseEvent creates a new base event with the current timestamp.
func newBaseEvent() baseEvent {
	return baseEvent{timestamp: time.Now()}
}

// MediaEndedEvent is published by the engine when the loaded media finishes
// playing naturally. The player service reacts by advancing to the next
// library entry, if any.
type MediaEndedEvent struct {
	baseEvent
}

// Type returns the event type.
func (e MediaEndedEvent) Type() EventType {
	return EventMediaEnded
}

// NewMediaEndedEvent creates a new MediaEndedEvent.
func NewMediaEndedEvent() MediaEndedEvent {
	return MediaEndedEvent{baseEvent: newBaseEvent()}
}

// PlayingChangedEvent is published by the engine when its playing flag flips.
type PlayingChangedEvent struct {
	baseEvent
	Playing bool
}

// Type returns the event type.
func (e PlayingChangedEvent) Type() EventType {
	return EventPlayingChanged
}

// NewPlayingChangedEvent creates a new PlayingChangedEvent.
func NewPlayingChangedEvent(playing bool) PlayingChangedEvent {
	return PlayingChangedEvent{baseEvent: newBaseEvent(), Playing: playing}
}

// TrackStartedEvent is published when playback of a song was requested.
type TrackStartedEvent struct {
	baseEvent
	Song Song
}

// Type returns the event type.
func (e TrackStartedEvent) Type() EventType {
	return EventTrackStarted
}

// NewTrackStartedEvent creates a new TrackStartedEvent.
func NewTrackStartedEvent(song Song) TrackStartedEvent {
	return TrackStartedEvent{baseEvent: newBaseEvent(), Song: song}
}

// TrackProgressEvent is published once per second while playback is active.
type TrackProgressEvent struct {
	baseEvent
	Position time.Duration
	Duration time.Duration
}

// Type returns the event type.
func (e TrackProgressEvent) Type() EventType {
	return EventTrackProgress
}

// NewTrackProgressEvent creates a new TrackProgressEvent.
func NewTrackProgressEvent(position, duration time.Duration) TrackProgressEvent {
	return TrackProgressEvent{baseEvent: newBaseEvent(), Position: position, Duration: duration}
}

// LibraryUpdatedEvent is published after the song snapshot was reloaded from
// the store following a mutation.
type LibraryUpdatedEvent struct {
	baseEvent
	Songs []Song
}

// Type returns the event type.
func (e LibraryUpdatedEvent) Type() EventType {
	return EventLibraryUpdated
}

// NewLibraryUpdatedEvent creates a new LibraryUpdatedEvent.
func NewLibraryUpdatedEvent(songs []Song) LibraryUpdatedEvent {
	return LibraryUpdatedEvent{baseEvent: newBaseEvent(), Songs: songs}
}

// PlaylistsUpdatedEvent is published after the playlist snapshot was reloaded.
type PlaylistsUpdatedEvent struct {
	baseEvent
	Playlists []Playlist
}

// Type returns the event type.
func (e PlaylistsUpdatedEvent) Type() EventType {
	return EventPlaylistsUpdated
}

// NewPlaylistsUpdatedEvent creates a new PlaylistsUpdatedEvent.
func NewPlaylistsUpdatedEvent(playlists []Playlist) PlaylistsUpdatedEvent {
	return PlaylistsUpdatedEvent{baseEvent: newBaseEvent(), Playlists: playlists}
}

// SearchStartedEvent is published when a catalog search begins.
type SearchStartedEvent struct {
	baseEvent
	Query string
}

// Type returns the event type.
func (e SearchStartedEvent) Type() EventType {
	return EventSearchStarted
}

// NewSearchStartedEvent creates a new SearchStartedEvent.
func NewSearchStartedEvent(query string) SearchStartedEvent {
	return SearchStartedEvent{baseEvent: newBaseEvent(), Query: query}
}

// SearchCompletedEvent is published when a catalog search finishes, whether it
// succeeded or collapsed to an empty result.
type SearchCompletedEvent struct {
	baseEvent
	Query   string
	Results []RemoteTrack
}

// Type returns the event type.
func (e SearchCompletedEvent) Type() EventType {
	return EventSearchCompleted
}

// NewSearchCompletedEvent creates a new SearchCompletedEvent.
func NewSearchCompletedEvent(query string, results []RemoteTrack) SearchCompletedEvent {
	return SearchCompletedEvent{baseEvent: newBaseEvent(), Query: query, Results: results}
}
