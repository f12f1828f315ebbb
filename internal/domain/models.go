// Package domain contains core business models and logic with no external dependencies.
// This package defines the fundamental entities of the tunedeck music player.
package domain

import (
	"strings"
	"time"
)

// Song represents a playable entry in the local library.
// Songs are owned by the persistent store; services hold read-only snapshots
// that are refreshed after every mutation.
type Song struct {
	// ID is a unique identifier for the song (UUID, generated at creation)
	ID string

	// Title is the song title (from tags or the imported file name)
	Title string

	// Artist is the performing artist name ("Unknown Artist" when unresolvable)
	Artist string

	// Path is the playable resource locator: a local file path or an HTTP URL
	// for remote previews
	Path string

	// IsFavorite marks the song as a favorite; the only mutable field
	IsFavorite bool
}

// Playlist is a named, ordered collection of song references.
// It references songs by ID and does not own them; deleting a referenced song
// leaves the reference in place and readers filter it out.
type Playlist struct {
	// ID is a unique identifier for the playlist (UUID)
	ID string

	// Name is the user-supplied playlist name
	Name string

	// SongIDs is the ordered list of referenced song identifiers
	SongIDs []string
}

// RemoteTrack is an ephemeral search result from the remote catalog.
// It is never persisted; playing one converts it into an unpersisted Song.
type RemoteTrack struct {
	// ID is the catalog's identifier for the track
	ID string

	// Name is the track name
	Name string

	// Artists lists the performing artist names
	Artists []string

	// PreviewURL is an optional URL of a short preview clip; empty when the
	// catalog offers none, in which case the track is not playable here
	PreviewURL string

	// ExternalURLs maps external link names (e.g. "spotify") to URLs
	ExternalURLs map[string]string
}

// Playable reports whether the track carries a preview clip to play.
func (t RemoteTrack) Playable() bool {
	return t.PreviewURL != ""
}

// ToSong converts the track into a Song suitable for playback.
// The result is never written to the store. The second return value is false
// when the track has no preview URL.
func (t RemoteTrack) ToSong(id string) (Song, bool) {
	if !t.Playable() {
		return Song{}, false
	}
	return Song{
		ID:     id,
		Title:  t.Name,
		Artist: strings.Join(t.Artists, ", "),
		Path:   t.PreviewURL,
	}, true
}

// PlaybackState is a snapshot of the player's observable state.
type PlaybackState struct {
	// CurrentSong is the currently loaded song (nil when nothing is loaded)
	CurrentSong *Song

	// Playing is true while playback is active
	Playing bool

	// Position is the current playback position within the song.
	// Zero and meaningless when no song is loaded.
	Position time.Duration

	// Duration is the total length of the current song.
	// Zero and meaningless when no song is loaded.
	Duration time.Duration
}

// EngineStatus represents the playback engine's channel state.
type EngineStatus int

const (
	// EngineStopped indicates no media is loaded or playback has ended
	EngineStopped EngineStatus = iota

	// EnginePlaying indicates playback is active
	EnginePlaying

	// EnginePaused indicates playback is paused at a position
	EnginePaused
)

// String returns a human-readable representation of the engine status.
func (s EngineStatus) String() string {
	switch s {
	case EngineStopped:
		return "stopped"
	case EnginePlaying:
		return "playing"
	case EnginePaused:
		return "paused"
	default:
		return "unknown"
	}
}
