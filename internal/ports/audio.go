// Package ports defines interfaces for dependency inversion.
// These interfaces allow the core business logic to remain independent of external frameworks.
package ports

import (
	"time"

	"tunedeck/internal/domain"
)

// PlaybackEngine is the interface for media playback engines.
// An engine wraps exactly one underlying playback instance at a time; loading
// a new resource replaces whatever was loaded before.
//
// Engines do not call back into their users. State transitions that originate
// inside the engine (natural end of media, playing flag flips) are published
// as domain events on the event bus the engine was constructed with.
//
// Implementations must be thread-safe.
type PlaybackEngine interface {
	// Load loads the resource at the given locator (file path or URL) and
	// prepares it for playback, replacing any previously loaded resource.
	//
	// Returns an error if the locator is empty or loading fails.
	Load(path string) error

	// Play starts or resumes playback of the loaded resource.
	Play() error

	// Pause pauses playback, preserving the position.
	Pause() error

	// Seek sets the playback position. Bounds are enforced by the engine
	// itself; out-of-range positions are clamped or rejected by the
	// underlying media library.
	Seek(position time.Duration) error

	// Position returns the current playback position.
	// Returns zero when nothing is loaded.
	Position() (time.Duration, error)

	// Duration returns the total length of the loaded resource.
	// Returns zero when nothing is loaded.
	Duration() (time.Duration, error)

	// IsPlaying reports the engine's live playing flag.
	// This is the authoritative value; cached copies held by services are
	// re-confirmed through PlayingChangedEvent.
	IsPlaying() bool

	// Status returns the engine's channel state.
	Status() domain.EngineStatus

	// Release frees the underlying engine resources. It must release exactly
	// once: repeat calls and calls on an engine that never loaded anything
	// are safe no-ops.
	Release() error
}
