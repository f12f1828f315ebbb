// Package mock provides a mock implementation of the PlaybackEngine interface.
// This is used for testing services without requiring libmpv.
package mock

import (
	"sync"
	"time"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

// Engine is a mock implementation of the PlaybackEngine interface.
// It simulates media playback in memory without producing audio.
//
// Thread-safety: this implementation is thread-safe.
type Engine struct {
	bus ports.EventBus

	mu       sync.RWMutex
	path     string
	status   domain.EngineStatus
	position time.Duration
	duration time.Duration
	released bool

	// Counters for test assertions
	loadCalls    int
	releaseCalls int

	// Behavior configuration (for testing error scenarios)
	failLoad bool
	failPlay bool
}

// NewEngine creates a new mock playback engine.
// Engine state transitions are published on the given bus.
func NewEngine(bus ports.EventBus) *Engine {
	return &Engine{
		bus:      bus,
		duration: 3 * time.Minute, // Simulated track length
	}
}

// SetFailLoad configures the mock to fail loading (for testing).
func (m *Engine) SetFailLoad(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failLoad = fail
}

// SetFailPlay configures the mock to fail playback (for testing).
func (m *Engine) SetFailPlay(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failPlay = fail
}

// SetDuration overrides the simulated track length (for testing).
func (m *Engine) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
}

// Load loads a resource, replacing any previously loaded one.
func (m *Engine) Load(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return domain.ErrEngineReleased
	}
	if m.failLoad {
		return domain.NewEngineError("load", path, "mock load failed", nil)
	}
	if path == "" {
		return domain.ErrInvalidPath
	}

	m.path = path
	m.position = 0
	m.status = domain.EnginePaused
	m.loadCalls++

	return nil
}

// Play starts or resumes playback.
func (m *Engine) Play() error {
	m.mu.Lock()

	if m.released {
		m.mu.Unlock()
		return domain.ErrEngineReleased
	}
	if m.path == "" {
		m.mu.Unlock()
		return domain.ErrNoSongLoaded
	}
	if m.failPlay {
		m.mu.Unlock()
		return domain.NewEngineError("play", m.path, "mock play failed", nil)
	}
	if m.status == domain.EnginePlaying {
		m.mu.Unlock()
		return nil
	}

	m.status = domain.EnginePlaying
	bus := m.bus
	m.mu.Unlock()

	if bus != nil {
		bus.Publish(domain.NewPlayingChangedEvent(true))
	}
	return nil
}

// Pause pauses playback, preserving the position.
func (m *Engine) Pause() error {
	m.mu.Lock()

	if m.released {
		m.mu.Unlock()
		return domain.ErrEngineReleased
	}
	if m.status != domain.EnginePlaying {
		m.mu.Unlock()
		return nil
	}

	m.status = domain.EnginePaused
	bus := m.bus
	m.mu.Unlock()

	if bus != nil {
		bus.Publish(domain.NewPlayingChangedEvent(false))
	}
	return nil
}

// Seek sets the playback position, clamped to the simulated duration.
func (m *Engine) Seek(position time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return domain.ErrEngineReleased
	}
	if m.path == "" {
		return domain.ErrNoSongLoaded
	}

	if position < 0 {
		position = 0
	}
	if position > m.duration {
		position = m.duration
	}
	m.position = position

	return nil
}

// Position returns the current playback position.
func (m *Engine) Position() (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.path == "" {
		return 0, nil
	}
	return m.position, nil
}

// Duration returns the simulated track length.
func (m *Engine) Duration() (time.Duration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.path == "" {
		return 0, nil
	}
	return m.duration, nil
}

// IsPlaying reports the live playing flag.
func (m *Engine) IsPlaying() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status == domain.EnginePlaying
}

// Status returns the engine's channel state.
func (m *Engine) Status() domain.EngineStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Release frees the mock engine. Safe to call repeatedly.
func (m *Engine) Release() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.released {
		return nil
	}
	m.released = true
	m.releaseCalls++
	m.path = ""
	m.status = domain.EngineStopped

	return nil
}

// FinishTrack simulates the loaded media reaching its natural end.
// The engine stops and publishes a MediaEndedEvent, as the real engine does.
func (m *Engine) FinishTrack() {
	m.mu.Lock()
	if m.path == "" || m.released {
		m.mu.Unlock()
		return
	}
	m.status = domain.EngineStopped
	m.position = m.duration
	bus := m.bus
	m.mu.Unlock()

	if bus != nil {
		bus.Publish(domain.NewPlayingChangedEvent(false))
		bus.Publish(domain.NewMediaEndedEvent())
	}
}

// LoadCalls returns how many loads succeeded (for test assertions).
func (m *Engine) LoadCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadCalls
}

// ReleaseCalls returns how many times the engine actually released.
func (m *Engine) ReleaseCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.releaseCalls
}

// LoadedPath returns the currently loaded resource locator.
func (m *Engine) LoadedPath() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.path
}

// Verify that Engine implements the PlaybackEngine interface
var _ ports.PlaybackEngine = (*Engine)(nil)
