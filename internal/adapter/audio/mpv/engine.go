// Package mpv provides a libmpv-backed implementation of the PlaybackEngine
// interface. It wraps a single mpv instance for the lifetime of the adapter
// and translates mpv's event stream into domain events on the bus.
package mpv

import (
	"strconv"
	"sync"
	"time"

	gompv "github.com/wildeyedskies/go-mpv/mpv"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

// Engine is the libmpv implementation of the PlaybackEngine interface.
// It plays both local files and HTTP preview URLs.
//
// Thread-safety: this implementation is thread-safe via sync.Mutex; libmpv
// itself is safe to call from multiple threads.
type Engine struct {
	bus      ports.EventBus
	instance *gompv.Mpv

	mu        sync.Mutex
	loaded    bool
	replacing bool // a loadfile is displacing the previous media
	released  bool

	stopPump chan struct{}
	pumpWg   sync.WaitGroup
}

// NewEngine creates and initializes a new mpv-backed engine.
// Engine state transitions are published on the given bus.
func NewEngine(bus ports.EventBus) (*Engine, error) {
	instance := gompv.Create()

	// Audio only
	_ = instance.SetOptionString("video", "no")
	_ = instance.SetOptionString("audio-display", "no")

	if err := instance.Initialize(); err != nil {
		instance.TerminateDestroy()
		return nil, domain.NewEngineError("initialize", "", "mpv initialization failed", err)
	}

	e := &Engine{
		bus:      bus,
		instance: instance,
		stopPump: make(chan struct{}),
	}

	e.pumpWg.Add(1)
	go e.pumpEvents()

	return e, nil
}

// pumpEvents drains mpv's event queue and republishes the transitions the
// services care about as domain events.
func (e *Engine) pumpEvents() {
	defer e.pumpWg.Done()

	for {
		select {
		case <-e.stopPump:
			return
		default:
		}

		ev := e.instance.WaitEvent(1)
		if ev == nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		switch ev.Event_Id {
		case gompv.EVENT_END_FILE:
			e.mu.Lock()
			replacing := e.replacing
			e.replacing = false
			if !replacing {
				e.loaded = false
			}
			e.mu.Unlock()

			// A loadfile command ends the previous media too; only a
			// natural end reaches the services.
			if !replacing && e.bus != nil {
				e.bus.Publish(domain.NewPlayingChangedEvent(false))
				e.bus.Publish(domain.NewMediaEndedEvent())
			}

		case gompv.EVENT_SHUTDOWN:
			return
		}
	}
}

// Load loads the resource at the given locator, replacing any previous media.
func (e *Engine) Load(path string) error {
	if path == "" {
		return domain.ErrInvalidPath
	}

	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return domain.ErrEngineReleased
	}
	e.replacing = e.loaded
	e.mu.Unlock()

	if err := e.instance.Command([]string{"loadfile", path}); err != nil {
		e.mu.Lock()
		e.replacing = false
		e.mu.Unlock()
		return domain.NewEngineError("load", path, "loadfile failed", err)
	}

	e.mu.Lock()
	e.loaded = true
	e.mu.Unlock()

	// mpv starts paused only if asked; make the initial state explicit
	if err := e.instance.SetPropertyString("pause", "yes"); err != nil {
		return domain.NewEngineError("load", path, "initial pause failed", err)
	}

	return nil
}

// Play starts or resumes playback.
func (e *Engine) Play() error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return domain.ErrEngineReleased
	}
	if !e.loaded {
		e.mu.Unlock()
		return domain.ErrNoSongLoaded
	}
	e.mu.Unlock()

	if err := e.instance.SetPropertyString("pause", "no"); err != nil {
		return domain.NewEngineError("play", "", "unpause failed", err)
	}
	if e.bus != nil {
		e.bus.Publish(domain.NewPlayingChangedEvent(true))
	}
	return nil
}

// Pause pauses playback, preserving the position.
func (e *Engine) Pause() error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return domain.ErrEngineReleased
	}
	if !e.loaded {
		e.mu.Unlock()
		return nil
	}
	e.mu.Unlock()

	if err := e.instance.SetPropertyString("pause", "yes"); err != nil {
		return domain.NewEngineError("pause", "", "pause failed", err)
	}
	if e.bus != nil {
		e.bus.Publish(domain.NewPlayingChangedEvent(false))
	}
	return nil
}

// Seek sets the absolute playback position. mpv clamps out-of-range values.
func (e *Engine) Seek(position time.Duration) error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return domain.ErrEngineReleased
	}
	if !e.loaded {
		e.mu.Unlock()
		return domain.ErrNoSongLoaded
	}
	e.mu.Unlock()

	secs := strconvSeconds(position)
	if err := e.instance.Command([]string{"seek", secs, "absolute"}); err != nil {
		return domain.NewEngineError("seek", "", "seek failed", err)
	}
	return nil
}

// Position returns the current playback position.
// Returns zero when nothing is loaded or the property is unavailable.
func (e *Engine) Position() (time.Duration, error) {
	return e.timeProperty("time-pos")
}

// Duration returns the total length of the loaded media.
// Returns zero when nothing is loaded or the property is unavailable.
func (e *Engine) Duration() (time.Duration, error) {
	return e.timeProperty("duration")
}

// timeProperty reads a floating point seconds property from mpv.
func (e *Engine) timeProperty(name string) (time.Duration, error) {
	e.mu.Lock()
	if e.released || !e.loaded {
		e.mu.Unlock()
		return 0, nil
	}
	e.mu.Unlock()

	value, err := e.instance.GetProperty(name, gompv.FORMAT_DOUBLE)
	if err != nil {
		// Unavailable between loadfile and the first decoded frame
		return 0, nil
	}
	secs, ok := value.(float64)
	if !ok || secs < 0 {
		return 0, nil
	}
	return time.Duration(secs * float64(time.Second)), nil
}

// IsPlaying reports the engine's live playing flag.
func (e *Engine) IsPlaying() bool {
	e.mu.Lock()
	if e.released || !e.loaded {
		e.mu.Unlock()
		return false
	}
	e.mu.Unlock()

	paused, err := e.instance.GetProperty("pause", gompv.FORMAT_FLAG)
	if err != nil {
		return false
	}
	p, ok := paused.(bool)
	return ok && !p
}

// Status returns the engine's channel state.
func (e *Engine) Status() domain.EngineStatus {
	e.mu.Lock()
	released, loaded := e.released, e.loaded
	e.mu.Unlock()

	switch {
	case released || !loaded:
		return domain.EngineStopped
	case e.IsPlaying():
		return domain.EnginePlaying
	default:
		return domain.EnginePaused
	}
}

// Release shuts down mpv and frees the instance. It releases exactly once;
// repeat calls are safe no-ops.
func (e *Engine) Release() error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return nil
	}
	e.released = true
	e.loaded = false
	e.mu.Unlock()

	close(e.stopPump)
	_ = e.instance.Command([]string{"quit"})
	e.pumpWg.Wait()
	e.instance.TerminateDestroy()

	return nil
}

// strconvSeconds formats a duration as fractional seconds for mpv commands.
func strconvSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', 3, 64)
}

// Verify that Engine implements the PlaybackEngine interface
var _ ports.PlaybackEngine = (*Engine)(nil)
