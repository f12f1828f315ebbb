// Package service contains the orchestration layer: playback control,
// library management, and remote catalog search. Services depend only on the
// port interfaces and communicate state changes through the event bus.
package service

import (
	"log/slog"
	"sync"
	"time"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

// progressInterval is how often the poller samples the engine while playing.
const progressInterval = time.Second

// SongSource supplies the ordered library snapshot that next/previous
// navigation walks. The library service implements it.
type SongSource interface {
	Songs() []domain.Song
}

// PlayerService orchestrates playback: which song is current, whether it is
// playing, and navigation through the library order. Engine transitions come
// back through the event bus rather than callbacks.
//
// Thread-safety: safe for concurrent use via sync.RWMutex.
type PlayerService struct {
	engine ports.PlaybackEngine
	bus    ports.EventBus
	source SongSource
	logger *slog.Logger

	mu       sync.RWMutex
	current  *domain.Song
	playing  bool
	position time.Duration
	duration time.Duration
	shutdown bool

	// poller lifecycle; guarded by pollMu, separate from the state lock so
	// progress reads never block poller control
	pollMu   sync.Mutex
	pollStop chan struct{}
	pollWg   sync.WaitGroup

	subscriptions []domain.SubscriptionID
}

// NewPlayerService creates a player around the given engine and song source.
// It subscribes to engine transitions on the bus; callers must Shutdown when
// done to detach and release the engine.
func NewPlayerService(engine ports.PlaybackEngine, bus ports.EventBus, source SongSource, logger *slog.Logger) *PlayerService {
	s := &PlayerService{
		engine: engine,
		bus:    bus,
		source: source,
		logger: logger.With(slog.String("service", "player")),
	}

	s.subscriptions = append(s.subscriptions,
		bus.Subscribe(domain.EventMediaEnded, s.onMediaEnded),
		bus.Subscribe(domain.EventPlayingChanged, s.onPlayingChanged),
	)

	return s
}

// Play loads and starts the given song, replacing whatever was current.
// The song becomes current and is marked playing as soon as the load
// succeeds; the engine confirms through a PlayingChanged event.
func (s *PlayerService) Play(song domain.Song) error {
	if err := s.engine.Load(song.Path); err != nil {
		s.logger.Error("load failed", slog.String("path", song.Path), slog.Any("error", err))
		return err
	}

	s.mu.Lock()
	songCopy := song
	s.current = &songCopy
	s.playing = true
	s.position = 0
	s.duration = 0
	s.mu.Unlock()

	if err := s.engine.Play(); err != nil {
		return err
	}

	s.bus.Publish(domain.NewTrackStartedEvent(song))
	s.logger.Info("playing", slog.String("title", song.Title), slog.String("artist", song.Artist))
	return nil
}

// TogglePlayPause pauses a playing engine or resumes a paused one.
// The decision consults the engine's live flag, not the cached state, so a
// track that ended on its own toggles into a restart rather than a pause.
func (s *PlayerService) TogglePlayPause() error {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return domain.ErrNoSongLoaded
	}

	if s.engine.IsPlaying() {
		return s.engine.Pause()
	}
	return s.engine.Play()
}

// Seek moves playback to an absolute position within the current song.
func (s *PlayerService) Seek(position time.Duration) error {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return domain.ErrNoSongLoaded
	}
	return s.engine.Seek(position)
}

// Next advances to the song after the current one in library order.
// At the end of the list, or when the current song is no longer in the
// library, nothing happens.
func (s *PlayerService) Next() error {
	return s.step(1)
}

// Previous steps back to the song before the current one in library order.
// At the start of the list nothing happens.
func (s *PlayerService) Previous() error {
	return s.step(-1)
}

func (s *PlayerService) step(delta int) error {
	s.mu.RLock()
	current := s.current
	s.mu.RUnlock()

	if current == nil {
		return domain.ErrNoSongLoaded
	}

	songs := s.source.Songs()
	index := -1
	for i, song := range songs {
		if song.ID == current.ID {
			index = i
			break
		}
	}
	if index < 0 {
		// Current song was removed from the library; stay put.
		return nil
	}

	target := index + delta
	if target < 0 || target >= len(songs) {
		return nil
	}
	return s.Play(songs[target])
}

// State returns a snapshot of the playback state.
func (s *PlayerService) State() domain.PlaybackState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := domain.PlaybackState{
		Playing:  s.playing,
		Position: s.position,
		Duration: s.duration,
	}
	if s.current != nil {
		songCopy := *s.current
		state.CurrentSong = &songCopy
	}
	return state
}

// onMediaEnded advances to the next song when the current one finishes
// naturally. At the end of the library the current song stays in place,
// stopped.
func (s *PlayerService) onMediaEnded(domain.Event) {
	s.mu.RLock()
	done := s.shutdown
	s.mu.RUnlock()
	if done {
		return
	}

	if err := s.Next(); err != nil {
		s.logger.Warn("auto-advance failed", slog.Any("error", err))
	}
}

// onPlayingChanged tracks the engine's playing flag and drives the progress
// poller: one poller while playing, none otherwise.
func (s *PlayerService) onPlayingChanged(event domain.Event) {
	changed, ok := event.(domain.PlayingChangedEvent)
	if !ok {
		return
	}

	s.mu.Lock()
	s.playing = changed.Playing
	s.mu.Unlock()

	if changed.Playing {
		s.startPoller()
	} else {
		s.stopPoller()
	}
}

// startPoller launches the progress sampling goroutine. Any running poller
// is cancelled first so there is never more than one.
func (s *PlayerService) startPoller() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	s.cancelPollerLocked()

	stop := make(chan struct{})
	s.pollStop = stop
	s.pollWg.Add(1)

	go func() {
		defer s.pollWg.Done()
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()

		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				s.sampleProgress()
			}
		}
	}()
}

func (s *PlayerService) stopPoller() {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()
	s.cancelPollerLocked()
}

func (s *PlayerService) cancelPollerLocked() {
	if s.pollStop != nil {
		close(s.pollStop)
		s.pollStop = nil
		s.pollWg.Wait()
	}
}

func (s *PlayerService) sampleProgress() {
	position, err := s.engine.Position()
	if err != nil {
		return
	}
	duration, err := s.engine.Duration()
	if err != nil {
		return
	}

	s.mu.Lock()
	s.position = position
	s.duration = duration
	s.mu.Unlock()

	s.bus.Publish(domain.NewTrackProgressEvent(position, duration))
}

// Shutdown detaches from the bus, stops the poller, and releases the engine.
// Safe to call more than once; the engine is released exactly once.
func (s *PlayerService) Shutdown() error {
	s.mu.Lock()
	if s.shutdown {
		s.mu.Unlock()
		return nil
	}
	s.shutdown = true
	s.mu.Unlock()

	for _, id := range s.subscriptions {
		s.bus.Unsubscribe(id)
	}
	s.stopPoller()

	if err := s.engine.Release(); err != nil {
		return err
	}
	s.logger.Info("player shut down")
	return nil
}
