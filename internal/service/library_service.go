package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"tunedeck/internal/domain"
	"tunedeck/internal/metadata"
	"tunedeck/internal/ports"
)

// LibraryService manages the song and playlist collections. Every mutation
// writes through to the store and then reloads the full snapshot, so the
// cached lists are always whatever the store holds.
//
// Thread-safety: safe for concurrent use via sync.RWMutex.
type LibraryService struct {
	songs     ports.SongRepository
	playlists ports.PlaylistRepository
	bus       ports.EventBus
	logger    *slog.Logger

	mu            sync.RWMutex
	songCache     []domain.Song
	playlistCache []domain.Playlist
}

// NewLibraryService creates a library around the given repositories.
// Call Refresh to populate the snapshots before first use.
func NewLibraryService(songs ports.SongRepository, playlists ports.PlaylistRepository, bus ports.EventBus, logger *slog.Logger) *LibraryService {
	return &LibraryService{
		songs:     songs,
		playlists: playlists,
		bus:       bus,
		logger:    logger.With(slog.String("service", "library")),
	}
}

// Refresh reloads both snapshots from the store.
func (s *LibraryService) Refresh(ctx context.Context) error {
	if err := s.reloadSongs(ctx); err != nil {
		return err
	}
	return s.reloadPlaylists(ctx)
}

func (s *LibraryService) reloadSongs(ctx context.Context) error {
	songs, err := s.songs.All(ctx)
	if err != nil {
		s.logger.Error("song reload failed", slog.Any("error", err))
		return err
	}

	s.mu.Lock()
	s.songCache = songs
	s.mu.Unlock()

	s.bus.Publish(domain.NewLibraryUpdatedEvent(songs))
	return nil
}

func (s *LibraryService) reloadPlaylists(ctx context.Context) error {
	playlists, err := s.playlists.All(ctx)
	if err != nil {
		s.logger.Error("playlist reload failed", slog.Any("error", err))
		return err
	}

	s.mu.Lock()
	s.playlistCache = playlists
	s.mu.Unlock()

	s.bus.Publish(domain.NewPlaylistsUpdatedEvent(playlists))
	return nil
}

// Songs returns the current song snapshot in store order.
func (s *LibraryService) Songs() []domain.Song {
	s.mu.RLock()
	defer s.mu.RUnlock()

	songs := make([]domain.Song, len(s.songCache))
	copy(songs, s.songCache)
	return songs
}

// Playlists returns the current playlist snapshot.
func (s *LibraryService) Playlists() []domain.Playlist {
	s.mu.RLock()
	defer s.mu.RUnlock()

	playlists := make([]domain.Playlist, len(s.playlistCache))
	copy(playlists, s.playlistCache)
	return playlists
}

// Favorites queries the store for every song with the favorite flag set.
func (s *LibraryService) Favorites(ctx context.Context) ([]domain.Song, error) {
	return s.songs.Favorites(ctx)
}

// Import adds the audio resource at path to the library. The title comes
// from embedded tags when readable, otherwise from the filename; the artist
// falls back to a placeholder.
func (s *LibraryService) Import(ctx context.Context, path string) (domain.Song, error) {
	if strings.TrimSpace(path) == "" {
		return domain.Song{}, domain.ErrInvalidPath
	}

	title, artist := metadata.Resolve(path)
	song := domain.Song{
		ID:     uuid.NewString(),
		Title:  title,
		Artist: artist,
		Path:   path,
	}

	if err := s.songs.Save(ctx, song); err != nil {
		return domain.Song{}, err
	}
	s.logger.Info("imported song", slog.String("title", song.Title), slog.String("path", path))

	if err := s.reloadSongs(ctx); err != nil {
		return domain.Song{}, err
	}
	return song, nil
}

// ImportRemote adds a catalog track to the library using its preview URL as
// the playback path. Tracks without a preview cannot be imported.
func (s *LibraryService) ImportRemote(ctx context.Context, track domain.RemoteTrack) (domain.Song, error) {
	song, ok := track.ToSong(uuid.NewString())
	if !ok {
		return domain.Song{}, domain.ErrNoPreview
	}

	if err := s.songs.Save(ctx, song); err != nil {
		return domain.Song{}, err
	}
	s.logger.Info("imported remote track", slog.String("title", song.Title))

	if err := s.reloadSongs(ctx); err != nil {
		return domain.Song{}, err
	}
	return song, nil
}

// ToggleFavorite flips the favorite flag on a song.
func (s *LibraryService) ToggleFavorite(ctx context.Context, id string) error {
	song, ok := s.findSong(id)
	if !ok {
		return domain.ErrSongNotFound
	}

	song.IsFavorite = !song.IsFavorite
	if err := s.songs.Update(ctx, song); err != nil {
		return err
	}
	return s.reloadSongs(ctx)
}

// DeleteSong removes a song from the library. Playlist entries referencing
// it are left in place and filtered out at read time.
func (s *LibraryService) DeleteSong(ctx context.Context, id string) error {
	if err := s.songs.Delete(ctx, id); err != nil {
		return err
	}
	return s.reloadSongs(ctx)
}

// CreatePlaylist creates an empty playlist with the given name.
func (s *LibraryService) CreatePlaylist(ctx context.Context, name string) (domain.Playlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Playlist{}, domain.ErrEmptyName
	}

	playlist := domain.Playlist{
		ID:      uuid.NewString(),
		Name:    name,
		SongIDs: []string{},
	}
	if err := s.playlists.Save(ctx, playlist); err != nil {
		return domain.Playlist{}, err
	}

	if err := s.reloadPlaylists(ctx); err != nil {
		return domain.Playlist{}, err
	}
	return playlist, nil
}

// AddSongToPlaylist appends a song reference to a playlist. Adding a song
// that is already present is a no-op.
func (s *LibraryService) AddSongToPlaylist(ctx context.Context, playlistID, songID string) error {
	if _, ok := s.findSong(songID); !ok {
		return domain.ErrSongNotFound
	}

	playlist, ok := s.findPlaylist(playlistID)
	if !ok {
		return domain.ErrPlaylistNotFound
	}

	for _, existing := range playlist.SongIDs {
		if existing == songID {
			return nil
		}
	}

	playlist.SongIDs = append(playlist.SongIDs, songID)
	if err := s.playlists.Update(ctx, playlist); err != nil {
		return err
	}
	return s.reloadPlaylists(ctx)
}

// PlaylistSongs resolves a playlist's song references against the library
// snapshot, preserving playlist order. References to deleted songs are
// silently dropped.
func (s *LibraryService) PlaylistSongs(playlistID string) ([]domain.Song, error) {
	playlist, ok := s.findPlaylist(playlistID)
	if !ok {
		return nil, domain.ErrPlaylistNotFound
	}

	s.mu.RLock()
	byID := make(map[string]domain.Song, len(s.songCache))
	for _, song := range s.songCache {
		byID[song.ID] = song
	}
	s.mu.RUnlock()

	songs := make([]domain.Song, 0, len(playlist.SongIDs))
	for _, id := range playlist.SongIDs {
		if song, exists := byID[id]; exists {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

func (s *LibraryService) findSong(id string) (domain.Song, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, song := range s.songCache {
		if song.ID == id {
			return song, true
		}
	}
	return domain.Song{}, false
}

func (s *LibraryService) findPlaylist(id string) (domain.Playlist, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, playlist := range s.playlistCache {
		if playlist.ID == id {
			playlist.SongIDs = append([]string(nil), playlist.SongIDs...)
			return playlist, true
		}
	}
	return domain.Playlist{}, false
}

// Verify that LibraryService implements the SongSource interface
var _ SongSource = (*LibraryService)(nil)
