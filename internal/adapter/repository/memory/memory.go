// Package memory provides map-backed repositories. They back the service
// tests and any run that does not want a database file on disk.
package memory

import (
	"context"
	"sync"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

// SongRepository is an in-memory song repository.
type SongRepository struct {
	mu    sync.RWMutex
	songs map[string]domain.Song
	order []string
}

// NewSongRepository creates an empty in-memory song repository.
func NewSongRepository() *SongRepository {
	return &SongRepository{songs: make(map[string]domain.Song)}
}

// All returns every stored song in insertion order.
func (r *SongRepository) All(_ context.Context) ([]domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	songs := make([]domain.Song, 0, len(r.order))
	for _, id := range r.order {
		songs = append(songs, r.songs[id])
	}
	return songs, nil
}

// Favorites returns every song with the favorite flag set, in insertion order.
func (r *SongRepository) Favorites(_ context.Context) ([]domain.Song, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	songs := make([]domain.Song, 0)
	for _, id := range r.order {
		if song := r.songs[id]; song.IsFavorite {
			songs = append(songs, song)
		}
	}
	return songs, nil
}

// Save stores a song, replacing any existing record with the same ID.
func (r *SongRepository) Save(_ context.Context, song domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.songs[song.ID]; !exists {
		r.order = append(r.order, song.ID)
	}
	r.songs[song.ID] = song
	return nil
}

// Update rewrites an existing song record.
func (r *SongRepository) Update(_ context.Context, song domain.Song) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.songs[song.ID]; !exists {
		return domain.ErrSongNotFound
	}
	r.songs[song.ID] = song
	return nil
}

// Delete removes a song by ID; absent IDs are a no-op.
func (r *SongRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.songs[id]; !exists {
		return nil
	}
	delete(r.songs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// PlaylistRepository is an in-memory playlist repository.
type PlaylistRepository struct {
	mu        sync.RWMutex
	playlists map[string]domain.Playlist
	order     []string
}

// NewPlaylistRepository creates an empty in-memory playlist repository.
func NewPlaylistRepository() *PlaylistRepository {
	return &PlaylistRepository{playlists: make(map[string]domain.Playlist)}
}

// All returns every stored playlist in insertion order.
func (r *PlaylistRepository) All(_ context.Context) ([]domain.Playlist, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	playlists := make([]domain.Playlist, 0, len(r.order))
	for _, id := range r.order {
		playlists = append(playlists, r.playlists[id])
	}
	return playlists, nil
}

// Save stores a playlist, replacing any existing record with the same ID.
func (r *PlaylistRepository) Save(_ context.Context, playlist domain.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.playlists[playlist.ID]; !exists {
		r.order = append(r.order, playlist.ID)
	}
	r.playlists[playlist.ID] = playlist
	return nil
}

// Update rewrites an existing playlist record.
func (r *PlaylistRepository) Update(_ context.Context, playlist domain.Playlist) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.playlists[playlist.ID]; !exists {
		return domain.ErrPlaylistNotFound
	}
	r.playlists[playlist.ID] = playlist
	return nil
}

// Verify the repositories satisfy the port interfaces
var (
	_ ports.SongRepository     = (*SongRepository)(nil)
	_ ports.PlaylistRepository = (*PlaylistRepository)(nil)
)
