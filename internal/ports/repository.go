// Package ports defines repository interfaces for data persistence abstraction.
// These interfaces enable the repository pattern and allow swapping persistence mechanisms.
package ports

import (
	"context"

	"tunedeck/internal/domain"
)

// SongRepository handles the persistence of songs.
// There are no partial queries beyond "all songs" and "all favorites"; the
// orchestration layer reloads wholesale after every mutation.
//
// Each call is its own atomic unit; no operation spans multiple records.
// Thread-safety: implementations must be safe for concurrent use.
type SongRepository interface {
	// All retrieves every stored song.
	//
	// Returns a slice of songs (empty if none exist), or an error if loading fails.
	All(ctx context.Context) ([]domain.Song, error)

	// Favorites retrieves every song with the favorite flag set.
	Favorites(ctx context.Context) ([]domain.Song, error)

	// Save persists a song. If a song with the same ID exists, it is replaced.
	Save(ctx context.Context, song domain.Song) error

	// Update rewrites an existing song record.
	Update(ctx context.Context, song domain.Song) error

	// Delete removes a song by ID. Deleting an absent ID is a no-op.
	// Playlist references to the deleted song are NOT pruned.
	Delete(ctx context.Context, id string) error
}

// PlaylistRepository handles the persistence of playlists.
// Playlists reference songs by ID; the repository stores the reference list
// verbatim and performs no referential checks.
//
// Thread-safety: implementations must be safe for concurrent use.
type PlaylistRepository interface {
	// All retrieves every stored playlist.
	All(ctx context.Context) ([]domain.Playlist, error)

	// Save persists a playlist. If a playlist with the same ID exists, it is replaced.
	Save(ctx context.Context, playlist domain.Playlist) error

	// Update rewrites an existing playlist record.
	Update(ctx context.Context, playlist domain.Playlist) error
}
