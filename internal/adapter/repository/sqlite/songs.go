package sqlite

import (
	"context"
	"database/sql"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

// SongStore is the SQLite-backed song repository.
type SongStore struct {
	db *sql.DB
}

// All retrieves every stored song.
func (s *SongStore) All(ctx context.Context) ([]domain.Song, error) {
	return s.query(ctx, `SELECT id, title, artist, path, is_favorite FROM songs`)
}

// Favorites retrieves every song with the favorite flag set.
func (s *SongStore) Favorites(ctx context.Context) ([]domain.Song, error) {
	return s.query(ctx, `SELECT id, title, artist, path, is_favorite FROM songs WHERE is_favorite = 1`)
}

func (s *SongStore) query(ctx context.Context, query string) ([]domain.Song, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, domain.NewStoreError("query", "song", "query songs", err)
	}
	defer rows.Close()

	songs := make([]domain.Song, 0)
	for rows.Next() {
		var song domain.Song
		var favorite int
		if err := rows.Scan(&song.ID, &song.Title, &song.Artist, &song.Path, &favorite); err != nil {
			return nil, domain.NewStoreError("scan", "song", "scan song", err)
		}
		song.IsFavorite = favorite != 0
		songs = append(songs, song)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate", "song", "iterate songs", err)
	}

	return songs, nil
}

// Save persists a song, replacing any existing record with the same ID.
func (s *SongStore) Save(ctx context.Context, song domain.Song) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO songs (id, title, artist, path, is_favorite) VALUES (?, ?, ?, ?, ?)`,
		song.ID, song.Title, song.Artist, song.Path, boolToInt(song.IsFavorite))
	if err != nil {
		return domain.NewStoreError("save", "song", "insert song", err)
	}
	return nil
}

// Update rewrites an existing song record.
func (s *SongStore) Update(ctx context.Context, song domain.Song) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE songs SET title = ?, artist = ?, path = ?, is_favorite = ? WHERE id = ?`,
		song.Title, song.Artist, song.Path, boolToInt(song.IsFavorite), song.ID)
	if err != nil {
		return domain.NewStoreError("update", "song", "update song", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrSongNotFound
	}
	return nil
}

// Delete removes a song by ID. Absent IDs are a no-op.
// Playlist references to the deleted song stay in place.
func (s *SongStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM songs WHERE id = ?`, id); err != nil {
		return domain.NewStoreError("delete", "song", "delete song", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Verify that SongStore implements the SongRepository interface
var _ ports.SongRepository = (*SongStore)(nil)
