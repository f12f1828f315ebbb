// Package sqlite provides the durable library store backed by a local SQLite
// database file. The schema mirrors the two-table layout the library has
// always had: songs and playlists, keyed by opaque string identifiers.
package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"tunedeck/internal/domain"
)

// Store owns the database handle and hands out the per-entity repositories.
type Store struct {
	db *sql.DB

	songs     *SongStore
	playlists *PlaylistStore
}

// New sets up a Store using the provided database handle.
func New(db *sql.DB) *Store {
	return &Store{
		db:        db,
		songs:     &SongStore{db: db},
		playlists: &PlaylistStore{db: db},
	}
}

// Songs returns the song repository view.
func (s *Store) Songs() *SongStore { return s.songs }

// Playlists returns the playlist repository view.
func (s *Store) Playlists() *PlaylistStore { return s.playlists }

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate creates the fixed schema. There is a single schema version; the
// statements are idempotent.
func (s *Store) Migrate(ctx context.Context) error {
	const schema = `
CREATE TABLE IF NOT EXISTS songs (
	id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	artist TEXT NOT NULL,
	path TEXT NOT NULL,
	is_favorite INTEGER NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS playlists (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	songs TEXT NOT NULL DEFAULT ''
);`

	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return domain.NewStoreError("migrate", "schema", "create tables", err)
	}
	return nil
}

// joinSongIDs encodes an ID list as a comma-joined string, the storage format
// the playlists table has used from the start. Identifiers are generated as
// UUIDs and cannot contain commas.
func joinSongIDs(ids []string) string {
	return strings.Join(ids, ",")
}

// splitSongIDs decodes a comma-joined ID list; empty input is an empty list.
func splitSongIDs(value string) []string {
	if value == "" {
		return []string{}
	}
	return strings.Split(value, ",")
}
