package sqlite

import (
	"context"
	"database/sql"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

// PlaylistStore is the SQLite-backed playlist repository.
type PlaylistStore struct {
	db *sql.DB
}

// All retrieves every stored playlist.
func (s *PlaylistStore) All(ctx context.Context) ([]domain.Playlist, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, songs FROM playlists`)
	if err != nil {
		return nil, domain.NewStoreError("query", "playlist", "query playlists", err)
	}
	defer rows.Close()

	playlists := make([]domain.Playlist, 0)
	for rows.Next() {
		var p domain.Playlist
		var songs string
		if err := rows.Scan(&p.ID, &p.Name, &songs); err != nil {
			return nil, domain.NewStoreError("scan", "playlist", "scan playlist", err)
		}
		p.SongIDs = splitSongIDs(songs)
		playlists = append(playlists, p)
	}
	if err := rows.Err(); err != nil {
		return nil, domain.NewStoreError("iterate", "playlist", "iterate playlists", err)
	}

	return playlists, nil
}

// Save persists a playlist, replacing any record with the same ID.
func (s *PlaylistStore) Save(ctx context.Context, playlist domain.Playlist) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO playlists (id, name, songs) VALUES (?, ?, ?)`,
		playlist.ID, playlist.Name, joinSongIDs(playlist.SongIDs))
	if err != nil {
		return domain.NewStoreError("save", "playlist", "insert playlist", err)
	}
	return nil
}

// Update rewrites an existing playlist record.
func (s *PlaylistStore) Update(ctx context.Context, playlist domain.Playlist) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE playlists SET name = ?, songs = ? WHERE id = ?`,
		playlist.Name, joinSongIDs(playlist.SongIDs), playlist.ID)
	if err != nil {
		return domain.NewStoreError("update", "playlist", "update playlist", err)
	}
	if affected, err := res.RowsAffected(); err == nil && affected == 0 {
		return domain.ErrPlaylistNotFound
	}
	return nil
}

// Verify that PlaylistStore implements the PlaylistRepository interface
var _ ports.PlaylistRepository = (*PlaylistStore)(nil)
