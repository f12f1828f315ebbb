package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck/internal/adapter/eventbus"
	"tunedeck/internal/adapter/repository/memory"
	"tunedeck/internal/domain"
	"tunedeck/internal/logger"
)

func newTestLibrary(t *testing.T) (*LibraryService, *memory.SongRepository, *memory.PlaylistRepository) {
	t.Helper()

	bus := eventbus.NewSyncEventBus()
	t.Cleanup(func() { require.NoError(t, bus.Close()) })

	songs := memory.NewSongRepository()
	playlists := memory.NewPlaylistRepository()
	library := NewLibraryService(songs, playlists, bus, logger.NewTestLogger())
	require.NoError(t, library.Refresh(context.Background()))

	return library, songs, playlists
}

func TestImportDerivesTitleFromFilename(t *testing.T) {
	library, _, _ := newTestLibrary(t)

	song, err := library.Import(context.Background(), "/music/sunrise.mp3")
	require.NoError(t, err)

	assert.NotEmpty(t, song.ID)
	assert.Equal(t, "sunrise", song.Title)
	assert.Equal(t, "Unknown Artist", song.Artist)
	assert.False(t, song.IsFavorite)

	songs := library.Songs()
	require.Len(t, songs, 1)
	assert.Equal(t, song, songs[0])
}

func TestImportRejectsBlankPath(t *testing.T) {
	library, _, _ := newTestLibrary(t)

	_, err := library.Import(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidPath)
	assert.Empty(t, library.Songs())
}

func TestImportRemoteUsesPreviewURL(t *testing.T) {
	library, _, _ := newTestLibrary(t)

	track := domain.RemoteTrack{
		ID:         "sp1",
		Name:       "Night Drive",
		Artists:    []string{"First", "Second"},
		PreviewURL: "https://cdn.example.com/previews/sp1.mp3",
	}

	song, err := library.ImportRemote(context.Background(), track)
	require.NoError(t, err)
	assert.Equal(t, "Night Drive", song.Title)
	assert.Equal(t, "First, Second", song.Artist)
	assert.Equal(t, track.PreviewURL, song.Path)
}

func TestImportRemoteWithoutPreview(t *testing.T) {
	library, _, _ := newTestLibrary(t)

	_, err := library.ImportRemote(context.Background(), domain.RemoteTrack{ID: "sp2", Name: "No Preview"})
	assert.ErrorIs(t, err, domain.ErrNoPreview)
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	library, _, _ := newTestLibrary(t)
	ctx := context.Background()

	song, err := library.Import(ctx, "/music/keeper.mp3")
	require.NoError(t, err)

	require.NoError(t, library.ToggleFavorite(ctx, song.ID))
	favs, err := library.Favorites(ctx)
	require.NoError(t, err)
	require.Len(t, favs, 1)
	assert.Equal(t, song.ID, favs[0].ID)

	require.NoError(t, library.ToggleFavorite(ctx, song.ID))
	favs, err = library.Favorites(ctx)
	require.NoError(t, err)
	assert.Empty(t, favs)
}

func TestToggleFavoriteMissingSong(t *testing.T) {
	library, _, _ := newTestLibrary(t)
	err := library.ToggleFavorite(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrSongNotFound)
}

func TestDeleteSongRefreshesSnapshot(t *testing.T) {
	library, _, _ := newTestLibrary(t)
	ctx := context.Background()

	song, err := library.Import(ctx, "/music/gone.mp3")
	require.NoError(t, err)
	require.Len(t, library.Songs(), 1)

	require.NoError(t, library.DeleteSong(ctx, song.ID))
	assert.Empty(t, library.Songs())
}

func TestCreatePlaylist(t *testing.T) {
	library, _, _ := newTestLibrary(t)

	playlist, err := library.CreatePlaylist(context.Background(), "  Road Trip  ")
	require.NoError(t, err)
	assert.Equal(t, "Road Trip", playlist.Name)
	assert.Empty(t, playlist.SongIDs)

	playlists := library.Playlists()
	require.Len(t, playlists, 1)
	assert.Equal(t, playlist.ID, playlists[0].ID)
}

func TestCreatePlaylistRejectsBlankName(t *testing.T) {
	library, _, _ := newTestLibrary(t)

	_, err := library.CreatePlaylist(context.Background(), "   ")
	assert.ErrorIs(t, err, domain.ErrEmptyName)
}

func TestAddSongToPlaylist(t *testing.T) {
	library, _, _ := newTestLibrary(t)
	ctx := context.Background()

	song, err := library.Import(ctx, "/music/track.mp3")
	require.NoError(t, err)
	playlist, err := library.CreatePlaylist(ctx, "Mix")
	require.NoError(t, err)

	require.NoError(t, library.AddSongToPlaylist(ctx, playlist.ID, song.ID))
	// Adding the same song again is a no-op, not a duplicate.
	require.NoError(t, library.AddSongToPlaylist(ctx, playlist.ID, song.ID))

	playlists := library.Playlists()
	require.Len(t, playlists, 1)
	assert.Equal(t, []string{song.ID}, playlists[0].SongIDs)
}

func TestAddSongToPlaylistErrors(t *testing.T) {
	library, _, _ := newTestLibrary(t)
	ctx := context.Background()

	song, err := library.Import(ctx, "/music/track.mp3")
	require.NoError(t, err)
	playlist, err := library.CreatePlaylist(ctx, "Mix")
	require.NoError(t, err)

	assert.ErrorIs(t, library.AddSongToPlaylist(ctx, playlist.ID, "ghost"), domain.ErrSongNotFound)
	assert.ErrorIs(t, library.AddSongToPlaylist(ctx, "ghost", song.ID), domain.ErrPlaylistNotFound)
}

func TestPlaylistSongsFiltersDanglingReferences(t *testing.T) {
	library, _, _ := newTestLibrary(t)
	ctx := context.Background()

	first, err := library.Import(ctx, "/music/first.mp3")
	require.NoError(t, err)
	second, err := library.Import(ctx, "/music/second.mp3")
	require.NoError(t, err)

	playlist, err := library.CreatePlaylist(ctx, "Mix")
	require.NoError(t, err)
	require.NoError(t, library.AddSongToPlaylist(ctx, playlist.ID, first.ID))
	require.NoError(t, library.AddSongToPlaylist(ctx, playlist.ID, second.ID))

	// Deleting a song leaves the playlist reference behind; reads filter it.
	require.NoError(t, library.DeleteSong(ctx, first.ID))

	songs, err := library.PlaylistSongs(playlist.ID)
	require.NoError(t, err)
	require.Len(t, songs, 1)
	assert.Equal(t, second.ID, songs[0].ID)
}

func TestPlaylistSongsMissingPlaylist(t *testing.T) {
	library, _, _ := newTestLibrary(t)

	_, err := library.PlaylistSongs("ghost")
	assert.ErrorIs(t, err, domain.ErrPlaylistNotFound)
}

func TestRefreshPublishesSnapshots(t *testing.T) {
	bus := eventbus.NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	var libraryEvents, playlistEvents int
	bus.Subscribe(domain.EventLibraryUpdated, func(domain.Event) { libraryEvents++ })
	bus.Subscribe(domain.EventPlaylistsUpdated, func(domain.Event) { playlistEvents++ })

	library := NewLibraryService(memory.NewSongRepository(), memory.NewPlaylistRepository(), bus, logger.NewTestLogger())
	require.NoError(t, library.Refresh(context.Background()))

	assert.Equal(t, 1, libraryEvents)
	assert.Equal(t, 1, playlistEvents)
}
