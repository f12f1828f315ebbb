package app

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck/internal/config"
	"tunedeck/internal/logger"
	"tunedeck/internal/testutil"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		DBPath:      filepath.Join(t.TempDir(), "test.db"),
		SearchLimit: 10,
		MockAudio:   true,
	}
}

func TestNewAndShutdown(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	a, err := New(context.Background(), testConfig(t), logger.NewTestLogger())
	require.NoError(t, err)

	assert.NotNil(t, a.Player)
	assert.NotNil(t, a.Library)
	assert.NotNil(t, a.Search)
	assert.False(t, a.Search.HasToken())

	require.NoError(t, a.Shutdown())
	require.NoError(t, a.Shutdown())
}

func TestNewInstallsConfiguredToken(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	cfg := testConfig(t)
	cfg.SpotifyToken = "tok-from-env"

	a, err := New(context.Background(), cfg, logger.NewTestLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Shutdown()) }()

	assert.True(t, a.Search.HasToken())
}

func TestLibraryPersistsAcrossRestart(t *testing.T) {
	defer testutil.VerifyNoLeaks(t)

	cfg := testConfig(t)
	ctx := context.Background()

	a, err := New(ctx, cfg, logger.NewTestLogger())
	require.NoError(t, err)

	song, err := a.Library.Import(ctx, "/music/persistent.mp3")
	require.NoError(t, err)
	require.NoError(t, a.Shutdown())

	a, err = New(ctx, cfg, logger.NewTestLogger())
	require.NoError(t, err)
	defer func() { require.NoError(t, a.Shutdown()) }()

	songs := a.Library.Songs()
	require.Len(t, songs, 1)
	assert.Equal(t, song.ID, songs[0].ID)
	assert.Equal(t, "persistent", songs[0].Title)
}
