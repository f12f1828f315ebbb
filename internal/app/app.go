// Package app wires the adapters and services into a running application.
package app

import (
	"context"
	"log/slog"

	"tunedeck/internal/adapter/audio/mock"
	"tunedeck/internal/adapter/audio/mpv"
	"tunedeck/internal/adapter/catalog/spotify"
	"tunedeck/internal/adapter/eventbus"
	"tunedeck/internal/adapter/repository/sqlite"
	"tunedeck/internal/config"
	"tunedeck/internal/ports"
	"tunedeck/internal/service"
)

// App owns every component of a running instance and tears them down in
// reverse order on Shutdown.
type App struct {
	cfg    config.Config
	logger *slog.Logger

	bus    ports.EventBus
	engine ports.PlaybackEngine
	store  *sqlite.Store

	Player  *service.PlayerService
	Library *service.LibraryService
	Search  *service.SearchService
}

// New builds a fully wired application from the configuration.
// On error every component constructed so far is torn down.
func New(ctx context.Context, cfg config.Config, log *slog.Logger) (*App, error) {
	a := &App{cfg: cfg, logger: log}

	a.bus = eventbus.NewSyncEventBus()

	engine, err := newEngine(cfg, a.bus)
	if err != nil {
		_ = a.bus.Close()
		return nil, err
	}
	a.engine = engine

	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		a.teardown()
		return nil, err
	}
	a.store = store
	if err := store.Migrate(ctx); err != nil {
		a.teardown()
		return nil, err
	}

	a.Library = service.NewLibraryService(store.Songs(), store.Playlists(), a.bus, log)
	if err := a.Library.Refresh(ctx); err != nil {
		a.teardown()
		return nil, err
	}

	a.Player = service.NewPlayerService(a.engine, a.bus, a.Library, log)

	catalog := spotify.NewClient(spotify.WithLimit(cfg.SearchLimit))
	a.Search = service.NewSearchService(catalog, a.bus, log)
	if cfg.SpotifyToken != "" {
		a.Search.SetAccessToken(cfg.SpotifyToken)
	}

	log.Info("application ready",
		slog.String("db", cfg.DBPath),
		slog.Bool("mock_audio", cfg.MockAudio),
		slog.Bool("catalog_authorized", a.Search.HasToken()))
	return a, nil
}

func newEngine(cfg config.Config, bus ports.EventBus) (ports.PlaybackEngine, error) {
	if cfg.MockAudio {
		return mock.NewEngine(bus), nil
	}
	return mpv.NewEngine(bus)
}

// AuthorizeURL builds the catalog authorization URL from the configuration.
func (a *App) AuthorizeURL() string {
	return spotify.AuthorizeURL(a.cfg.SpotifyClientID, a.cfg.SpotifyRedirectURI)
}

// Shutdown stops the player, releases the engine, and closes the store and
// bus. Safe to call more than once.
func (a *App) Shutdown() error {
	if a.Player != nil {
		if err := a.Player.Shutdown(); err != nil {
			a.logger.Warn("player shutdown failed", slog.Any("error", err))
		}
	}
	a.teardown()
	a.logger.Info("application stopped")
	return nil
}

// teardown releases whatever has been constructed, tolerating nil fields so
// it can run from a half-built New.
func (a *App) teardown() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("store close failed", slog.Any("error", err))
		}
		a.store = nil
	}
	if a.engine != nil {
		_ = a.engine.Release()
		a.engine = nil
	}
	if a.bus != nil {
		_ = a.bus.Close()
		a.bus = nil
	}
}
