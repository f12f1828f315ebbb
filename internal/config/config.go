// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every runtime setting. All values come from TUNEDECK_*
// environment variables; a .env file, when present, is loaded by the entry
// point before parsing.
type Config struct {
	// DBPath is the SQLite database file location.
	DBPath string `env:"TUNEDECK_DB_PATH" envDefault:"tunedeck.db"`

	// SpotifyClientID identifies the application during authorization.
	SpotifyClientID string `env:"TUNEDECK_SPOTIFY_CLIENT_ID"`

	// SpotifyRedirectURI is where the authorization flow redirects with the token.
	SpotifyRedirectURI string `env:"TUNEDECK_SPOTIFY_REDIRECT_URI" envDefault:"tunedeck://callback"`

	// SpotifyToken is a pre-obtained bearer token. Optional; without it
	// catalog search stays offline until a token is supplied at runtime.
	SpotifyToken string `env:"TUNEDECK_SPOTIFY_TOKEN"`

	// SearchLimit caps the number of catalog search results.
	SearchLimit int `env:"TUNEDECK_SEARCH_LIMIT" envDefault:"10"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"TUNEDECK_LOG_LEVEL" envDefault:"info"`

	// LogFormat is "text" or "json".
	LogFormat string `env:"TUNEDECK_LOG_FORMAT" envDefault:"text"`

	// MockAudio replaces the mpv engine with the in-process mock.
	MockAudio bool `env:"TUNEDECK_MOCK_AUDIO" envDefault:"false"`
}

// Load parses the configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.SearchLimit <= 0 {
		cfg.SearchLimit = 10
	}
	return cfg, nil
}
