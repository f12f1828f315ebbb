// Package ports defines the remote catalog client interface.
package ports

import (
	"context"

	"tunedeck/internal/domain"
)

// CatalogClient is the interface for the remote music catalog.
// The client is stateless between calls except for the cached bearer token,
// which is obtained through an external authorization flow and set
// exogenously. There is no result caching, rate limiting, or retry.
type CatalogClient interface {
	// SetAccessToken installs the bearer token attached to every request.
	SetAccessToken(token string)

	// HasToken reports whether a token has been set.
	HasToken() bool

	// SearchTracks searches the catalog for tracks matching the free-text
	// query and returns a bounded list of results.
	//
	// Without a token it returns an empty list and never issues a network
	// call. Transport failures and unexpected response shapes return an
	// error; callers are expected to collapse those to empty results.
	SearchTracks(ctx context.Context, query string) ([]domain.RemoteTrack, error)

	// SearchSuggestions returns query completion suggestions.
	// Token handling matches SearchTracks.
	SearchSuggestions(ctx context.Context, query string) ([]string, error)
}
