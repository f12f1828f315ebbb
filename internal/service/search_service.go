package service

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

// SearchService runs remote catalog searches. Results live in a snapshot the
// caller reads back after a search completes; a search that fails for any
// reason leaves an empty result set rather than an error, because an offline
// or unauthorized catalog is an expected state, not a failure.
//
// Thread-safety: safe for concurrent use via sync.RWMutex.
type SearchService struct {
	catalog ports.CatalogClient
	bus     ports.EventBus
	logger  *slog.Logger

	mu         sync.RWMutex
	results    []domain.RemoteTrack
	searching  bool
	generation uint64
}

// NewSearchService creates a search service around the given catalog client.
func NewSearchService(catalog ports.CatalogClient, bus ports.EventBus, logger *slog.Logger) *SearchService {
	return &SearchService{
		catalog: catalog,
		bus:     bus,
		logger:  logger.With(slog.String("service", "search")),
	}
}

// SetAccessToken installs the catalog bearer token.
func (s *SearchService) SetAccessToken(token string) {
	s.catalog.SetAccessToken(token)
}

// HasToken reports whether the catalog is authorized.
func (s *SearchService) HasToken() bool {
	return s.catalog.HasToken()
}

// Search queries the catalog and replaces the result snapshot. A blank query
// clears the results without touching the network. When searches overlap,
// only the most recently started one gets to publish its results.
func (s *SearchService) Search(ctx context.Context, query string) []domain.RemoteTrack {
	query = strings.TrimSpace(query)
	if query == "" {
		s.mu.Lock()
		s.generation++
		s.results = []domain.RemoteTrack{}
		s.searching = false
		s.mu.Unlock()
		return []domain.RemoteTrack{}
	}

	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.searching = true
	s.mu.Unlock()

	s.bus.Publish(domain.NewSearchStartedEvent(query))

	tracks, err := s.catalog.SearchTracks(ctx, query)
	if err != nil {
		s.logger.Warn("search failed", slog.String("query", query), slog.Any("error", err))
		tracks = []domain.RemoteTrack{}
	}
	if tracks == nil {
		tracks = []domain.RemoteTrack{}
	}

	s.mu.Lock()
	if gen != s.generation {
		// A newer search superseded this one; drop the stale results.
		s.mu.Unlock()
		return tracks
	}
	s.results = tracks
	s.searching = false
	s.mu.Unlock()

	s.bus.Publish(domain.NewSearchCompletedEvent(query, tracks))
	return tracks
}

// Suggestions returns query completions. Failures collapse to empty.
func (s *SearchService) Suggestions(ctx context.Context, query string) []string {
	query = strings.TrimSpace(query)
	if query == "" {
		return []string{}
	}

	suggestions, err := s.catalog.SearchSuggestions(ctx, query)
	if err != nil {
		s.logger.Warn("suggestions failed", slog.String("query", query), slog.Any("error", err))
		return []string{}
	}
	if suggestions == nil {
		return []string{}
	}
	return suggestions
}

// Results returns the current result snapshot.
func (s *SearchService) Results() []domain.RemoteTrack {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]domain.RemoteTrack, len(s.results))
	copy(results, s.results)
	return results
}

// IsSearching reports whether a search is in flight.
func (s *SearchService) IsSearching() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.searching
}
