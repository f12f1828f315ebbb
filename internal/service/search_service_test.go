package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck/internal/adapter/eventbus"
	"tunedeck/internal/domain"
	"tunedeck/internal/logger"
	"tunedeck/internal/ports"
)

// fakeCatalog is a scriptable CatalogClient for service tests.
type fakeCatalog struct {
	mu          sync.Mutex
	token       string
	calls       int
	tracks      []domain.RemoteTrack
	err         error
	suggestions []string
}

func (f *fakeCatalog) SetAccessToken(token string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.token = token
}

func (f *fakeCatalog) HasToken() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.token != ""
}

func (f *fakeCatalog) SearchTracks(context.Context, string) ([]domain.RemoteTrack, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.token == "" {
		return []domain.RemoteTrack{}, nil
	}
	return f.tracks, f.err
}

func (f *fakeCatalog) SearchSuggestions(context.Context, string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.suggestions, f.err
}

func (f *fakeCatalog) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

var _ ports.CatalogClient = (*fakeCatalog)(nil)

func newTestSearch(t *testing.T, catalog *fakeCatalog) *SearchService {
	t.Helper()

	bus := eventbus.NewSyncEventBus()
	t.Cleanup(func() { require.NoError(t, bus.Close()) })

	return NewSearchService(catalog, bus, logger.NewTestLogger())
}

func TestSearchReturnsResults(t *testing.T) {
	catalog := &fakeCatalog{
		token: "tok",
		tracks: []domain.RemoteTrack{
			{ID: "sp1", Name: "One"},
			{ID: "sp2", Name: "Two"},
		},
	}
	search := newTestSearch(t, catalog)

	results := search.Search(context.Background(), "query")
	require.Len(t, results, 2)
	assert.Equal(t, results, search.Results())
	assert.False(t, search.IsSearching())
}

func TestSearchFailureCollapsesToEmpty(t *testing.T) {
	catalog := &fakeCatalog{token: "tok", err: errors.New("rate limited")}
	search := newTestSearch(t, catalog)

	results := search.Search(context.Background(), "query")
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.Empty(t, search.Results())
}

func TestSearchBlankQueryClearsWithoutNetwork(t *testing.T) {
	catalog := &fakeCatalog{token: "tok", tracks: []domain.RemoteTrack{{ID: "sp1"}}}
	search := newTestSearch(t, catalog)

	search.Search(context.Background(), "query")
	require.NotEmpty(t, search.Results())
	calls := catalog.callCount()

	results := search.Search(context.Background(), "   ")
	assert.Empty(t, results)
	assert.Empty(t, search.Results())
	assert.Equal(t, calls, catalog.callCount())
}

func TestSearchWithoutToken(t *testing.T) {
	catalog := &fakeCatalog{}
	search := newTestSearch(t, catalog)

	assert.False(t, search.HasToken())
	results := search.Search(context.Background(), "query")
	assert.Empty(t, results)

	search.SetAccessToken("tok")
	assert.True(t, search.HasToken())
}

func TestSearchPublishesEvents(t *testing.T) {
	bus := eventbus.NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()

	var started, completed int
	bus.Subscribe(domain.EventSearchStarted, func(domain.Event) { started++ })
	bus.Subscribe(domain.EventSearchCompleted, func(event domain.Event) {
		completed++
		done, ok := event.(domain.SearchCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, "query", done.Query)
	})

	catalog := &fakeCatalog{token: "tok", tracks: []domain.RemoteTrack{{ID: "sp1"}}}
	search := NewSearchService(catalog, bus, logger.NewTestLogger())
	search.Search(context.Background(), "query")

	assert.Equal(t, 1, started)
	assert.Equal(t, 1, completed)
}

// blockingCatalog holds its first search until released, so a test can overlap
// an old search with a newer one.
type blockingCatalog struct {
	release     chan struct{}
	firstCalled chan struct{}
	first       []domain.RemoteTrack
	rest        []domain.RemoteTrack

	mu    sync.Mutex
	calls int
}

func (b *blockingCatalog) SetAccessToken(string) {}
func (b *blockingCatalog) HasToken() bool        { return true }

func (b *blockingCatalog) SearchTracks(context.Context, string) ([]domain.RemoteTrack, error) {
	b.mu.Lock()
	b.calls++
	call := b.calls
	b.mu.Unlock()

	if call == 1 {
		close(b.firstCalled)
		<-b.release
		return b.first, nil
	}
	return b.rest, nil
}

func (b *blockingCatalog) SearchSuggestions(context.Context, string) ([]string, error) {
	return nil, nil
}

func TestStaleSearchDoesNotOverwriteNewer(t *testing.T) {
	catalog := &blockingCatalog{
		release:     make(chan struct{}),
		firstCalled: make(chan struct{}),
		first:       []domain.RemoteTrack{{ID: "stale"}},
		rest:        []domain.RemoteTrack{{ID: "fresh"}},
	}

	bus := eventbus.NewSyncEventBus()
	defer func() { require.NoError(t, bus.Close()) }()
	search := NewSearchService(catalog, bus, logger.NewTestLogger())

	done := make(chan struct{})
	go func() {
		defer close(done)
		search.Search(context.Background(), "old query")
	}()

	// Let the old search reach the catalog, then run a newer one to completion.
	<-catalog.firstCalled
	search.Search(context.Background(), "new query")

	// Release the old search; its results must be discarded.
	close(catalog.release)
	<-done

	results := search.Results()
	require.Len(t, results, 1)
	assert.Equal(t, "fresh", results[0].ID)
}

func TestSuggestionsCollapseFailures(t *testing.T) {
	catalog := &fakeCatalog{token: "tok", err: errors.New("boom")}
	search := newTestSearch(t, catalog)

	assert.Empty(t, search.Suggestions(context.Background(), "que"))

	catalog.err = nil
	catalog.suggestions = []string{"queen", "quest"}
	assert.Equal(t, []string{"queen", "quest"}, search.Suggestions(context.Background(), "que"))
	assert.Empty(t, search.Suggestions(context.Background(), "  "))
}
