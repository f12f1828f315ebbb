package spotify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tunedeck/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int64) {
	t.Helper()

	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)
	return server, &hits
}

func trackPayload() map[string]any {
	return map[string]any{
		"tracks": map[string]any{
			"items": []map[string]any{
				{
					"id":   "sp1",
					"name": "Night Drive",
					"artists": []map[string]any{
						{"name": "First"},
						{"name": "Second"},
					},
					"preview_url":   "https://cdn.example.com/previews/sp1.mp3",
					"external_urls": map[string]string{"spotify": "https://open.spotify.com/track/sp1"},
				},
			},
		},
	}
}

func TestSearchTracks(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.Equal(t, "night drive", r.URL.Query().Get("q"))
		assert.Equal(t, DefaultSearchType, r.URL.Query().Get("type"))
		assert.Equal(t, "5", r.URL.Query().Get("limit"))
		require.NoError(t, json.NewEncoder(w).Encode(trackPayload()))
	})

	client := NewClient(WithBaseURL(server.URL), WithLimit(5))
	client.SetAccessToken("tok")

	tracks, err := client.SearchTracks(context.Background(), "night drive")
	require.NoError(t, err)
	require.Len(t, tracks, 1)
	assert.Equal(t, "sp1", tracks[0].ID)
	assert.Equal(t, []string{"First", "Second"}, tracks[0].Artists)
	assert.True(t, tracks[0].Playable())
}

func TestSearchTracksWithoutTokenSkipsNetwork(t *testing.T) {
	server, hits := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewEncoder(w).Encode(trackPayload()))
	})

	client := NewClient(WithBaseURL(server.URL))

	tracks, err := client.SearchTracks(context.Background(), "anything")
	require.NoError(t, err)
	assert.Empty(t, tracks)
	assert.Zero(t, hits.Load())
}

func TestSearchTracksShapeMismatchFailsClosed(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"albums": {"items": []}}`))
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetAccessToken("tok")

	tracks, err := client.SearchTracks(context.Background(), "query")
	require.NoError(t, err)
	assert.NotNil(t, tracks)
	assert.Empty(t, tracks)
}

func TestSearchTracksHTTPError(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": {"status": 401, "message": "invalid token"}}`, http.StatusUnauthorized)
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetAccessToken("expired")

	_, err := client.SearchTracks(context.Background(), "query")
	require.Error(t, err)

	var catalogErr *domain.CatalogError
	require.ErrorAs(t, err, &catalogErr)
	assert.Equal(t, http.StatusUnauthorized, catalogErr.StatusCode)
}

func TestSearchTracksMalformedBody(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"tracks": `))
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetAccessToken("tok")

	_, err := client.SearchTracks(context.Background(), "query")
	assert.Error(t, err)
}

func TestSearchSuggestions(t *testing.T) {
	server, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/search/suggestions", r.URL.Path)
		_, _ = w.Write([]byte(`{"suggestions": ["queen", "quest"]}`))
	})

	client := NewClient(WithBaseURL(server.URL))
	client.SetAccessToken("tok")

	suggestions, err := client.SearchSuggestions(context.Background(), "que")
	require.NoError(t, err)
	assert.Equal(t, []string{"queen", "quest"}, suggestions)
}

func TestHasToken(t *testing.T) {
	client := NewClient()
	assert.False(t, client.HasToken())
	client.SetAccessToken("tok")
	assert.True(t, client.HasToken())
	client.SetAccessToken("")
	assert.False(t, client.HasToken())
}
