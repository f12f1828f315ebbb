// Package spotify implements the remote catalog client against the Spotify
// Web API. The client carries a bearer token obtained through the external
// authorization flow; without one every search short-circuits to empty.
package spotify

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"tunedeck/internal/domain"
	"tunedeck/internal/ports"
)

const (
	// DefaultBaseURL is the fixed API host.
	DefaultBaseURL = "https://api.spotify.com"

	// DefaultSearchType is the type filter attached to every search.
	DefaultSearchType = "track,artist"

	// DefaultLimit caps the number of returned tracks.
	DefaultLimit = 10
)

// Client is the Spotify implementation of the CatalogClient interface.
// Stateless between calls except for the cached token. No result caching,
// no rate limiting, no retry.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limit      int

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API host (used by tests).
func WithBaseURL(baseURL string) Option {
	return func(c *Client) { c.baseURL = baseURL }
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

// WithLimit overrides the result-count cap.
func WithLimit(limit int) Option {
	return func(c *Client) {
		if limit > 0 {
			c.limit = limit
		}
	}
}

// NewClient creates a new catalog client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		limit: DefaultLimit,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Wire shapes. The response is a wrapper object containing a nested track
// list; anything that does not match decodes to the zero value and is
// treated as an empty result.
type searchResponse struct {
	Tracks *trackPage `json:"tracks"`
}

type trackPage struct {
	Items []trackItem `json:"items"`
}

type trackItem struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Artists      []artistItem      `json:"artists"`
	PreviewURL   string            `json:"preview_url"`
	ExternalURLs map[string]string `json:"external_urls"`
}

type artistItem struct {
	Name string `json:"name"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// SetAccessToken installs the bearer token attached to every request.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// HasToken reports whether a token has been set.
func (c *Client) HasToken() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// SearchTracks searches the catalog for tracks matching the query.
// Without a token it returns an empty list and never issues a network call.
func (c *Client) SearchTracks(ctx context.Context, query string) ([]domain.RemoteTrack, error) {
	if !c.HasToken() {
		return []domain.RemoteTrack{}, nil
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", DefaultSearchType)
	params.Set("limit", fmt.Sprintf("%d", c.limit))

	var result searchResponse
	if err := c.doRequest(ctx, "search", "/v1/search", params, &result); err != nil {
		return nil, err
	}

	// Fail closed on shape mismatch
	if result.Tracks == nil {
		return []domain.RemoteTrack{}, nil
	}

	tracks := make([]domain.RemoteTrack, 0, len(result.Tracks.Items))
	for _, item := range result.Tracks.Items {
		tracks = append(tracks, convertTrack(item))
	}
	return tracks, nil
}

// SearchSuggestions returns query completion suggestions.
func (c *Client) SearchSuggestions(ctx context.Context, query string) ([]string, error) {
	if !c.HasToken() {
		return []string{}, nil
	}

	params := url.Values{}
	params.Set("q", query)

	var result suggestionsResponse
	if err := c.doRequest(ctx, "suggestions", "/v1/search/suggestions", params, &result); err != nil {
		return nil, err
	}
	if result.Suggestions == nil {
		return []string{}, nil
	}
	return result.Suggestions, nil
}

// doRequest performs an authenticated GET against the API.
func (c *Client) doRequest(ctx context.Context, op, path string, params url.Values, result any) error {
	apiURL := c.baseURL + path
	if len(params) > 0 {
		apiURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return domain.NewCatalogError(op, 0, "create request", err)
	}

	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewCatalogError(op, 0, "send request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return domain.NewCatalogError(op, resp.StatusCode, string(body), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return domain.NewCatalogError(op, resp.StatusCode, "decode response", err)
	}

	return nil
}

// convertTrack maps a wire track to the domain model.
func convertTrack(item trackItem) domain.RemoteTrack {
	artists := make([]string, 0, len(item.Artists))
	for _, a := range item.Artists {
		artists = append(artists, a.Name)
	}
	return domain.RemoteTrack{
		ID:           item.ID,
		Name:         item.Name,
		Artists:      artists,
		PreviewURL:   item.PreviewURL,
		ExternalURLs: item.ExternalURLs,
	}
}

// Verify that Client implements the CatalogClient interface
var _ ports.CatalogClient = (*Client)(nil)
