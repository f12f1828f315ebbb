package spotify

import (
	"net/url"
	"strings"

	"tunedeck/internal/domain"
)

// The authorization flow itself is delegated to the platform: tunedeck only
// builds the authorize URL and parses the token out of the redirect callback.

const (
	// AccountsBaseURL is the authorization host.
	AccountsBaseURL = "https://accounts.spotify.com"

	// ScopeStreaming is the single capability scope requested.
	ScopeStreaming = "streaming"
)

// AuthorizeURL builds the implicit-grant authorization URL for the given
// client identifier and redirect target. The user completes the flow in a
// browser; the token comes back through the redirect.
func AuthorizeURL(clientID, redirectURI string) string {
	params := url.Values{}
	params.Set("client_id", clientID)
	params.Set("response_type", "token")
	params.Set("redirect_uri", redirectURI)
	params.Set("scope", ScopeStreaming)
	return AccountsBaseURL + "/authorize?" + params.Encode()
}

// ParseCallback extracts the access token from a redirect callback URL.
// Implicit-grant responses carry the token in the URI fragment
// (redirect#access_token=...&token_type=Bearer); some wrappers deliver it as
// a query string instead, so both are accepted. An error parameter in the
// callback, or a callback without a token, yields a CatalogError.
func ParseCallback(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", domain.NewCatalogError("authorize", 0, "malformed callback", err)
	}

	values, err := url.ParseQuery(strings.TrimPrefix(u.Fragment, "#"))
	if err != nil || values.Get("access_token") == "" {
		values = u.Query()
	}

	if reason := values.Get("error"); reason != "" {
		return "", domain.NewCatalogError("authorize", 0, "authorization denied: "+reason, nil)
	}

	token := values.Get("access_token")
	if token == "" {
		return "", domain.NewCatalogError("authorize", 0, "callback carries no access token", nil)
	}
	return token, nil
}
