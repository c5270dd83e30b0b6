package core

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v82/github"
	"golang.org/x/oauth2"
)

// NewGitHubClient creates a GitHub API client. An empty token yields an
// unauthenticated client (public data only, stricter rate limits). A
// non-empty baseURL routes requests to an enterprise or alternate host.
func NewGitHubClient(ctx context.Context, token, baseURL string) (*github.Client, error) {
	var httpClient *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(httpClient)

	if baseURL != "" && baseURL != defaultAPIBaseURL {
		return client.WithEnterpriseURLs(baseURL, baseURL)
	}

	return client, nil
}

// APIHost returns the GitHub host a base URL points at, used for
// credential lookup and SSH remote construction. Empty means github.com.
func APIHost(baseURL string) string {
	if baseURL == "" {
		return "github.com"
	}

	u, err := url.Parse(baseURL)
	if err != nil || u.Hostname() == "" {
		return "github.com"
	}

	host := strings.ToLower(u.Hostname())

	return strings.TrimPrefix(host, "api.")
}
