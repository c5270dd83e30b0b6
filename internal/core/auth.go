package core

import (
	"os"

	"github.com/cli/go-gh/v2/pkg/auth"
)

// TokenSource indicates where the token was found
type TokenSource string

const (
	TokenSourceFlag      TokenSource = "flag"
	TokenSourceEnvGitHub TokenSource = "GITHUB_TOKEN"
	TokenSourceEnvGH     TokenSource = "GH_TOKEN"
	TokenSourceGHCLI     TokenSource = "gh-cli"
	TokenSourceNone      TokenSource = "none"
)

// ResolveToken attempts to find a GitHub token from multiple sources.
// A missing token is not an error: listing public repositories works
// unauthenticated, only with stricter rate limits.
// Priority order:
//  1. flagToken (explicit --token flag)
//  2. GITHUB_TOKEN environment variable
//  3. GH_TOKEN environment variable
//  4. gh CLI auth (config file)
func ResolveToken(flagToken string) (string, TokenSource) {
	return ResolveTokenForHost(flagToken, "github.com")
}

// ResolveTokenForHost resolves a token for a specific host (enterprise support).
func ResolveTokenForHost(flagToken, host string) (string, TokenSource) {
	// 1. Flag has highest priority
	if flagToken != "" {
		return flagToken, TokenSourceFlag
	}

	// 2. Check GITHUB_TOKEN env var
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, TokenSourceEnvGitHub
	}

	// 3. Check GH_TOKEN env var
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token, TokenSourceEnvGH
	}

	// 4. Try gh CLI auth for the specific host
	if token, _ := auth.TokenForHost(host); token != "" {
		return token, TokenSourceGHCLI
	}

	return "", TokenSourceNone
}
