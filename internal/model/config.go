package model

import (
	"os"
	"path/filepath"

	"github.com/inovacc/grabr/internal/application"
)

// Protocol values accepted by Config.Protocol.
const (
	ProtocolHTTPS = "https"
	ProtocolSSH   = "ssh"
)

// Config holds the application configuration
type Config struct {
	// DefaultCloneDir is the default directory where repositories will be cloned
	DefaultCloneDir string `json:"default_clone_dir"`

	// APIBaseURL overrides the GitHub API base address. Empty means the
	// public API (or the GITHUB_API_URL environment variable if set).
	APIBaseURL string `json:"api_base_url,omitempty"`

	// Protocol selects the clone URL flavor, "https" or "ssh"
	Protocol string `json:"protocol"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	// Get a user home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = "."
	}

	return Config{
		DefaultCloneDir: filepath.Join(homeDir, application.AppName),
		APIBaseURL:      "",
		Protocol:        ProtocolHTTPS,
	}
}
