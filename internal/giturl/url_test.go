package giturl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name       string
		rawURL     string
		wantScheme string
		wantHost   string
		wantPath   string
	}{
		{
			name:       "https url",
			rawURL:     "https://github.com/octocat/hello.git",
			wantScheme: "https",
			wantHost:   "github.com",
			wantPath:   "/octocat/hello.git",
		},
		{
			name:       "scp-like ssh",
			rawURL:     "git@github.com:octocat/hello.git",
			wantScheme: "ssh",
			wantHost:   "github.com",
			wantPath:   "/octocat/hello.git",
		},
		{
			name:       "explicit ssh",
			rawURL:     "ssh://git@github.com/octocat/hello.git",
			wantScheme: "ssh",
			wantHost:   "github.com",
			wantPath:   "/octocat/hello.git",
		},
		{
			name:       "git+https normalized",
			rawURL:     "git+https://github.com/octocat/hello.git",
			wantScheme: "https",
			wantHost:   "github.com",
			wantPath:   "/octocat/hello.git",
		},
		{
			name:       "git+ssh normalized",
			rawURL:     "git+ssh://git@github.com/octocat/hello.git",
			wantScheme: "ssh",
			wantHost:   "github.com",
			wantPath:   "/octocat/hello.git",
		},
		{
			name:       "ssh with port stripped from host",
			rawURL:     "ssh://git@github.com:22/octocat/hello.git",
			wantScheme: "ssh",
			wantHost:   "github.com",
			wantPath:   "/octocat/hello.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.rawURL)
			require.NoError(t, err)
			require.Equal(t, tt.wantScheme, u.Scheme)
			require.Equal(t, tt.wantHost, u.Host)
			require.Equal(t, tt.wantPath, u.Path)
		})
	}
}

func TestExtractOwnerRepo(t *testing.T) {
	tests := []struct {
		name      string
		rawURL    string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{
			name:      "https with .git",
			rawURL:    "https://github.com/octocat/hello.git",
			wantOwner: "octocat",
			wantRepo:  "hello",
		},
		{
			name:      "https without .git",
			rawURL:    "https://github.com/octocat/hello",
			wantOwner: "octocat",
			wantRepo:  "hello",
		},
		{
			name:      "scp-like",
			rawURL:    "git@github.com:octocat/hello.git",
			wantOwner: "octocat",
			wantRepo:  "hello",
		},
		{
			name:    "missing repo segment",
			rawURL:  "https://github.com/octocat",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := Parse(tt.rawURL)
			require.NoError(t, err)

			owner, repo, err := ExtractOwnerRepo(u)
			if tt.wantErr {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantOwner, owner)
			require.Equal(t, tt.wantRepo, repo)
		})
	}
}
