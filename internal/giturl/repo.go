package giturl

import (
	"fmt"
	"path"
	"strings"
)

const defaultHost = "github.com"

// Repository represents a Git repository with owner, name, and host
type Repository struct {
	Owner string
	Name  string
	Host  string
}

// CloneURL returns the clone URL for the repository using the specified protocol
func (r *Repository) CloneURL(protocol string) string {
	if protocol == "ssh" {
		return fmt.Sprintf("git@%s:%s/%s.git", r.Host, r.Owner, r.Name)
	}

	return fmt.Sprintf("https://%s/%s/%s.git", r.Host, r.Owner, r.Name)
}

// FullName returns the "owner/repo" string
func (r *Repository) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// Same reports whether both repositories point at the same host, owner,
// and name, ignoring case. Protocol differences don't matter here.
func (r *Repository) Same(other *Repository) bool {
	if other == nil {
		return false
	}

	return strings.EqualFold(r.Host, other.Host) &&
		strings.EqualFold(r.Owner, other.Owner) &&
		strings.EqualFold(r.Name, other.Name)
}

// FromCloneURL parses an HTTPS or SSH clone URL into a Repository.
// Supports:
//   - "https://github.com/owner/repo.git"
//   - "git@github.com:owner/repo.git"
//   - "ssh://git@github.com/owner/repo.git"
func FromCloneURL(rawURL string) (*Repository, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	owner, name, err := ExtractOwnerRepo(u)
	if err != nil {
		return nil, fmt.Errorf("invalid repository URL %q: %w", rawURL, err)
	}

	host := u.Hostname()
	if host == "" {
		host = defaultHost
	}

	return &Repository{
		Owner: owner,
		Name:  name,
		Host:  strings.ToLower(strings.TrimPrefix(host, "www.")),
	}, nil
}

// RepoName derives the repository base name from a clone URL, the name
// "repo" in "https://github.com/owner/repo.git".
func RepoName(rawURL string) (string, error) {
	u, err := Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	name := strings.TrimSuffix(path.Base(strings.TrimSuffix(u.Path, "/")), ".git")
	if name == "" || name == "." || name == "/" {
		return "", fmt.Errorf("cannot derive repository name from %q", rawURL)
	}

	return name, nil
}
