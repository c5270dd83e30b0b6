// Package gitcfg reads .git/config files without shelling out to git.
package gitcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

type CoreSection struct {
	RepositoryFormatVersion int  `ini:"repositoryformatversion"`
	FileMode                bool `ini:"filemode"`
	Bare                    bool `ini:"bare"`
}

type RemoteSection struct {
	URL   string `ini:"url"`
	Fetch string `ini:"fetch"`
}

type BranchSection struct {
	Remote string `ini:"remote"`
	Merge  string `ini:"merge"`
}

type GitConfig struct {
	Core   CoreSection              `ini:"core"`
	Remote map[string]RemoteSection `ini:"remote"`
	Branch map[string]BranchSection `ini:"branch"`
}

// Load reads the config file of the repository rooted at repoDir.
func Load(repoDir string) (*GitConfig, error) {
	gitDir := filepath.Join(repoDir, ".git")

	info, err := os.Stat(gitDir)
	if err != nil {
		return nil, fmt.Errorf("not a git repository (no .git directory found): %s", repoDir)
	}

	if !info.IsDir() {
		return nil, fmt.Errorf("not a git repository (.git is not a directory): %s", repoDir)
	}

	return loadFile(filepath.Join(gitDir, "config"))
}

func loadFile(path string) (*GitConfig, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}

	gitConfig := GitConfig{
		Remote: make(map[string]RemoteSection),
		Branch: make(map[string]BranchSection),
	}

	if err := cfg.Section("core").MapTo(&gitConfig.Core); err != nil {
		return nil, err
	}

	for _, sec := range cfg.Sections() {
		name, ok := subsectionName(sec.Name(), "remote")
		if !ok || !sec.HasKey("url") {
			continue
		}

		var remote RemoteSection

		if err := sec.MapTo(&remote); err != nil {
			return nil, err
		}

		gitConfig.Remote[name] = remote
	}

	for _, sec := range cfg.Sections() {
		name, ok := subsectionName(sec.Name(), "branch")
		if !ok {
			continue
		}

		var branch BranchSection

		if err := sec.MapTo(&branch); err != nil {
			return nil, err
		}

		gitConfig.Branch[name] = branch
	}

	return &gitConfig, nil
}

// subsectionName extracts "origin" from a section named `remote "origin"`.
func subsectionName(section, kind string) (string, bool) {
	prefix := kind + ` "`
	if !strings.HasPrefix(section, prefix) || !strings.HasSuffix(section, `"`) {
		return "", false
	}

	return section[len(prefix) : len(section)-1], true
}

// RemoteURL returns the URL of the named remote, or "" when absent.
func (c *GitConfig) RemoteURL(name string) string {
	return c.Remote[name].URL
}

// HasRemote reports whether the named remote is configured.
func (c *GitConfig) HasRemote(name string) bool {
	_, ok := c.Remote[name]
	return ok
}
