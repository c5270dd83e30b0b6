// Package git shells out to the system git binary.
// Pattern inspired by github.com/cli/cli
package git

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
)

// Client wraps git operations for a working directory
type Client struct {
	RepoDir string // Repository directory, empty for process cwd
	GitPath string // Path to git executable
	Stderr  io.Writer
	Stdin   io.Reader
	Stdout  io.Writer
}

// NewClient creates a new git client
func NewClient() *Client {
	gitPath, _ := exec.LookPath("git")

	return &Client{
		GitPath: gitPath,
		Stderr:  os.Stderr,
		Stdin:   os.Stdin,
		Stdout:  os.Stdout,
	}
}

// NewClientForRepo creates a client for a specific repository
func NewClientForRepo(repoDir string) *Client {
	c := NewClient()
	c.RepoDir = repoDir
	return c
}

// Command creates a git command
// Note: Do not set Stdout/Stderr if you plan to use CombinedOutput()
func (c *Client) Command(ctx context.Context, args ...string) *exec.Cmd {
	cmd := exec.CommandContext(ctx, c.GitPath, args...)

	if c.RepoDir != "" {
		cmd.Dir = c.RepoDir
	}

	return cmd
}

// Clone clones a repository into targetPath
func (c *Client) Clone(ctx context.Context, cloneURL, targetPath string) error {
	args := []string{"clone", cloneURL, targetPath}
	cmd := c.Command(ctx, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewGitError(args, string(output), err)
	}

	return nil
}

// Init initializes a new repository in the client's directory
func (c *Client) Init(ctx context.Context) error {
	args := []string{"init"}
	cmd := c.Command(ctx, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewGitError(args, string(output), err)
	}

	return nil
}

// AddRemote adds a named remote pointing at url
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	args := []string{"remote", "add", name, url}
	cmd := c.Command(ctx, args...)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return NewGitError(args, string(output), err)
	}

	return nil
}

// Push pushes changes, streaming git's output to the client's stdio
func (c *Client) Push(ctx context.Context, remote, branch string, opts PushOptions) error {
	args := []string{"push"}

	if opts.SetUpstream {
		args = append(args, "-u")
	}

	if opts.Force {
		args = append(args, "--force")
	}

	if remote != "" {
		args = append(args, remote)
		if branch != "" {
			args = append(args, branch)
		}
	}

	cmd := c.Command(ctx, args...)
	cmd.Stdout = c.Stdout
	cmd.Stderr = c.Stderr

	if err := cmd.Run(); err != nil {
		return NewGitError(args, "", err)
	}

	return nil
}

// RemoteURL returns the URL for a remote
func (c *Client) RemoteURL(ctx context.Context, remote string) (string, error) {
	cmd := c.Command(ctx, "remote", "get-url", remote)

	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to get remote URL: %w", err)
	}

	return strings.TrimSpace(string(output)), nil
}

// IsRepository checks if the client's directory is a git repository
func (c *Client) IsRepository(ctx context.Context) bool {
	cmd := c.Command(ctx, "rev-parse", "--git-dir")
	return cmd.Run() == nil
}

// HasCommits reports whether HEAD resolves to at least one commit
func (c *Client) HasCommits(ctx context.Context) bool {
	cmd := c.Command(ctx, "rev-parse", "--verify", "HEAD")
	return cmd.Run() == nil
}

// CurrentBranch returns the current branch name
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	cmd := c.Command(ctx, "rev-parse", "--abbrev-ref", "HEAD")

	output, err := cmd.Output()
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(string(output)), nil
}

// PushOptions configures push behavior
type PushOptions struct {
	SetUpstream bool
	Force       bool
}

// GitError represents a git command error
type GitError struct {
	ExitCode int
	Stderr   string
	Args     []string
	err      error
}

func (e *GitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("git command failed: %v", e.err)
	}
	return fmt.Sprintf("git command failed: %s", strings.TrimSpace(e.Stderr))
}

func (e *GitError) Unwrap() error {
	return e.err
}
