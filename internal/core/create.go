package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/go-github/v82/github"

	"github.com/inovacc/grabr/internal/git"
	"github.com/inovacc/grabr/internal/gitcfg"
	"github.com/inovacc/grabr/internal/giturl"
)

const defaultRemoteName = "origin"

// CreateOptions configures the creation of a remote repository.
type CreateOptions struct {
	Name        string
	Description string
	Private     bool
	Token       string
	APIBaseURL  string
	Logger      *slog.Logger
}

// CreatedRepo describes a freshly created remote repository.
type CreatedRepo struct {
	Name     string
	FullName string
	HTMLURL  string
	CloneURL string
	SSHURL   string
	Private  bool
}

// CreateRemoteRepo creates a repository on the authenticated account.
func CreateRemoteRepo(ctx context.Context, opts CreateOptions) (*CreatedRepo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := ValidateRepoName(opts.Name); err != nil {
		return nil, err
	}

	if opts.Token == "" {
		return nil, ErrTokenRequired
	}

	client, err := NewGitHubClient(ctx, opts.Token, opts.APIBaseURL)
	if err != nil {
		return nil, err
	}

	repo := &github.Repository{
		Name:    github.String(opts.Name),
		Private: github.Bool(opts.Private),
	}

	if opts.Description != "" {
		repo.Description = github.String(opts.Description)
	}

	logger.Debug("creating repository",
		slog.String("name", opts.Name),
		slog.Bool("private", opts.Private),
	)

	created, _, err := client.Repositories.Create(ctx, "", repo)
	if err != nil {
		if isUnprocessable(err) {
			return nil, fmt.Errorf("repository %s already exists on this account", opts.Name)
		}

		return nil, fmt.Errorf("failed to create repository: %w", err)
	}

	return &CreatedRepo{
		Name:     created.GetName(),
		FullName: created.GetFullName(),
		HTMLURL:  created.GetHTMLURL(),
		CloneURL: created.GetCloneURL(),
		SSHURL:   created.GetSSHURL(),
		Private:  created.GetPrivate(),
	}, nil
}

// PushProjectOptions configures pushing a local project to its remote.
type PushProjectOptions struct {
	Dir        string
	RemoteURL  string
	RemoteName string // defaults to origin
	Branch     string // defaults to the checked-out branch
	Logger     *slog.Logger
}

// PushLocalProject wires a local directory to a remote and pushes its
// current branch. The directory is initialized as a git repository when
// it is not one yet. An existing remote pointing elsewhere is an error,
// never overwritten.
func PushLocalProject(ctx context.Context, opts PushProjectOptions) error {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	remote := opts.RemoteName
	if remote == "" {
		remote = defaultRemoteName
	}

	client := git.NewClientForRepo(opts.Dir)

	if !client.IsRepository(ctx) {
		logger.Info("initializing repository", slog.String("dir", opts.Dir))

		if err := client.Init(ctx); err != nil {
			return fmt.Errorf("failed to initialize repository: %w", err)
		}
	}

	cfg, err := gitcfg.Load(opts.Dir)
	if err != nil {
		return err
	}

	if cfg.HasRemote(remote) {
		existing := cfg.RemoteURL(remote)
		if !sameRemote(existing, opts.RemoteURL) {
			return &RemoteMismatchError{
				Remote:      remote,
				ExistingURL: existing,
				WantURL:     opts.RemoteURL,
			}
		}
	} else if err := client.AddRemote(ctx, remote, opts.RemoteURL); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", remote, err)
	}

	if !client.HasCommits(ctx) {
		return fmt.Errorf("nothing to push: %s has no commits", opts.Dir)
	}

	branch := opts.Branch
	if branch == "" {
		branch, err = client.CurrentBranch(ctx)
		if err != nil {
			return fmt.Errorf("failed to determine current branch: %w", err)
		}
	}

	logger.Info("pushing",
		slog.String("remote", remote),
		slog.String("branch", branch),
	)

	if err := client.Push(ctx, remote, branch, git.PushOptions{SetUpstream: true}); err != nil {
		if git.IsAuthRequired(err) {
			return fmt.Errorf("authentication failed, check your token or SSH key: %w", err)
		}

		return fmt.Errorf("failed to push to %s: %w", remote, err)
	}

	return nil
}

// sameRemote reports whether two clone URLs point at the same repository,
// ignoring protocol differences.
func sameRemote(existingURL, wantURL string) bool {
	existing, err := giturl.FromCloneURL(existingURL)
	if err != nil {
		return false
	}

	want, err := giturl.FromCloneURL(wantURL)
	if err != nil {
		return false
	}

	return existing.Same(want)
}

// isUnprocessable reports whether the API rejected the request with a
// 422, which for repository creation means the name is taken.
func isUnprocessable(err error) bool {
	var ghErr *github.ErrorResponse
	if !errors.As(err, &ghErr) {
		return false
	}

	return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusUnprocessableEntity
}
