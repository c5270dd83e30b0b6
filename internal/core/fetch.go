package core

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"

	"github.com/google/go-github/v82/github"
)

const (
	// reposPerPage is the page size requested from the listing endpoint.
	reposPerPage = 100

	// maxListingPages caps pagination regardless of what the server
	// reports, bounding work against runaway or malicious paging.
	maxListingPages = 10

	// defaultAPIBaseURL is the public GitHub API.
	defaultAPIBaseURL = "https://api.github.com"
)

// RemoteRepo is one repository from the listing, in API order.
type RemoteRepo struct {
	Name     string
	CloneURL string
	SSHURL   string
	Private  bool
	Archived bool
	Fork     bool
	Size     int64
}

// FetchOptions configures a listing fetch.
type FetchOptions struct {
	Token        string
	APIBaseURL   string
	SkipArchived bool
	Filter       *regexp.Regexp
	Logger       *slog.Logger
}

// FetchAccountRepos lists the public repositories of a user or
// organization. Pages are requested sequentially; any page failing aborts
// the whole fetch. An empty result with a nil error means the account has
// no public repositories, which is distinct from a failed fetch.
func FetchAccountRepos(ctx context.Context, account string, opts FetchOptions) ([]RemoteRepo, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := ValidateAccountName(account); err != nil {
		return nil, err
	}

	client, err := NewGitHubClient(ctx, opts.Token, opts.APIBaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to build GitHub client: %w", err)
	}

	// Try as organization first, then fall back to user on 404.
	repos, err := fetchOrgRepos(ctx, client, account)
	if isNotFound(err) {
		logger.Info("not found as organization, trying as user",
			slog.String("account", account),
		)

		repos, err = fetchUserRepos(ctx, client, account)
		if isNotFound(err) {
			return nil, &AccountNotFoundError{Account: account}
		}
	}

	if err != nil {
		return nil, err
	}

	logger.Info("fetched repositories",
		slog.String("account", account),
		slog.Int("count", len(repos)),
	)

	filtered := applyFilters(repos, opts)
	if len(filtered) != len(repos) {
		logger.Info("filtered repositories",
			slog.Int("before", len(repos)),
			slog.Int("after", len(filtered)),
		)
	}

	return filtered, nil
}

// fetchOrgRepos pages through the organization listing. A page shorter
// than reposPerPage ends the listing; maxListingPages bounds it either way.
func fetchOrgRepos(ctx context.Context, client *github.Client, account string) ([]RemoteRepo, error) {
	opt := &github.RepositoryListByOrgOptions{
		Type:        "public",
		ListOptions: github.ListOptions{PerPage: reposPerPage},
	}

	var all []RemoteRepo

	for page := 1; page <= maxListingPages; page++ {
		opt.Page = page

		repos, _, err := client.Repositories.ListByOrg(ctx, account, opt)
		if err != nil {
			return nil, &FetchError{Account: account, Page: page, Err: err}
		}

		all = append(all, toRemoteRepos(repos)...)

		if len(repos) < reposPerPage {
			break
		}
	}

	return all, nil
}

// fetchUserRepos pages through the user listing, repositories owned by the
// user only, not collaborations.
func fetchUserRepos(ctx context.Context, client *github.Client, account string) ([]RemoteRepo, error) {
	opt := &github.RepositoryListByUserOptions{
		Type:        "owner",
		ListOptions: github.ListOptions{PerPage: reposPerPage},
	}

	var all []RemoteRepo

	for page := 1; page <= maxListingPages; page++ {
		opt.Page = page

		repos, _, err := client.Repositories.ListByUser(ctx, account, opt)
		if err != nil {
			return nil, &FetchError{Account: account, Page: page, Err: err}
		}

		all = append(all, toRemoteRepos(repos)...)

		if len(repos) < reposPerPage {
			break
		}
	}

	return all, nil
}

// toRemoteRepos maps API records preserving their order.
func toRemoteRepos(repos []*github.Repository) []RemoteRepo {
	out := make([]RemoteRepo, len(repos))

	for i, repo := range repos {
		out[i] = RemoteRepo{
			Name:     repo.GetName(),
			CloneURL: repo.GetCloneURL(),
			SSHURL:   repo.GetSSHURL(),
			Private:  repo.GetPrivate(),
			Archived: repo.GetArchived(),
			Fork:     repo.GetFork(),
			Size:     int64(repo.GetSize()),
		}
	}

	return out
}

// applyFilters applies user-specified filters to the listing. With no
// filters set the listing passes through untouched.
func applyFilters(repos []RemoteRepo, opts FetchOptions) []RemoteRepo {
	if !opts.SkipArchived && opts.Filter == nil {
		return repos
	}

	filtered := make([]RemoteRepo, 0, len(repos))

	for _, repo := range repos {
		if opts.SkipArchived && repo.Archived {
			continue
		}

		if opts.Filter != nil && !opts.Filter.MatchString(repo.Name) {
			continue
		}

		filtered = append(filtered, repo)
	}

	return filtered
}

// isNotFound reports whether err is a structured 404 from the API.
func isNotFound(err error) bool {
	var errResp *github.ErrorResponse
	if errors.As(err, &errResp) {
		return errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound
	}

	return false
}
