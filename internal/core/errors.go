package core

import (
	"errors"
	"fmt"
)

// ErrTokenRequired indicates an operation that cannot run anonymously.
var ErrTokenRequired = errors.New(`GitHub token required

Provide a token via one of:
  * gh auth login             (auto-detected from gh CLI)
  * GITHUB_TOKEN env var
  * --token flag

Create a token at: https://github.com/settings/tokens`)

// AccountNotFoundError indicates the account exists neither as an
// organization nor as a user.
type AccountNotFoundError struct {
	Account string
}

func (e *AccountNotFoundError) Error() string {
	return fmt.Sprintf("account not found: %s (tried organization and user)", e.Account)
}

// FetchError wraps a failed listing request. Any page failing aborts the
// whole fetch; a partial listing is never returned.
type FetchError struct {
	Account string
	Page    int
	Err     error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch repositories for %s (page %d): %v",
		e.Account, e.Page, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// RemoteMismatchError indicates a configured remote already points at a
// different repository than the one being pushed to.
type RemoteMismatchError struct {
	Remote      string
	ExistingURL string
	WantURL     string
}

func (e *RemoteMismatchError) Error() string {
	return fmt.Sprintf("remote %q already exists and points at %s, not %s",
		e.Remote, e.ExistingURL, e.WantURL)
}
