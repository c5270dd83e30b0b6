// Package core provides the business logic layer for Grabr.
//
// This package contains all core functionality separated from UI concerns.
// Functions in this package handle validation, the GitHub API listing,
// and the clone batch orchestration.
//
// # Design Principles
//
//   - Functions return errors instead of printing to stdout/stderr
//   - Network access goes through one client constructor, [NewGitHubClient]
//   - UI-specific logic belongs in the cli package, not here
//
// # Fetching
//
// [FetchAccountRepos] resolves an account as an organization first and
// falls back to a user listing on 404. Pages are requested sequentially;
// a page shorter than the page size ends the listing and any page failure
// aborts the whole fetch. A partial listing is never returned.
//
// # Cloning
//
// [ExecuteCloneBatch] walks the fetched listing strictly in order, one
// repository at a time. Existing directories are skipped untouched and
// failures are counted without stopping the batch, so interrupted runs
// can simply be re-run.
//
// # Creation
//
// [CreateRemoteRepo] creates a repository under the authenticated user and
// [PushLocalProject] wires a local directory to it and pushes the current
// branch. An existing remote pointing elsewhere is never overwritten.
package core
