package core

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/inovacc/grabr/internal/encoding"
	"github.com/inovacc/grabr/internal/git"
	"github.com/inovacc/grabr/internal/giturl"
	"github.com/inovacc/grabr/internal/model"
)

// Outcome is the final state of one repository in a batch.
type Outcome int

const (
	OutcomeCloned Outcome = iota
	OutcomeSkipped
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCloned:
		return "cloned"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeFailed:
		return "failed"
	}

	return "unknown"
}

// CloneResult captures the outcome for one repository.
type CloneResult struct {
	Repo     RemoteRepo
	Path     string
	Outcome  Outcome
	Err      error
	Duration time.Duration
}

// CloneSummary aggregates a finished batch. Cloned+Skipped+Failed always
// equals the number of results.
type CloneSummary struct {
	Results  []CloneResult
	Cloned   int
	Skipped  int
	Failed   int
	Duration time.Duration
}

// Total returns the number of repositories processed.
func (s *CloneSummary) Total() int {
	return len(s.Results)
}

// Cloner clones one repository. *git.Client satisfies it; tests swap in
// a mock.
type Cloner interface {
	Clone(ctx context.Context, cloneURL, targetPath string) error
}

// CloneBatchOptions configures a clone batch.
type CloneBatchOptions struct {
	TargetDir string
	Protocol  string // "https" (default) or "ssh"
	Cloner    Cloner
	Logger    *slog.Logger

	// Progress, when set, is called after each repository with the
	// 1-based count of processed repositories.
	Progress func(done, total int, result CloneResult)
}

// ExecuteCloneBatch clones every repository into the target directory,
// strictly one at a time and in listing order. A repository whose
// directory already exists is skipped untouched; a failed clone is
// recorded and the batch moves on. The target directory is created when
// absent.
func ExecuteCloneBatch(ctx context.Context, repos []RemoteRepo, opts CloneBatchOptions) (*CloneSummary, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	cloner := opts.Cloner
	if cloner == nil {
		cloner = git.NewClient()
	}

	if err := encoding.EnsureDir(opts.TargetDir); err != nil {
		return nil, err
	}

	start := time.Now()
	total := len(repos)
	summary := &CloneSummary{Results: make([]CloneResult, 0, total)}

	for i, repo := range repos {
		if err := ctx.Err(); err != nil {
			summary.Duration = time.Since(start)
			return summary, err
		}

		result := cloneOne(ctx, cloner, repo, opts)

		switch result.Outcome {
		case OutcomeCloned:
			summary.Cloned++
		case OutcomeSkipped:
			summary.Skipped++
		case OutcomeFailed:
			summary.Failed++

			logger.Error("clone failed",
				slog.String("repo", result.Repo.Name),
				slog.String("error", result.Err.Error()),
			)
		}

		summary.Results = append(summary.Results, result)

		logger.Debug("repository processed",
			slog.String("repo", result.Repo.Name),
			slog.String("outcome", result.Outcome.String()),
			slog.Duration("duration", result.Duration),
		)

		if opts.Progress != nil {
			opts.Progress(i+1, total, result)
		}
	}

	summary.Duration = time.Since(start)

	return summary, nil
}

// cloneOne processes a single repository.
func cloneOne(ctx context.Context, cloner Cloner, repo RemoteRepo, opts CloneBatchOptions) CloneResult {
	start := time.Now()

	name := repo.Name
	if name == "" {
		derived, err := giturl.RepoName(repo.CloneURL)
		if err != nil {
			return CloneResult{
				Repo:     repo,
				Outcome:  OutcomeFailed,
				Err:      fmt.Errorf("cannot determine local name: %w", err),
				Duration: time.Since(start),
			}
		}

		name = derived
	}

	path := filepath.Join(opts.TargetDir, name)

	if encoding.DirExists(path) {
		return CloneResult{
			Repo:     repo,
			Path:     path,
			Outcome:  OutcomeSkipped,
			Duration: time.Since(start),
		}
	}

	if err := cloner.Clone(ctx, cloneURLFor(repo, opts.Protocol), path); err != nil {
		return CloneResult{
			Repo:     repo,
			Path:     path,
			Outcome:  OutcomeFailed,
			Err:      err,
			Duration: time.Since(start),
		}
	}

	return CloneResult{
		Repo:     repo,
		Path:     path,
		Outcome:  OutcomeCloned,
		Duration: time.Since(start),
	}
}

// cloneURLFor picks the transport URL for a repository.
func cloneURLFor(repo RemoteRepo, protocol string) string {
	if protocol == model.ProtocolSSH && repo.SSHURL != "" {
		return repo.SSHURL
	}

	return repo.CloneURL
}
