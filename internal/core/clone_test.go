package core

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/inovacc/grabr/internal/model"
)

// mockCloner records clone calls in order and can fail for chosen URLs or
// create the target directory like a real clone would.
type mockCloner struct {
	calls      []string
	paths      []string
	failOn     map[string]error
	createDirs bool
}

func (m *mockCloner) Clone(_ context.Context, cloneURL, targetPath string) error {
	m.calls = append(m.calls, cloneURL)
	m.paths = append(m.paths, targetPath)

	if err, ok := m.failOn[cloneURL]; ok {
		return err
	}

	if m.createDirs {
		return os.MkdirAll(targetPath, 0o755)
	}

	return nil
}

func testRepos(names ...string) []RemoteRepo {
	repos := make([]RemoteRepo, 0, len(names))

	for _, name := range names {
		repos = append(repos, RemoteRepo{
			Name:     name,
			CloneURL: fmt.Sprintf("https://github.com/acme/%s.git", name),
			SSHURL:   fmt.Sprintf("git@github.com:acme/%s.git", name),
		})
	}

	return repos
}

func TestExecuteCloneBatch_ClonesInOrder(t *testing.T) {
	dir := t.TempDir()
	cloner := &mockCloner{}

	summary, err := ExecuteCloneBatch(context.Background(), testRepos("alpha", "beta", "gamma"), CloneBatchOptions{
		TargetDir: dir,
		Cloner:    cloner,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	require.Equal(t, 3, summary.Cloned)
	require.Zero(t, summary.Skipped)
	require.Zero(t, summary.Failed)
	require.Equal(t, 3, summary.Total())

	require.Equal(t, []string{
		"https://github.com/acme/alpha.git",
		"https://github.com/acme/beta.git",
		"https://github.com/acme/gamma.git",
	}, cloner.calls)

	require.Equal(t, []string{
		filepath.Join(dir, "alpha"),
		filepath.Join(dir, "beta"),
		filepath.Join(dir, "gamma"),
	}, cloner.paths)

	for i, name := range []string{"alpha", "beta", "gamma"} {
		require.Equal(t, name, summary.Results[i].Repo.Name)
		require.Equal(t, OutcomeCloned, summary.Results[i].Outcome)
	}
}

func TestExecuteCloneBatch_SkipsExisting(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "beta"), 0o755))

	cloner := &mockCloner{}

	summary, err := ExecuteCloneBatch(context.Background(), testRepos("alpha", "beta", "gamma"), CloneBatchOptions{
		TargetDir: dir,
		Cloner:    cloner,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	require.Equal(t, 2, summary.Cloned)
	require.Equal(t, 1, summary.Skipped)
	require.Zero(t, summary.Failed)

	// The existing directory is never touched.
	require.Equal(t, []string{
		"https://github.com/acme/alpha.git",
		"https://github.com/acme/gamma.git",
	}, cloner.calls)

	require.Equal(t, OutcomeSkipped, summary.Results[1].Outcome)
	require.Equal(t, filepath.Join(dir, "beta"), summary.Results[1].Path)
}

func TestExecuteCloneBatch_FailuresAreIsolated(t *testing.T) {
	dir := t.TempDir()
	cloner := &mockCloner{
		failOn: map[string]error{
			"https://github.com/acme/beta.git": errors.New("network down"),
		},
	}

	summary, err := ExecuteCloneBatch(context.Background(), testRepos("alpha", "beta", "gamma"), CloneBatchOptions{
		TargetDir: dir,
		Cloner:    cloner,
		Logger:    quietLogger(),
	})
	require.NoError(t, err, "a failed repository must not abort the batch")

	require.Equal(t, 2, summary.Cloned)
	require.Equal(t, 1, summary.Failed)
	require.Len(t, cloner.calls, 3, "repositories after a failure are still processed")

	require.Equal(t, OutcomeFailed, summary.Results[1].Outcome)
	require.ErrorContains(t, summary.Results[1].Err, "network down")

	require.Equal(t, summary.Total(), summary.Cloned+summary.Skipped+summary.Failed)
}

func TestExecuteCloneBatch_RerunSkipsClonedRepos(t *testing.T) {
	dir := t.TempDir()
	repos := testRepos("alpha", "beta")

	first := &mockCloner{createDirs: true}

	summary, err := ExecuteCloneBatch(context.Background(), repos, CloneBatchOptions{
		TargetDir: dir,
		Cloner:    first,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	require.Equal(t, 2, summary.Cloned)

	second := &mockCloner{createDirs: true}

	summary, err = ExecuteCloneBatch(context.Background(), repos, CloneBatchOptions{
		TargetDir: dir,
		Cloner:    second,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	require.Zero(t, summary.Cloned)
	require.Equal(t, 2, summary.Skipped)
	require.Empty(t, second.calls)
}

func TestExecuteCloneBatch_DerivesNameFromURL(t *testing.T) {
	dir := t.TempDir()
	cloner := &mockCloner{}

	repos := []RemoteRepo{
		{CloneURL: "https://github.com/acme/gamma.git"},
		{CloneURL: "https://github.com/"},
	}

	summary, err := ExecuteCloneBatch(context.Background(), repos, CloneBatchOptions{
		TargetDir: dir,
		Cloner:    cloner,
		Logger:    quietLogger(),
	})
	require.NoError(t, err)

	require.Equal(t, 1, summary.Cloned)
	require.Equal(t, 1, summary.Failed)

	require.Equal(t, []string{filepath.Join(dir, "gamma")}, cloner.paths)
	require.ErrorContains(t, summary.Results[1].Err, "cannot determine local name")
}

func TestExecuteCloneBatch_ProtocolSelection(t *testing.T) {
	tests := []struct {
		name     string
		protocol string
		sshURL   string
		want     string
	}{
		{
			name:     "https by default",
			protocol: "",
			sshURL:   "git@github.com:acme/repo.git",
			want:     "https://github.com/acme/repo.git",
		},
		{
			name:     "ssh when requested",
			protocol: model.ProtocolSSH,
			sshURL:   "git@github.com:acme/repo.git",
			want:     "git@github.com:acme/repo.git",
		},
		{
			name:     "https when ssh url missing",
			protocol: model.ProtocolSSH,
			sshURL:   "",
			want:     "https://github.com/acme/repo.git",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cloner := &mockCloner{}

			repos := []RemoteRepo{{
				Name:     "repo",
				CloneURL: "https://github.com/acme/repo.git",
				SSHURL:   tt.sshURL,
			}}

			_, err := ExecuteCloneBatch(context.Background(), repos, CloneBatchOptions{
				TargetDir: t.TempDir(),
				Protocol:  tt.protocol,
				Cloner:    cloner,
				Logger:    quietLogger(),
			})
			require.NoError(t, err)
			require.Equal(t, []string{tt.want}, cloner.calls)
		})
	}
}

func TestExecuteCloneBatch_Progress(t *testing.T) {
	var (
		done     []int
		totals   []int
		outcomes []Outcome
	)

	_, err := ExecuteCloneBatch(context.Background(), testRepos("alpha", "beta", "gamma"), CloneBatchOptions{
		TargetDir: t.TempDir(),
		Cloner:    &mockCloner{},
		Logger:    quietLogger(),
		Progress: func(d, total int, result CloneResult) {
			done = append(done, d)
			totals = append(totals, total)
			outcomes = append(outcomes, result.Outcome)
		},
	})
	require.NoError(t, err)

	require.Equal(t, []int{1, 2, 3}, done)
	require.Equal(t, []int{3, 3, 3}, totals)
	require.Equal(t, []Outcome{OutcomeCloned, OutcomeCloned, OutcomeCloned}, outcomes)
}

func TestExecuteCloneBatch_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cloner := &mockCloner{}

	summary, err := ExecuteCloneBatch(ctx, testRepos("alpha"), CloneBatchOptions{
		TargetDir: t.TempDir(),
		Cloner:    cloner,
		Logger:    quietLogger(),
	})
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, summary)
	require.Zero(t, summary.Total())
	require.Empty(t, cloner.calls)
}

func TestExecuteCloneBatch_CreatesTargetDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "grabs")

	_, err := ExecuteCloneBatch(context.Background(), testRepos("alpha"), CloneBatchOptions{
		TargetDir: dir,
		Cloner:    &mockCloner{},
		Logger:    quietLogger(),
	})
	require.NoError(t, err)
	require.DirExists(t, dir)
}

func TestExecuteCloneBatch_TargetDirFailure(t *testing.T) {
	occupied := filepath.Join(t.TempDir(), "occupied")
	require.NoError(t, os.WriteFile(occupied, []byte("x"), 0o644))

	summary, err := ExecuteCloneBatch(context.Background(), testRepos("alpha"), CloneBatchOptions{
		TargetDir: occupied,
		Cloner:    &mockCloner{},
		Logger:    quietLogger(),
	})
	require.Error(t, err)
	require.Nil(t, summary)
}

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{OutcomeCloned, "cloned"},
		{OutcomeSkipped, "skipped"},
		{OutcomeFailed, "failed"},
		{Outcome(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.outcome.String())
		})
	}
}
