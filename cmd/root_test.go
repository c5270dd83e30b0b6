package cmd

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// hermeticEnv points config, home and token lookups at temp directories so
// tests never read or write the real user environment.
func hermeticEnv(t *testing.T) {
	t.Helper()

	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("GH_CONFIG_DIR", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")
	t.Setenv("GH_TOKEN", "")
	t.Setenv("GH_ENTERPRISE_TOKEN", "")
	t.Setenv("GITHUB_ENTERPRISE_TOKEN", "")
	t.Setenv("GITHUB_API_URL", "")
}

// execute runs the root command the way a user invocation would, restoring
// all flag state afterwards so tests do not leak into each other.
func execute(t *testing.T, args ...string) error {
	t.Helper()

	t.Cleanup(func() {
		resetFlags(rootCmd)
		for _, sub := range rootCmd.Commands() {
			resetFlags(sub)
		}
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetArgs(args)

	return rootCmd.Execute()
}

func resetFlags(cmd *cobra.Command) {
	restore := func(f *pflag.Flag) {
		if f.Changed {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		}
	}

	cmd.Flags().VisitAll(restore)
	cmd.PersistentFlags().VisitAll(restore)
}

// fakeListingServer serves a repository listing for one organization under
// the enterprise API prefix the client appends to bare hosts.
func fakeListingServer(t *testing.T, account string, repos []map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v3/orgs/"+account+"/repos", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(repos)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return srv
}

// makeBareRepo creates an empty bare repository that git can clone from.
func makeBareRepo(t *testing.T, dir, name string) string {
	t.Helper()

	path := filepath.Join(dir, name+".git")
	cmd := exec.Command("git", "init", "--bare", path)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("failed to init bare repo: %v\n%s", err, output)
	}

	return path
}

func TestRootCmd_RequiresAccount(t *testing.T) {
	if err := execute(t); err == nil {
		t.Fatal("expected usage error without arguments")
	}
}

func TestRootCmd_RejectsInvalidAccount(t *testing.T) {
	hermeticEnv(t)

	err := execute(t, "bad-", t.TempDir())
	if err == nil {
		t.Fatal("expected error for invalid account name")
	}

	if !strings.Contains(err.Error(), "invalid account name") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootCmd_RejectsInvalidFilter(t *testing.T) {
	hermeticEnv(t)

	err := execute(t, "acme", t.TempDir(), "--filter", "([")
	if err == nil {
		t.Fatal("expected error for invalid filter regex")
	}

	if !strings.Contains(err.Error(), "invalid filter regex") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRootCmd_DryRunTouchesNothing(t *testing.T) {
	hermeticEnv(t)

	srv := fakeListingServer(t, "acme", []map[string]any{
		{"name": "alpha", "clone_url": "https://github.com/acme/alpha.git"},
		{"name": "beta", "clone_url": "https://github.com/acme/beta.git"},
	})

	target := filepath.Join(t.TempDir(), "mirrors")

	if err := execute(t, "acme", target, "--api", srv.URL, "--dry-run"); err != nil {
		t.Fatalf("dry run failed: %v", err)
	}

	if _, err := os.Stat(target); !os.IsNotExist(err) {
		t.Error("dry run should not create the target directory")
	}
}

func TestRootCmd_ClonesRepositories(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	hermeticEnv(t)

	remotes := t.TempDir()
	alpha := makeBareRepo(t, remotes, "alpha")
	beta := makeBareRepo(t, remotes, "beta")

	srv := fakeListingServer(t, "acme", []map[string]any{
		{"name": "alpha", "clone_url": alpha},
		{"name": "beta", "clone_url": beta},
	})

	target := t.TempDir()

	if err := execute(t, "acme", target, "--api", srv.URL); err != nil {
		t.Fatalf("clone run failed: %v", err)
	}

	for _, name := range []string{"alpha", "beta"} {
		if _, err := os.Stat(filepath.Join(target, name, ".git")); err != nil {
			t.Errorf("repository %s was not cloned: %v", name, err)
		}
	}
}

func TestRootCmd_FailuresYieldError(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	hermeticEnv(t)

	remotes := t.TempDir()
	alpha := makeBareRepo(t, remotes, "alpha")

	srv := fakeListingServer(t, "acme", []map[string]any{
		{"name": "alpha", "clone_url": alpha},
		{"name": "broken", "clone_url": filepath.Join(remotes, "missing.git")},
	})

	target := t.TempDir()

	err := execute(t, "acme", target, "--api", srv.URL)
	if err == nil {
		t.Fatal("expected error when a clone fails")
	}

	if !strings.Contains(err.Error(), "1 repositories failed to clone") {
		t.Errorf("unexpected error: %v", err)
	}

	// The failure must not keep the other repository from cloning.
	if _, err := os.Stat(filepath.Join(target, "alpha", ".git")); err != nil {
		t.Errorf("alpha was not cloned: %v", err)
	}
}

func TestRootCmd_SkipsExistingDirectories(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	hermeticEnv(t)

	remotes := t.TempDir()
	alpha := makeBareRepo(t, remotes, "alpha")

	srv := fakeListingServer(t, "acme", []map[string]any{
		{"name": "alpha", "clone_url": alpha},
	})

	target := t.TempDir()
	if err := os.MkdirAll(filepath.Join(target, "alpha"), 0o755); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "acme", target, "--api", srv.URL); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// The existing directory is left untouched, not cloned into.
	if _, err := os.Stat(filepath.Join(target, "alpha", ".git")); !os.IsNotExist(err) {
		t.Error("existing directory should have been skipped")
	}
}

func TestSetupLogger_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled slog.Level
		muted   slog.Level
	}{
		{"debug", slog.LevelDebug, slog.LevelDebug - 1},
		{"info", slog.LevelInfo, slog.LevelDebug},
		{"warn", slog.LevelWarn, slog.LevelInfo},
		{"error", slog.LevelError, slog.LevelWarn},
		{"bogus", slog.LevelInfo, slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := setupLogger(tt.level, false)

			if !logger.Enabled(context.Background(), tt.enabled) {
				t.Errorf("level %v should be enabled", tt.enabled)
			}
			if logger.Enabled(context.Background(), tt.muted) {
				t.Errorf("level %v should be muted", tt.muted)
			}
		})
	}
}

func TestVersionCommand(t *testing.T) {
	if err := execute(t, "version"); err != nil {
		t.Fatalf("version failed: %v", err)
	}
}
