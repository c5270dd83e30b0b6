package core

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/grabr/internal/encoding"
)

// PrintCloneSummary prints the final tally of a clone batch.
func PrintCloneSummary(summary *CloneSummary) {
	_, _ = fmt.Fprintln(os.Stdout)
	_, _ = fmt.Fprintln(os.Stdout, "═══════════════════════════════════════════════════════════")
	_, _ = fmt.Fprintln(os.Stdout, "                    Clone Complete")
	_, _ = fmt.Fprintln(os.Stdout, "═══════════════════════════════════════════════════════════")
	_, _ = fmt.Fprintf(os.Stdout, "  Cloned:   %d\n", summary.Cloned)
	_, _ = fmt.Fprintf(os.Stdout, "  Skipped:  %d\n", summary.Skipped)
	_, _ = fmt.Fprintf(os.Stdout, "  Failed:   %d\n", summary.Failed)
	_, _ = fmt.Fprintln(os.Stdout, "───────────────────────────────────────────────────────────")
	_, _ = fmt.Fprintf(os.Stdout, "  Total:    %d repositories in %s\n",
		summary.Total(),
		summary.Duration.Round(time.Millisecond))
	_, _ = fmt.Fprintln(os.Stdout, "═══════════════════════════════════════════════════════════")

	// Show failed repos if any
	if summary.Failed > 0 {
		_, _ = fmt.Fprintln(os.Stdout, "\nFailed repositories:")

		for _, r := range summary.Results {
			if r.Outcome != OutcomeFailed {
				continue
			}

			errMsg := "unknown error"
			if r.Err != nil {
				errMsg = r.Err.Error()
				if len(errMsg) > 70 {
					errMsg = errMsg[:67] + "..."
				}
			}

			_, _ = fmt.Fprintf(os.Stdout, "  - %s: %s\n", r.Repo.Name, errMsg)
		}
	}
}

// PrintDryRunPlan prints what a clone batch would do without executing it.
func PrintDryRunPlan(account, targetDir string, repos []RemoteRepo) {
	_, _ = fmt.Fprintf(os.Stdout, "\nDry run: Cloning account '%s'\n", account)
	_, _ = fmt.Fprintf(os.Stdout, "Target directory: %s\n", targetDir)
	_, _ = fmt.Fprintf(os.Stdout, "Total repositories: %d\n\n", len(repos))

	var toClone, toSkip []RemoteRepo

	for _, repo := range repos {
		if encoding.DirExists(filepath.Join(targetDir, repo.Name)) {
			toSkip = append(toSkip, repo)
		} else {
			toClone = append(toClone, repo)
		}
	}

	_, _ = fmt.Fprintf(os.Stdout, "Actions:\n")
	_, _ = fmt.Fprintf(os.Stdout, "  Clone: %d repositories\n", len(toClone))
	_, _ = fmt.Fprintf(os.Stdout, "  Skip: %d repositories\n\n", len(toSkip))

	if len(toClone) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, "Repositories to clone:")

		for _, repo := range toClone {
			archivedStr := ""
			if repo.Archived {
				archivedStr = " [archived]"
			}

			forkStr := ""
			if repo.Fork {
				forkStr = " [fork]"
			}

			_, _ = fmt.Fprintf(os.Stdout, "  * %s%s%s\n", repo.Name, archivedStr, forkStr)
		}

		_, _ = fmt.Fprintln(os.Stdout)
	}

	if len(toSkip) > 0 {
		_, _ = fmt.Fprintln(os.Stdout, "Repositories to skip (already present):")

		for _, repo := range toSkip {
			_, _ = fmt.Fprintf(os.Stdout, "  * %s\n", repo.Name)
		}

		_, _ = fmt.Fprintln(os.Stdout)
	}
}
