package cli

import (
	"fmt"
	"os"

	"github.com/inovacc/grabr/internal/core"
)

// PrintRepoCreated announces a freshly created remote repository.
func PrintRepoCreated(created *core.CreatedRepo) {
	visibility := "public"
	if created.Private {
		visibility = "private"
	}

	_, _ = fmt.Fprintln(os.Stdout)
	_, _ = fmt.Fprintln(os.Stdout, successStyle.Render(fmt.Sprintf("  ✓ Created %s repository %s", visibility, created.FullName)))
	_, _ = fmt.Fprintln(os.Stdout, urlStyle.Render("    "+created.HTMLURL))
	_, _ = fmt.Fprintln(os.Stdout)
}

// PrintPushDone announces a successful push.
func PrintPushDone(dir, remoteURL string) {
	_, _ = fmt.Fprintln(os.Stdout, successStyle.Render("  ✓ Pushed to "+remoteURL))
	_, _ = fmt.Fprintln(os.Stdout, pathStyle.Render("    from "+dir))
	_, _ = fmt.Fprintln(os.Stdout)
}
