package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/grabr/internal/core"
)

// PrintBatchHeader announces a batch run before the first repository.
func PrintBatchHeader(account, targetDir string, total int) {
	_, _ = fmt.Fprintln(os.Stdout)
	_, _ = fmt.Fprint(os.Stdout, boldStyle.Render(fmt.Sprintf("Cloning account: %s", account)))
	_, _ = fmt.Fprintln(os.Stdout, dimStyle.Render(fmt.Sprintf(" (%d repositories)", total)))
	_, _ = fmt.Fprintln(os.Stdout, pathStyle.Render("  → "+targetDir))
	_, _ = fmt.Fprintln(os.Stdout)
}

// PrintResultLine prints one repository outcome with overall progress.
// Shaped to line up in columns across a whole run.
func PrintResultLine(done, total int, result core.CloneResult) {
	pct := float64(done) / float64(total) * 100

	var (
		status string
		style  lipgloss.Style
		detail string
	)

	switch result.Outcome {
	case core.OutcomeCloned:
		status = "OK"
		style = successStyle
	case core.OutcomeSkipped:
		status = "SKIP"
		style = warningStyle
	default:
		status = "FAIL"
		style = errorStyle

		if result.Err != nil {
			detail = fmt.Sprintf(" - %s", result.Err.Error())
			if len(detail) > 60 {
				detail = detail[:57] + "..."
			}
		}
	}

	name := result.Repo.Name
	if name == "" {
		name = result.Repo.CloneURL
	}

	_, _ = fmt.Fprintf(os.Stdout, "[%3.0f%%] %s %-40s%s\n",
		pct, style.Render(fmt.Sprintf("[%-5s]", status)), name, detail)
}
