package cli

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/inovacc/grabr/internal/core"
)

// GrabModel drives the live view of a batch clone run. Repositories are
// processed one at a time, in listing order.
type GrabModel struct {
	account string
	repos   []core.RemoteRepo
	opts    core.CloneBatchOptions

	// Progress tracking
	total   int
	current int
	cloned  int
	skipped int
	failed  int

	// Recent activity log (last N completed operations)
	activity []activityItem

	// UI components
	spinner  spinner.Model
	progress progress.Model

	// State
	done bool

	ctx    context.Context
	cancel context.CancelFunc

	resultCh chan core.CloneResult

	mu       sync.Mutex
	summary  *core.CloneSummary
	batchErr error
}

type activityItem struct {
	repo    string
	status  string // "success", "skip", or "error"
	message string
}

// Message types
type grabResultMsg struct {
	result core.CloneResult
}

type grabDoneMsg struct{}

// NewGrabModel creates the TUI model for a batch clone run.
func NewGrabModel(account string, repos []core.RemoteRepo, opts core.CloneBatchOptions) *GrabModel {
	ctx, cancel := context.WithCancel(context.Background())

	m := &GrabModel{
		account:  account,
		repos:    repos,
		opts:     opts,
		total:    len(repos),
		activity: make([]activityItem, 0, 10),
		ctx:      ctx,
		cancel:   cancel,
		resultCh: make(chan core.CloneResult, len(repos)),
	}

	// Initialize UI components
	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = spinnerStyle

	m.progress = progress.New(progress.WithDefaultGradient())

	return m
}

func (m *GrabModel) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.runBatch(),
		m.waitForResult(),
	)
}

// runBatch executes the whole batch in one background command, feeding
// per-repository results through resultCh.
func (m *GrabModel) runBatch() tea.Cmd {
	return func() tea.Msg {
		opts := m.opts
		opts.Progress = func(_, _ int, result core.CloneResult) {
			m.resultCh <- result
		}

		summary, err := core.ExecuteCloneBatch(m.ctx, m.repos, opts)

		m.mu.Lock()
		m.summary = summary
		m.batchErr = err
		m.mu.Unlock()

		close(m.resultCh)

		return nil
	}
}

func (m *GrabModel) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-m.resultCh
		if !ok {
			return grabDoneMsg{}
		}

		return grabResultMsg{result: result}
	}
}

func (m *GrabModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.cancel()
			return m, tea.Quit
		}

	case grabResultMsg:
		m.current++

		switch msg.result.Outcome {
		case core.OutcomeCloned:
			m.cloned++
		case core.OutcomeSkipped:
			m.skipped++
		case core.OutcomeFailed:
			m.failed++
		}

		m.addActivity(msg.result)

		return m, m.waitForResult()

	case grabDoneMsg:
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m *GrabModel) View() string {
	if m.done {
		return successStyle.Render("\nClone run complete!\n\n")
	}

	var b strings.Builder

	// Header
	b.WriteString("\n")
	b.WriteString(boldStyle.Render(fmt.Sprintf("Cloning account: %s", m.account)))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" (%d repositories)", m.total)))
	b.WriteString("\n\n")

	// Status counters
	b.WriteString(boldStyle.Render("Status:"))
	b.WriteString("\n")
	b.WriteString(successStyle.Render(fmt.Sprintf("  Cloned:  %d\n", m.cloned)))
	b.WriteString(warningStyle.Render(fmt.Sprintf("  Skipped: %d\n", m.skipped)))
	b.WriteString(errorStyle.Render(fmt.Sprintf("  Failed:  %d\n", m.failed)))
	b.WriteString("\n")

	// Progress bar
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.current) / float64(m.total)
	}

	b.WriteString(m.progress.ViewAs(pct))
	b.WriteString(dimStyle.Render(fmt.Sprintf(" %d/%d\n\n", m.current, m.total)))

	// Current operation
	if m.current < m.total {
		name := m.repos[m.current].Name
		if name == "" {
			name = m.repos[m.current].CloneURL
		}

		b.WriteString(infoStyle.Render(fmt.Sprintf("  %s Cloning %s...\n\n", m.spinner.View(), name)))
	}

	// Recent activity log
	if len(m.activity) > 0 {
		b.WriteString(boldStyle.Render("Recent activity:"))
		b.WriteString("\n")

		start := max(len(m.activity)-5, 0)

		for _, item := range m.activity[start:] {
			var (
				statusIcon string
				style      lipgloss.Style
			)

			switch item.status {
			case "success":
				statusIcon = "[OK]"
				style = successStyle
			case "skip":
				statusIcon = "[SKIP]"
				style = warningStyle
			default:
				statusIcon = "[FAIL]"
				style = errorStyle
			}

			message := item.message
			if len(message) > 60 {
				message = message[:57] + "..."
			}

			b.WriteString(style.Render(fmt.Sprintf("  %s %s", statusIcon, item.repo)))
			b.WriteString(dimStyle.Render(fmt.Sprintf(" - %s\n", message)))
		}

		b.WriteString("\n")
	}

	// Footer
	b.WriteString(dimStyle.Render("Press 'q' to cancel"))
	b.WriteString("\n")

	return b.String()
}

func (m *GrabModel) addActivity(result core.CloneResult) {
	item := activityItem{repo: result.Repo.Name}

	switch result.Outcome {
	case core.OutcomeCloned:
		item.status = "success"
		item.message = fmt.Sprintf("cloned in %.1fs", result.Duration.Seconds())
	case core.OutcomeSkipped:
		item.status = "skip"
		item.message = "directory already exists"
	case core.OutcomeFailed:
		item.status = "error"

		if result.Err != nil {
			item.message = result.Err.Error()
		}
	}

	m.activity = append(m.activity, item)
}

// Summary returns the finished batch summary, nil when canceled early.
func (m *GrabModel) Summary() *core.CloneSummary {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.summary
}

// Error returns the batch-level error, if any.
func (m *GrabModel) Error() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.batchErr
}
