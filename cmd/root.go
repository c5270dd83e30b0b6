package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"regexp"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/grabr/internal/application"
	"github.com/inovacc/grabr/internal/cli"
	"github.com/inovacc/grabr/internal/core"
	"github.com/inovacc/grabr/internal/model"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   application.AppName + " <account> [target-directory]",
	Short: "Clone every public repository of a GitHub account",
	Long: `Grabr fetches the public repository listing of a GitHub organization or
user and clones each repository into a local directory, one at a time, in
the order the API returns them. A repository whose directory already exists
is skipped untouched, so an interrupted run can simply be re-run.

Authentication is optional for public repositories. When a token is needed
(rate limits, Enterprise instances) it is resolved in order from:
  1. The --token flag
  2. The GITHUB_TOKEN or GH_TOKEN environment variables
  3. Stored gh CLI credentials

Examples:
  # Clone all public repositories of an organization into ~/grabr
  grabr inovacc

  # Clone into a specific directory
  grabr inovacc ~/src/mirrors

  # Preview the plan without cloning anything
  grabr inovacc --dry-run

  # Clone over SSH, skipping archived repositories
  grabr inovacc --ssh --skip-archived

  # Only repositories whose name matches a pattern
  grabr inovacc --filter '^go-'

  # GitHub Enterprise
  grabr myorg --api https://github.example.com`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runGrab,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// GetRootCmd returns the root command for introspection purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func runGrab(cmd *cobra.Command, args []string) error {
	account := args[0]

	var targetArg string
	if len(args) > 1 {
		targetArg = args[1]
	}

	tokenFlag, _ := cmd.Flags().GetString("token")
	apiFlag, _ := cmd.Flags().GetString("api")
	useSSH, _ := cmd.Flags().GetBool("ssh")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	skipArchived, _ := cmd.Flags().GetBool("skip-archived")
	filterPattern, _ := cmd.Flags().GetString("filter")
	useTUI, _ := cmd.Flags().GetBool("tui")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logLevel, _ := cmd.Flags().GetString("log-level")

	logger := setupLogger(logLevel, jsonOutput)

	cfg, err := core.LoadConfig()
	if err != nil {
		return err
	}

	targetDir, err := core.ResolveTargetDir(targetArg, cfg)
	if err != nil {
		return err
	}

	apiBase := core.ResolveAPIBase(apiFlag, cfg)

	token, tokenSource := core.ResolveTokenForHost(tokenFlag, core.APIHost(apiBase))
	if token == "" {
		logger.Debug("no token found, fetching anonymously")
	} else {
		logger.Debug("resolved token", slog.String("source", string(tokenSource)))
	}

	var filter *regexp.Regexp
	if filterPattern != "" {
		filter, err = regexp.Compile(filterPattern)
		if err != nil {
			return fmt.Errorf("invalid filter regex: %w", err)
		}
	}

	fmt.Printf("Fetching repositories for '%s'...\n", account)

	repos, err := core.FetchAccountRepos(cmd.Context(), account, core.FetchOptions{
		Token:        token,
		APIBaseURL:   apiBase,
		SkipArchived: skipArchived,
		Filter:       filter,
		Logger:       logger,
	})
	if err != nil {
		return err
	}

	if len(repos) == 0 {
		logger.Warn("no repositories found", slog.String("account", account))
		fmt.Println("\nNo repositories found.")
		return nil
	}

	if dryRun {
		core.PrintDryRunPlan(account, targetDir, repos)
		return nil
	}

	protocol := cfg.Protocol
	if useSSH {
		protocol = model.ProtocolSSH
	}

	batchOpts := core.CloneBatchOptions{
		TargetDir: targetDir,
		Protocol:  protocol,
		Logger:    logger,
	}

	if useTUI {
		return runGrabTUI(account, repos, batchOpts)
	}

	cli.PrintBatchHeader(account, targetDir, len(repos))
	batchOpts.Progress = cli.PrintResultLine

	summary, err := core.ExecuteCloneBatch(cmd.Context(), repos, batchOpts)
	if err != nil {
		return err
	}

	core.PrintCloneSummary(summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d repositories failed to clone", summary.Failed)
	}

	return nil
}

// runGrabTUI drives the clone batch through the interactive progress view.
func runGrabTUI(account string, repos []core.RemoteRepo, opts core.CloneBatchOptions) error {
	m := cli.NewGrabModel(account, repos, opts)
	p := tea.NewProgram(m)

	finalModel, err := p.Run()
	if err != nil {
		return fmt.Errorf("failed to run progress view: %w", err)
	}

	gm, ok := finalModel.(*cli.GrabModel)
	if !ok {
		return fmt.Errorf("unexpected model type from progress view")
	}

	if err := gm.Error(); err != nil {
		return err
	}

	summary := gm.Summary()
	if summary == nil {
		return nil
	}

	core.PrintCloneSummary(summary)

	if summary.Failed > 0 {
		return fmt.Errorf("%d repositories failed to clone", summary.Failed)
	}

	return nil
}

// setupLogger builds the slog logger for a run. JSON output goes to
// stdout for machine consumption, text output to stderr so it stays
// clear of the clone progress lines.
func setupLogger(levelStr string, jsonOutput bool) *slog.Logger {
	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if jsonOutput {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func addGrabFlags(cmd *cobra.Command) {
	// Authentication
	cmd.PersistentFlags().String("token", "", "GitHub token (overrides GITHUB_TOKEN/GH_TOKEN and gh CLI credentials)")
	cmd.PersistentFlags().String("api", "", "GitHub API base URL for Enterprise instances (overrides GITHUB_API_URL)")

	// Clone behavior
	cmd.PersistentFlags().Bool("ssh", false, "Use SSH clone URLs instead of HTTPS")
	cmd.Flags().Bool("dry-run", false, "Show what would be cloned without touching the filesystem")
	cmd.Flags().Bool("skip-archived", false, "Skip archived repositories")
	cmd.Flags().String("filter", "", "Only include repositories whose name matches this regex")

	// Output
	cmd.Flags().Bool("tui", false, "Render progress as an interactive terminal view")
	cmd.PersistentFlags().Bool("json", false, "Output logs in JSON format")
	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
}

func init() {
	addGrabFlags(rootCmd)
}
