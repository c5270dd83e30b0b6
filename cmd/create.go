package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/inovacc/grabr/internal/cli"
	"github.com/inovacc/grabr/internal/core"
	"github.com/inovacc/grabr/internal/model"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var createCmd = &cobra.Command{
	Use:   "create <name> [path]",
	Short: "Create a GitHub repository and optionally push a local project",
	Long: `Create a repository under the authenticated account. With --push, the
local project at [path] (default: the current directory) is initialized as
a git repository if needed, wired to the new remote, and its current branch
is pushed upstream.

A token is required. It is resolved like the root command's; when none is
found and the session is interactive, you are prompted for one.

Examples:
  # Create a public repository
  grabr create my-tool --token ghp_xxx

  # Create a private repository with a description
  grabr create my-tool --private --description "Internal tooling"

  # Create and push the current directory
  grabr create my-tool --push

  # Create and push a project elsewhere, over SSH
  grabr create my-tool ~/src/my-tool --push --ssh`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCreate,
}

func runCreate(cmd *cobra.Command, args []string) error {
	name := args[0]

	projectDir := "."
	if len(args) > 1 {
		projectDir = args[1]
	}

	tokenFlag, _ := cmd.Flags().GetString("token")
	apiFlag, _ := cmd.Flags().GetString("api")
	useSSH, _ := cmd.Flags().GetBool("ssh")
	private, _ := cmd.Flags().GetBool("private")
	description, _ := cmd.Flags().GetString("description")
	doPush, _ := cmd.Flags().GetBool("push")
	remoteName, _ := cmd.Flags().GetString("remote")
	jsonOutput, _ := cmd.Flags().GetBool("json")
	logLevel, _ := cmd.Flags().GetString("log-level")

	logger := setupLogger(logLevel, jsonOutput)

	if len(args) > 1 && !doPush {
		return fmt.Errorf("a path argument only makes sense with --push")
	}

	// Validate before any prompt or network call.
	if err := core.ValidateRepoName(name); err != nil {
		return err
	}

	cfg, err := core.LoadConfig()
	if err != nil {
		return err
	}

	apiBase := core.ResolveAPIBase(apiFlag, cfg)

	token, tokenSource := core.ResolveTokenForHost(tokenFlag, core.APIHost(apiBase))
	if token == "" {
		token, err = promptForToken()
		if err != nil {
			return err
		}
	} else {
		logger.Debug("resolved token", slog.String("source", string(tokenSource)))
	}

	created, err := core.CreateRemoteRepo(cmd.Context(), core.CreateOptions{
		Name:        name,
		Description: description,
		Private:     private,
		Token:       token,
		APIBaseURL:  apiBase,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	cli.PrintRepoCreated(created)

	if !doPush {
		return nil
	}

	remoteURL := created.CloneURL
	if useSSH || cfg.Protocol == model.ProtocolSSH {
		remoteURL = created.SSHURL
	}

	if err := core.PushLocalProject(cmd.Context(), core.PushProjectOptions{
		Dir:        projectDir,
		RemoteURL:  remoteURL,
		RemoteName: remoteName,
		Logger:     logger,
	}); err != nil {
		return err
	}

	cli.PrintPushDone(projectDir, remoteURL)

	return nil
}

// promptForToken reads a token from the terminal without echoing it.
// Returns an empty string when stdin is not a terminal; the caller's
// downstream token check produces the guidance error.
func promptForToken() (string, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return "", nil
	}

	fmt.Print("GitHub token (input hidden): ")
	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read token: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("private", false, "Create a private repository")
	cmd.Flags().String("description", "", "Repository description")
	cmd.Flags().Bool("push", false, "Push the local project at [path] to the new repository")
	cmd.Flags().String("remote", "origin", "Name of the git remote to add when pushing")
}

func init() {
	rootCmd.AddCommand(createCmd)
	addCreateFlags(createCmd)
}
