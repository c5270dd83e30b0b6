package cmd

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/grabr/internal/cli"
	"github.com/inovacc/grabr/internal/core"
	"github.com/inovacc/grabr/internal/model"
	"github.com/spf13/cobra"
)

var (
	showConfig  bool
	resetConfig bool
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Show or change stored defaults",
	Long: `Show or change the stored defaults: the clone directory, the API base
URL for Enterprise instances, and the preferred clone protocol. Without
flags an interactive form is started.

Examples:
  grabr configure --show
  grabr configure --dir ~/src/mirrors
  grabr configure --protocol ssh
  grabr configure --reset`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showConfig {
			return core.ShowConfig()
		}

		if resetConfig {
			return core.ResetConfig()
		}

		if cmd.Flags().Changed("dir") || cmd.Flags().Changed("api") || cmd.Flags().Changed("protocol") {
			return applyConfigFlags(cmd)
		}

		if err := core.ShowConfig(); err != nil {
			fmt.Println("No configuration found, using defaults.")
		}

		fmt.Println("\nStarting interactive configuration...")

		m, err := cli.NewConfigureModel()
		if err != nil {
			return err
		}

		p := tea.NewProgram(&m)
		finalModel, err := p.Run()
		if err != nil {
			return err
		}

		configModel, ok := finalModel.(*cli.ConfigureModel)
		if !ok {
			return fmt.Errorf("unexpected model type from configure view")
		}
		if configModel.Err != nil {
			return configModel.Err
		}

		return nil
	},
}

// applyConfigFlags persists the settings given on the command line,
// leaving the others untouched.
func applyConfigFlags(cmd *cobra.Command) error {
	cfg, err := core.LoadConfig()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("dir") {
		dir, _ := cmd.Flags().GetString("dir")
		cfg.DefaultCloneDir = dir
	}

	if cmd.Flags().Changed("api") {
		api, _ := cmd.Flags().GetString("api")
		cfg.APIBaseURL = api
	}

	if cmd.Flags().Changed("protocol") {
		protocol, _ := cmd.Flags().GetString("protocol")
		protocol = strings.ToLower(protocol)
		if protocol != model.ProtocolHTTPS && protocol != model.ProtocolSSH {
			return fmt.Errorf("invalid protocol %q, want %q or %q", protocol, model.ProtocolHTTPS, model.ProtocolSSH)
		}
		cfg.Protocol = protocol
	}

	if err := core.SaveConfig(cfg); err != nil {
		return err
	}

	return core.ShowConfig()
}

func init() {
	rootCmd.AddCommand(configureCmd)
	configureCmd.Flags().BoolVarP(&showConfig, "show", "s", false, "Show current configuration")
	configureCmd.Flags().BoolVarP(&resetConfig, "reset", "r", false, "Reset configuration to defaults")
	configureCmd.Flags().String("dir", "", "Set the default clone directory")
	configureCmd.Flags().String("api", "", "Set the stored API base URL")
	configureCmd.Flags().String("protocol", "", "Set the preferred clone protocol (https or ssh)")
}
