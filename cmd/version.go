package cmd

import (
	"fmt"

	"github.com/inovacc/grabr/internal/application"
	"github.com/spf13/cobra"
)

// version is set at build time via -ldflags.
var version = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the grabr version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s version %s\n", application.AppName, version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
