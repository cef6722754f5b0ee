// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "org-commits",
	Short: "A CLI tool to list a user's commits across a GitHub organization.",
	Long: `org-commits walks every repository of a GitHub organization, collects
the commits authored by a given user and writes their URLs, grouped by
repository, to a report file. You can limit the history with a since timestamp.`,
}

// Execute runs the command selected on the command line and exits with
// status 1 when cobra itself rejects the invocation.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// --verbose is shared by every subcommand.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
