// Package cli implements the riposte command line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use:     "riposte",
	Short:   "A terminal HTTP client built on an orchestrated request pipeline",
	Version: version,
	Long: `Riposte is a terminal-based HTTP client built around a request pipeline
that merges client defaults with per-call overrides, classifies every
response into a success or error outcome, and never surfaces a raw
transport failure: timeouts, connection errors and malformed bodies all
arrive as structured outcomes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command. It is called once from main.
func Execute() error {
	return RootCmd.Execute()
}

func init() {
	RootCmd.AddCommand(getCmd)
	RootCmd.AddCommand(postCmd)
	RootCmd.AddCommand(putCmd)
	RootCmd.AddCommand(patchCmd)
	RootCmd.AddCommand(deleteCmd)
	RootCmd.AddCommand(runCmd)
}
