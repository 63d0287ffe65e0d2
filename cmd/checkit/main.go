// Package main provides the checkit binary: a terminal todo list and
// shopping checklist with per-user categories.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var Version = "dev"

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var flags globalFlags

	cmd := &cobra.Command{
		Use:     "checkit",
		Short:   "Todos and checklists in your terminal",
		Version: Version,
		Long: `checkit keeps a todo list and a shopping checklist for each signed-in
user. Run it without a subcommand to open the terminal interface.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd.Context(), flags)
		},
	}

	cmd.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "Config file path (default ~/.config/checkit/config.yaml)")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", ".env", "Environment file loaded before the config")

	cmd.AddCommand(signUpCmd(&flags))
	cmd.AddCommand(signInCmd(&flags))
	cmd.AddCommand(signOutCmd(&flags))
	cmd.AddCommand(whoamiCmd(&flags))
	cmd.AddCommand(todosCmd(&flags))
	cmd.AddCommand(checklistCmd(&flags))

	return cmd
}
