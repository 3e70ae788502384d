// Package cmd implements the command line interface of the harness
package cmd

import (
	"github.com/spf13/cobra"
)

// RootCommand returns the root command of the harness
func RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "rlharness",
		Short:         "Train and evaluate reinforcement learning agents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.Record()
		},
	}
	AddFlags(cmd)

	cmd.AddCommand(
		CrossEntropyCommand(),
		QLearningCommand(),
		RenderCommand(),
	)

	return cmd
}
