// Package cli holds the questionnaire command tree.
package cli

import (
	"github.com/spf13/cobra"
)

var version = "0.1.0"

// NewRootCommand builds the questionnaire command with its subcommands.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "questionnaire",
		Short: "Conversational questionnaire service",
		Long: `questionnaire serves an ordered list of questions, validates the
answers, phrases the conversation with a language model and stores
completed sessions in the configured result sinks.

Configuration is read from the environment (and a .env file if present).

Examples:
  questionnaire serve
  questionnaire questions`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(NewServeCommand())
	root.AddCommand(NewQuestionsCommand())
	return root
}
