// Root command definition for the outexplain CLI
package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Flags
	lastN        int
	messages     []string
	queries      []string
	summary      bool
	reviewN      int
	providerName string
	modelName    string
	configPath   string
	debug        bool
	debugEnv     bool
)

// Execute runs the root command - this is the main entry point
func Execute() error {
	return newRootCmd().Execute()
}

// newRootCmd creates and configures the root command
func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "outexplain",
		Short: "Explain your terminal output with optional multi-command context",
		Long: `Outexplain assembles your recent terminal activity (live tmux/screen pane,
piped input, or shell history) and asks an LLM to explain it.

Examples:
  outexplain
  outexplain -m "why did this fail?"
  outexplain -x 5 --summary
  outexplain -n 3 -m "what was I doing?"
  some-command 2>&1 | outexplain`,
		Args:          cobra.NoArgs,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExplain()
		},
	}

	addRootFlags(rootCmd)

	rootCmd.AddCommand(envCmd())
	rootCmd.AddCommand(configCmd())

	return rootCmd
}

// addRootFlags adds command-line flags to the root command
func addRootFlags(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&lastN, "last", "x", 0, "Number of previous commands to include as context")
	cmd.Flags().StringArrayVarP(&messages, "message", "m", nil, "Extra guidance or a direct question (repeatable)")
	cmd.Flags().StringArrayVar(&queries, "query", nil, "Alias for --message (repeatable)")
	cmd.Flags().BoolVarP(&summary, "summary", "s", false, "Skip troubleshooting and just summarize the last command/output")
	cmd.Flags().IntVarP(&reviewN, "review", "n", 0, "Read the N most recent stored interactions instead of live capture")
	cmd.Flags().StringVar(&providerName, "provider", "", "Force a provider (openai, anthropic, ollama)")
	cmd.Flags().StringVar(&modelName, "model", "", "LLM model to use")
	cmd.Flags().StringVar(&configPath, "config", "", "Config file path")
	cmd.Flags().BoolVar(&debug, "debug", false, "Print debug information")
	cmd.Flags().BoolVar(&debugEnv, "debug-env", false, "Print detected shell/terminal capabilities")
}

// combineUserMessages merges the user's guidance: all -m/--message values
// first, then all --query values, then the summary instruction when
// requested.
func combineUserMessages() []string {
	var combined []string
	combined = append(combined, messages...)
	combined = append(combined, queries...)
	if summary {
		combined = append(combined, "Summarize the last command/output in 3-5 bullet points.")
	}
	return combined
}
