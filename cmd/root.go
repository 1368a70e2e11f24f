package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "hunter",
		Short: "Daily quests, streaks and ranks for self-improvement",
		Long: "Hunter ranks you from E to SS. Take the assessment, clear six daily quests " +
			"across mind, work, body, discipline, willpower and habits, and keep your streak alive.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.String("config", "", "Config file (default $XDG_CONFIG_HOME/hunter/config.yaml)")
	pf.String("db", "", "Path to SQLite database file (overrides HUNTER_DB)")
	pf.String("ladder", "", "Ladder JSON file replacing the built-in ladder")
	pf.String("log-level", "", "Log level: debug, info, warn or error")
	pf.String("log-file", "", "Also write JSON logs to this rotating file")

	root.AddCommand(
		newEnrollCmd(),
		newAssessCmd(),
		newQuestsCmd(),
		newCompleteCmd(),
		newStatusCmd(),
		newStatsCmd(),
		newHistoryCmd(),
		newLadderCmd(),
		newBriefCmd(),
		newPlayCmd(),
		newResetCmd(),
		newAdminCmd(),
		newServeCmd(),
		newLLMCmd(),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command tree with args from the process.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}
