package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/app"
)

func newPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play <hunter>",
		Short: "Open the interactive quest board",
		Long:  "Opens the quest board in the terminal. Hunters who have not been assessed take the assessment first.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd, quietConsole())
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.hunter(cmd, args[0])
			if err != nil {
				return err
			}
			return app.Run(cmd.Context(), app.Deps{
				Service:  e.svc,
				Briefer:  e.briefer(cmd),
				HunterID: p.ID,
				Now:      e.now,
			})
		},
	}
}
