package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/ui/components"
)

func newStatusCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "status <hunter>",
		Short: "Show rank, progress, streak and today's quests",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.hunter(cmd, args[0])
			if err != nil {
				return err
			}
			asOf := e.now()
			qs, err := e.svc.TodayQuests(cmd.Context(), p.ID, asOf)
			if err != nil {
				return err
			}
			st, err := e.svc.Status(cmd.Context(), p.ID, asOf)
			if err != nil {
				return err
			}

			width, _ := cmd.Flags().GetInt("width")
			card := components.NewStatusCard(*st, e.engine.Ladder(), width)
			card.Quests = qs
			if noBrief, _ := cmd.Flags().GetBool("no-brief"); !noBrief {
				b := e.briefer(cmd).Compose(cmd.Context(), *st, qs, asOf)
				card.Briefing = &b
			}
			fmt.Fprintln(cmd.OutOrStdout(), card.View())
			return nil
		},
	}
	c.Flags().Int("width", 72, "Card width in columns")
	c.Flags().Bool("no-brief", false, "Skip the daily briefing")
	return c
}
