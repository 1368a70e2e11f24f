package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/ui/components"
)

func newLadderCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "ladder",
		Short: "Print the rank ladder",
		Long:  "Prints the active ladder. With --json it prints a ladder file that can be edited and loaded with --ladder.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path, _ := cmd.Flags().GetString("ladder")
			eng, err := loadEngine(path)
			if err != nil {
				return err
			}
			l := eng.Ladder()
			w := cmd.OutOrStdout()

			if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
				b, err := rank.MarshalLadder(l)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(b))
				return nil
			}

			fmt.Fprintf(w, "%-4s  %-16s  %7s  %7s  %5s  %s\n", "Rank", "Title", "Min XP", "To next", "Days", "")
			fmt.Fprintln(w, strings.Repeat("─", 80))
			for _, cfg := range l.Ranks() {
				fmt.Fprintf(w, "%s  %-16s  %7d  %7d  %5d  %s\n",
					components.RankBadge(cfg.ID), cfg.DisplayName, cfg.MinXP, cfg.XPToNext, cfg.DaysToNext, cfg.Description)
			}

			a := l.Assessment()
			fmt.Fprintf(w, "\nAssessment can grant up to %s.", a.Ceiling)
			fmt.Fprintf(w, " Streak boosts: +%d%% at 7 days, up to +%d%%.\n",
				rank.StreakBoostPercent(7), rank.MaxStreakBoostPercent)
			return nil
		},
	}
	c.Flags().Bool("json", false, "Print as a ladder JSON file")
	return c
}
