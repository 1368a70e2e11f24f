package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/rank"
	"github.com/hunter-system/hunter/internal/ui/components"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <hunter>",
		Short: "Show completed quests per category",
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
			stats, err := e.svc.CategoryStats(cmd.Context(), p.ID)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "Category stats for %s\n\n", p.Name)
			for _, s := range stats {
				bar := components.NewProgressBar(fmt.Sprintf("%-10s", s.Name), float64(s.Value)/100, 56)
				bar.Caption = fmt.Sprintf("%3d (%d done)", s.Value, s.Completed)
				fmt.Fprintln(w, bar.View())
			}
			if len(p.Stats) > 0 {
				fmt.Fprintln(w, "\nAssessment profile")
				for _, c := range rank.AllCategories() {
					fmt.Fprintf(w, "  %-10s %3d\n", rank.CategoryDisplayName(c), p.Stats[string(c)])
				}
			}
			return nil
		},
	}
}
