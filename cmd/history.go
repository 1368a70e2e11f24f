package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newHistoryCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "history <hunter>",
		Short: "List recent progress events, newest first",
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
			limit, _ := cmd.Flags().GetInt("limit")
			events, err := e.svc.History(cmd.Context(), p.ID, limit)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			if len(events) == 0 {
				fmt.Fprintln(w, "No events yet.")
				return nil
			}
			fmt.Fprintf(w, "%-19s  %-16s  %6s  %-9s  %s\n", "Time", "Event", "XP", "Rank", "Detail")
			fmt.Fprintln(w, strings.Repeat("─", 80))
			for _, ev := range events {
				ranks := ""
				if ev.RankFrom != "" || ev.RankTo != "" {
					ranks = ev.RankFrom + "->" + ev.RankTo
				}
				xp := ""
				if ev.XPDelta != 0 {
					xp = fmt.Sprintf("%+d", ev.XPDelta)
				}
				fmt.Fprintf(w, "%-19s  %-16s  %6s  %-9s  %s\n",
					ev.Timestamp.Local().Format(timeLayout), ev.Kind, xp, ranks, ev.Detail)
			}
			return nil
		},
	}
	c.Flags().IntP("limit", "n", 20, "Number of events to show")
	return c
}
