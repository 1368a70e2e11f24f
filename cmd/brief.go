package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newBriefCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "brief <hunter>",
		Short: "Print today's briefing",
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
			b := e.briefer(cmd).Compose(cmd.Context(), *st, qs, asOf)
			fmt.Fprintln(cmd.OutOrStdout(), b.Headline)
			fmt.Fprintln(cmd.OutOrStdout(), b.Message)
			return nil
		},
	}
}
