package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResetCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "reset <hunter>",
		Short: "Reset a hunter's XP, streak and rank (admin only)",
		Long: "Zeroes XP and streak, drops the hunter to the lowest rank and regenerates " +
			"today's quests. The assessment result is kept. --as must name an admin.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			as, _ := cmd.Flags().GetString("as")
			actor, err := e.hunter(cmd, as)
			if err != nil {
				return fmt.Errorf("--as: %w", err)
			}
			target, err := e.hunter(cmd, args[0])
			if err != nil {
				return err
			}
			p, err := e.svc.Reset(cmd.Context(), actor.ID, target.ID, e.now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s to %s with 0 XP.\n", p.Name, p.Rank)
			return nil
		},
	}
	c.Flags().String("as", "", "Admin hunter performing the reset")
	c.MarkFlagRequired("as")
	return c
}
