package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newEnrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll <name>",
		Short: "Register a new hunter at the lowest rank",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd)
			if err != nil {
				return err
			}
			defer e.Close()

			p, err := e.svc.Enroll(cmd.Context(), args[0], e.now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Enrolled %s as %s.\n", p.Name, e.engine.Ladder().Config(p.Rank).DisplayName)
			fmt.Fprintf(out, "ID: %s\n", p.ID)
			fmt.Fprintf(out, "Next: hunter assess %s\n", p.Name)
			return nil
		},
	}
}
