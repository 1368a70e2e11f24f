package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hunter-system/hunter/internal/progression"
)

func newAdminCmd() *cobra.Command {
	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage hunter roles",
	}
	admin.AddCommand(
		roleCmd("grant <hunter>", "Make a hunter an admin", progression.RoleAdmin),
		roleCmd("revoke <hunter>", "Return an admin to the hunter role", progression.RoleHunter),
	)
	return admin
}

func roleCmd(use, short, role string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
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
			if p, err = e.svc.SetRole(cmd.Context(), p.ID, role); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s.\n", p.Name, p.Role)
			return nil
		},
	}
}
