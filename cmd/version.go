package cmd

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

// buildVersion prefers the linker-set version, then the module version
// recorded by go install.
func buildVersion() string {
	if semver.IsValid(version) {
		return semver.Canonical(version)
	}
	if info, ok := debug.ReadBuildInfo(); ok && semver.IsValid(info.Main.Version) {
		return info.Main.Version
	}
	return version
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the current version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "hunter", buildVersion())
		},
	}
}
