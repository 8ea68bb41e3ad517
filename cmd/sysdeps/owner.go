package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/sysdeps"
	"github.com/git-pkgs/sysdeps/owner"
)

var ownerFlags struct {
	command []string
}

func newOwnerCommand() *cobra.Command {
	ownerCmd := &cobra.Command{
		Use:   "owner FILE...",
		Short: "Print the package that owns each file",
		Long: `Print "FILE<TAB>PACKAGE" for every file installed by a package. Files no
package owns are printed with an empty package name.

The package database is queried once with the configured command, which must
print one "PATH<TAB>PACKAGE" line per installed file.

Examples:
  sysdeps owner /usr/share/java/junit.jar
  sysdeps owner --command /usr/libexec/list-owned-files /usr/share/java/*.jar`,
		Args: cobra.MinimumNArgs(1),
		RunE: runOwner,
	}

	ownerCmd.Flags().StringSliceVar(&ownerFlags.command, "command", owner.DefaultCommand, "package database query command and arguments")
	return ownerCmd
}

func runOwner(cmd *cobra.Command, args []string) error {
	env, flush, err := setup(cmd, sysdeps.WithQuerier(owner.NewCommandQuerier(ownerFlags.command...)))
	if err != nil {
		return err
	}
	defer func() { _ = flush() }()

	env.Owners.Start()

	out := cmd.OutOrStdout()
	for _, path := range args {
		pkg, _ := env.Owners.LookupFile(path)
		fmt.Fprintf(out, "%s\t%s\n", path, pkg)
	}
	return nil
}
