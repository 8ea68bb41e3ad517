package main

import (
	"fmt"
	"sync"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/git-pkgs/sysdeps/subst"
)

var substFlags struct {
	dryRun  bool
	strict  bool
	types   []string
	root    string
	verbose bool
}

func newSubstCommand() *cobra.Command {
	substCmd := &cobra.Command{
		Use:   "subst [DIR]...",
		Short: "Replace bundled archives with links to installed artifacts",
		Long: `Walk each directory and replace every archive whose embedded Maven
coordinates match an installed artifact with a symbolic link to it.

Directories are walked concurrently and must not overlap. Running the command
twice over the same tree makes no further changes.

Examples:
  sysdeps subst target/
  sysdeps subst --dry-run --type jar --type war build/ dist/
  sysdeps subst --strict --install-root $RPM_BUILD_ROOT lib/`,
		RunE: runSubst,
	}

	substCmd.Flags().BoolVar(&substFlags.dryRun, "dry-run", false, "report substitutions without changing files")
	substCmd.Flags().BoolVar(&substFlags.strict, "strict", false, "fail if any archive was left in place")
	substCmd.Flags().StringSliceVarP(&substFlags.types, "type", "t", subst.DefaultTypes, "file extensions to inspect")
	substCmd.Flags().StringVar(&substFlags.root, "install-root", "", "look installed artifacts up below this directory")
	substCmd.Flags().BoolVarP(&substFlags.verbose, "verbose", "v", false, "list archives that were left in place")
	return substCmd
}

func runSubst(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		args = []string{"."}
	}

	env, flush, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = flush() }()

	walker := env.Walker(
		subst.WithTypes(substFlags.types...),
		subst.WithRoot(substFlags.root),
		subst.DryRun(substFlags.dryRun),
		subst.Strict(substFlags.strict))

	var mu sync.Mutex
	out := cmd.OutOrStdout()
	emit := func(report *subst.Report) {
		mu.Lock()
		defer mu.Unlock()
		for _, r := range report.Replaced {
			fmt.Fprintf(out, "%s -> %s\n", r.Path, r.Target)
		}
		if substFlags.verbose {
			for _, s := range report.Skipped {
				fmt.Fprintf(out, "%s: %s\n", s.Path, s.Reason)
			}
		}
	}

	g, ctx := errgroup.WithContext(cmd.Context())
	for _, dir := range args {
		g.Go(func() error {
			report, err := walker.Walk(ctx, dir)
			if report != nil {
				emit(report)
			}
			return err
		})
	}
	return g.Wait()
}
