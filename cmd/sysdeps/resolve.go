package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/git-pkgs/sysdeps"
)

var resolveFlags struct {
	namespace   string
	concurrency int
	purl        bool
}

func newResolveCommand() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve ARTIFACT...",
		Short: "Print the installed file for each artifact",
		Long: `Resolve artifacts to the files installed by the system package manager.

Artifacts are given as groupId:artifactId[:extension[:classifier]][:version]
or as pkg:maven package URLs. Each resolved artifact is printed as
"ARTIFACT<TAB>PATH". The command fails if any artifact is unresolved.

Examples:
  sysdeps resolve junit:junit
  sysdeps resolve org.apache.commons:commons-lang3:jar:3.14.0
  sysdeps resolve pkg:maven/org.hamcrest/hamcrest-core?type=jar`,
		Args: cobra.MinimumNArgs(1),
		RunE: runResolve,
	}

	resolveCmd.Flags().StringVarP(&resolveFlags.namespace, "namespace", "n", "", "only consult repositories in this namespace")
	resolveCmd.Flags().IntVar(&resolveFlags.concurrency, "concurrency", 15, "maximum parallel lookups")
	resolveCmd.Flags().BoolVar(&resolveFlags.purl, "purl", false, "print resolved artifacts as package URLs")
	return resolveCmd
}

func parseArtifact(arg string) (sysdeps.Identity, error) {
	if strings.HasPrefix(arg, "pkg:") {
		return sysdeps.IdentityFromPURL(arg)
	}
	return sysdeps.ParseIdentity(arg)
}

func runResolve(cmd *cobra.Command, args []string) error {
	reqs := make([]sysdeps.Request, len(args))
	for i, arg := range args {
		id, err := parseArtifact(arg)
		if err != nil {
			return fmt.Errorf("invalid artifact %q: %w", arg, err)
		}
		reqs[i] = sysdeps.Request{Identity: id, Namespace: resolveFlags.namespace}
	}

	env, flush, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = flush() }()

	report, err := env.Resolver.ResolveAllWithConcurrency(cmd.Context(), reqs, resolveFlags.concurrency)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, res := range report.Results {
		if res == nil {
			continue
		}
		name := args[i]
		if resolveFlags.purl {
			name = res.Identity.PURL()
		}
		fmt.Fprintf(out, "%s\t%s\n", name, res.Path)
	}

	for _, f := range report.Failures {
		fmt.Fprintln(cmd.ErrOrStderr(), f.Err)
	}
	if !report.OK() {
		return fmt.Errorf("%d of %d artifacts could not be resolved", len(report.Failures), len(reqs))
	}
	return nil
}
