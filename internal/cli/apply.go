package cli

import (
	"context"
	"fmt"
	"os"

	"branchguard/internal/apply"
	"branchguard/internal/config"
	gh "branchguard/internal/github"
	"branchguard/internal/output"
	"branchguard/internal/policy"

	"github.com/spf13/cobra"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Apply branch-protection policies to the target repository",
	Long: `Apply branch-protection policies to the main and develop branches of the
target repository.

For each branch, in order, branchguard first checks that the branch exists on
the remote. A branch that does not exist is skipped with a warning. An
existing branch has its protection configuration REPLACED by the declared
policy; any manually configured rules on that branch are discarded.

Authentication:
	Branchguard uses a GitHub access token. It prefers GITHUB_TOKEN, but can
	also reuse GitHub CLI authentication if the gh CLI is installed and logged
	in.

Target repository:
	--repo OWNER/REPO, or the GITHUB_REPOSITORY environment variable.

Exit codes:
	0 = run completed (even if individual branches were skipped or failed)
	1 = missing or malformed configuration, or a fatal error

Examples:
	export GITHUB_REPOSITORY="my-org/my-repo"
	export GITHUB_TOKEN="<your_token>"
	branchguard apply

	# Override the review requirements for main
	branchguard apply --repo my-org/my-repo --policy policy.yaml
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if code := runApply(cmd); code != 0 {
			os.Exit(code)
		}
	},
}

// runApply is the main flow: validate configuration (failing fast before any
// network activity), then check and protect each target branch in order.
// Per-branch failures are reported but never change the exit code.
func runApply(cmd *cobra.Command) int {
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	selector := cfg.RepoSelector
	if selector == "" {
		selector = os.Getenv("GITHUB_REPOSITORY")
	}
	if selector == "" {
		fmt.Fprintln(os.Stderr, "Error: no target repository (set GITHUB_REPOSITORY or pass --repo OWNER/REPO)")
		return 1
	}
	repo, err := config.ParseRepo(selector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	targets := apply.DefaultTargets()
	if cfg.PolicyFile != "" {
		overrides, err := policy.LoadFile(cfg.PolicyFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		for i := range targets {
			targets[i].Policy = overrides.Apply(targets[i].Branch, targets[i].Policy)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Runtime.Timeout)
	defer cancel()

	token, err := gh.LookupToken(ctx, "")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
		return 1
	}
	if token.IsZero() {
		fmt.Fprintln(os.Stderr, "Error: GitHub auth token is required (set GITHUB_TOKEN or run 'gh auth login')")
		return 1
	}

	client, err := gh.NewClient(ctx, token.Value, gh.WithVerbose(cfg.Runtime.Verbose, nil))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
		return 1
	}

	reporter := output.NewReporter(cmd.OutOrStdout(), cfg.Output.Format)
	applier := apply.New(client, repo)

	outcomes := applier.Run(ctx, targets, func(o apply.Outcome) {
		_ = reporter.Write(o)
	})
	if err := reporter.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	_ = reporter.Summary(repo.String(), outcomes)

	return 0
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
