package cli

import (
	"fmt"
	"io"
	"strings"

	"branchguard/internal/apply"
	"branchguard/internal/policy"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var policyCmd = &cobra.Command{
	Use:   "policy",
	Short: "Inspect branch-protection policies",
	Long: `Inspect the branch-protection policies branchguard would apply.

Examples:
	# Show the built-in policies
	branchguard policy show

	# Show the policies after file overrides
	branchguard policy show --policy policy.yaml
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var policyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective per-branch policies",
	Long: `Show the effective policy for each target branch, including any overrides
from --policy. No network access is performed.

Examples:
	branchguard policy show
`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		targets := apply.DefaultTargets()
		if cfg.PolicyFile != "" {
			overrides, err := policy.LoadFile(cfg.PolicyFile)
			if err != nil {
				return err
			}
			for i := range targets {
				targets[i].Policy = overrides.Apply(targets[i].Branch, targets[i].Policy)
			}
		}

		for _, t := range targets {
			printPolicy(cmd.OutOrStdout(), t.Branch, t.Policy)
		}
		return nil
	},
}

func printPolicy(w io.Writer, branch string, p policy.Policy) {
	bold := color.New(color.Bold)
	fmt.Fprintln(w, "----------------------------------------")
	bold.Fprintf(w, "BRANCH: %s\n", branch)
	fmt.Fprintln(w, "----------------------------------------")
	fmt.Fprintf(w, "  required status checks:          %s (strict: %t)\n", strings.Join(p.RequiredChecks, ", "), p.StrictChecks)
	fmt.Fprintf(w, "  approving reviews:               %d\n", p.Reviews.ApprovingCount)
	fmt.Fprintf(w, "  dismiss stale reviews:           %t\n", p.Reviews.DismissStale)
	fmt.Fprintf(w, "  require code owner reviews:      %t\n", p.Reviews.RequireCodeOwner)
	fmt.Fprintf(w, "  require last push approval:      %t\n", p.Reviews.RequireLastPushApproval)
	fmt.Fprintf(w, "  allow force pushes:              %t\n", p.AllowForcePushes)
	fmt.Fprintf(w, "  allow deletions:                 %t\n", p.AllowDeletions)
	fmt.Fprintf(w, "  require linear history:          %t\n", p.RequireLinearHistory)
	fmt.Fprintf(w, "  require conversation resolution: %t\n", p.RequireConversationResolution)
	fmt.Fprintf(w, "  lock branch:                     %t\n", p.LockBranch)
	fmt.Fprintf(w, "  allow fork syncing:              %t\n", p.AllowForkSyncing)
	fmt.Fprintln(w)
}

func init() {
	rootCmd.AddCommand(policyCmd)
	policyCmd.AddCommand(policyShowCmd)
}
