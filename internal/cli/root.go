package cli

import (
	"fmt"
	"os"

	"branchguard/internal/config"
	"branchguard/internal/flags"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var cfg = config.New()

var rootCmd = &cobra.Command{
	Use:   "branchguard",
	Short: "Apply declarative branch-protection policies to a GitHub repository",
	Long: `Branchguard applies a declarative branch-protection policy to the main and
develop branches of a GitHub repository.

Running branchguard with no arguments applies the built-in policies: a strict
policy on main (at least one approving review) and a relaxed variant on
develop (no required approvals). Branches that do not exist on the remote are
skipped with a warning.

Examples:
	# Apply protection using GITHUB_REPOSITORY and GITHUB_TOKEN
	export GITHUB_REPOSITORY="my-org/my-repo"
	export GITHUB_TOKEN="<your_token>"
	branchguard

	# Target an explicit repository with per-branch overrides
	branchguard apply --repo my-org/my-repo --policy policy.yaml

	# Diagnose the local environment
	branchguard doctor

	# Inspect the effective policies without touching the network
	branchguard policy show`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		// The bare binary runs the apply flow.
		if code := runApply(cmd); code != 0 {
			os.Exit(code)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (prints every GitHub API call)")
	rootCmd.PersistentFlags().StringVar(&cfg.RepoSelector, flags.FlagRepo, "", "Target repository as OWNER/REPO (default: GITHUB_REPOSITORY)")
	rootCmd.PersistentFlags().StringVar(&cfg.PolicyFile, flags.FlagPolicy, "", "YAML file with per-branch policy overrides")
	rootCmd.PersistentFlags().StringVar(&cfg.Output.Format, flags.FlagFormat, "text", "Console output format: text|json (default: text)")
	rootCmd.PersistentFlags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout for the run (default: 2m)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
