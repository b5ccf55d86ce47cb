package cli

import (
	"context"
	"fmt"
	"os"

	"branchguard/internal/doctor"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose the local environment",
	Long: `Check that the local environment is ready for branchguard: required tools
installed, GitHub authentication resolvable, and the target repository
configured.

Doctor is local-only: it never calls the GitHub API.

Exit codes:
	0 = all checks passed (warnings allowed)
	1 = at least one check failed

Examples:
	branchguard doctor
`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		checks, err := doctor.Run(ctx, doctor.Probes())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		w := cmd.OutOrStdout()
		for _, c := range checks {
			fmt.Fprintf(w, "[%s] %s: %s\n", doctorTag(c.Status), c.Name, c.Detail)
		}

		if doctor.Failed(checks) {
			fmt.Fprintln(w, "\nEnvironment is not ready. Fix the failed checks above and re-run.")
			os.Exit(1)
		}
		fmt.Fprintln(w, "\nEnvironment looks good.")
	},
}

func doctorTag(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return color.GreenString("OK")
	case doctor.StatusWarn:
		return color.YellowString("WARN")
	case doctor.StatusFail:
		return color.RedString("FAIL")
	default:
		return string(s)
	}
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
