// Package doctor runs local environment diagnostics: tool installation,
// authentication state, and repository configuration. Probes never touch the
// GitHub API.
package doctor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"branchguard/internal/config"
	gh "branchguard/internal/github"

	"golang.org/x/sync/errgroup"
)

type Status string

const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is the reported result of one probe.
type Check struct {
	Name   string
	Status Status
	Detail string
}

// Probe is a single independent diagnostic. Probes report a status rather
// than returning errors; a broken environment is a finding, not a crash.
type Probe struct {
	Name string
	Run  func(ctx context.Context) (Status, string)
}

// Probes returns the default diagnostic set in report order.
func Probes() []Probe {
	return []Probe{
		{Name: "git installed", Run: probeLookPath("git", StatusFail, "install git")},
		{Name: "gh installed", Run: probeLookPath("gh", StatusWarn, "install the GitHub CLI or set GITHUB_TOKEN")},
		{Name: "github auth", Run: probeAuth},
		{Name: "repository configured", Run: probeRepository},
		{Name: "git work tree", Run: probeWorkTree},
	}
}

// Run executes the probes concurrently (they are independent and local-only)
// and returns the checks in the same order the probes were declared.
func Run(ctx context.Context, probes []Probe) ([]Check, error) {
	checks := make([]Check, len(probes))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range probes {
		g.Go(func() error {
			status, detail := p.Run(gctx)
			checks[i] = Check{Name: p.Name, Status: status, Detail: detail}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return checks, nil
}

// Failed reports whether any check has StatusFail.
func Failed(checks []Check) bool {
	for _, c := range checks {
		if c.Status == StatusFail {
			return true
		}
	}
	return false
}

func probeLookPath(tool string, missing Status, hint string) func(ctx context.Context) (Status, string) {
	return func(ctx context.Context) (Status, string) {
		path, err := exec.LookPath(tool)
		if err != nil {
			return missing, fmt.Sprintf("%s not found on PATH (%s)", tool, hint)
		}
		return StatusOK, path
	}
}

func probeAuth(ctx context.Context) (Status, string) {
	tok, err := gh.LookupToken(ctx, "")
	if err != nil {
		return StatusFail, fmt.Sprintf("token lookup failed: %v", err)
	}
	if tok.IsZero() {
		return StatusFail, "no GitHub token (set GITHUB_TOKEN or run 'gh auth login')"
	}
	return StatusOK, "token from " + tok.Source
}

func probeRepository(ctx context.Context) (Status, string) {
	raw := strings.TrimSpace(os.Getenv("GITHUB_REPOSITORY"))
	if raw == "" {
		return StatusFail, "GITHUB_REPOSITORY not set (expected OWNER/REPO)"
	}
	repo, err := config.ParseRepo(raw)
	if err != nil {
		return StatusFail, err.Error()
	}
	return StatusOK, repo.String()
}

func probeWorkTree(ctx context.Context) (Status, string) {
	if _, err := exec.LookPath("git"); err != nil {
		return StatusWarn, "git not found, cannot inspect work tree"
	}

	cmdCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	out, err := exec.CommandContext(cmdCtx, "git", "rev-parse", "--is-inside-work-tree").CombinedOutput()
	if err != nil || strings.TrimSpace(string(out)) != "true" {
		return StatusWarn, "current directory is not inside a git work tree"
	}
	return StatusOK, "inside a git work tree"
}
