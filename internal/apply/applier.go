// Package apply implements the protection applier: it checks whether each
// target branch exists on the remote and, if so, replaces that branch's
// protection configuration with the declared policy.
package apply

import (
	"context"
	"fmt"
	"net/http"

	"branchguard/internal/config"
	gh "branchguard/internal/github"
	"branchguard/internal/policy"
)

// Target pairs a branch name with the policy to apply to it.
type Target struct {
	Branch string
	Policy policy.Policy
}

// DefaultTargets returns the built-in targets in apply order: the primary
// branch first, then the integration branch.
func DefaultTargets() []Target {
	return []Target{
		{Branch: "main", Policy: policy.Strict()},
		{Branch: "develop", Policy: policy.Relaxed()},
	}
}

type Status string

const (
	StatusApplied Status = "applied"
	StatusSkipped Status = "skipped"
	StatusFailed  Status = "failed"
)

// Outcome is the per-branch result of a run.
type Outcome struct {
	Branch  string `json:"branch"`
	Status  Status `json:"status"`
	Message string `json:"message,omitempty"`
}

type Applier struct {
	client *gh.Client
	repo   config.Repo
}

func New(client *gh.Client, repo config.Repo) *Applier {
	return &Applier{client: client, repo: repo}
}

// BranchExists probes GET /repos/{owner}/{repo}/branches/{branch}. A 404
// means the branch genuinely does not exist; any other failure (auth,
// network) is returned so the caller can report the real cause. Either way
// the branch is treated as unavailable for protection updates.
func (a *Applier) BranchExists(ctx context.Context, branch string) (bool, error) {
	_, resp, err := a.client.Client.Repositories.GetBranch(ctx, a.repo.Owner, a.repo.Name, branch, 0)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("check branch %s: %w", branch, err)
	}
	return true, nil
}

// Apply replaces the branch's protection configuration with p. This is a
// full-replace PUT: any manually configured rules on the branch are
// discarded, not merged.
func (a *Applier) Apply(ctx context.Context, branch string, p policy.Policy) error {
	_, _, err := a.client.Client.Repositories.UpdateBranchProtection(ctx, a.repo.Owner, a.repo.Name, branch, p.Request())
	if err != nil {
		return fmt.Errorf("update protection for %s: %w", branch, err)
	}
	return nil
}

// Run processes the targets strictly in order, one network round trip at a
// time. A branch that does not exist (or whose existence cannot be
// confirmed) is skipped with a warning; an update failure is recorded and
// the run continues with the next target. Protection is never updated for a
// branch that was not confirmed to exist.
//
// report, if non-nil, is called with each outcome as it is produced.
func (a *Applier) Run(ctx context.Context, targets []Target, report func(Outcome)) []Outcome {
	outcomes := make([]Outcome, 0, len(targets))
	emit := func(o Outcome) {
		outcomes = append(outcomes, o)
		if report != nil {
			report(o)
		}
	}

	for _, t := range targets {
		exists, err := a.BranchExists(ctx, t.Branch)
		if err != nil {
			emit(Outcome{Branch: t.Branch, Status: StatusSkipped, Message: fmt.Sprintf("existence check failed: %v", err)})
			continue
		}
		if !exists {
			emit(Outcome{Branch: t.Branch, Status: StatusSkipped, Message: "branch does not exist, skipping"})
			continue
		}

		if err := a.Apply(ctx, t.Branch, t.Policy); err != nil {
			emit(Outcome{Branch: t.Branch, Status: StatusFailed, Message: err.Error()})
			continue
		}
		emit(Outcome{Branch: t.Branch, Status: StatusApplied, Message: "protection applied"})
	}

	return outcomes
}
