// Package policy defines the declarative branch-protection policies that
// branchguard applies. Policies are plain values: derive variants with
// Derive rather than mutating a shared instance.
package policy

import (
	"github.com/google/go-github/v81/github"
)

// Reviews holds the pull request review requirements of a Policy.
type Reviews struct {
	// ApprovingCount is the minimum number of approving reviews.
	ApprovingCount int

	// DismissStale dismisses existing approvals when new commits are pushed.
	DismissStale bool

	// RequireCodeOwner requires an approving review from a Code Owner.
	RequireCodeOwner bool

	// RequireLastPushApproval requires approval of the most recent
	// reviewable push.
	RequireLastPushApproval bool
}

// Policy is a full branch-protection configuration. Applying a Policy
// replaces whatever protection the branch had; it is never merged.
type Policy struct {
	// RequiredChecks are the status check contexts that must pass before
	// merging, in the order they should appear in the GitHub UI.
	RequiredChecks []string

	// StrictChecks requires branches to be up to date before merging.
	StrictChecks bool

	Reviews Reviews

	AllowForcePushes              bool
	AllowDeletions                bool
	RequireLinearHistory          bool
	RequireConversationResolution bool
	LockBranch                    bool
	AllowForkSyncing              bool
}

// Strict is the policy for the primary branch: at least one approving
// review, passing status checks, and a locked-down history.
func Strict() Policy {
	return Policy{
		RequiredChecks: []string{"build", "test"},
		StrictChecks:   true,
		Reviews: Reviews{
			ApprovingCount: 1,
			DismissStale:   true,
		},
		AllowForcePushes:              false,
		AllowDeletions:                false,
		RequireLinearHistory:          true,
		RequireConversationResolution: true,
		LockBranch:                    false,
		AllowForkSyncing:              false,
	}
}

// Relaxed is the integration-branch policy: identical to Strict except that
// no approving reviews are required.
func Relaxed() Policy {
	zero := 0
	return Derive(Strict(), Overrides{ApprovingCount: &zero})
}

// Overrides selectively replaces Policy fields. Nil fields leave the base
// value untouched. The YAML tags let policy files express the same overrides.
type Overrides struct {
	RequiredChecks                *[]string `yaml:"required_checks"`
	StrictChecks                  *bool     `yaml:"strict_checks"`
	ApprovingCount                *int      `yaml:"approving_review_count"`
	DismissStale                  *bool     `yaml:"dismiss_stale_reviews"`
	RequireCodeOwner              *bool     `yaml:"require_code_owner_reviews"`
	RequireLastPushApproval       *bool     `yaml:"require_last_push_approval"`
	AllowForcePushes              *bool     `yaml:"allow_force_pushes"`
	AllowDeletions                *bool     `yaml:"allow_deletions"`
	RequireLinearHistory          *bool     `yaml:"require_linear_history"`
	RequireConversationResolution *bool     `yaml:"require_conversation_resolution"`
	LockBranch                    *bool     `yaml:"lock_branch"`
	AllowForkSyncing              *bool     `yaml:"allow_fork_syncing"`
}

// Derive returns a copy of base with the non-nil overrides applied. Neither
// base nor the result share the RequiredChecks slice, so both stay safe to
// hand around as values.
func Derive(base Policy, o Overrides) Policy {
	p := base
	p.RequiredChecks = append([]string(nil), base.RequiredChecks...)

	if o.RequiredChecks != nil {
		p.RequiredChecks = append([]string(nil), *o.RequiredChecks...)
	}
	if o.StrictChecks != nil {
		p.StrictChecks = *o.StrictChecks
	}
	if o.ApprovingCount != nil {
		p.Reviews.ApprovingCount = *o.ApprovingCount
	}
	if o.DismissStale != nil {
		p.Reviews.DismissStale = *o.DismissStale
	}
	if o.RequireCodeOwner != nil {
		p.Reviews.RequireCodeOwner = *o.RequireCodeOwner
	}
	if o.RequireLastPushApproval != nil {
		p.Reviews.RequireLastPushApproval = *o.RequireLastPushApproval
	}
	if o.AllowForcePushes != nil {
		p.AllowForcePushes = *o.AllowForcePushes
	}
	if o.AllowDeletions != nil {
		p.AllowDeletions = *o.AllowDeletions
	}
	if o.RequireLinearHistory != nil {
		p.RequireLinearHistory = *o.RequireLinearHistory
	}
	if o.RequireConversationResolution != nil {
		p.RequireConversationResolution = *o.RequireConversationResolution
	}
	if o.LockBranch != nil {
		p.LockBranch = *o.LockBranch
	}
	if o.AllowForkSyncing != nil {
		p.AllowForkSyncing = *o.AllowForkSyncing
	}
	return p
}

// Request converts the policy into the full-replace protection request body
// sent to PUT /repos/{owner}/{repo}/branches/{branch}/protection.
func (p Policy) Request() *github.ProtectionRequest {
	contexts := append([]string(nil), p.RequiredChecks...)
	return &github.ProtectionRequest{
		RequiredStatusChecks: &github.RequiredStatusChecks{
			Strict:   p.StrictChecks,
			Contexts: &contexts,
		},
		RequiredPullRequestReviews: &github.PullRequestReviewsEnforcementRequest{
			DismissStaleReviews:          p.Reviews.DismissStale,
			RequireCodeOwnerReviews:      p.Reviews.RequireCodeOwner,
			RequiredApprovingReviewCount: p.Reviews.ApprovingCount,
			RequireLastPushApproval:      github.Bool(p.Reviews.RequireLastPushApproval),
		},
		EnforceAdmins:                  false,
		Restrictions:                   nil,
		RequireLinearHistory:           github.Bool(p.RequireLinearHistory),
		AllowForcePushes:               github.Bool(p.AllowForcePushes),
		AllowDeletions:                 github.Bool(p.AllowDeletions),
		RequiredConversationResolution: github.Bool(p.RequireConversationResolution),
		LockBranch:                     github.Bool(p.LockBranch),
		AllowForkSyncing:               github.Bool(p.AllowForkSyncing),
	}
}
