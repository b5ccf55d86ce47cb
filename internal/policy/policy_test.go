package policy

import (
	"reflect"
	"testing"
)

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func listPtr(v ...string) *[]string { return &v }

func TestStrictRequiresApprovals(t *testing.T) {
	if got := Strict().Reviews.ApprovingCount; got < 1 {
		t.Fatalf("Strict().Reviews.ApprovingCount = %d, want >= 1", got)
	}
}

func TestRelaxedDiffersOnlyInApprovingCount(t *testing.T) {
	strict := Strict()
	relaxed := Relaxed()

	if relaxed.Reviews.ApprovingCount != 0 {
		t.Fatalf("Relaxed().Reviews.ApprovingCount = %d, want 0", relaxed.Reviews.ApprovingCount)
	}

	// Zero out the one field that may differ; everything else must match.
	strict.Reviews.ApprovingCount = 0
	if !reflect.DeepEqual(strict, relaxed) {
		t.Fatalf("Relaxed diverges from Strict beyond approving count:\nstrict:  %+v\nrelaxed: %+v", strict, relaxed)
	}
}

func TestDerive(t *testing.T) {
	t.Run("nil overrides copy the base", func(t *testing.T) {
		base := Strict()
		got := Derive(base, Overrides{})
		if !reflect.DeepEqual(base, got) {
			t.Fatalf("Derive with empty overrides changed the policy: %+v", got)
		}
	})

	t.Run("overrides apply", func(t *testing.T) {
		got := Derive(Strict(), Overrides{
			RequiredChecks:   listPtr("lint"),
			ApprovingCount:   intPtr(3),
			LockBranch:       boolPtr(true),
			RequireCodeOwner: boolPtr(true),
		})
		if !reflect.DeepEqual(got.RequiredChecks, []string{"lint"}) {
			t.Errorf("RequiredChecks = %v", got.RequiredChecks)
		}
		if got.Reviews.ApprovingCount != 3 {
			t.Errorf("ApprovingCount = %d", got.Reviews.ApprovingCount)
		}
		if !got.LockBranch {
			t.Error("LockBranch not applied")
		}
		if !got.Reviews.RequireCodeOwner {
			t.Error("RequireCodeOwner not applied")
		}
		// Untouched fields keep base values.
		if !got.RequireLinearHistory {
			t.Error("RequireLinearHistory lost")
		}
	})

	t.Run("base is not mutated and slices are not shared", func(t *testing.T) {
		base := Strict()
		derived := Derive(base, Overrides{ApprovingCount: intPtr(0)})

		derived.RequiredChecks[0] = "mutated"
		if base.RequiredChecks[0] == "mutated" {
			t.Fatal("derived policy shares RequiredChecks backing array with base")
		}
		if base.Reviews.ApprovingCount != 1 {
			t.Fatalf("base mutated: %+v", base)
		}
	})
}

func TestRequest(t *testing.T) {
	p := Strict()
	req := p.Request()

	if req.RequiredStatusChecks == nil || req.RequiredStatusChecks.Contexts == nil {
		t.Fatal("RequiredStatusChecks missing")
	}
	if !reflect.DeepEqual(*req.RequiredStatusChecks.Contexts, p.RequiredChecks) {
		t.Errorf("Contexts = %v, want %v", *req.RequiredStatusChecks.Contexts, p.RequiredChecks)
	}
	if !req.RequiredStatusChecks.Strict {
		t.Error("Strict flag lost")
	}

	rr := req.RequiredPullRequestReviews
	if rr == nil {
		t.Fatal("RequiredPullRequestReviews missing")
	}
	if rr.RequiredApprovingReviewCount != 1 {
		t.Errorf("RequiredApprovingReviewCount = %d", rr.RequiredApprovingReviewCount)
	}
	if !rr.DismissStaleReviews {
		t.Error("DismissStaleReviews lost")
	}
	if rr.RequireLastPushApproval == nil || *rr.RequireLastPushApproval {
		t.Errorf("RequireLastPushApproval = %v, want false", rr.RequireLastPushApproval)
	}

	if req.AllowForcePushes == nil || *req.AllowForcePushes {
		t.Error("AllowForcePushes should be false")
	}
	if req.RequireLinearHistory == nil || !*req.RequireLinearHistory {
		t.Error("RequireLinearHistory should be true")
	}
	if req.RequiredConversationResolution == nil || !*req.RequiredConversationResolution {
		t.Error("RequiredConversationResolution should be true")
	}
	if req.Restrictions != nil {
		t.Error("Restrictions should be nil")
	}

	// The request must not alias the policy's slice.
	(*req.RequiredStatusChecks.Contexts)[0] = "mutated"
	if p.RequiredChecks[0] == "mutated" {
		t.Fatal("Request shares Contexts backing array with the policy")
	}
}
