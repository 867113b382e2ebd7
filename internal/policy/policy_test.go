package policy

import (
	"testing"

	"github.com/gachamap/gachamap-backend/internal/models"
)

func TestCanActOn(t *testing.T) {
	adminOnlyActions := []Action{
		ActionAddShopDirect,
		ActionApproveRegistration,
		ActionRejectRegistration,
		ActionApproveClaim,
		ActionRejectClaim,
		ActionViewPending,
	}
	for _, action := range adminOnlyActions {
		if CanActOn(models.RoleOwner, action) {
			t.Errorf("owner allowed %s", action)
		}
		if !CanActOn(models.RoleAdmin, action) {
			t.Errorf("admin denied %s", action)
		}
	}

	for _, action := range []Action{ActionRegisterShop, ActionClaimShop, ActionDeleteShop} {
		if !CanActOn(models.RoleOwner, action) {
			t.Errorf("owner denied %s", action)
		}
	}
}

func TestCanShopTransition(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{models.ShopStatusPending, models.ShopStatusApproved, true},
		{models.ShopStatusApproved, models.ShopStatusPending, true}, // rollback edge
		{models.ShopStatusApproved, models.ShopStatusApproved, false},
		{models.ShopStatusPending, models.ShopStatusPending, false},
		{"", models.ShopStatusApproved, false},
	}
	for _, tc := range cases {
		if got := CanShopTransition(tc.from, tc.to); got != tc.want {
			t.Errorf("CanShopTransition(%q, %q) = %v, want %v", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestCanReviewTransitionPendingIsOnlyNonTerminal(t *testing.T) {
	if !CanReviewTransition(models.ReviewStatusPending, models.ReviewStatusApproved) {
		t.Error("PENDING -> APPROVED denied")
	}
	if !CanReviewTransition(models.ReviewStatusPending, models.ReviewStatusRejected) {
		t.Error("PENDING -> REJECTED denied")
	}
	for _, from := range []string{models.ReviewStatusApproved, models.ReviewStatusRejected} {
		for _, to := range []string{models.ReviewStatusPending, models.ReviewStatusApproved, models.ReviewStatusRejected} {
			if CanReviewTransition(from, to) {
				t.Errorf("terminal %s allowed to move to %s", from, to)
			}
		}
	}
}
