// Package policy centralizes role checks and status-transition rules so
// the lifecycle operations don't carry drifting inline branches.
package policy

import "github.com/gachamap/gachamap-backend/internal/models"

// Action identifies a guarded lifecycle operation.
type Action string

const (
	ActionRegisterShop        Action = "register_shop"
	ActionAddShopDirect       Action = "add_shop_direct"
	ActionApproveRegistration Action = "approve_registration"
	ActionRejectRegistration  Action = "reject_registration"
	ActionClaimShop           Action = "claim_shop"
	ActionApproveClaim        Action = "approve_claim"
	ActionRejectClaim         Action = "reject_claim"
	ActionDeleteShop          Action = "delete_shop"
	ActionViewPending         Action = "view_pending"
)

var adminOnly = map[Action]bool{
	ActionAddShopDirect:       true,
	ActionApproveRegistration: true,
	ActionRejectRegistration:  true,
	ActionApproveClaim:        true,
	ActionRejectClaim:         true,
	ActionViewPending:         true,
}

// CanActOn reports whether an owner with the given role may perform the
// action. Ownership of a concrete shop is checked separately by the
// caller where it applies (delete, promo, inventory).
func CanActOn(role string, action Action) bool {
	if adminOnly[action] {
		return role == models.RoleAdmin
	}
	return true
}

// shopTransitions are the documented edges of the shop state machine.
var shopTransitions = map[string]map[string]bool{
	models.ShopStatusPending: {
		models.ShopStatusApproved: true,
	},
	// Rollback edge used when the ownership-link insert fails after the
	// status flip.
	models.ShopStatusApproved: {
		models.ShopStatusPending: true,
	},
}

// CanShopTransition reports whether a shop may move between statuses.
func CanShopTransition(from, to string) bool {
	return shopTransitions[from][to]
}

// reviewTransitions apply to both claims and registration requests:
// PENDING is the only non-terminal state.
var reviewTransitions = map[string]map[string]bool{
	models.ReviewStatusPending: {
		models.ReviewStatusApproved: true,
		models.ReviewStatusRejected: true,
	},
}

// CanReviewTransition reports whether a claim or registration request may
// move between statuses. Approving an already-APPROVED item is rejected
// here rather than relying on callers to only act on PENDING rows.
func CanReviewTransition(from, to string) bool {
	return reviewTransitions[from][to]
}
