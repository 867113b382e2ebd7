package handlers

import (
	"errors"

	"github.com/gachamap/gachamap-backend/internal/identity"
	"github.com/gachamap/gachamap-backend/internal/models"
	"github.com/gachamap/gachamap-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

// currentOwner resolves the authenticated request to its Owner row,
// provisioning one on first sight so stale accounts heal on any
// authenticated call.
func currentOwner(c *fiber.Ctx, owners *services.OwnerService) (*models.Owner, error) {
	authID, err := identity.GetAuthUserID(c)
	if err != nil {
		return nil, err
	}
	return owners.ResolveOrProvision(c.Context(), authID.String(), identity.GetEmail(c), "")
}

// adminActor resolves the actor and honors an elevation granted by the
// admin middleware (config token or allow lists): those actors act as
// admins even when their Owner row carries the default role.
func adminActor(c *fiber.Ctx, owners *services.OwnerService) (*models.Owner, error) {
	owner, err := currentOwner(c, owners)
	if err != nil {
		return nil, err
	}
	if elevated, _ := c.Locals("is_admin").(bool); elevated {
		owner.Role = models.RoleAdmin
	}
	return owner, nil
}

// serviceErrorStatus maps service sentinels to HTTP status codes. User
// actionable conflicts carry the Korean messages the clients display
// verbatim.
func serviceErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		return fiber.StatusForbidden, "permission denied"
	case errors.Is(err, services.ErrShopNotFound),
		errors.Is(err, services.ErrRequestNotFound),
		errors.Is(err, services.ErrClaimNotFound),
		errors.Is(err, services.ErrOwnerNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, services.ErrDuplicateClaim):
		return fiber.StatusConflict, "이미 클레임 신청한 매장입니다."
	case errors.Is(err, services.ErrDuplicateOwnership):
		return fiber.StatusConflict, "이미 관리 중인 매장입니다."
	case errors.Is(err, services.ErrInvalidShopInput),
		errors.Is(err, services.ErrPromoTooLong),
		errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrNameTooLong):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "Internal server error"
	}
}
