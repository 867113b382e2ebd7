package handlers

import (
	"github.com/gachamap/gachamap-backend/internal/dto"
	"github.com/gachamap/gachamap-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	adminService *services.AdminService
	shopService  *services.ShopService
	ownerService *services.OwnerService
}

func NewAdminHandler(adminService *services.AdminService, shopService *services.ShopService, ownerService *services.OwnerService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		shopService:  shopService,
		ownerService: ownerService,
	}
}

// PendingData returns everything the review dashboard needs in one call:
// pending shops, claims and registration requests.
func (h *AdminHandler) PendingData(c *fiber.Ctx) error {
	actor, err := adminActor(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	data, err := h.adminService.GetAdminPendingData(c.Context(), actor)
	if err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(data)
}

// AddShop creates an immediately approved operator listing.
func (h *AdminHandler) AddShop(c *fiber.Ctx) error {
	actor, err := adminActor(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.RegisterShopRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.shopService.AddShopAsAdmin(c.Context(), actor, &req)
	if err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// ApproveRegistration approves the pending registration for a shop.
func (h *AdminHandler) ApproveRegistration(c *fiber.Ctx) error {
	actor, err := adminActor(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("shopId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	if err := h.shopService.ApproveShopRegistration(c.Context(), actor, int64(shopID)); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Registration approved"})
}

// RejectRegistration rejects the pending registration for a shop and
// removes the shop. Safe to repeat.
func (h *AdminHandler) RejectRegistration(c *fiber.Ctx) error {
	actor, err := adminActor(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("shopId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	if err := h.shopService.RejectShopRegistration(c.Context(), actor, int64(shopID)); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Registration rejected"})
}

// ApproveClaim approves a pending claim by id.
func (h *AdminHandler) ApproveClaim(c *fiber.Ctx) error {
	actor, err := adminActor(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	claimID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid claim id",
		})
	}

	if err := h.shopService.ApproveShopClaim(c.Context(), actor, int64(claimID)); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Claim approved"})
}

// RejectClaim rejects a pending claim by id. Safe to repeat.
func (h *AdminHandler) RejectClaim(c *fiber.Ctx) error {
	actor, err := adminActor(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	claimID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid claim id",
		})
	}

	if err := h.shopService.RejectShopClaim(c.Context(), actor, int64(claimID)); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Claim rejected"})
}
