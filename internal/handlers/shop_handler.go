package handlers

import (
	"errors"
	"log/slog"

	"github.com/gachamap/gachamap-backend/internal/dto"
	"github.com/gachamap/gachamap-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type ShopHandler struct {
	shopService  *services.ShopService
	ownerService *services.OwnerService
}

func NewShopHandler(shopService *services.ShopService, ownerService *services.OwnerService) *ShopHandler {
	return &ShopHandler{shopService: shopService, ownerService: ownerService}
}

// List returns every approved shop with inventory for the map view.
func (h *ShopHandler) List(c *fiber.Ctx) error {
	shops, err := h.shopService.ListApprovedShops(c.Context())
	if err != nil {
		slog.Error("shop listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load shops",
		})
	}
	return c.JSON(shops)
}

// Get returns a single shop regardless of moderation status.
func (h *ShopHandler) Get(c *fiber.Ctx) error {
	shopID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	shop, err := h.shopService.GetShop(c.Context(), int64(shopID))
	if err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(shop)
}

// Nearby returns approved shops within a radius of a point, used by the
// registration flow to surface likely duplicates before submitting.
func (h *ShopHandler) Nearby(c *fiber.Ctx) error {
	lat := c.QueryFloat("lat")
	lng := c.QueryFloat("lng")
	if lat == 0 && lng == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "lat and lng query parameters are required",
		})
	}
	radius := c.QueryFloat("radius")

	shops, err := h.shopService.GetNearbyShops(c.Context(), lat, lng, radius)
	if err != nil {
		slog.Error("nearby lookup failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to search nearby shops",
		})
	}
	return c.JSON(shops)
}

// Register submits a new shop. Admin callers get an immediate listing;
// everyone else enters the moderation queue (or auto-approves when the
// community toggle is on).
func (h *ShopHandler) Register(c *fiber.Ctx) error {
	actor, err := currentOwner(c, h.ownerService)
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

	result, err := h.shopService.RegisterShop(c.Context(), actor, &req)
	if err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Claim submits an ownership claim on an existing shop.
func (h *ShopHandler) Claim(c *fiber.Ctx) error {
	actor, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	if err := h.shopService.ClaimShop(c.Context(), actor, int64(shopID)); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Claim submitted"})
}

// Delete removes a shop the actor administers, with all dependent rows.
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	actor, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	if err := h.shopService.DeleteShop(c.Context(), actor, int64(shopID)); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Shop deleted"})
}

// UpdatePromo patches the public info of an owned shop.
func (h *ShopHandler) UpdatePromo(c *fiber.Ctx) error {
	actor, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	var req dto.UpdateShopPromoRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.shopService.UpdateShopPromo(c.Context(), actor, int64(shopID), &req); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Shop updated"})
}

// ReplaceGachaMachines swaps the capsule-machine inventory wholesale.
func (h *ShopHandler) ReplaceGachaMachines(c *fiber.Ctx) error {
	actor, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	var req dto.ReplaceGachaMachinesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.shopService.ReplaceGachaMachines(c.Context(), actor, int64(shopID), req.Machines); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Gacha machines updated"})
}

// ReplaceKujiStatuses swaps the lottery-ticket inventory wholesale.
func (h *ShopHandler) ReplaceKujiStatuses(c *fiber.Ctx) error {
	actor, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	var req dto.ReplaceKujiStatusesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.shopService.ReplaceKujiStatuses(c.Context(), actor, int64(shopID), req.Statuses); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Kuji statuses updated"})
}

// AddComment posts a stock/status report on a shop.
func (h *ShopHandler) AddComment(c *fiber.Ctx) error {
	actor, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shopID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid shop id",
		})
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.shopService.AddComment(c.Context(), actor, int64(shopID), req.Body, req.ImageURL); err != nil {
		if errors.Is(err, services.ErrCommentRequired) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Comment created"})
}
