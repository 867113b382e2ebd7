package handlers

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/gachamap/gachamap-backend/internal/dto"
	"github.com/gachamap/gachamap-backend/internal/imagestore"
	"github.com/gachamap/gachamap-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type OwnerHandler struct {
	ownerService *services.OwnerService
	shopService  *services.ShopService
	images       imagestore.Store
}

func NewOwnerHandler(ownerService *services.OwnerService, shopService *services.ShopService, images imagestore.Store) *OwnerHandler {
	return &OwnerHandler{ownerService: ownerService, shopService: shopService, images: images}
}

// Me returns the actor's owner profile, provisioning it on first call.
func (h *OwnerHandler) Me(c *fiber.Ctx) error {
	owner, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	return c.JSON(fiber.Map{
		"id":    owner.ID,
		"email": owner.Email,
		"name":  owner.Name,
		"role":  owner.Role,
	})
}

// UpdateName changes the actor's display name.
func (h *OwnerHandler) UpdateName(c *fiber.Ctx) error {
	owner, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	var req dto.UpdateNameRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	if err := h.ownerService.UpdateDisplayName(c.Context(), owner.ID, req.Name); err != nil {
		status, msg := serviceErrorStatus(err)
		return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: msg})
	}
	return c.JSON(fiber.Map{"message": "Name updated"})
}

// MyShops lists the shops the actor administers.
func (h *OwnerHandler) MyShops(c *fiber.Ctx) error {
	owner, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	shops, err := h.ownerService.ListOwnedShopsForDisplay(c.Context(), owner.ID)
	if err != nil {
		slog.Error("owned shop listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load shops",
		})
	}
	return c.JSON(shops)
}

// MyComments lists the actor's own status reports, newest first.
func (h *OwnerHandler) MyComments(c *fiber.Ctx) error {
	owner, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	comments, err := h.shopService.ListMyComments(c.Context(), owner.ID)
	if err != nil {
		slog.Error("comment listing failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to load comments",
		})
	}
	return c.JSON(comments)
}

// UploadImage accepts a multipart image, stores it in object storage and
// returns the public URL for use in shop or comment payloads.
func (h *OwnerHandler) UploadImage(c *fiber.Ctx) error {
	owner, err := currentOwner(c, h.ownerService)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	if h.images == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: true, Message: "Image uploads are not configured",
		})
	}

	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "image file is required",
		})
	}
	if file.Size > imagestore.MaxImageBytes {
		return c.Status(fiber.StatusRequestEntityTooLarge).JSON(dto.ErrorResponse{
			Error: true, Message: "image must be 5MB or less",
		})
	}

	src, err := file.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to read image",
		})
	}
	defer src.Close()

	buf, err := io.ReadAll(src)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "failed to read image",
		})
	}

	contentType := file.Header.Get("Content-Type")
	url, err := h.images.Upload(c.Context(), owner.AuthUserID, bytes.NewReader(buf), int64(len(buf)), contentType)
	if err != nil {
		slog.Error("image upload failed", "error", err, "user_id", owner.AuthUserID)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to upload image",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"url": url})
}
