package routes

import (
	"time"

	"github.com/gachamap/gachamap-backend/internal/config"
	"github.com/gachamap/gachamap-backend/internal/handlers"
	"github.com/gachamap/gachamap-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"gorm.io/gorm"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	db *gorm.DB,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	shopHandler *handlers.ShopHandler,
	ownerHandler *handlers.OwnerHandler,
	adminHandler *handlers.AdminHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth — public, with a stricter rate limit: 10 req/min per IP
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Post("/refresh", authHandler.Refresh)
	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Shops — public map surface
	api.Get("/shops", shopHandler.List)
	api.Get("/shops/nearby", shopHandler.Nearby)
	api.Get("/shops/:id", shopHandler.Get)

	// Shops — authenticated lifecycle. JWT middleware is applied per route
	// so it never leaks onto the public map endpoints above.
	api.Post("/shops", middleware.JWTProtected(cfg), shopHandler.Register)
	api.Post("/shops/:id/claim", middleware.JWTProtected(cfg), shopHandler.Claim)
	api.Delete("/shops/:id", middleware.JWTProtected(cfg), shopHandler.Delete)
	api.Patch("/shops/:id/promo", middleware.JWTProtected(cfg), shopHandler.UpdatePromo)
	api.Put("/shops/:id/gacha-machines", middleware.JWTProtected(cfg), shopHandler.ReplaceGachaMachines)
	api.Put("/shops/:id/kuji-statuses", middleware.JWTProtected(cfg), shopHandler.ReplaceKujiStatuses)
	api.Post("/shops/:id/comments", middleware.JWTProtected(cfg), shopHandler.AddComment)

	// Owner profile surface
	me := api.Group("/me", middleware.JWTProtected(cfg))
	me.Get("/", ownerHandler.Me)
	me.Patch("/name", ownerHandler.UpdateName)
	me.Get("/shops", ownerHandler.MyShops)
	me.Get("/comments", ownerHandler.MyComments)

	api.Post("/images", middleware.JWTProtected(cfg), ownerHandler.UploadImage)

	// Admin moderation panel
	admin := api.Group("/admin", middleware.JWTProtected(cfg), middleware.AdminRequired(db, cfg))
	admin.Get("/pending", adminHandler.PendingData)
	admin.Post("/shops", adminHandler.AddShop)
	admin.Post("/registrations/:shopId/approve", adminHandler.ApproveRegistration)
	admin.Post("/registrations/:shopId/reject", adminHandler.RejectRegistration)
	admin.Post("/claims/:id/approve", adminHandler.ApproveClaim)
	admin.Post("/claims/:id/reject", adminHandler.RejectClaim)
}
