package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/middleware"
	"github.com/vendomat/vendomat/internal/purchase"
)

// RegisterPurchaseRoutes wires the buy endpoint, buyer-only.
func RegisterPurchaseRoutes(r fiber.Router, h *purchase.Handler) {
	r.Post("/products/:productId/buy", middleware.RequireRole(account.RoleBuyer), h.Buy)
}
