package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
	"github.com/vendomat/vendomat/internal/middleware"
)

// RegisterCatalogRoutes wires product endpoints. Anyone authenticated may
// browse; only sellers create listings, and update/delete are additionally
// restricted to the owning seller inside the catalog service.
func RegisterCatalogRoutes(r fiber.Router, h *catalog.Handler) {
	r.Get("/products", h.List)
	r.Get("/products/:productId", h.Get)

	seller := r.Group("", middleware.RequireRole(account.RoleSeller))
	seller.Post("/products", h.Create)
	seller.Put("/products/:productId", h.Update)
	seller.Delete("/products/:productId", h.Delete)
}
