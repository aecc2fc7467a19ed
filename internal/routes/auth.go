package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendomat/vendomat/internal/auth"
)

// RegisterAuthRoutes wires authentication endpoints.
func RegisterAuthRoutes(r fiber.Router, h *auth.Handler, rateLimiter fiber.Handler) {
	group := r.Group("/auth")
	group.Post("/login", rateLimiter, h.Login)
	group.Post("/refresh", h.Refresh)
}
