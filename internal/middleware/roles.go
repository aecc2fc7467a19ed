package middleware

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// RequireRole guards a route so only callers whose token carries the given
// role may pass. Buyers insert coins and buy; sellers manage their products.
// Ownership of a specific product is checked in the catalog service, not here.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		got, _ := c.Locals("role").(string)
		if got != role {
			return fiber.NewError(http.StatusForbidden, fmt.Sprintf("%s role required", role))
		}
		return c.Next()
	}
}
