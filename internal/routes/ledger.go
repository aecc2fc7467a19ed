package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/middleware"
)

// RegisterLedgerRoutes wires the account and coin ledger endpoints. Deposit
// and reset are buyer-only; sellers have no coin balance to manage.
func RegisterLedgerRoutes(r fiber.Router, h *account.Handler) {
	r.Get("/me", h.Me)

	buyer := r.Group("", middleware.RequireRole(account.RoleBuyer))
	buyer.Post("/deposit", h.Deposit)
	buyer.Post("/reset", h.Reset)
}
