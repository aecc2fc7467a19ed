package purchase

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
)

// Handler exposes the buy endpoint.
type Handler struct {
	service *Service
}

// NewHandler builds a purchase HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type buyRequest struct {
	Amount int64 `json:"amount"`
}

// Buy purchases units of a product with the caller's deposited coins.
func (h *Handler) Buy(c *fiber.Ctx) error {
	var req buyRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)

	receipt, err := h.service.Purchase(c.UserContext(), Input{
		ProductID: c.Params("productId"),
		BuyerID:   uid,
		Amount:    req.Amount,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrOutOfStock),
			errors.Is(err, ErrInvalidCost),
			errors.Is(err, ErrNoDeposit),
			errors.Is(err, ErrInsufficientDeposit),
			errors.Is(err, ErrInsufficientStock):
			return fiber.NewError(http.StatusBadRequest, err.Error())
		case errors.Is(err, catalog.ErrNotFound), errors.Is(err, account.ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"total_spent": receipt.TotalSpent,
		"product":     receipt.Product,
		"change":      receipt.Change,
	})
}
