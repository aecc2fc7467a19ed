package catalog

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
)

// Handler exposes product catalog HTTP endpoints.
type Handler struct {
	service *Service
}

// NewHandler builds a catalog HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

type productRequest struct {
	Name     string `json:"name"`
	Stock    int64  `json:"stock"`
	UnitCost int64  `json:"unit_cost"`
}

type productResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Stock    int64  `json:"stock"`
	UnitCost int64  `json:"unit_cost"`
	SellerID string `json:"seller_id"`
}

func toResponse(product Product) productResponse {
	return productResponse{
		ID:       product.ID,
		Name:     product.Name,
		Stock:    product.Stock,
		UnitCost: product.UnitCost,
		SellerID: product.SellerID,
	}
}

// Create lists a new product for the authenticated seller.
func (h *Handler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)
	product, err := h.service.Create(c.UserContext(), CreateInput{
		Name:     req.Name,
		Stock:    req.Stock,
		UnitCost: req.UnitCost,
		SellerID: uid,
	})
	if err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	return c.Status(http.StatusCreated).JSON(toResponse(product))
}

// Get returns a single product.
func (h *Handler) Get(c *fiber.Ctx) error {
	product, err := h.service.Get(c.UserContext(), c.Params("productId"))
	if err != nil {
		return fiber.NewError(http.StatusNotFound, "product not found")
	}
	return c.Status(http.StatusOK).JSON(toResponse(product))
}

// List returns every listed product.
func (h *Handler) List(c *fiber.Ctx) error {
	products, err := h.service.List(c.UserContext())
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	out := make([]productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toResponse(product))
	}
	return c.Status(http.StatusOK).JSON(out)
}

// Update replaces a product's fields; only its seller may do so.
func (h *Handler) Update(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, err.Error())
	}
	uid, _ := c.Locals("user_id").(string)
	product, err := h.service.Update(c.UserContext(), c.Params("productId"), uid, UpdateInput{
		Name:     req.Name,
		Stock:    req.Stock,
		UnitCost: req.UnitCost,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotOwner):
			return fiber.NewError(http.StatusForbidden, err.Error())
		default:
			return fiber.NewError(http.StatusBadRequest, err.Error())
		}
	}
	return c.Status(http.StatusOK).JSON(toResponse(product))
}

// Delete removes a product; only its seller may do so.
func (h *Handler) Delete(c *fiber.Ctx) error {
	uid, _ := c.Locals("user_id").(string)
	if err := h.service.Delete(c.UserContext(), c.Params("productId"), uid); err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return fiber.NewError(http.StatusNotFound, err.Error())
		case errors.Is(err, ErrNotOwner):
			return fiber.NewError(http.StatusForbidden, err.Error())
		default:
			return fiber.NewError(http.StatusInternalServerError, err.Error())
		}
	}
	return c.SendStatus(http.StatusNoContent)
}
