package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vendomat/vendomat/internal/money"
)

var (
	// ErrEmptyName rejects a product without a name.
	ErrEmptyName = errors.New("product name is required")
	// ErrInvalidCost rejects a unit cost that is not a positive multiple of the smallest coin.
	ErrInvalidCost = errors.New("invalid product cost")
	// ErrInvalidStock rejects a negative stock count.
	ErrInvalidStock = errors.New("stock cannot be negative")
	// ErrNotOwner indicates the caller does not own the product.
	ErrNotOwner = errors.New("not owner of product")
)

// Service manages the product catalog. Ownership rules live here: only the
// listing seller may change or remove a product.
type Service struct {
	repo Repository
}

// NewService builds a catalog service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// CreateInput captures data required to list a product.
type CreateInput struct {
	Name     string
	Stock    int64
	UnitCost int64
	SellerID string
}

// UpdateInput carries the replacement values for a product.
type UpdateInput struct {
	Name     string
	Stock    int64
	UnitCost int64
}

// Create lists a product for the given seller.
func (s *Service) Create(ctx context.Context, input CreateInput) (Product, error) {
	if err := validate(input.Name, input.Stock, input.UnitCost); err != nil {
		return Product{}, err
	}

	product := Product{
		ID:        uuid.New().String(),
		Name:      input.Name,
		Stock:     input.Stock,
		UnitCost:  input.UnitCost,
		SellerID:  input.SellerID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, product); err != nil {
		return Product{}, err
	}

	return product, nil
}

// Get retrieves a product by identifier.
func (s *Service) Get(ctx context.Context, id string) (Product, error) {
	return s.repo.Get(ctx, id)
}

// List returns every listed product.
func (s *Service) List(ctx context.Context) ([]Product, error) {
	return s.repo.List(ctx)
}

// Update replaces the mutable fields of a product owned by requestorID.
func (s *Service) Update(ctx context.Context, id, requestorID string, input UpdateInput) (Product, error) {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return Product{}, err
	}
	if product.SellerID != requestorID {
		return Product{}, ErrNotOwner
	}
	if err := validate(input.Name, input.Stock, input.UnitCost); err != nil {
		return Product{}, err
	}

	product.Name = input.Name
	product.Stock = input.Stock
	product.UnitCost = input.UnitCost

	if err := s.repo.Update(ctx, product); err != nil {
		return Product{}, err
	}

	return product, nil
}

// Delete removes a product owned by requestorID.
func (s *Service) Delete(ctx context.Context, id, requestorID string) error {
	product, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if product.SellerID != requestorID {
		return ErrNotOwner
	}
	return s.repo.Delete(ctx, id)
}

func validate(name string, stock, unitCost int64) error {
	if name == "" {
		return ErrEmptyName
	}
	if stock < 0 {
		return ErrInvalidStock
	}
	if unitCost <= 0 {
		return fmt.Errorf("%w: must be positive", ErrInvalidCost)
	}
	if unitCost%money.SmallestCoin != 0 {
		return fmt.Errorf("%w: must be divisible by %d", ErrInvalidCost, money.SmallestCoin)
	}
	return nil
}
