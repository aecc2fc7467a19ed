package purchase

import (
	"context"
	"errors"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
)

// Rejection reasons for a buy attempt. Validate checks them in a fixed order;
// none of them leave partial state behind.
var (
	ErrInvalidAmount       = errors.New("amount must be at least 1")
	ErrOutOfStock          = errors.New("product is out of stock")
	ErrInvalidCost         = errors.New("product cost must be positive")
	ErrNoDeposit           = errors.New("no deposit available")
	ErrInsufficientDeposit = errors.New("deposit is not enough")
	ErrInsufficientStock   = errors.New("not enough product in stock")
)

// Outcome reports the state transition applied by a successful buy. Remainder
// is the unspent part of the buyer's deposit, owed back as coins.
type Outcome struct {
	TotalSpent  int64
	ProductName string
	SellerID    string
	Remainder   int64
}

// Store applies the buy transition atomically: the product stock decrement and
// the buyer deposit consumption happen as one unit, or not at all.
type Store interface {
	Buy(ctx context.Context, productID, buyerID string, amount int64) (Outcome, error)
}

// Validate runs every purchase precondition against the given records. The
// first violated condition decides the returned error. Callers run it inside
// the same lock or transaction scope that applies the transition, so no
// mutation ever happens against a stale read.
func Validate(product catalog.Product, buyer account.Account, amount int64) error {
	if amount < 1 {
		return ErrInvalidAmount
	}
	if product.Stock <= 0 {
		return ErrOutOfStock
	}
	if product.UnitCost <= 0 {
		return ErrInvalidCost
	}
	if buyer.Deposit <= 0 {
		return ErrNoDeposit
	}
	if amount*product.UnitCost > buyer.Deposit {
		return ErrInsufficientDeposit
	}
	if amount > product.Stock {
		return ErrInsufficientStock
	}
	return nil
}
