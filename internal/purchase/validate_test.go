package purchase

import (
	"errors"
	"testing"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
)

// Each case violates exactly one precondition so the test pins both the
// condition and its position in the checking order.
func TestValidateOrder(t *testing.T) {
	healthy := catalog.Product{Name: "Cola", Stock: 4, UnitCost: 5}
	funded := account.Account{Deposit: 20}

	cases := []struct {
		name    string
		product catalog.Product
		buyer   account.Account
		amount  int64
		want    error
	}{
		{"zero amount", healthy, funded, 0, ErrInvalidAmount},
		{"negative amount", healthy, funded, -2, ErrInvalidAmount},
		{"no stock", catalog.Product{Name: "Cola", Stock: 0, UnitCost: 5}, funded, 1, ErrOutOfStock},
		{"zero cost", catalog.Product{Name: "Cola", Stock: 4, UnitCost: 0}, funded, 1, ErrInvalidCost},
		{"no deposit", healthy, account.Account{Deposit: 0}, 1, ErrNoDeposit},
		{"deposit too small", healthy, account.Account{Deposit: 10}, 3, ErrInsufficientDeposit},
		{"stock too small", catalog.Product{Name: "Cola", Stock: 2, UnitCost: 5}, funded, 3, ErrInsufficientStock},
		{"valid", healthy, funded, 3, nil},
	}

	for _, tc := range cases {
		if err := Validate(tc.product, tc.buyer, tc.amount); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

// Amount zero must fail before any state-dependent check, even when every
// other precondition would also be violated.
func TestValidateAmountCheckedFirst(t *testing.T) {
	empty := catalog.Product{Name: "Cola", Stock: 0, UnitCost: 0}
	broke := account.Account{Deposit: 0}

	if err := Validate(empty, broke, 0); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected invalid amount, got %v", err)
	}
}

// Cost is checked before the buyer's deposit: a zero-cost product rejects
// even a fully funded buyer with ErrInvalidCost.
func TestValidateCostBeforeDeposit(t *testing.T) {
	broken := catalog.Product{Name: "Cola", Stock: 4, UnitCost: 0}
	broke := account.Account{Deposit: 0}

	if err := Validate(broken, broke, 1); !errors.Is(err, ErrInvalidCost) {
		t.Fatalf("expected invalid cost, got %v", err)
	}
}
