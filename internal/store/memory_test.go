package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
	"github.com/vendomat/vendomat/internal/purchase"
)

func seedProduct(t *testing.T, m *Memory, stock, unitCost int64) catalog.Product {
	t.Helper()
	product := catalog.Product{
		ID:        uuid.NewString(),
		Name:      "Cola",
		Stock:     stock,
		UnitCost:  unitCost,
		SellerID:  uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	if err := m.Products().Create(context.Background(), product); err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func seedBuyer(t *testing.T, m *Memory, username string, deposit int64) account.Account {
	t.Helper()
	buyer := account.Account{
		ID:        uuid.NewString(),
		Username:  username,
		Role:      account.RoleBuyer,
		Deposit:   deposit,
		CreatedAt: time.Now().UTC(),
	}
	if err := m.Accounts().Create(context.Background(), buyer); err != nil {
		t.Fatalf("seed buyer %s: %v", username, err)
	}
	return buyer
}

func TestBuyAppliesBothMutationsAtomically(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	product := seedProduct(t, m, 4, 5)
	buyer := seedBuyer(t, m, "buyer", 20)

	out, err := m.Buy(ctx, product.ID, buyer.ID, 3)
	if err != nil {
		t.Fatalf("buy: %v", err)
	}
	if out.TotalSpent != 15 || out.Remainder != 5 {
		t.Fatalf("unexpected outcome: %+v", out)
	}

	updatedBuyer, _ := m.Accounts().Get(ctx, buyer.ID)
	if updatedBuyer.Deposit != 0 {
		t.Fatalf("expected deposit 0, got %d", updatedBuyer.Deposit)
	}
	updatedProduct, _ := m.Products().Get(ctx, product.ID)
	if updatedProduct.Stock != 1 {
		t.Fatalf("expected stock 1, got %d", updatedProduct.Stock)
	}
}

// With stock exactly N and N concurrent single-unit buys from distinct funded
// buyers, every buy succeeds, stock lands on zero, and a further attempt is
// rejected without overselling.
func TestConcurrentBuysNeverOversell(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	const n = 8
	product := seedProduct(t, m, n, 5)

	buyers := make([]account.Account, n+1)
	for i := range buyers {
		buyers[i] = seedBuyer(t, m, fmt.Sprintf("buyer-%d", i), 5)
	}

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := m.Buy(ctx, product.ID, buyers[i].ID, 1); err != nil {
				t.Errorf("buy %d failed: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	updated, _ := m.Products().Get(ctx, product.ID)
	if updated.Stock != 0 {
		t.Fatalf("expected stock 0, got %d", updated.Stock)
	}

	_, err := m.Buy(ctx, product.ID, buyers[n].ID, 1)
	if !errors.Is(err, purchase.ErrOutOfStock) && !errors.Is(err, purchase.ErrInsufficientStock) {
		t.Fatalf("expected out-of-stock rejection, got %v", err)
	}
}

// Concurrent coin inserts on one account must all accumulate; the additive
// store operation cannot lose updates.
func TestConcurrentDepositsAccumulate(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	buyer := seedBuyer(t, m, "buyer", 0)

	const workers = 20
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := m.Accounts().AddDeposit(ctx, buyer.ID, 5); err != nil {
				t.Errorf("add deposit: %v", err)
			}
		}()
	}
	wg.Wait()

	updated, _ := m.Accounts().Get(ctx, buyer.ID)
	if updated.Deposit != workers*5 {
		t.Fatalf("expected deposit %d, got %d", workers*5, updated.Deposit)
	}
}

// Deposits racing a purchase on the same account must serialize: money is
// either consumed by the buy or still on the account, never lost.
func TestDepositAndBuyConserveMoney(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	product := seedProduct(t, m, 1, 5)
	buyer := seedBuyer(t, m, "buyer", 5)

	var wg sync.WaitGroup
	var outcome purchase.Outcome
	var buyErr error

	wg.Add(2)
	go func() {
		defer wg.Done()
		outcome, buyErr = m.Buy(ctx, product.ID, buyer.ID, 1)
	}()
	go func() {
		defer wg.Done()
		if _, err := m.Accounts().AddDeposit(ctx, buyer.ID, 100); err != nil {
			t.Errorf("add deposit: %v", err)
		}
	}()
	wg.Wait()

	if buyErr != nil {
		t.Fatalf("buy: %v", buyErr)
	}

	updated, _ := m.Accounts().Get(ctx, buyer.ID)
	// Either the coin landed before the buy (returned inside the remainder) or
	// after it (still on the account). Both conserve the 105 total.
	got := updated.Deposit + outcome.Remainder + outcome.TotalSpent
	if got != 105 {
		t.Fatalf("money not conserved: deposit=%d remainder=%d spent=%d", updated.Deposit, outcome.Remainder, outcome.TotalSpent)
	}
}
