package purchase_test

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
	"github.com/vendomat/vendomat/internal/notification"
	"github.com/vendomat/vendomat/internal/purchase"
	"github.com/vendomat/vendomat/internal/store"
)

type testNotifier struct {
	last notification.Message
}

func (n *testNotifier) Send(_ context.Context, msg notification.Message) error {
	n.last = msg
	return nil
}

type fixture struct {
	mem      *store.Memory
	svc      *purchase.Service
	notifier *testNotifier
	buyer    account.Account
	product  catalog.Product
}

func setup(t *testing.T, deposit, stock, unitCost int64) fixture {
	t.Helper()
	ctx := context.Background()
	mem := store.NewMemory()

	buyer := account.Account{
		ID:        uuid.NewString(),
		Username:  "buyer",
		Role:      account.RoleBuyer,
		Deposit:   deposit,
		CreatedAt: time.Now().UTC(),
	}
	if err := mem.Accounts().Create(ctx, buyer); err != nil {
		t.Fatalf("create buyer: %v", err)
	}

	product := catalog.Product{
		ID:        uuid.NewString(),
		Name:      "Cola",
		Stock:     stock,
		UnitCost:  unitCost,
		SellerID:  uuid.NewString(),
		CreatedAt: time.Now().UTC(),
	}
	if err := mem.Products().Create(ctx, product); err != nil {
		t.Fatalf("create product: %v", err)
	}

	notifier := &testNotifier{}
	return fixture{
		mem:      mem,
		svc:      purchase.NewService(mem, notifier),
		notifier: notifier,
		buyer:    buyer,
		product:  product,
	}
}

func TestPurchaseSpendsDepositAndReturnsChange(t *testing.T) {
	f := setup(t, 20, 4, 5)
	ctx := context.Background()

	receipt, err := f.svc.Purchase(ctx, purchase.Input{ProductID: f.product.ID, BuyerID: f.buyer.ID, Amount: 3})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if receipt.TotalSpent != 15 {
		t.Fatalf("expected total spent 15, got %d", receipt.TotalSpent)
	}
	if receipt.Product != "Cola" {
		t.Fatalf("expected product Cola, got %s", receipt.Product)
	}
	if !reflect.DeepEqual(receipt.Change, []int64{5}) {
		t.Fatalf("expected change [5], got %v", receipt.Change)
	}

	buyer, err := f.mem.Accounts().Get(ctx, f.buyer.ID)
	if err != nil {
		t.Fatalf("get buyer: %v", err)
	}
	if buyer.Deposit != 0 {
		t.Fatalf("expected deposit consumed, got %d", buyer.Deposit)
	}

	product, err := f.mem.Products().Get(ctx, f.product.ID)
	if err != nil {
		t.Fatalf("get product: %v", err)
	}
	if product.Stock != 1 {
		t.Fatalf("expected stock 1, got %d", product.Stock)
	}

	if f.notifier.last.Kind != notification.KindProductSold {
		t.Fatalf("expected sale notification, got %+v", f.notifier.last)
	}
	if f.notifier.last.Destination != f.product.SellerID {
		t.Fatalf("notification should target the seller")
	}
}

func TestPurchaseChangeIsLargestCoinFirst(t *testing.T) {
	f := setup(t, 100, 4, 5)

	receipt, err := f.svc.Purchase(context.Background(), purchase.Input{ProductID: f.product.ID, BuyerID: f.buyer.ID, Amount: 1})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}

	if receipt.TotalSpent != 5 {
		t.Fatalf("expected total spent 5, got %d", receipt.TotalSpent)
	}
	if !reflect.DeepEqual(receipt.Change, []int64{50, 20, 20, 5}) {
		t.Fatalf("expected change [50 20 20 5], got %v", receipt.Change)
	}
}

func TestPurchaseExactPaymentReturnsNoChange(t *testing.T) {
	f := setup(t, 20, 4, 5)

	receipt, err := f.svc.Purchase(context.Background(), purchase.Input{ProductID: f.product.ID, BuyerID: f.buyer.ID, Amount: 4})
	if err != nil {
		t.Fatalf("purchase: %v", err)
	}
	if receipt.TotalSpent != 20 {
		t.Fatalf("expected total spent 20, got %d", receipt.TotalSpent)
	}
	if len(receipt.Change) != 0 {
		t.Fatalf("expected no change, got %v", receipt.Change)
	}
}

func TestPurchaseRejectionsLeaveStateUntouched(t *testing.T) {
	cases := []struct {
		name    string
		deposit int64
		stock   int64
		cost    int64
		amount  int64
		want    error
	}{
		{"zero amount", 20, 4, 5, 0, purchase.ErrInvalidAmount},
		{"out of stock", 20, 0, 5, 1, purchase.ErrOutOfStock},
		{"no deposit", 0, 4, 5, 1, purchase.ErrNoDeposit},
		{"deposit too small", 10, 4, 5, 3, purchase.ErrInsufficientDeposit},
		{"stock too small", 100, 2, 5, 3, purchase.ErrInsufficientStock},
	}

	for _, tc := range cases {
		f := setup(t, tc.deposit, tc.stock, tc.cost)
		ctx := context.Background()

		_, err := f.svc.Purchase(ctx, purchase.Input{ProductID: f.product.ID, BuyerID: f.buyer.ID, Amount: tc.amount})
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}

		buyer, _ := f.mem.Accounts().Get(ctx, f.buyer.ID)
		if buyer.Deposit != tc.deposit {
			t.Fatalf("%s: deposit changed on rejected purchase: %d", tc.name, buyer.Deposit)
		}
		product, _ := f.mem.Products().Get(ctx, f.product.ID)
		if product.Stock != tc.stock {
			t.Fatalf("%s: stock changed on rejected purchase: %d", tc.name, product.Stock)
		}
	}
}

func TestPurchaseUnknownProduct(t *testing.T) {
	f := setup(t, 20, 4, 5)

	_, err := f.svc.Purchase(context.Background(), purchase.Input{ProductID: uuid.NewString(), BuyerID: f.buyer.ID, Amount: 1})
	if !errors.Is(err, catalog.ErrNotFound) {
		t.Fatalf("expected product not found, got %v", err)
	}
}

func TestPurchaseUnknownBuyer(t *testing.T) {
	f := setup(t, 20, 4, 5)

	_, err := f.svc.Purchase(context.Background(), purchase.Input{ProductID: f.product.ID, BuyerID: uuid.NewString(), Amount: 1})
	if !errors.Is(err, account.ErrNotFound) {
		t.Fatalf("expected account not found, got %v", err)
	}
}
