package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/store"
)

func newService(t *testing.T) *account.Service {
	t.Helper()
	return account.NewService(store.NewMemory().Accounts())
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	acct, err := svc.Register(ctx, account.RegisterInput{Username: "alice", Password: "s3cret", Role: account.RoleBuyer})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if acct.Deposit != 0 {
		t.Fatalf("expected empty deposit, got %d", acct.Deposit)
	}

	authed, err := svc.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if authed.ID != acct.ID || authed.Role != account.RoleBuyer {
		t.Fatalf("unexpected account: %+v", authed)
	}

	if _, err := svc.Authenticate(ctx, "alice", "wrong"); !errors.Is(err, account.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	svc := newService(t)

	if _, err := svc.Register(context.Background(), account.RegisterInput{Username: "bob", Password: "s3cret", Role: "admin"}); !errors.Is(err, account.ErrInvalidRole) {
		t.Fatalf("expected invalid role, got %v", err)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, account.RegisterInput{Username: "carol", Password: "s3cret", Role: account.RoleSeller}); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Register(ctx, account.RegisterInput{Username: "carol", Password: "other", Role: account.RoleBuyer}); !errors.Is(err, account.ErrUsernameTaken) {
		t.Fatalf("expected username taken, got %v", err)
	}
}

func TestDepositAccumulatesValidCoins(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	acct, err := svc.Register(ctx, account.RegisterInput{Username: "dave", Password: "s3cret", Role: account.RoleBuyer})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	var want int64
	for _, coin := range []int64{0, 5, 10, 20, 50, 100} {
		want += coin
		updated, err := svc.Deposit(ctx, acct.ID, coin)
		if err != nil {
			t.Fatalf("deposit %d: %v", coin, err)
		}
		if updated.Deposit != want {
			t.Fatalf("after depositing %d expected balance %d, got %d", coin, want, updated.Deposit)
		}
	}
}

func TestDepositRejectsInvalidDenomination(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	acct, err := svc.Register(ctx, account.RegisterInput{Username: "erin", Password: "s3cret", Role: account.RoleBuyer})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Deposit(ctx, acct.ID, 50); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	for _, amount := range []int64{1, 3, 7, 25, 99, -5} {
		if _, err := svc.Deposit(ctx, acct.ID, amount); !errors.Is(err, account.ErrInvalidDenomination) {
			t.Fatalf("deposit %d: expected invalid denomination, got %v", amount, err)
		}
	}

	current, err := svc.Get(ctx, acct.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if current.Deposit != 50 {
		t.Fatalf("rejected deposits must not change the balance, got %d", current.Deposit)
	}
}

func TestResetIsIdempotent(t *testing.T) {
	svc := newService(t)
	ctx := context.Background()

	acct, err := svc.Register(ctx, account.RegisterInput{Username: "fred", Password: "s3cret", Role: account.RoleBuyer})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := svc.Deposit(ctx, acct.ID, 100); err != nil {
		t.Fatalf("deposit: %v", err)
	}

	for i := 0; i < 2; i++ {
		updated, err := svc.Reset(ctx, acct.ID)
		if err != nil {
			t.Fatalf("reset %d: %v", i, err)
		}
		if updated.Deposit != 0 {
			t.Fatalf("reset %d: expected zero deposit, got %d", i, updated.Deposit)
		}
	}
}
