package store

import (
	"context"
	"sort"
	"sync"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
	"github.com/vendomat/vendomat/internal/purchase"
)

// Memory keeps every record behind one lock so a buy can move the buyer
// deposit and the product stock in a single critical section, and deposits on
// an account serialize against purchases touching it. It backs dev mode and
// unit tests.
//
// Memory itself implements purchase.Store; Accounts and Products return views
// implementing the per-domain repository interfaces over the same lock.
type Memory struct {
	mu       sync.RWMutex
	accounts map[string]account.Account
	products map[string]catalog.Product
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[string]account.Account),
		products: make(map[string]catalog.Product),
	}
}

// Accounts returns the account repository view.
func (m *Memory) Accounts() account.Repository {
	return accountView{m}
}

// Products returns the product repository view.
func (m *Memory) Products() catalog.Repository {
	return productView{m}
}

// Buy validates and applies the purchase transition under the store lock.
func (m *Memory) Buy(_ context.Context, productID, buyerID string, amount int64) (purchase.Outcome, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	product, ok := m.products[productID]
	if !ok {
		return purchase.Outcome{}, catalog.ErrNotFound
	}
	buyer, ok := m.accounts[buyerID]
	if !ok {
		return purchase.Outcome{}, account.ErrNotFound
	}

	if err := purchase.Validate(product, buyer, amount); err != nil {
		return purchase.Outcome{}, err
	}

	totalSpent := amount * product.UnitCost
	remainder := buyer.Deposit - totalSpent

	buyer.Deposit = 0
	product.Stock -= amount
	m.accounts[buyerID] = buyer
	m.products[productID] = product

	return purchase.Outcome{
		TotalSpent:  totalSpent,
		ProductName: product.Name,
		SellerID:    product.SellerID,
		Remainder:   remainder,
	}, nil
}

type accountView struct {
	m *Memory
}

func (v accountView) Create(_ context.Context, acct account.Account) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	for _, existing := range v.m.accounts {
		if existing.Username == acct.Username {
			return account.ErrUsernameTaken
		}
	}
	v.m.accounts[acct.ID] = acct
	return nil
}

func (v accountView) Get(_ context.Context, id string) (account.Account, error) {
	v.m.mu.RLock()
	defer v.m.mu.RUnlock()
	acct, ok := v.m.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	return acct, nil
}

func (v accountView) FindByUsername(_ context.Context, username string) (account.Account, error) {
	v.m.mu.RLock()
	defer v.m.mu.RUnlock()
	for _, acct := range v.m.accounts {
		if acct.Username == username {
			return acct, nil
		}
	}
	return account.Account{}, account.ErrNotFound
}

func (v accountView) AddDeposit(_ context.Context, id string, amount int64) (account.Account, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	acct, ok := v.m.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	acct.Deposit += amount
	v.m.accounts[id] = acct
	return acct, nil
}

func (v accountView) ResetDeposit(_ context.Context, id string) (account.Account, error) {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	acct, ok := v.m.accounts[id]
	if !ok {
		return account.Account{}, account.ErrNotFound
	}
	acct.Deposit = 0
	v.m.accounts[id] = acct
	return acct, nil
}

type productView struct {
	m *Memory
}

func (v productView) Create(_ context.Context, product catalog.Product) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	v.m.products[product.ID] = product
	return nil
}

func (v productView) Get(_ context.Context, id string) (catalog.Product, error) {
	v.m.mu.RLock()
	defer v.m.mu.RUnlock()
	product, ok := v.m.products[id]
	if !ok {
		return catalog.Product{}, catalog.ErrNotFound
	}
	return product, nil
}

func (v productView) List(_ context.Context) ([]catalog.Product, error) {
	v.m.mu.RLock()
	defer v.m.mu.RUnlock()
	products := make([]catalog.Product, 0, len(v.m.products))
	for _, product := range v.m.products {
		products = append(products, product)
	}
	sort.Slice(products, func(i, j int) bool {
		if products[i].CreatedAt.Equal(products[j].CreatedAt) {
			return products[i].ID < products[j].ID
		}
		return products[i].CreatedAt.Before(products[j].CreatedAt)
	})
	return products, nil
}

func (v productView) Update(_ context.Context, product catalog.Product) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.products[product.ID]; !ok {
		return catalog.ErrNotFound
	}
	v.m.products[product.ID] = product
	return nil
}

func (v productView) Delete(_ context.Context, id string) error {
	v.m.mu.Lock()
	defer v.m.mu.Unlock()
	if _, ok := v.m.products[id]; !ok {
		return catalog.ErrNotFound
	}
	delete(v.m.products, id)
	return nil
}
