package purchase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/catalog"
)

// PostgresStore applies buys inside a single database transaction with row
// locks on both records.
type PostgresStore struct {
	db *pgxpool.Pool
}

// NewPostgresStore builds a store backed by PostgreSQL.
func NewPostgresStore(db *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{db: db}
}

// Buy locks the product row, then the buyer row, validates against the locked
// state and updates both records before committing. The lock order is fixed so
// concurrent buys on the same product queue up instead of deadlocking.
func (s *PostgresStore) Buy(ctx context.Context, productID, buyerID string, amount int64) (Outcome, error) {
	prodID, err := uuid.Parse(productID)
	if err != nil {
		return Outcome{}, catalog.ErrNotFound
	}
	acctID, err := uuid.Parse(buyerID)
	if err != nil {
		return Outcome{}, account.ErrNotFound
	}

	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return Outcome{}, err
	}
	defer tx.Rollback(ctx) // nolint:errcheck

	var (
		product  catalog.Product
		prodUUID uuid.UUID
		sellerID uuid.UUID
	)
	row := tx.QueryRow(ctx, `SELECT id, name, stock, unit_cost, seller_id
        FROM products WHERE id = $1 FOR UPDATE`, prodID)
	if err := row.Scan(&prodUUID, &product.Name, &product.Stock, &product.UnitCost, &sellerID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Outcome{}, catalog.ErrNotFound
		}
		return Outcome{}, err
	}
	product.ID = prodUUID.String()
	product.SellerID = sellerID.String()

	var buyer account.Account
	if err := tx.QueryRow(ctx, `SELECT deposit FROM accounts WHERE id = $1 FOR UPDATE`, acctID).Scan(&buyer.Deposit); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Outcome{}, account.ErrNotFound
		}
		return Outcome{}, err
	}

	if err := Validate(product, buyer, amount); err != nil {
		return Outcome{}, err
	}

	totalSpent := amount * product.UnitCost
	remainder := buyer.Deposit - totalSpent

	if _, err := tx.Exec(ctx, `UPDATE accounts SET deposit = 0 WHERE id = $1`, acctID); err != nil {
		return Outcome{}, fmt.Errorf("clear buyer deposit: %w", err)
	}
	if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock - $1 WHERE id = $2`, amount, prodID); err != nil {
		return Outcome{}, fmt.Errorf("decrement stock: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return Outcome{}, err
	}

	return Outcome{
		TotalSpent:  totalSpent,
		ProductName: product.Name,
		SellerID:    product.SellerID,
		Remainder:   remainder,
	}, nil
}
