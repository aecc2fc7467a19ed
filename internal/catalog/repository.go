package catalog

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound indicates the referenced product does not exist.
var ErrNotFound = errors.New("product not found")

// Repository persists products.
type Repository interface {
	Create(ctx context.Context, product Product) error
	Get(ctx context.Context, id string) (Product, error)
	List(ctx context.Context) ([]Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, id string) error
}

// PostgresRepository stores products in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts a product record.
func (r *PostgresRepository) Create(ctx context.Context, product Product) error {
	productID, err := uuid.Parse(product.ID)
	if err != nil {
		return err
	}
	sellerID, err := uuid.Parse(product.SellerID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO products (id, name, stock, unit_cost, seller_id, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, productID, product.Name, product.Stock, product.UnitCost, sellerID, product.CreatedAt.UTC())
	return err
}

// Get fetches a product by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Product, error) {
	productID, err := uuid.Parse(id)
	if err != nil {
		return Product{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, name, stock, unit_cost, seller_id, created_at
        FROM products WHERE id = $1`, productID)
	return scanProduct(row)
}

// List returns every listed product in listing order.
func (r *PostgresRepository) List(ctx context.Context) ([]Product, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, stock, unit_cost, seller_id, created_at
        FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// Update overwrites the mutable fields of a product record.
func (r *PostgresRepository) Update(ctx context.Context, product Product) error {
	productID, err := uuid.Parse(product.ID)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `UPDATE products SET name = $1, stock = $2, unit_cost = $3
        WHERE id = $4`, product.Name, product.Stock, product.UnitCost, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a product record.
func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	productID, err := uuid.Parse(id)
	if err != nil {
		return ErrNotFound
	}
	cmd, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, productID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var (
		product   Product
		productID uuid.UUID
		sellerID  uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&productID, &product.Name, &product.Stock, &product.UnitCost, &sellerID, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Product{}, ErrNotFound
		}
		return Product{}, err
	}
	product.ID = productID.String()
	product.SellerID = sellerID.String()
	product.CreatedAt = createdAt.UTC()
	return product, nil
}
