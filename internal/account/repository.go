package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	// ErrNotFound indicates the referenced account does not exist.
	ErrNotFound = errors.New("account not found")
	// ErrUsernameTaken indicates the username is already registered.
	ErrUsernameTaken = errors.New("username already taken")
)

// Repository persists accounts. Deposit mutations are store operations rather
// than read-modify-write on the caller side so each backend can apply them
// atomically against concurrent purchases.
type Repository interface {
	Create(ctx context.Context, acct Account) error
	Get(ctx context.Context, id string) (Account, error)
	FindByUsername(ctx context.Context, username string) (Account, error)
	AddDeposit(ctx context.Context, id string, amount int64) (Account, error)
	ResetDeposit(ctx context.Context, id string) (Account, error)
}

// PostgresRepository stores accounts in PostgreSQL.
type PostgresRepository struct {
	db *pgxpool.Pool
}

// NewPostgresRepository builds a repository backed by PostgreSQL.
func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Create inserts an account record.
func (r *PostgresRepository) Create(ctx context.Context, acct Account) error {
	acctID, err := uuid.Parse(acct.ID)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `INSERT INTO accounts (id, username, role, password_hash, deposit, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)`, acctID, acct.Username, acct.Role, acct.PasswordHash, acct.Deposit, acct.CreatedAt.UTC())
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return err
}

// Get fetches an account by identifier.
func (r *PostgresRepository) Get(ctx context.Context, id string) (Account, error) {
	acctID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `SELECT id, username, role, password_hash, deposit, created_at
        FROM accounts WHERE id = $1`, acctID)
	return scanAccount(row)
}

// FindByUsername fetches an account by its unique username.
func (r *PostgresRepository) FindByUsername(ctx context.Context, username string) (Account, error) {
	row := r.db.QueryRow(ctx, `SELECT id, username, role, password_hash, deposit, created_at
        FROM accounts WHERE username = $1`, username)
	return scanAccount(row)
}

// AddDeposit accumulates amount onto the stored deposit in a single statement,
// so a concurrent purchase on the same account cannot interleave with it.
func (r *PostgresRepository) AddDeposit(ctx context.Context, id string, amount int64) (Account, error) {
	acctID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE accounts SET deposit = deposit + $1 WHERE id = $2
        RETURNING id, username, role, password_hash, deposit, created_at`, amount, acctID)
	return scanAccount(row)
}

// ResetDeposit zeroes the stored deposit unconditionally.
func (r *PostgresRepository) ResetDeposit(ctx context.Context, id string) (Account, error) {
	acctID, err := uuid.Parse(id)
	if err != nil {
		return Account{}, ErrNotFound
	}
	row := r.db.QueryRow(ctx, `UPDATE accounts SET deposit = 0 WHERE id = $1
        RETURNING id, username, role, password_hash, deposit, created_at`, acctID)
	return scanAccount(row)
}

func scanAccount(row pgx.Row) (Account, error) {
	var (
		acct      Account
		acctID    uuid.UUID
		createdAt time.Time
	)
	if err := row.Scan(&acctID, &acct.Username, &acct.Role, &acct.PasswordHash, &acct.Deposit, &createdAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Account{}, ErrNotFound
		}
		return Account{}, err
	}
	acct.ID = acctID.String()
	acct.CreatedAt = createdAt.UTC()
	return acct, nil
}
