package account

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/vendomat/vendomat/internal/money"
)

var (
	// ErrInvalidDenomination rejects a deposit that is not a coin the machine accepts.
	ErrInvalidDenomination = errors.New("deposit must be one of the accepted coins")
	// ErrInvalidRole rejects registration with an unknown role.
	ErrInvalidRole = errors.New("role must be buyer or seller")
	// ErrInvalidCredentials hides whether the username or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service manages account lifecycle and the coin deposit ledger.
type Service struct {
	repo Repository
}

// NewService builds an account service instance.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// RegisterInput captures data required to create an account.
type RegisterInput struct {
	Username string
	Password string
	Role     string
}

// Register creates an account with a hashed password and an empty deposit.
func (s *Service) Register(ctx context.Context, input RegisterInput) (Account, error) {
	if input.Username == "" {
		return Account{}, errors.New("username is required")
	}
	if len(input.Password) < 4 {
		return Account{}, errors.New("password must be at least 4 characters")
	}
	if input.Role != RoleBuyer && input.Role != RoleSeller {
		return Account{}, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return Account{}, err
	}

	acct := Account{
		ID:           uuid.New().String(),
		Username:     input.Username,
		Role:         input.Role,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, acct); err != nil {
		return Account{}, err
	}

	return acct, nil
}

// Authenticate verifies a username/password pair.
func (s *Service) Authenticate(ctx context.Context, username, password string) (Account, error) {
	acct, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		return Account{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(acct.PasswordHash, []byte(password)); err != nil {
		return Account{}, ErrInvalidCredentials
	}
	return acct, nil
}

// Get retrieves an account by identifier.
func (s *Service) Get(ctx context.Context, id string) (Account, error) {
	return s.repo.Get(ctx, id)
}

// Deposit adds one inserted coin to the account balance. Only listed coin
// values pass; anything else is rejected before any state changes. The amount
// always accumulates onto the current deposit, never replaces it.
func (s *Service) Deposit(ctx context.Context, id string, amount int64) (Account, error) {
	if !money.ValidDeposit(amount) {
		return Account{}, ErrInvalidDenomination
	}
	return s.repo.AddDeposit(ctx, id, amount)
}

// Reset returns the account deposit to zero. Idempotent.
func (s *Service) Reset(ctx context.Context, id string) (Account, error) {
	return s.repo.ResetDeposit(ctx, id)
}
