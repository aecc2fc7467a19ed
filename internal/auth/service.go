package auth

import (
	"context"
	"errors"
	"time"

	"github.com/vendomat/vendomat/internal/account"
	"github.com/vendomat/vendomat/internal/config"
)

// Service issues and refreshes access tokens for registered accounts.
type Service struct {
	cfg      config.Config
	accounts *account.Service
}

// NewService builds an auth service instance.
func NewService(cfg config.Config, accounts *account.Service) *Service {
	return &Service{cfg: cfg, accounts: accounts}
}

// TokenPair bundles the tokens returned after login.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Login issues an access/refresh token pair for an authenticated account.
// The role claim is what the middleware layer enforces buyer/seller rules on.
func (s *Service) Login(acct account.Account) (TokenPair, error) {
	access, accessExp, err := s.sign(acct, s.cfg.JWTSecret, s.cfg.AccessTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, _, err := s.sign(acct, s.cfg.RefreshSecret, s.cfg.RefreshTokenTTL)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    int64(time.Until(accessExp).Seconds()),
	}, nil
}

func (s *Service) sign(acct account.Account, secret string, ttl time.Duration) (string, time.Time, error) {
	now := time.Now()
	exp := now.Add(ttl)
	claims := map[string]any{
		"sub":      acct.ID,
		"username": acct.Username,
		"role":     acct.Role,
		"iat":      now.Unix(),
		"exp":      exp.Unix(),
	}
	signed, err := SignHS256(claims, []byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Refresh verifies the refresh token and issues a new access token. The
// account is re-read so a changed or deleted account invalidates the token.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, int64, error) {
	claims, err := ParseAndVerifyHS256(refreshToken, []byte(s.cfg.RefreshSecret))
	if err != nil {
		return "", 0, errors.New("invalid refresh token")
	}
	sub, _ := claims["sub"].(string)

	acct, err := s.accounts.Get(ctx, sub)
	if err != nil {
		return "", 0, errors.New("account not found")
	}

	accessClaims := map[string]any{
		"sub":      acct.ID,
		"username": acct.Username,
		"role":     acct.Role,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.AccessTokenTTL).Unix(),
	}
	signed, err := SignHS256(accessClaims, []byte(s.cfg.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, int64(s.cfg.AccessTokenTTL.Seconds()), nil
}
