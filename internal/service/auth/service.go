package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"strings"
	"time"

	"storefront/internal/domain"
	tokenrepo "storefront/internal/repository/token"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials is returned when email/password do not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidToken indicates the provided token could not be validated.
	ErrInvalidToken = errors.New("invalid token")
)

// Service authenticates the single configured administrator and manages
// bearer tokens for the admin surface.
type Service struct {
	email        string
	passwordHash []byte
	tokens       tokenrepo.Repository
	tokenTTL     time.Duration
}

// New hashes the configured admin password once at startup.
func New(email, password string, tokens tokenrepo.Repository) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Service{
		email:        strings.TrimSpace(strings.ToLower(email)),
		passwordHash: hash,
		tokens:       tokens,
		tokenTTL:     48 * time.Hour,
	}, nil
}

// Login verifies the admin credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || email != s.email {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	expiresAt := time.Now().Add(s.tokenTTL)
	for i := 0; i < 5; i++ {
		tok, err := randomToken()
		if err != nil {
			return "", err
		}
		err = s.tokens.Create(ctx, tokenrepo.Token{Token: tok, Email: email, ExpiresAt: expiresAt})
		if err == nil {
			return tok, nil
		}
		if errors.Is(err, domain.ErrAlreadyExists) {
			continue
		}
		return "", err
	}
	return "", errors.New("token collision")
}

// Validate checks a bearer token and returns the admin email it belongs to.
func (s *Service) Validate(ctx context.Context, tok string) (string, error) {
	if strings.TrimSpace(tok) == "" {
		return "", ErrInvalidToken
	}
	meta, err := s.tokens.Get(ctx, tok)
	if err != nil {
		return "", ErrInvalidToken
	}
	if time.Now().After(meta.ExpiresAt) {
		_ = s.tokens.Delete(ctx, tok)
		return "", ErrInvalidToken
	}
	return meta.Email, nil
}

// Logout revokes a token. Revoking an unknown token is not an error.
func (s *Service) Logout(ctx context.Context, tok string) error {
	return s.tokens.Delete(ctx, tok)
}

func randomToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
