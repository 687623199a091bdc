package token

import (
	"context"
	"time"
)

type Token struct {
	Token     string
	Email     string
	ExpiresAt time.Time
}

type Repository interface {
	Create(ctx context.Context, t Token) error
	Get(ctx context.Context, token string) (*Token, error)
	Delete(ctx context.Context, token string) error
}
