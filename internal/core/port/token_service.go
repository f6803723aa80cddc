package port

import (
	"context"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

type TokenServicePort interface {
	GenerateToken(ctx context.Context, user *domain.User, ttl time.Duration) (string, error)
	// ValidateToken returns the claims of a valid token or domain.ErrTokenInvalid.
	ValidateToken(ctx context.Context, tokenString string) (*domain.Claims, error)
}

type PasswordHasherPort interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
