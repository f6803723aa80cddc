package contextkeys

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

type claimsKeyType struct{}

var claimsKey = claimsKeyType{}

// ContextWithClaims stores the authenticated admin's claims in ctx.
func ContextWithClaims(ctx context.Context, claims *domain.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

// ClaimsFromContext returns the claims placed by the auth middleware, if any.
func ClaimsFromContext(ctx context.Context) (*domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*domain.Claims)
	return claims, ok && claims != nil
}
