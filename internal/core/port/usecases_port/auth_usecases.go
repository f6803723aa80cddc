package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

type LoginAdminUseCase interface {
	Execute(ctx context.Context, email, password string) (*domain.User, string, error)
}

type ValidateTokenUseCase interface {
	Execute(ctx context.Context, token string) (*domain.Claims, error)
}

type GetCurrentUserUseCase interface {
	Execute(ctx context.Context, claims *domain.Claims) (*domain.User, error)
}
