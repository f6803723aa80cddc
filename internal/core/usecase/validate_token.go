package usecase

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

type ValidateTokenUseCase struct {
	tokenSvc port.TokenServicePort
}

func NewValidateTokenUseCase(tokenSvc port.TokenServicePort) *ValidateTokenUseCase {
	return &ValidateTokenUseCase{tokenSvc: tokenSvc}
}

func (uc *ValidateTokenUseCase) Execute(ctx context.Context, token string) (*domain.Claims, error) {
	if token == "" {
		return nil, domain.ErrTokenInvalid
	}
	claims, err := uc.tokenSvc.ValidateToken(ctx, token)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Debug("Token rejected", port.Fields{
			"use_case": "ValidateToken",
			"reason":   err.Error(),
		})
		return nil, err
	}
	return claims, nil
}

type GetCurrentUserUseCase struct {
	userRepo port.UserRepositoryPort
}

func NewGetCurrentUserUseCase(userRepo port.UserRepositoryPort) *GetCurrentUserUseCase {
	return &GetCurrentUserUseCase{userRepo: userRepo}
}

func (uc *GetCurrentUserUseCase) Execute(ctx context.Context, claims *domain.Claims) (*domain.User, error) {
	if claims == nil {
		return nil, domain.ErrTokenInvalid
	}
	return uc.userRepo.FindByID(ctx, claims.UserID)
}
