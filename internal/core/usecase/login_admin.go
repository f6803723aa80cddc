package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

type LoginAdminUseCase struct {
	userRepo       port.UserRepositoryPort
	tokenSvc       port.TokenServicePort
	hasher         port.PasswordHasherPort
	accessTokenTTL time.Duration
}

func NewLoginAdminUseCase(userRepo port.UserRepositoryPort, tokenSvc port.TokenServicePort, hasher port.PasswordHasherPort, accessTokenTTL time.Duration) *LoginAdminUseCase {
	return &LoginAdminUseCase{
		userRepo:       userRepo,
		tokenSvc:       tokenSvc,
		hasher:         hasher,
		accessTokenTTL: accessTokenTTL,
	}
}

// Execute reports an unknown account and a wrong password the same way.
func (uc *LoginAdminUseCase) Execute(ctx context.Context, email, password string) (*domain.User, string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "LoginAdmin",
		"email":    email,
	})
	ucLogger.Info("Use case started: attempting to login admin", nil)

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		ucLogger.Error("Repository failed to find user by email", err, nil)
		return nil, "", fmt.Errorf("internal server error: %w", err)
	}
	if user == nil {
		ucLogger.Warn("Login failed: user not found", nil)
		return nil, "", domain.ErrInvalidCredentials
	}

	ucLogger = ucLogger.WithFields(port.Fields{"user_id": user.ID.String()})
	if !uc.hasher.Compare(user.PasswordHash, password) {
		ucLogger.Warn("Login failed: invalid credentials", nil)
		return nil, "", domain.ErrInvalidCredentials
	}
	if user.Role != domain.RoleAdmin {
		ucLogger.Warn("Login failed: not an admin", nil)
		return nil, "", domain.ErrForbidden
	}

	token, err := uc.tokenSvc.GenerateToken(ctx, user, uc.accessTokenTTL)
	if err != nil {
		ucLogger.Error("Failed to generate token after successful login", err, nil)
		return nil, "", err
	}

	ucLogger.Info("Use case finished: admin logged in successfully", nil)
	return user, token, nil
}
