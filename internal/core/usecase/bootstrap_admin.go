package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

const minAdminPasswordLen = 8

// BootstrapAdminUseCase creates the configured back-office account when it is missing.
type BootstrapAdminUseCase struct {
	userRepo port.UserRepositoryPort
	hasher   port.PasswordHasherPort
}

func NewBootstrapAdminUseCase(userRepo port.UserRepositoryPort, hasher port.PasswordHasherPort) *BootstrapAdminUseCase {
	return &BootstrapAdminUseCase{userRepo: userRepo, hasher: hasher}
}

// Execute returns true when an account was created.
func (uc *BootstrapAdminUseCase) Execute(ctx context.Context, email, password string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "BootstrapAdmin",
		"email":    email,
	})
	if email == "" || password == "" {
		ucLogger.Info("No admin credentials configured, skipping bootstrap", nil)
		return false, nil
	}
	if len(password) < minAdminPasswordLen {
		return false, fmt.Errorf("admin password must be at least %d characters", minAdminPasswordLen)
	}

	existing, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		ucLogger.Debug("Admin already exists", nil)
		return false, nil
	}

	hash, err := uc.hasher.Hash(password)
	if err != nil {
		return false, fmt.Errorf("failed to hash admin password: %w", err)
	}
	user := &domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		// another instance won the race
		if errors.Is(err, domain.ErrAlreadyExists) {
			return false, nil
		}
		return false, err
	}
	ucLogger.Info("Admin account created", port.Fields{"user_id": user.ID})
	return true, nil
}
