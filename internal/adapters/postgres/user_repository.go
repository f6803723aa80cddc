package postgres_adapter

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresUserRepository stores back-office accounts.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepository(pool *pgxpool.Pool) (*PostgresUserRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresUserRepository{pool: pool}, nil
}

func (r *PostgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresUserRepository",
		"method":    "Create",
		"email":     user.Email,
	})

	query := `INSERT INTO users (id, email, password_hash, role, created_at) VALUES ($1, $2, $3, $4, $5)`
	_, err := r.pool.Exec(ctx, query, user.ID, strings.ToLower(user.Email), user.PasswordHash, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			repoLogger.Warn("User with this email already exists.", nil)
			return domain.ErrAlreadyExists
		}
		repoLogger.Error("Failed to insert user", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// FindByEmail returns nil, nil when no account matches.
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	query := `SELECT id, email, password_hash, role, created_at FROM users WHERE email = $1`
	err := r.pool.QueryRow(ctx, query, strings.ToLower(email)).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to find user by email", err, port.Fields{
			"component": "PostgresUserRepository",
			"method":    "FindByEmail",
		})
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &u, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	query := `SELECT id, email, password_hash, role, created_at FROM users WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &u, nil
}
