package postgres_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresContentRepository keeps one JSONB document per site section.
type PostgresContentRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresContentRepository(pool *pgxpool.Pool) (*PostgresContentRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresContentRepository{pool: pool}, nil
}

func (r *PostgresContentRepository) Get(ctx context.Context, section domain.ContentSection) (json.RawMessage, time.Time, error) {
	var (
		data      []byte
		updatedAt time.Time
	)
	query := `SELECT data, updated_at FROM site_content WHERE section = $1`
	err := r.pool.QueryRow(ctx, query, string(section)).Scan(&data, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, time.Time{}, domain.ErrNotFound
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to read site content", err, port.Fields{
			"component": "PostgresContentRepository",
			"method":    "Get",
			"section":   section,
		})
		return nil, time.Time{}, fmt.Errorf("failed to read site content: %w", err)
	}
	return json.RawMessage(data), updatedAt, nil
}

func (r *PostgresContentRepository) Upsert(ctx context.Context, section domain.ContentSection, data json.RawMessage, at time.Time) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresContentRepository",
		"method":    "Upsert",
		"section":   section,
	})

	query := `INSERT INTO site_content (section, data, updated_at) VALUES ($1, $2, $3)
		ON CONFLICT (section) DO UPDATE SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at`
	if _, err := r.pool.Exec(ctx, query, string(section), []byte(data), at); err != nil {
		repoLogger.Error("Failed to upsert site content", err, port.Fields{"query": query})
		return fmt.Errorf("failed to upsert site content: %w", err)
	}
	repoLogger.Info("Site content saved.", nil)
	return nil
}
