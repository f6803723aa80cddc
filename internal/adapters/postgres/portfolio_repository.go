package postgres_adapter

import (
	"context"
	"errors"
	"fmt"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresPortfolioRepository stores portfolio projects and their galleries.
type PostgresPortfolioRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresPortfolioRepository(pool *pgxpool.Pool) (*PostgresPortfolioRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresPortfolioRepository{pool: pool}, nil
}

const portfolioColumns = `id, title, slug, category, location, latitude, longitude, geohash, description, cover_image, featured, created_at, updated_at`

func scanPortfolioItem(row pgx.Row) (*domain.PortfolioItem, error) {
	var item domain.PortfolioItem
	err := row.Scan(&item.ID, &item.Title, &item.Slug, &item.Category, &item.Location,
		&item.Latitude, &item.Longitude, &item.Geohash, &item.Description, &item.CoverImage,
		&item.Featured, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	item.Images = []domain.PortfolioImage{}
	return &item, nil
}

func buildPortfolioListQuery(filter domain.PortfolioFilter) (string, []interface{}) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items`
	args := []interface{}{}
	where := ""
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(" category = $%d", len(args))
	}
	if filter.Featured != nil {
		if where != "" {
			where += " AND"
		}
		args = append(args, *filter.Featured)
		where += fmt.Sprintf(" featured = $%d", len(args))
	}
	if where != "" {
		query += " WHERE" + where
	}
	query += " ORDER BY featured DESC, created_at DESC"
	return query, args
}

func (r *PostgresPortfolioRepository) List(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPortfolioRepository",
		"method":    "List",
		"category":  filter.Category,
	})

	query, args := buildPortfolioListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query portfolio items", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query portfolio items: %w", err)
	}
	defer rows.Close()

	items := []domain.PortfolioItem{}
	index := map[uuid.UUID]int{}
	for rows.Next() {
		item, err := scanPortfolioItem(rows)
		if err != nil {
			repoLogger.Error("Failed to scan portfolio row", err, nil)
			return nil, fmt.Errorf("failed to scan portfolio item: %w", err)
		}
		index[item.ID] = len(items)
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during portfolio iteration: %w", err)
	}
	if len(items) == 0 {
		return items, nil
	}

	ids := make([]uuid.UUID, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ID)
	}
	images, err := r.imagesFor(ctx, ids)
	if err != nil {
		repoLogger.Error("Failed to load portfolio images", err, nil)
		return nil, err
	}
	for _, img := range images {
		i := index[img.ItemID]
		items[i].Images = append(items[i].Images, img)
	}
	return items, nil
}

func (r *PostgresPortfolioRepository) imagesFor(ctx context.Context, itemIDs []uuid.UUID) ([]domain.PortfolioImage, error) {
	query := `SELECT id, item_id, url, public_id, caption, sort_order FROM portfolio_images
		WHERE item_id = ANY($1) ORDER BY item_id, sort_order, id`
	rows, err := r.pool.Query(ctx, query, itemIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio images: %w", err)
	}
	defer rows.Close()

	var out []domain.PortfolioImage
	for rows.Next() {
		var img domain.PortfolioImage
		if err := rows.Scan(&img.ID, &img.ItemID, &img.URL, &img.PublicID, &img.Caption, &img.SortOrder); err != nil {
			return nil, fmt.Errorf("failed to scan portfolio image: %w", err)
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *PostgresPortfolioRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.PortfolioItem, error) {
	query := `SELECT ` + portfolioColumns + ` FROM portfolio_items WHERE id = $1`
	item, err := scanPortfolioItem(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to find portfolio item", err, port.Fields{
			"component": "PostgresPortfolioRepository",
			"method":    "FindByID",
			"item_id":   id,
		})
		return nil, fmt.Errorf("failed to find portfolio item: %w", err)
	}

	images, err := r.imagesFor(ctx, []uuid.UUID{id})
	if err != nil {
		return nil, err
	}
	if images != nil {
		item.Images = images
	}
	return item, nil
}

func (r *PostgresPortfolioRepository) Create(ctx context.Context, item *domain.PortfolioItem) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPortfolioRepository",
		"method":    "Create",
		"slug":      item.Slug,
	})

	query := `INSERT INTO portfolio_items (` + portfolioColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.pool.Exec(ctx, query, item.ID, item.Title, item.Slug, item.Category, item.Location,
		item.Latitude, item.Longitude, item.Geohash, item.Description, item.CoverImage,
		item.Featured, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		repoLogger.Error("Failed to insert portfolio item", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert portfolio item: %w", err)
	}
	return nil
}

func (r *PostgresPortfolioRepository) Update(ctx context.Context, item *domain.PortfolioItem) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPortfolioRepository",
		"method":    "Update",
		"item_id":   item.ID,
	})

	query := `UPDATE portfolio_items SET title = $2, slug = $3, category = $4, location = $5,
		latitude = $6, longitude = $7, geohash = $8, description = $9, cover_image = $10,
		featured = $11, updated_at = $12 WHERE id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, item.ID, item.Title, item.Slug, item.Category, item.Location,
		item.Latitude, item.Longitude, item.Geohash, item.Description, item.CoverImage,
		item.Featured, item.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		repoLogger.Error("Failed to update portfolio item", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update portfolio item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresPortfolioRepository) Delete(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM portfolio_items WHERE id = $1`, id)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete portfolio item", err, port.Fields{
			"component": "PostgresPortfolioRepository",
			"method":    "Delete",
			"item_id":   id,
		})
		return fmt.Errorf("failed to delete portfolio item: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// AddImage appends the image after the current last one of its project.
func (r *PostgresPortfolioRepository) AddImage(ctx context.Context, img *domain.PortfolioImage) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPortfolioRepository",
		"method":    "AddImage",
		"item_id":   img.ItemID,
	})

	query := `INSERT INTO portfolio_images (id, item_id, url, public_id, caption, sort_order)
		SELECT $1::uuid, $2::uuid, $3::text, $4::text, $5::text, COALESCE(MAX(sort_order) + 1, 0)
		FROM portfolio_images WHERE item_id = $2::uuid
		RETURNING sort_order`
	err := r.pool.QueryRow(ctx, query, img.ID, img.ItemID, img.URL, img.PublicID, img.Caption).Scan(&img.SortOrder)
	if err != nil {
		if pgErrCode(err) == foreignKeyViolation {
			return domain.ErrNotFound
		}
		repoLogger.Error("Failed to insert portfolio image", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert portfolio image: %w", err)
	}
	return nil
}

func (r *PostgresPortfolioRepository) FindImage(ctx context.Context, id uuid.UUID) (*domain.PortfolioImage, error) {
	var img domain.PortfolioImage
	query := `SELECT id, item_id, url, public_id, caption, sort_order FROM portfolio_images WHERE id = $1`
	err := r.pool.QueryRow(ctx, query, id).Scan(&img.ID, &img.ItemID, &img.URL, &img.PublicID, &img.Caption, &img.SortOrder)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find portfolio image: %w", err)
	}
	return &img, nil
}

func (r *PostgresPortfolioRepository) DeleteImage(ctx context.Context, id uuid.UUID) error {
	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM portfolio_images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete portfolio image: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PostgresPortfolioRepository) ReorderImages(ctx context.Context, itemID uuid.UUID, imageIDs []uuid.UUID) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresPortfolioRepository",
		"method":    "ReorderImages",
		"item_id":   itemID,
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE portfolio_images SET sort_order = $3 WHERE id = $1 AND item_id = $2`
	for pos, id := range imageIDs {
		cmdTag, err := tx.Exec(ctx, query, id, itemID, pos)
		if err != nil {
			repoLogger.Error("Failed to update image order", err, port.Fields{"image_id": id})
			return fmt.Errorf("failed to update image order: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			repoLogger.Warn("Image does not belong to project.", port.Fields{"image_id": id})
			return domain.ErrImageNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	repoLogger.Debug("Images reordered.", port.Fields{"count": len(imageIDs)})
	return nil
}
