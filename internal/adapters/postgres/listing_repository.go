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
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	checkViolation      = "23514"
)

func pgErrCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool { return pgErrCode(err) == uniqueViolation }

// PostgresListingRepository stores submitted listing requests.
type PostgresListingRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresListingRepository(pool *pgxpool.Pool) (*PostgresListingRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresListingRepository{pool: pool}, nil
}

func (r *PostgresListingRepository) Create(ctx context.Context, req *domain.ListingRequest) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "Create",
		"request_id": req.RequestID,
	})

	form, err := json.Marshal(req.Form)
	if err != nil {
		return fmt.Errorf("failed to encode listing form: %w", err)
	}
	images, err := json.Marshal(stripPreviews(req.Images))
	if err != nil {
		return fmt.Errorf("failed to encode listing images: %w", err)
	}

	query := `INSERT INTO listing_requests (id, request_id, form, images, status, channel, admin_note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err = r.pool.Exec(ctx, query,
		req.ID, req.RequestID, form, images, string(req.Status), req.Channel, req.AdminNote, req.CreatedAt, req.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			repoLogger.Warn("Listing request already exists.", nil)
			return domain.ErrAlreadyExists
		}
		repoLogger.Error("Failed to insert listing request", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert listing request: %w", err)
	}

	repoLogger.Debug("Listing request stored.", nil)
	return nil
}

// stripPreviews drops the inline thumbnails; the stored URL is what reviewers use.
func stripPreviews(images []domain.ListingImage) []domain.ListingImage {
	out := make([]domain.ListingImage, len(images))
	for i, img := range images {
		img.PreviewDataURL = ""
		out[i] = img
	}
	return out
}

const listingColumns = `id, request_id, form, images, status, channel, admin_note, created_at, updated_at`

func scanListing(row pgx.Row) (*domain.ListingRequest, error) {
	var (
		req    domain.ListingRequest
		form   []byte
		images []byte
		status string
	)
	if err := row.Scan(&req.ID, &req.RequestID, &form, &images, &status, &req.Channel, &req.AdminNote, &req.CreatedAt, &req.UpdatedAt); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(form, &req.Form); err != nil {
		return nil, fmt.Errorf("failed to decode listing form: %w", err)
	}
	if err := json.Unmarshal(images, &req.Images); err != nil {
		return nil, fmt.Errorf("failed to decode listing images: %w", err)
	}
	req.Status = domain.ListingStatus(status)
	return &req, nil
}

func (r *PostgresListingRepository) FindByRequestID(ctx context.Context, requestID string) (*domain.ListingRequest, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "FindByRequestID",
		"request_id": requestID,
	})

	query := `SELECT ` + listingColumns + ` FROM listing_requests WHERE request_id = $1`
	req, err := scanListing(r.pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		repoLogger.Error("Failed to find listing request", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to find listing request: %w", err)
	}
	return req, nil
}

// buildListingListQuery returns the page query and its arguments.
// The total row count is carried on every row via a window function.
func buildListingListQuery(filter domain.ListingRequestFilter) (string, []interface{}) {
	query := `SELECT ` + listingColumns + `, COUNT(*) OVER() FROM listing_requests`
	args := []interface{}{}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" WHERE status = $%d", len(args))
	}
	args = append(args, filter.Limit, filter.Offset)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)-1, len(args))
	return query, args
}

func (r *PostgresListingRepository) List(ctx context.Context, filter domain.ListingRequestFilter) ([]domain.ListingRequest, int, error) {
	filter = filter.Normalize()
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresListingRepository",
		"method":    "List",
		"status":    filter.Status,
		"limit":     filter.Limit,
		"offset":    filter.Offset,
	})

	query, args := buildListingListQuery(filter)
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		repoLogger.Error("Failed to query listing requests", err, port.Fields{"query": query})
		return nil, 0, fmt.Errorf("failed to query listing requests: %w", err)
	}
	defer rows.Close()

	items := make([]domain.ListingRequest, 0, filter.Limit)
	total := 0
	for rows.Next() {
		var (
			req    domain.ListingRequest
			form   []byte
			images []byte
			status string
		)
		if err := rows.Scan(&req.ID, &req.RequestID, &form, &images, &status, &req.Channel, &req.AdminNote, &req.CreatedAt, &req.UpdatedAt, &total); err != nil {
			repoLogger.Error("Failed to scan listing request row", err, nil)
			return nil, 0, fmt.Errorf("failed to scan listing request: %w", err)
		}
		if err := json.Unmarshal(form, &req.Form); err != nil {
			return nil, 0, fmt.Errorf("failed to decode listing form: %w", err)
		}
		if err := json.Unmarshal(images, &req.Images); err != nil {
			return nil, 0, fmt.Errorf("failed to decode listing images: %w", err)
		}
		req.Status = domain.ListingStatus(status)
		items = append(items, req)
	}
	if err := rows.Err(); err != nil {
		repoLogger.Error("Error during listing requests iteration", err, nil)
		return nil, 0, fmt.Errorf("error during listing requests iteration: %w", err)
	}

	// OFFSET past the end yields no rows and therefore no count.
	if len(items) == 0 && filter.Offset > 0 {
		countQuery := `SELECT COUNT(*) FROM listing_requests`
		countArgs := []interface{}{}
		if filter.Status != "" {
			countQuery += ` WHERE status = $1`
			countArgs = append(countArgs, string(filter.Status))
		}
		if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
			repoLogger.Error("Failed to count listing requests", err, port.Fields{"query": countQuery})
			return nil, 0, fmt.Errorf("failed to count listing requests: %w", err)
		}
	}

	repoLogger.Debug("Listing requests fetched.", port.Fields{"found_on_page": len(items), "total": total})
	return items, total, nil
}

func (r *PostgresListingRepository) UpdateStatus(ctx context.Context, requestID string, status domain.ListingStatus, note string, at time.Time) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresListingRepository",
		"method":     "UpdateStatus",
		"request_id": requestID,
		"status":     status,
	})

	query := `UPDATE listing_requests SET status = $2, admin_note = $3, updated_at = $4 WHERE request_id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, requestID, string(status), note, at)
	if err != nil {
		repoLogger.Error("Failed to update listing status", err, port.Fields{"query": query})
		return fmt.Errorf("failed to update listing status: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}

	repoLogger.Info("Listing status updated.", nil)
	return nil
}
