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

// PostgresProductRepository stores storefront products and their orders.
type PostgresProductRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresProductRepository(pool *pgxpool.Pool) (*PostgresProductRepository, error) {
	if pool == nil {
		return nil, fmt.Errorf("pgxpool.Pool cannot be nil")
	}
	return &PostgresProductRepository{pool: pool}, nil
}

const productColumns = `id, name, slug, description, price, currency, image_url, stock, active, created_at, updated_at`

func scanProduct(row pgx.Row) (*domain.Product, error) {
	var p domain.Product
	err := row.Scan(&p.ID, &p.Name, &p.Slug, &p.Description, &p.Price, &p.Currency,
		&p.ImageURL, &p.Stock, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostgresProductRepository) List(ctx context.Context, onlyActive bool) ([]domain.Product, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "PostgresProductRepository",
		"method":      "List",
		"only_active": onlyActive,
	})

	query := `SELECT ` + productColumns + ` FROM products`
	if onlyActive {
		query += ` WHERE active`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		repoLogger.Error("Failed to query products", err, port.Fields{"query": query})
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			repoLogger.Error("Failed to scan product row", err, nil)
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during products iteration: %w", err)
	}
	return products, nil
}

func (r *PostgresProductRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1`
	p, err := scanProduct(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to find product", err, port.Fields{
			"component":  "PostgresProductRepository",
			"method":     "FindByID",
			"product_id": id,
		})
		return nil, fmt.Errorf("failed to find product: %w", err)
	}
	return p, nil
}

func (r *PostgresProductRepository) Create(ctx context.Context, p *domain.Product) error {
	query := `INSERT INTO products (` + productColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Slug, p.Description, p.Price, p.Currency,
		p.ImageURL, p.Stock, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to insert product", err, port.Fields{
			"component": "PostgresProductRepository",
			"method":    "Create",
			"slug":      p.Slug,
		})
		return fmt.Errorf("failed to insert product: %w", err)
	}
	return nil
}

func (r *PostgresProductRepository) Update(ctx context.Context, p *domain.Product) error {
	query := `UPDATE products SET name = $2, slug = $3, description = $4, price = $5, currency = $6,
		image_url = $7, stock = $8, active = $9, updated_at = $10 WHERE id = $1`
	cmdTag, err := r.pool.Exec(ctx, query, p.ID, p.Name, p.Slug, p.Description, p.Price, p.Currency,
		p.ImageURL, p.Stock, p.Active, p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyExists
		}
		contextkeys.LoggerFromContext(ctx).Error("Failed to update product", err, port.Fields{
			"component":  "PostgresProductRepository",
			"method":     "Update",
			"product_id": p.ID,
		})
		return fmt.Errorf("failed to update product: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes a product. Products that already have orders are deactivated instead.
func (r *PostgresProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresProductRepository",
		"method":     "Delete",
		"product_id": id,
	})

	cmdTag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if pgErrCode(err) != foreignKeyViolation {
			repoLogger.Error("Failed to delete product", err, nil)
			return fmt.Errorf("failed to delete product: %w", err)
		}
		repoLogger.Info("Product has orders, deactivating instead.", nil)
		cmdTag, err = r.pool.Exec(ctx, `UPDATE products SET active = false, updated_at = now() WHERE id = $1`, id)
		if err != nil {
			repoLogger.Error("Failed to deactivate product", err, nil)
			return fmt.Errorf("failed to deactivate product: %w", err)
		}
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// PlaceOrder locks the product row, checks and decrements stock and inserts
// the order in one transaction. order.Total is computed from the locked price.
func (r *PostgresProductRepository) PlaceOrder(ctx context.Context, order *domain.ProductOrder) error {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "PostgresProductRepository",
		"method":     "PlaceOrder",
		"product_id": order.ProductID,
		"quantity":   order.Quantity,
	})

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		repoLogger.Error("Failed to begin transaction", err, nil)
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	var (
		price  int64
		stock  int
		active bool
	)
	err = tx.QueryRow(ctx, `SELECT price, stock, active FROM products WHERE id = $1 FOR UPDATE`, order.ProductID).
		Scan(&price, &stock, &active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrNotFound
		}
		repoLogger.Error("Failed to lock product", err, nil)
		return fmt.Errorf("failed to lock product: %w", err)
	}
	if !active {
		return domain.ErrProductInactive
	}
	if stock < order.Quantity {
		repoLogger.Warn("Not enough stock.", port.Fields{"stock": stock})
		return domain.ErrInsufficientStock
	}

	if _, err := tx.Exec(ctx, `UPDATE products SET stock = stock - $2, updated_at = $3 WHERE id = $1`,
		order.ProductID, order.Quantity, order.CreatedAt); err != nil {
		if pgErrCode(err) == checkViolation {
			return domain.ErrInsufficientStock
		}
		repoLogger.Error("Failed to decrement stock", err, nil)
		return fmt.Errorf("failed to decrement stock: %w", err)
	}

	order.Total = price * int64(order.Quantity)
	query := `INSERT INTO product_orders (id, product_id, quantity, total, name, phone, email, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := tx.Exec(ctx, query, order.ID, order.ProductID, order.Quantity, order.Total,
		order.Name, order.Phone, order.Email, order.Notes, string(order.Status), order.CreatedAt); err != nil {
		repoLogger.Error("Failed to insert order", err, port.Fields{"query": query})
		return fmt.Errorf("failed to insert order: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		repoLogger.Error("Failed to commit transaction", err, nil)
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	repoLogger.Info("Order placed.", port.Fields{"order_id": order.ID, "total": order.Total})
	return nil
}

func (r *PostgresProductRepository) ListOrders(ctx context.Context, limit, offset int) ([]domain.ProductOrder, int, error) {
	repoLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "PostgresProductRepository",
		"method":    "ListOrders",
		"limit":     limit,
		"offset":    offset,
	})

	var total int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM product_orders`).Scan(&total); err != nil {
		repoLogger.Error("Failed to count orders", err, nil)
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	orders := []domain.ProductOrder{}
	if total == 0 {
		return orders, 0, nil
	}

	query := `SELECT id, product_id, quantity, total, name, phone, email, notes, status, created_at
		FROM product_orders ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, limit, offset)
	if err != nil {
		repoLogger.Error("Failed to query orders", err, port.Fields{"query": query})
		return nil, 0, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			o      domain.ProductOrder
			status string
		)
		if err := rows.Scan(&o.ID, &o.ProductID, &o.Quantity, &o.Total, &o.Name, &o.Phone,
			&o.Email, &o.Notes, &status, &o.CreatedAt); err != nil {
			repoLogger.Error("Failed to scan order row", err, nil)
			return nil, 0, fmt.Errorf("failed to scan order: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error during orders iteration: %w", err)
	}
	return orders, total, nil
}
