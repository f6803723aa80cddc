package port

import (
	"context"
	"encoding/json"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// ListingRepositoryPort stores submitted listing requests.
type ListingRepositoryPort interface {
	Create(ctx context.Context, req *domain.ListingRequest) error
	FindByRequestID(ctx context.Context, requestID string) (*domain.ListingRequest, error)
	List(ctx context.Context, filter domain.ListingRequestFilter) ([]domain.ListingRequest, int, error)
	UpdateStatus(ctx context.Context, requestID string, status domain.ListingStatus, note string, at time.Time) error
}

// ContentRepositoryPort stores CMS sections as raw JSON. Get returns
// domain.ErrNotFound when the section was never saved.
type ContentRepositoryPort interface {
	Get(ctx context.Context, section domain.ContentSection) (json.RawMessage, time.Time, error)
	Upsert(ctx context.Context, section domain.ContentSection, data json.RawMessage, at time.Time) error
}

type PortfolioRepositoryPort interface {
	List(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.PortfolioItem, error)
	Create(ctx context.Context, item *domain.PortfolioItem) error
	Update(ctx context.Context, item *domain.PortfolioItem) error
	Delete(ctx context.Context, id uuid.UUID) error

	AddImage(ctx context.Context, img *domain.PortfolioImage) error
	FindImage(ctx context.Context, id uuid.UUID) (*domain.PortfolioImage, error)
	DeleteImage(ctx context.Context, id uuid.UUID) error
	// ReorderImages assigns sort_order by position in imageIDs.
	ReorderImages(ctx context.Context, itemID uuid.UUID, imageIDs []uuid.UUID) error
}

type ProductRepositoryPort interface {
	List(ctx context.Context, onlyActive bool) ([]domain.Product, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id uuid.UUID) error

	// PlaceOrder reserves stock and stores the order atomically.
	PlaceOrder(ctx context.Context, order *domain.ProductOrder) error
	ListOrders(ctx context.Context, limit, offset int) ([]domain.ProductOrder, int, error)
}

// UserRepositoryPort stores back-office users. FindByEmail returns (nil, nil)
// when nobody matches.
type UserRepositoryPort interface {
	Create(ctx context.Context, user *domain.User) error
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}
