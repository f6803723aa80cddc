package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type ListProductsUseCase interface {
	Execute(ctx context.Context, onlyActive bool) ([]domain.Product, error)
}

type GetProductUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, onlyActive bool) (*domain.Product, error)
}

type SaveProductUseCase interface {
	Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error)
	Update(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error)
}

type DeleteProductUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) error
}

type PlaceOrderUseCase interface {
	Execute(ctx context.Context, productID uuid.UUID, in domain.OrderInput) (*domain.ProductOrder, error)
}

type ListOrdersUseCase interface {
	Execute(ctx context.Context, limit, offset int) ([]domain.ProductOrder, int, error)
}
