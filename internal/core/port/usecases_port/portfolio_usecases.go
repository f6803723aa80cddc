package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type ListPortfolioUseCase interface {
	Execute(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error)
}

type GetPortfolioItemUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.PortfolioItem, error)
}

type CreatePortfolioItemUseCase interface {
	Execute(ctx context.Context, in domain.PortfolioInput) (*domain.PortfolioItem, error)
}

type UpdatePortfolioItemUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, in domain.PortfolioInput) (*domain.PortfolioItem, error)
}

type DeletePortfolioItemUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) error
}

type AddPortfolioImageUseCase interface {
	Execute(ctx context.Context, in domain.PortfolioImageInput) (*domain.PortfolioImage, error)
}

type ReorderPortfolioImagesUseCase interface {
	Execute(ctx context.Context, itemID uuid.UUID, imageIDs []uuid.UUID) (*domain.PortfolioItem, error)
}

type DeletePortfolioImageUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) error
}
