package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

type ListListingRequestsUseCase interface {
	Execute(ctx context.Context, filter domain.ListingRequestFilter) ([]domain.ListingRequest, int, error)
}

type GetListingRequestUseCase interface {
	Execute(ctx context.Context, requestID string) (*domain.ListingRequest, error)
}

type UpdateListingStatusUseCase interface {
	Execute(ctx context.Context, requestID string, status domain.ListingStatus, note string) (*domain.ListingRequest, error)
}
