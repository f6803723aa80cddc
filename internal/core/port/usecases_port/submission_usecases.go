package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type SubmitDraftUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.ListingRequest, error)
}

type SubmitListingUseCase interface {
	Execute(ctx context.Context, form domain.ListingForm, files []domain.ImageFile) (*domain.ListingRequest, error)
}

type NotifySubmissionUseCase interface {
	Execute(ctx context.Context, event domain.PropertySubmittedEvent) error
}
