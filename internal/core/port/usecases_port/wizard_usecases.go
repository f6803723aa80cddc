package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type CreateDraftUseCase interface {
	Execute(ctx context.Context) (*domain.Draft, error)
}

type GetDraftUseCase interface {
	Execute(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
}

// DraftUpdate carries a partial form patch and option ids to toggle.
type DraftUpdate struct {
	Patch          domain.ListingFormPatch
	ToggleFeatures []string
	ToggleServices []string
}

type UpdateDraftUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, update DraftUpdate) (*domain.Draft, error)
}

type NavigationAction string

const (
	NavigateNext NavigationAction = "next"
	NavigateBack NavigationAction = "back"
	NavigateGoTo NavigationAction = "goto"
)

type NavigateDraftUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, action NavigationAction, step domain.Step) (*domain.Draft, error)
}

type AddDraftImagesUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, files []domain.ImageFile) (*domain.Draft, error)
}

type RemoveDraftImageUseCase interface {
	Execute(ctx context.Context, id uuid.UUID, imageID uuid.UUID) (*domain.Draft, error)
}
