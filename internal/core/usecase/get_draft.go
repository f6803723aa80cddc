package usecase

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

type GetDraftUseCase struct {
	drafts port.DraftStorePort
}

func NewGetDraftUseCase(drafts port.DraftStorePort) *GetDraftUseCase {
	return &GetDraftUseCase{drafts: drafts}
}

func (uc *GetDraftUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	return uc.drafts.Get(ctx, id)
}
