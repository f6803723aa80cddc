package usecases_port

import (
	"context"
	"encoding/json"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

type GetContentUseCase interface {
	Execute(ctx context.Context, section domain.ContentSection) (*domain.Content, error)
}

type UpdateContentUseCase interface {
	Execute(ctx context.Context, section domain.ContentSection, body json.RawMessage) (*domain.Content, error)
}
