package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

type UploadImageUseCase interface {
	Execute(ctx context.Context, uploadType string, file domain.ImageFile) (*port.StoredImage, error)
}

type DeleteImageUseCase interface {
	Execute(ctx context.Context, publicID string) error
}
