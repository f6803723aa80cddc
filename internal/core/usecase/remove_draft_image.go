package usecase

import (
	"context"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

type RemoveDraftImageUseCase struct {
	drafts  port.DraftStorePort
	storage port.ImageStoragePort
}

func NewRemoveDraftImageUseCase(drafts port.DraftStorePort, storage port.ImageStoragePort) *RemoveDraftImageUseCase {
	return &RemoveDraftImageUseCase{drafts: drafts, storage: storage}
}

// Execute deletes the stored asset first; the draft keeps the image if that fails.
func (uc *RemoveDraftImageUseCase) Execute(ctx context.Context, id uuid.UUID, imageID uuid.UUID) (*domain.Draft, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "RemoveDraftImage",
		"draft_id": id,
		"image_id": imageID,
	})

	draft, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	removed, err := draft.RemoveImage(imageID, time.Now())
	if err != nil {
		return nil, err
	}

	if removed.PublicID != "" {
		if err := uc.storage.Delete(ctx, removed.PublicID); err != nil {
			ucLogger.Error("Failed to delete image asset", err, port.Fields{"public_id": removed.PublicID})
			return nil, err
		}
	}

	if err := uc.drafts.Save(ctx, draft); err != nil {
		ucLogger.Error("Failed to store draft", err, nil)
		return nil, err
	}
	ucLogger.Info("Image removed from draft", nil)
	return draft, nil
}
