package usecase

import (
	"context"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

type AddDraftImagesUseCase struct {
	drafts port.DraftStorePort
	intake *imageIntake
}

func NewAddDraftImagesUseCase(
	drafts port.DraftStorePort,
	processor port.ImageProcessorPort,
	storage port.ImageStoragePort,
	metrics port.MetricsPort,
	cfg ImageIntakeConfig,
) *AddDraftImagesUseCase {
	return &AddDraftImagesUseCase{
		drafts: drafts,
		intake: newImageIntake(processor, storage, metrics, cfg),
	}
}

func (uc *AddDraftImagesUseCase) Execute(ctx context.Context, id uuid.UUID, files []domain.ImageFile) (*domain.Draft, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "AddDraftImages",
		"draft_id": id,
		"files":    len(files),
	})
	ucLogger.Info("Use case started", nil)

	draft, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Submitted() {
		return nil, domain.ErrDraftSubmitted
	}

	added, err := uc.intake.intake(ctx, draft, files, time.Now())
	if err != nil {
		ucLogger.Warn("Image intake failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	if err := uc.drafts.Save(ctx, draft); err != nil {
		ucLogger.Error("Failed to store draft, removing uploaded images", err, nil)
		uc.intake.discard(ctx, added)
		return nil, err
	}

	ucLogger.Info("Images attached to draft", port.Fields{"added": len(added), "total": len(draft.Images)})
	return draft, nil
}
