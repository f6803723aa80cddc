package usecase

import (
	"context"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type UpdateDraftUseCase struct {
	drafts port.DraftStorePort
}

func NewUpdateDraftUseCase(drafts port.DraftStorePort) *UpdateDraftUseCase {
	return &UpdateDraftUseCase{drafts: drafts}
}

// Execute applies the patch first, then the toggles. Nothing is stored when any step fails.
func (uc *UpdateDraftUseCase) Execute(ctx context.Context, id uuid.UUID, update usecases_port.DraftUpdate) (*domain.Draft, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "UpdateDraft",
		"draft_id": id,
	})

	draft, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := draft.Apply(cleanPatch(update.Patch), now); err != nil {
		ucLogger.Warn("Draft update rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}
	for _, f := range update.ToggleFeatures {
		if err := draft.ToggleFeature(f, now); err != nil {
			return nil, err
		}
	}
	for _, s := range update.ToggleServices {
		if err := draft.ToggleService(s, now); err != nil {
			return nil, err
		}
	}

	if err := uc.drafts.Save(ctx, draft); err != nil {
		ucLogger.Error("Failed to store updated draft", err, nil)
		return nil, err
	}
	ucLogger.Debug("Draft updated", nil)
	return draft, nil
}
