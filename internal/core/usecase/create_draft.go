package usecase

import (
	"context"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

type CreateDraftUseCase struct {
	drafts port.DraftStorePort
}

func NewCreateDraftUseCase(drafts port.DraftStorePort) *CreateDraftUseCase {
	return &CreateDraftUseCase{drafts: drafts}
}

func (uc *CreateDraftUseCase) Execute(ctx context.Context) (*domain.Draft, error) {
	draft := domain.NewDraft(time.Now())
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "CreateDraft",
		"draft_id": draft.ID,
	})

	if err := uc.drafts.Save(ctx, draft); err != nil {
		ucLogger.Error("Failed to store new draft", err, nil)
		return nil, err
	}

	ucLogger.Info("Wizard draft created", nil)
	return draft, nil
}
