package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"

	"github.com/google/uuid"
)

type NavigateDraftUseCase struct {
	drafts  port.DraftStorePort
	metrics port.MetricsPort
}

func NewNavigateDraftUseCase(drafts port.DraftStorePort, metrics port.MetricsPort) *NavigateDraftUseCase {
	return &NavigateDraftUseCase{drafts: drafts, metrics: metrics}
}

func (uc *NavigateDraftUseCase) Execute(ctx context.Context, id uuid.UUID, action usecases_port.NavigationAction, step domain.Step) (*domain.Draft, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "NavigateDraft",
		"draft_id": id,
		"action":   action,
	})

	draft, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	from := draft.Step
	now := time.Now()
	switch action {
	case usecases_port.NavigateNext:
		err = draft.Next(now)
	case usecases_port.NavigateBack:
		err = draft.Back(now)
	case usecases_port.NavigateGoTo:
		err = draft.GoTo(step, now)
	default:
		return nil, fmt.Errorf("unknown navigation action %q: %w", action, domain.ErrStepOutOfRange)
	}
	if err != nil {
		uc.metrics.WizardTransition(from.String(), string(action), false)
		ucLogger.Debug("Navigation refused", port.Fields{"step": from, "reason": err.Error()})
		return nil, err
	}

	if err := uc.drafts.Save(ctx, draft); err != nil {
		ucLogger.Error("Failed to store draft after navigation", err, nil)
		return nil, err
	}
	uc.metrics.WizardTransition(from.String(), draft.Step.String(), true)
	ucLogger.Debug("Draft moved", port.Fields{"from": from, "to": draft.Step})
	return draft, nil
}
