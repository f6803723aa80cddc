package usecase

import (
	"context"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

type SubmitDraftUseCase struct {
	drafts    port.DraftStorePort
	submitter *listingSubmitter
}

func NewSubmitDraftUseCase(
	drafts port.DraftStorePort,
	repo port.ListingRepositoryPort,
	events port.SubmissionEventsPort,
	notifier port.NotifierPort,
	metrics port.MetricsPort,
) *SubmitDraftUseCase {
	return &SubmitDraftUseCase{
		drafts:    drafts,
		submitter: &listingSubmitter{repo: repo, events: events, notifier: notifier, metrics: metrics},
	}
}

func (uc *SubmitDraftUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.ListingRequest, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SubmitDraft",
		"draft_id": id,
	})
	ucLogger.Info("Use case started", nil)

	draft, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if draft.Submitted() {
		return nil, domain.ErrDraftSubmitted
	}
	if err := draft.ValidateAll(); err != nil {
		ucLogger.Info("Submission refused by validation", nil)
		return nil, err
	}

	claimed, err := uc.drafts.ClaimSubmission(ctx, id)
	if err != nil {
		return nil, err
	}
	if !claimed {
		ucLogger.Info("Submission already in progress for this draft", nil)
		return nil, domain.ErrDraftSubmitted
	}
	// the claimed copy may be older than a submission that just finished
	if draft, err = uc.drafts.Get(ctx, id); err != nil {
		uc.release(ctx, id)
		return nil, err
	}
	if draft.Submitted() {
		return nil, domain.ErrDraftSubmitted
	}

	now := time.Now()
	req, err := uc.submitter.persist(ctx, draft, domain.ChannelWizard, now)
	if err != nil {
		ucLogger.Error("Failed to store listing request", err, nil)
		uc.release(ctx, id)
		return nil, err
	}
	ucLogger = ucLogger.WithFields(port.Fields{"request_id": req.RequestID})
	ctx = contextkeys.ContextWithLogger(ctx, ucLogger)

	if err := draft.MarkSubmitted(req.RequestID, now); err != nil {
		ucLogger.Error("Draft could not be marked submitted", err, nil)
	} else if err := uc.drafts.Save(ctx, draft); err != nil {
		ucLogger.Error("Failed to store submitted draft", err, nil)
	}

	uc.submitter.announce(ctx, req)
	ucLogger.Info("Listing submitted", nil)
	return req, nil
}

// release lets the user retry after a submission that stored nothing.
func (uc *SubmitDraftUseCase) release(ctx context.Context, id uuid.UUID) {
	if err := uc.drafts.ReleaseSubmission(context.WithoutCancel(ctx), id); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to release submission claim", err, nil)
	}
}
