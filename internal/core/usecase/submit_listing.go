package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

// SubmitListingUseCase handles the one-shot multipart submission.
// It runs the same wizard validation and image intake as the draft flow.
type SubmitListingUseCase struct {
	intake    *imageIntake
	submitter *listingSubmitter
}

func NewSubmitListingUseCase(
	repo port.ListingRepositoryPort,
	events port.SubmissionEventsPort,
	notifier port.NotifierPort,
	processor port.ImageProcessorPort,
	storage port.ImageStoragePort,
	metrics port.MetricsPort,
	cfg ImageIntakeConfig,
) *SubmitListingUseCase {
	return &SubmitListingUseCase{
		intake:    newImageIntake(processor, storage, metrics, cfg),
		submitter: &listingSubmitter{repo: repo, events: events, notifier: notifier, metrics: metrics},
	}
}

// validateFields checks the property and contact steps before any file is touched.
func validateFields(draft *domain.Draft, files int) error {
	v := domain.NewValidationError()
	for _, step := range []domain.Step{domain.StepPropertyDetails, domain.StepContactInfo} {
		var stepErr *domain.ValidationError
		if err := draft.ValidateStep(step); errors.As(err, &stepErr) {
			v.Merge(stepErr)
		}
	}
	if files == 0 {
		v.Add("images", domain.MsgImagesRequired)
	}
	return v.OrNil()
}

func (uc *SubmitListingUseCase) Execute(ctx context.Context, form domain.ListingForm, files []domain.ImageFile) (*domain.ListingRequest, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "SubmitListing",
		"files":    len(files),
	})
	ucLogger.Info("Use case started", nil)

	now := time.Now()
	draft := domain.NewDraft(now)
	if form.Features == nil {
		form.Features = []string{}
	}
	if form.Services == nil {
		form.Services = []string{}
	}
	draft.Form = cleanListingForm(form)

	if err := validateFields(draft, len(files)); err != nil {
		ucLogger.Info("Submission refused by validation", nil)
		return nil, err
	}

	images, err := uc.intake.intake(ctx, draft, files, now)
	if err != nil {
		ucLogger.Warn("Image intake failed", port.Fields{"reason": err.Error()})
		return nil, err
	}

	req, err := uc.submitter.persist(ctx, draft, domain.ChannelMultipart, now)
	if err != nil {
		ucLogger.Error("Failed to store listing request, removing uploaded images", err, nil)
		uc.intake.discard(ctx, images)
		return nil, err
	}

	ctx = contextkeys.ContextWithLogger(ctx, ucLogger.WithFields(port.Fields{"request_id": req.RequestID}))
	uc.submitter.announce(ctx, req)
	ucLogger.Info("Listing submitted", port.Fields{"request_id": req.RequestID})
	return req, nil
}
