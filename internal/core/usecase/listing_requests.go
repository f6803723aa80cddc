package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

const maxAdminNoteRunes = 1000

type ListListingRequestsUseCase struct {
	repo port.ListingRepositoryPort
}

func NewListListingRequestsUseCase(repo port.ListingRepositoryPort) *ListListingRequestsUseCase {
	return &ListListingRequestsUseCase{repo: repo}
}

func (uc *ListListingRequestsUseCase) Execute(ctx context.Context, filter domain.ListingRequestFilter) ([]domain.ListingRequest, int, error) {
	if filter.Status != "" {
		if _, err := domain.ParseListingStatus(string(filter.Status)); err != nil {
			return nil, 0, err
		}
	}
	return uc.repo.List(ctx, filter.Normalize())
}

type GetListingRequestUseCase struct {
	repo port.ListingRepositoryPort
}

func NewGetListingRequestUseCase(repo port.ListingRepositoryPort) *GetListingRequestUseCase {
	return &GetListingRequestUseCase{repo: repo}
}

func (uc *GetListingRequestUseCase) Execute(ctx context.Context, requestID string) (*domain.ListingRequest, error) {
	if !domain.IsRequestID(requestID) {
		return nil, domain.ErrNotFound
	}
	return uc.repo.FindByRequestID(ctx, requestID)
}

// StatusChange is the feed payload of a review decision.
type StatusChange struct {
	RequestID string               `json:"requestId"`
	From      domain.ListingStatus `json:"from"`
	To        domain.ListingStatus `json:"to"`
	Note      string               `json:"note,omitempty"`
}

type UpdateListingStatusUseCase struct {
	repo     port.ListingRepositoryPort
	notifier port.NotifierPort
}

func NewUpdateListingStatusUseCase(repo port.ListingRepositoryPort, notifier port.NotifierPort) *UpdateListingStatusUseCase {
	return &UpdateListingStatusUseCase{repo: repo, notifier: notifier}
}

func (uc *UpdateListingStatusUseCase) Execute(ctx context.Context, requestID string, status domain.ListingStatus, note string) (*domain.ListingRequest, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "UpdateListingStatus",
		"request_id": requestID,
		"status":     status,
	})

	if _, err := domain.ParseListingStatus(string(status)); err != nil {
		return nil, err
	}
	note = cleanText(note)
	if utf8.RuneCountInString(note) > maxAdminNoteRunes {
		v := domain.NewValidationError()
		v.Add("note", domain.MsgDescTooLong)
		return nil, v
	}

	req, err := uc.repo.FindByRequestID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if !req.Status.CanTransitionTo(status) {
		ucLogger.Warn("Transition refused", port.Fields{"from": req.Status})
		return nil, domain.ErrInvalidTransition
	}

	now := time.Now().UTC()
	if err := uc.repo.UpdateStatus(ctx, requestID, status, note, now); err != nil {
		ucLogger.Error("Failed to update status", err, nil)
		return nil, err
	}

	from := req.Status
	req.Status = status
	req.AdminNote = note
	req.UpdatedAt = now

	uc.notifier.Notify(ctx, constants.AdminFeed, port.FeedEvent{
		Type: constants.SSEEventListingStatus,
		Data: StatusChange{RequestID: requestID, From: from, To: status, Note: note},
	})
	ucLogger.Info("Listing status changed", port.Fields{"from": from})
	return req, nil
}
