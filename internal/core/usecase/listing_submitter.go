package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

// requestIDAttempts bounds retries on a request id collision.
const requestIDAttempts = 3

// listingSubmitter stores a validated listing and announces it.
type listingSubmitter struct {
	repo     port.ListingRepositoryPort
	events   port.SubmissionEventsPort
	notifier port.NotifierPort
	metrics  port.MetricsPort
}

func (s *listingSubmitter) persist(ctx context.Context, draft *domain.Draft, channel string, now time.Time) (*domain.ListingRequest, error) {
	var lastErr error
	for attempt := 0; attempt < requestIDAttempts; attempt++ {
		req := &domain.ListingRequest{
			ID:        uuid.New(),
			RequestID: domain.NewRequestID(now, uuid.New()),
			Form:      draft.Form,
			Images:    draft.Images,
			Status:    domain.StatusPending,
			Channel:   channel,
			CreatedAt: now,
			UpdatedAt: now,
		}
		err := s.repo.Create(ctx, req)
		if err == nil {
			return req, nil
		}
		if !errors.Is(err, domain.ErrAlreadyExists) {
			return nil, err
		}
		lastErr = err
	}
	return nil, lastErr
}

// ListingSummary is what the back-office feed shows for a fresh submission.
type ListingSummary struct {
	RequestID    string    `json:"requestId"`
	Channel      string    `json:"channel"`
	PropertyType string    `json:"propertyType"`
	Purpose      string    `json:"purpose"`
	Governorate  string    `json:"governorate"`
	City         string    `json:"city"`
	Price        string    `json:"price"`
	ContactName  string    `json:"contactName"`
	Images       int       `json:"images"`
	SubmittedAt  time.Time `json:"submittedAt"`
}

// announce publishes the event and pushes the feed entry. Failures are logged only:
// the request is already stored.
func (s *listingSubmitter) announce(ctx context.Context, req *domain.ListingRequest) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"request_id": req.RequestID})

	if err := s.events.PublishPropertySubmitted(ctx, domain.NewPropertySubmittedEvent(req)); err != nil {
		logger.Error("Submission stored but event was not published", err, nil)
	}

	s.notifier.Notify(ctx, constants.AdminFeed, port.FeedEvent{
		Type: constants.SSEEventListingSubmitted,
		Data: ListingSummary{
			RequestID:    req.RequestID,
			Channel:      req.Channel,
			PropertyType: req.Form.PropertyType,
			Purpose:      req.Form.Purpose,
			Governorate:  req.Form.Governorate,
			City:         req.Form.City,
			Price:        domain.NormalizeNumber(req.Form.Price),
			ContactName:  req.Form.Name,
			Images:       len(req.Images),
			SubmittedAt:  req.CreatedAt,
		},
	})
	s.metrics.ListingSubmitted(req.Channel)
}
