package port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

// SubmissionEventsPort publishes listing submissions to the message broker.
type SubmissionEventsPort interface {
	PublishPropertySubmitted(ctx context.Context, event domain.PropertySubmittedEvent) error
}
