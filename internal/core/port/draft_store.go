package port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// DraftStorePort persists wizard sessions. Get returns domain.ErrDraftNotFound
// for unknown or expired drafts.
type DraftStorePort interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error)
	Save(ctx context.Context, draft *domain.Draft) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ClaimSubmission atomically reserves the draft for one submission.
	// It reports false when another submission already holds the claim.
	ClaimSubmission(ctx context.Context, id uuid.UUID) (bool, error)
	// ReleaseSubmission drops a claim whose submission did not go through.
	ReleaseSubmission(ctx context.Context, id uuid.UUID) error
}
