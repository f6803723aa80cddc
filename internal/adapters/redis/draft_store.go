package redis_adapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const (
	draftKeyPrefix = "wizard:draft:"

	// submitClaimTTL outlives a submission; once it succeeds the stored
	// draft carries the request id and the claim is no longer needed.
	submitClaimTTL = 2 * time.Minute
)

// DraftStore keeps wizard drafts as JSON with a sliding TTL.
type DraftStore struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewDraftStore(client *goredis.Client, ttl time.Duration) (*DraftStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client cannot be nil")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("draft TTL must be positive")
	}
	return &DraftStore{client: client, ttl: ttl}, nil
}

func draftKey(id uuid.UUID) string {
	return draftKeyPrefix + id.String()
}

func submitClaimKey(id uuid.UUID) string {
	return draftKey(id) + ":submitting"
}

func (s *DraftStore) Get(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "RedisDraftStore",
		"method":    "Get",
		"draft_id":  id.String(),
	})

	raw, err := s.client.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			logger.Debug("Draft not found or expired.", nil)
			return nil, domain.ErrDraftNotFound
		}
		logger.Error("Failed to read draft", err, nil)
		return nil, fmt.Errorf("failed to read draft: %w", err)
	}

	var draft domain.Draft
	if err := json.Unmarshal(raw, &draft); err != nil {
		logger.Error("Stored draft is corrupted", err, nil)
		return nil, fmt.Errorf("failed to decode draft: %w", err)
	}
	return &draft, nil
}

// Save overwrites the draft and restarts its TTL.
func (s *DraftStore) Save(ctx context.Context, draft *domain.Draft) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "RedisDraftStore",
		"method":    "Save",
		"draft_id":  draft.ID.String(),
		"step":      int(draft.Step),
	})

	raw, err := json.Marshal(draft)
	if err != nil {
		logger.Error("Failed to encode draft", err, nil)
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(draft.ID), raw, s.ttl).Err(); err != nil {
		logger.Error("Failed to write draft", err, nil)
		return fmt.Errorf("failed to write draft: %w", err)
	}
	logger.Debug("Draft saved.", port.Fields{"ttl": s.ttl.String()})
	return nil
}

func (s *DraftStore) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, draftKey(id)).Err(); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to delete draft", err, port.Fields{
			"component": "RedisDraftStore",
			"draft_id":  id.String(),
		})
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func (s *DraftStore) ClaimSubmission(ctx context.Context, id uuid.UUID) (bool, error) {
	claimed, err := s.client.SetNX(ctx, submitClaimKey(id), "1", submitClaimTTL).Result()
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to claim draft submission", err, port.Fields{
			"component": "RedisDraftStore",
			"draft_id":  id.String(),
		})
		return false, fmt.Errorf("failed to claim draft submission: %w", err)
	}
	return claimed, nil
}

func (s *DraftStore) ReleaseSubmission(ctx context.Context, id uuid.UUID) error {
	if err := s.client.Del(ctx, submitClaimKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to release draft submission: %w", err)
	}
	return nil
}
