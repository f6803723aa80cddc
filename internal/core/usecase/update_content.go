package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

const msgMalformedContent = "صيغة البيانات غير صالحة"

type UpdateContentUseCase struct {
	repo  port.ContentRepositoryPort
	cache port.ContentCachePort
}

func NewUpdateContentUseCase(repo port.ContentRepositoryPort, cache port.ContentCachePort) *UpdateContentUseCase {
	return &UpdateContentUseCase{repo: repo, cache: cache}
}

func (uc *UpdateContentUseCase) Execute(ctx context.Context, section domain.ContentSection, body json.RawMessage) (*domain.Content, error) {
	payload, err := domain.NewContentPayload(section)
	if err != nil {
		return nil, err
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "UpdateContent",
		"section":  section,
	})

	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(payload); err != nil {
		v := domain.NewValidationError()
		v.Add("data", msgMalformedContent)
		return nil, v
	}
	if err := payload.Validate(); err != nil {
		return nil, err
	}

	normalized, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	if err := uc.repo.Upsert(ctx, section, normalized, now); err != nil {
		ucLogger.Error("Failed to save content", err, nil)
		return nil, err
	}
	if err := uc.cache.Invalidate(ctx, section); err != nil {
		ucLogger.Warn("Failed to invalidate content cache", port.Fields{"error": err.Error()})
	}

	ucLogger.Info("Content updated", nil)
	return &domain.Content{Section: section, Data: payload, UpdatedAt: now}, nil
}
