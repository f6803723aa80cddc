package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

// cachedContent is the cache representation of a section.
type cachedContent struct {
	Data      json.RawMessage `json:"data"`
	UpdatedAt time.Time       `json:"updatedAt"`
	IsDefault bool            `json:"isDefault"`
}

func decodeContent(section domain.ContentSection, c cachedContent) (*domain.Content, error) {
	payload, err := domain.NewContentPayload(section)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(c.Data, payload); err != nil {
		return nil, err
	}
	return &domain.Content{Section: section, Data: payload, UpdatedAt: c.UpdatedAt, IsDefault: c.IsDefault}, nil
}

// GetContentUseCase reads a site section through the cache, falling back to defaults.
type GetContentUseCase struct {
	repo  port.ContentRepositoryPort
	cache port.ContentCachePort
}

func NewGetContentUseCase(repo port.ContentRepositoryPort, cache port.ContentCachePort) *GetContentUseCase {
	return &GetContentUseCase{repo: repo, cache: cache}
}

func (uc *GetContentUseCase) Execute(ctx context.Context, section domain.ContentSection) (*domain.Content, error) {
	if _, err := domain.ParseContentSection(string(section)); err != nil {
		return nil, err
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "GetContent",
		"section":  section,
	})

	raw, hit, err := uc.cache.Get(ctx, section)
	if err != nil {
		ucLogger.Warn("Content cache unavailable", port.Fields{"error": err.Error()})
	}
	if hit {
		var c cachedContent
		if err := json.Unmarshal(raw, &c); err == nil {
			if content, err := decodeContent(section, c); err == nil {
				return content, nil
			}
		}
		ucLogger.Warn("Discarding unreadable cache entry", nil)
	}

	entry := cachedContent{}
	data, updatedAt, err := uc.repo.Get(ctx, section)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		def, err := domain.DefaultContent(section)
		if err != nil {
			return nil, err
		}
		if entry.Data, err = json.Marshal(def); err != nil {
			return nil, err
		}
		entry.IsDefault = true
	case err != nil:
		ucLogger.Error("Failed to read content", err, nil)
		return nil, err
	default:
		entry.Data = data
		entry.UpdatedAt = updatedAt
	}

	content, err := decodeContent(section, entry)
	if err != nil {
		ucLogger.Error("Stored content is unreadable", err, nil)
		return nil, err
	}

	if encoded, err := json.Marshal(entry); err == nil {
		if err := uc.cache.Set(ctx, section, encoded); err != nil {
			ucLogger.Warn("Failed to fill content cache", port.Fields{"error": err.Error()})
		}
	}
	return content, nil
}
