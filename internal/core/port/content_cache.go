package port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

// ContentCachePort is a read-through cache in front of the content repository.
type ContentCachePort interface {
	Get(ctx context.Context, section domain.ContentSection) ([]byte, bool, error)
	Set(ctx context.Context, section domain.ContentSection, data []byte) error
	Invalidate(ctx context.Context, section domain.ContentSection) error
}
