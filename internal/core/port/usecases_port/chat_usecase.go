package usecases_port

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

type ChatUseCase interface {
	Execute(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error)
}
