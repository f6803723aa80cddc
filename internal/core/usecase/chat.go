package usecase

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

const msgChatTooLong = "الرسالة طويلة جداً"

type ChatUseCase struct {
	assistant port.ChatAssistantPort
}

func NewChatUseCase(assistant port.ChatAssistantPort) *ChatUseCase {
	return &ChatUseCase{assistant: assistant}
}

func (uc *ChatUseCase) Execute(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	req.Message = strings.TrimSpace(req.Message)
	if req.Message == "" {
		return nil, domain.ErrEmptyMessage
	}
	if utf8.RuneCountInString(req.Message) > domain.MaxChatMessageRunes {
		v := domain.NewValidationError()
		v.Add("message", msgChatTooLong)
		return nil, v
	}

	reply, err := uc.assistant.Reply(ctx, req)
	if err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Assistant failed to reply", err, port.Fields{"use_case": "Chat"})
		return nil, err
	}
	contextkeys.LoggerFromContext(ctx).Debug("Chat reply", port.Fields{"use_case": "Chat", "intent": reply.Intent})
	return reply, nil
}
