package rest

import (
	"net/http"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"
)

// maxChatBody caps a chat request.
const maxChatBody = 16 << 10

type ChatHandler struct {
	chatUC usecases_port.ChatUseCase
}

func NewChatHandler(chatUC usecases_port.ChatUseCase) *ChatHandler {
	return &ChatHandler{chatUC: chatUC}
}

func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "Chat"})

	var req domain.ChatRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxChatBody)
	if err := decodeJSON(r, &req); err != nil {
		status, message := statusFor(err)
		if status == http.StatusInternalServerError {
			status, message = http.StatusBadRequest, msgBadRequest
		}
		WriteJSONError(w, status, message)
		return
	}

	reply, err := h.chatUC.Execute(r.Context(), req)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, chatResponse{
		Success:      true,
		Message:      reply.Message,
		QuickReplies: reply.QuickReplies,
		Intent:       reply.Intent,
	})
}

// Catalog serves the static option lists the forms are built from.
func Catalog(w http.ResponseWriter, r *http.Request) {
	respondData(w, http.StatusOK, domain.DefaultCatalog())
}
