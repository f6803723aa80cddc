package domain

type Intent string

const (
	IntentGreeting     Intent = "greeting"
	IntentListProperty Intent = "list_property"
	IntentBuy          Intent = "buy"
	IntentRent         Intent = "rent"
	IntentPrices       Intent = "prices"
	IntentContact      Intent = "contact"
	IntentPortfolio    Intent = "portfolio"
	IntentProducts     Intent = "products"
	IntentFallback     Intent = "fallback"
)

const MaxChatMessageRunes = 1000

type ChatRequest struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type ChatReply struct {
	Message      string   `json:"message"`
	QuickReplies []string `json:"quickReplies"`
	Intent       Intent   `json:"intent"`
}
