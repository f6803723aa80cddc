package chat

import (
	"context"
	"testing"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "اسعار الشقه", Normalize("  أسعارُ   الشقة "))
	assert.Equal(t, "مرحبا", Normalize("مرحـــبا"))
	assert.Equal(t, "hello", Normalize("HELLO"))
}

func TestReplyIntents(t *testing.T) {
	a := NewRuleAssistant()
	cases := map[string]domain.Intent{
		"السلام عليكم":                 domain.IntentGreeting,
		"عايز أعرض عقار عندكم":         domain.IntentListProperty,
		"محتاج شقة للإيجار في المعادي": domain.IntentRent,
		"الشقة دي بكام؟":               domain.IntentPrices,
		"عايز أشوف مشروعاتكم":          domain.IntentPortfolio,
		"ازاي اتواصل معاكم":            domain.IntentContact,
		"I want to buy a villa":        domain.IntentBuy,
		"this is something else":       domain.IntentFallback,
	}
	for msg, want := range cases {
		reply, err := a.Reply(context.Background(), domain.ChatRequest{Message: msg})
		require.NoError(t, err, msg)
		assert.Equal(t, want, reply.Intent, msg)
		assert.NotEmpty(t, reply.Message)
		assert.NotEmpty(t, reply.QuickReplies)
	}
}

func TestShortLatinKeywordNeedsWordBoundary(t *testing.T) {
	a := NewRuleAssistant()
	reply, err := a.Reply(context.Background(), domain.ChatRequest{Message: "this thing"})
	require.NoError(t, err)
	assert.Equal(t, domain.IntentFallback, reply.Intent)
}

func TestEmptyMessage(t *testing.T) {
	_, err := NewRuleAssistant().Reply(context.Background(), domain.ChatRequest{Message: "   "})
	assert.ErrorIs(t, err, domain.ErrEmptyMessage)
}
