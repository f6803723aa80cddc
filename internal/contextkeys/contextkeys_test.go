package contextkeys

import (
	"context"
	"testing"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestLoggerFromContextFallsBackToNoop(t *testing.T) {
	logger := LoggerFromContext(context.Background())
	assert.NotNil(t, logger)
	assert.NotPanics(t, func() {
		logger.WithFields(nil).Error("boom", nil, nil)
	})
}

func TestTraceAndClaimsRoundTrip(t *testing.T) {
	ctx := ContextWithTraceID(context.Background(), "trace-1")
	assert.Equal(t, "trace-1", TraceIDFromContext(ctx))
	assert.Empty(t, TraceIDFromContext(context.Background()))

	_, ok := ClaimsFromContext(ctx)
	assert.False(t, ok)

	ctx = ContextWithClaims(ctx, &domain.Claims{Email: "admin@amg.eg", Role: domain.RoleAdmin})
	claims, ok := ClaimsFromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, "admin@amg.eg", claims.Email)
}
