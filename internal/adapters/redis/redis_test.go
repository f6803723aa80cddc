package redis_adapter

import (
	"context"
	"testing"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestDraftStoreRoundTripAndExpiry(t *testing.T) {
	mr, client := newTestClient(t)
	store, err := NewDraftStore(client, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	draft := domain.NewDraft(time.Now().UTC())
	draft.Form.City = "المعادي"
	draft.Images = append(draft.Images, domain.ListingImage{ID: uuid.New(), PublicID: "amg/property/a", Hash: 42})
	require.NoError(t, store.Save(ctx, draft))

	got, err := store.Get(ctx, draft.ID)
	require.NoError(t, err)
	assert.Equal(t, "المعادي", got.Form.City)
	require.Len(t, got.Images, 1)
	assert.Equal(t, uint64(42), got.Images[0].Hash)
	assert.Equal(t, time.Hour, mr.TTL(draftKey(draft.ID)))

	mr.FastForward(2 * time.Hour)
	_, err = store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestDraftStoreSubmissionClaim(t *testing.T) {
	mr, client := newTestClient(t)
	store, _ := NewDraftStore(client, time.Hour)
	ctx := context.Background()
	id := uuid.New()

	first, err := store.ClaimSubmission(ctx, id)
	require.NoError(t, err)
	assert.True(t, first)
	assert.Equal(t, submitClaimTTL, mr.TTL(submitClaimKey(id)))

	second, err := store.ClaimSubmission(ctx, id)
	require.NoError(t, err)
	assert.False(t, second)

	require.NoError(t, store.ReleaseSubmission(ctx, id))
	again, err := store.ClaimSubmission(ctx, id)
	require.NoError(t, err)
	assert.True(t, again)

	mr.FastForward(submitClaimTTL + time.Second)
	afterExpiry, err := store.ClaimSubmission(ctx, id)
	require.NoError(t, err)
	assert.True(t, afterExpiry)
}

func TestDraftStoreDelete(t *testing.T) {
	_, client := newTestClient(t)
	store, _ := NewDraftStore(client, time.Minute)
	ctx := context.Background()

	draft := domain.NewDraft(time.Now())
	require.NoError(t, store.Save(ctx, draft))
	require.NoError(t, store.Delete(ctx, draft.ID))

	_, err := store.Get(ctx, draft.ID)
	assert.ErrorIs(t, err, domain.ErrDraftNotFound)
}

func TestDraftStoreRejectsBadConfig(t *testing.T) {
	_, client := newTestClient(t)
	_, err := NewDraftStore(client, 0)
	assert.Error(t, err)
	_, err = NewDraftStore(nil, time.Minute)
	assert.Error(t, err)
}

func TestContentCache(t *testing.T) {
	mr, client := newTestClient(t)
	cache, err := NewContentCache(client, time.Minute)
	require.NoError(t, err)
	ctx := context.Background()

	_, hit, err := cache.Get(ctx, domain.SectionHeroStats)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, cache.Set(ctx, domain.SectionHeroStats, []byte(`{"happyClients":1}`)))
	raw, hit, err := cache.Get(ctx, domain.SectionHeroStats)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.JSONEq(t, `{"happyClients":1}`, string(raw))

	require.NoError(t, cache.Invalidate(ctx, domain.SectionHeroStats))
	assert.False(t, mr.Exists(contentKey(domain.SectionHeroStats)))
}
