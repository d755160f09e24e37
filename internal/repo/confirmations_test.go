package repo

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/richardliu001/newsletter-service/internal/logger"
	"github.com/richardliu001/newsletter-service/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindSubscriberIDByToken_UnknownToken(t *testing.T) {
	r, _ := newTestRepo(t)

	id, ok, err := r.FindSubscriberIDByToken(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, uuid.Nil, id)
}

func TestConfirmSubscriber_TransitionsOnceAndIsIdempotent(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	created, tok, err := r.CreatePendingSubscriber(ctx, mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com"))
	require.NoError(t, err)

	id, ok, err := r.FindSubscriberIDByToken(ctx, tok)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, created, id)

	require.NoError(t, r.ConfirmSubscriber(ctx, id))
	require.NoError(t, r.ConfirmSubscriber(ctx, id))

	sub, err := r.GetSubscription(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusConfirmed, sub.Status)
}

func TestConfirmSubscriber_LeavesOthersPending(t *testing.T) {
	r, _ := newTestRepo(t)
	ctx := context.Background()

	a, _, err := r.CreatePendingSubscriber(ctx, mustNewSubscriber(t, "a", "a@example.com"))
	require.NoError(t, err)
	b, _, err := r.CreatePendingSubscriber(ctx, mustNewSubscriber(t, "b", "b@example.com"))
	require.NoError(t, err)

	require.NoError(t, r.ConfirmSubscriber(ctx, a))

	other, err := r.GetSubscription(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPendingConfirmation, other.Status)
}

func TestFindSubscriberIDByToken_ReadsThroughCache(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	db := newTestDB(t)
	r := NewRepository(db, rdb, nil, logger.NewNop()).WithTokenTTL(10 * time.Minute)
	ctx := context.Background()

	created, tok, err := r.CreatePendingSubscriber(ctx, mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com"))
	require.NoError(t, err)

	_, ok, err := r.FindSubscriberIDByToken(ctx, tok)
	require.NoError(t, err)
	require.True(t, ok)

	cached, err := mr.Get("sub_token:" + tok)
	require.NoError(t, err)
	assert.Equal(t, created.String(), cached)
	assert.Equal(t, 10*time.Minute, mr.TTL("sub_token:"+tok))

	// served from redis once cached
	require.NoError(t, db.Where("sub_token = ?", tok).Delete(&model.SubscriptionToken{}).Error)
	id, ok, err := r.FindSubscriberIDByToken(ctx, tok)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, created, id)
}
