package repo

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/richardliu001/newsletter-service/internal/logger"
	"github.com/richardliu001/newsletter-service/internal/model"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func TestRelayOutbox_PublishesAndMarksProcessed(t *testing.T) {
	db := newTestDB(t)
	w := &fakeWriter{}
	r := NewRepository(db, nil, w, logger.NewNop())
	ctx := context.Background()

	id, _, err := r.CreatePendingSubscriber(ctx, mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com"))
	require.NoError(t, err)

	n, err := r.RelayOutbox(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.Len(t, w.msgs, 1)
	assert.Equal(t, id.String(), string(w.msgs[0].Key))
	assert.Equal(t, "event_type", w.msgs[0].Headers[0].Key)
	assert.Equal(t, model.EventSubscriptionCreated, string(w.msgs[0].Headers[0].Value))

	pending, err := r.PollOutbox(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestRelayOutbox_KeepsEventWhenPublishFails(t *testing.T) {
	db := newTestDB(t)
	w := &fakeWriter{err: errors.New("broker down")}
	r := NewRepository(db, nil, w, logger.NewNop())
	ctx := context.Background()

	_, _, err := r.CreatePendingSubscriber(ctx, mustNewSubscriber(t, "le guin", "ursula_le_guin@gmail.com"))
	require.NoError(t, err)

	n, err := r.RelayOutbox(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	pending, err := r.PollOutbox(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}

func TestPublishEvent_WithoutWriter(t *testing.T) {
	r, _ := newTestRepo(t)
	err := r.PublishEvent(context.Background(), model.OutboxEvent{ID: 1})
	assert.ErrorIs(t, err, ErrNoWriter)
}
