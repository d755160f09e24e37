package repo

import (
	"context"
	"errors"
	"time"

	"github.com/richardliu001/newsletter-service/internal/model"
	"github.com/segmentio/kafka-go"
)

// ErrNoWriter is returned by PublishEvent when the repository was built without Kafka.
var ErrNoWriter = errors.New("outbox: no kafka writer configured")

// PollOutbox pulls unprocessed events, oldest first.
func (r *Repository) PollOutbox(ctx context.Context, limit int) ([]model.OutboxEvent, error) {
	var evts []model.OutboxEvent
	err := r.db.WithContext(ctx).Where("processed = ?", false).Order("id").Limit(limit).Find(&evts).Error
	return evts, err
}

// MarkOutboxProcessed sets processed flag.
func (r *Repository) MarkOutboxProcessed(ctx context.Context, id uint64) error {
	now := r.now()
	return r.db.WithContext(ctx).Model(&model.OutboxEvent{}).Where("id = ?", id).
		Updates(map[string]interface{}{"processed": true, "processed_at": &now}).Error
}

// PublishEvent sends to Kafka keyed by subscriber id so one subscriber's events stay ordered.
func (r *Repository) PublishEvent(ctx context.Context, evt model.OutboxEvent) error {
	if r.writer == nil {
		return ErrNoWriter
	}
	msg := kafka.Message{
		Key:   []byte(evt.AggregateID),
		Value: []byte(evt.Payload),
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.EventType)},
		},
		Time: r.now(),
	}
	return r.writer.WriteMessages(ctx, msg)
}

// RelayOutbox publishes one batch and returns how many events were marked processed.
// An event that fails to publish stays unprocessed for the next round.
func (r *Repository) RelayOutbox(ctx context.Context, limit int) (int, error) {
	events, err := r.PollOutbox(ctx, limit)
	if err != nil {
		return 0, err
	}
	sent := 0
	for _, evt := range events {
		if err := r.PublishEvent(ctx, evt); err != nil {
			r.log.Errorw("publish outbox event", "id", evt.ID, "error", err)
			continue
		}
		if err := r.MarkOutboxProcessed(ctx, evt.ID); err != nil {
			r.log.Errorw("mark outbox processed", "id", evt.ID, "error", err)
			continue
		}
		sent++
	}
	return sent, nil
}

// pollInterval is how often RunRelay drains the outbox.
const pollInterval = time.Second

// RunRelay drains the outbox until ctx is cancelled.
func (r *Repository) RunRelay(ctx context.Context, batch int) {
	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := r.RelayOutbox(ctx, batch)
			if err != nil {
				r.log.Errorw("poll outbox", "error", err)
				continue
			}
			if n > 0 {
				r.log.Infow("outbox events sent", "count", n)
			}
		}
	}
}
