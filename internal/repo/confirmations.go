package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/richardliu001/newsletter-service/internal/model"
	"gorm.io/gorm"
)

// FindSubscriberIDByToken returns ok=false when no token row matches.
func (r *Repository) FindSubscriberIDByToken(ctx context.Context, tok string) (uuid.UUID, bool, error) {
	if id, ok := r.cache.Get(ctx, tok); ok {
		return id, true, nil
	}

	var row model.SubscriptionToken
	err := r.db.WithContext(ctx).
		Select("sub_id").
		Where("sub_token = ?", tok).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, false, nil
	}
	if err != nil {
		return uuid.Nil, false, err
	}

	r.cache.Set(ctx, tok, row.SubscriberID)
	return row.SubscriberID, true, nil
}

// ConfirmSubscriber marks the subscriber confirmed. Confirming twice is a no-op.
func (r *Repository) ConfirmSubscriber(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.Subscription{}).
		Where("id = ?", id).
		Update("status", model.StatusConfirmed).Error
}
