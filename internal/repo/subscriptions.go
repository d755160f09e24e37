package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/richardliu001/newsletter-service/internal/domain"
	"github.com/richardliu001/newsletter-service/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TxStep names the point at which CreatePendingSubscriber failed.
type TxStep string

const (
	StepBegin            TxStep = "begin"
	StepInsertSubscriber TxStep = "insert_subscriber"
	StepStoreToken       TxStep = "store_token"
	StepStoreEvent       TxStep = "store_event"
	StepCommit           TxStep = "commit"
)

// TxError wraps the driver error of a failed subscription transaction.
type TxError struct {
	Step TxStep
	Err  error
}

func (e *TxError) Error() string { return fmt.Sprintf("subscription tx %s: %v", e.Step, e.Err) }

func (e *TxError) Unwrap() error { return e.Err }

// CreatePendingSubscriber inserts the subscriber, its token and a created event
// in one transaction. Nothing is persisted unless every step succeeds.
func (r *Repository) CreatePendingSubscriber(ctx context.Context, ns domain.NewSubscriber) (uuid.UUID, string, error) {
	tx := r.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return uuid.Nil, "", &TxError{Step: StepBegin, Err: tx.Error}
	}

	sub := &model.Subscription{
		ID:           uuid.New(),
		Email:        ns.Email.String(),
		Name:         ns.Name.String(),
		SubscribedAt: r.now().UTC(),
		Status:       model.StatusPendingConfirmation,
	}
	if err := tx.Create(sub).Error; err != nil {
		r.rollback(tx)
		return uuid.Nil, "", &TxError{Step: StepInsertSubscriber, Err: err}
	}

	tok := r.newToken()
	row := &model.SubscriptionToken{Token: tok, SubscriberID: sub.ID}
	if err := tx.Omit(clause.Associations).Create(row).Error; err != nil {
		r.rollback(tx)
		return uuid.Nil, "", &TxError{Step: StepStoreToken, Err: err}
	}

	payload, err := json.Marshal(map[string]interface{}{
		"subscriber_id": sub.ID,
		"email":         sub.Email,
		"subscribed_at": sub.SubscribedAt,
	})
	if err != nil {
		r.rollback(tx)
		return uuid.Nil, "", &TxError{Step: StepStoreEvent, Err: fmt.Errorf("encode event payload: %w", err)}
	}
	evt := &model.OutboxEvent{
		Aggregate:   model.AggregateSubscription,
		AggregateID: sub.ID.String(),
		EventType:   model.EventSubscriptionCreated,
		Payload:     string(payload),
	}
	if err := tx.Create(evt).Error; err != nil {
		r.rollback(tx)
		return uuid.Nil, "", &TxError{Step: StepStoreEvent, Err: err}
	}

	if err := tx.Commit().Error; err != nil {
		return uuid.Nil, "", &TxError{Step: StepCommit, Err: err}
	}
	return sub.ID, tok, nil
}

func (r *Repository) rollback(tx *gorm.DB) {
	if err := tx.Rollback().Error; err != nil {
		r.log.Warnw("rollback subscription tx", "error", err)
	}
}

// GetSubscription loads one subscriber row.
func (r *Repository) GetSubscription(ctx context.Context, id uuid.UUID) (*model.Subscription, error) {
	var s model.Subscription
	if err := r.db.WithContext(ctx).Where("id = ?", id).Take(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
